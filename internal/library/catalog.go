// Package library supplies the book catalog: the set of books known to
// the system, with descriptive metadata. The catalog is consumed
// read-only, to validate asins and to support display; title and author
// never participate in identity.
package library

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Book is one catalog entry. Identity is the ASIN alone.
type Book struct {
	Asin   string `yaml:"asin"`
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

// String renders the book for listings.
func (b Book) String() string {
	return fmt.Sprintf("%s by %s (%s)", b.Title, b.Author, b.Asin)
}

// Catalog is an immutable set of known books.
type Catalog struct {
	byAsin map[string]Book
	books  []Book
}

type catalogFile struct {
	Books []Book `yaml:"books"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	return New(cf.Books)
}

// New builds a catalog from entries, rejecting blank or duplicate asins.
func New(books []Book) (*Catalog, error) {
	byAsin := make(map[string]Book, len(books))
	for _, b := range books {
		if b.Asin == "" {
			return nil, fmt.Errorf("catalog entry %q has no asin", b.Title)
		}
		if _, ok := byAsin[b.Asin]; ok {
			return nil, fmt.Errorf("duplicate asin %s in catalog", b.Asin)
		}
		byAsin[b.Asin] = b
	}

	sorted := make([]Book, len(books))
	copy(sorted, books)
	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := collator.CompareString(sorted[i].Title, sorted[j].Title); c != 0 {
			return c < 0
		}
		return sorted[i].Asin < sorted[j].Asin
	})

	return &Catalog{byAsin: byAsin, books: sorted}, nil
}

// Lookup returns the book for asin and whether it is known.
func (c *Catalog) Lookup(asin string) (Book, bool) {
	b, ok := c.byAsin[asin]
	return b, ok
}

// Contains reports whether asin is a known book.
func (c *Catalog) Contains(asin string) bool {
	_, ok := c.byAsin[asin]
	return ok
}

// Books returns all entries sorted by title (case-insensitive, collated
// for human-correct ordering), tie-broken by asin.
func (c *Catalog) Books() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// Len returns the number of known books.
func (c *Catalog) Len() int {
	return len(c.books)
}

package kindle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/msuozzo/aduro/internal/creds"
)

// snapshotDocument is the wire format of a snapshot export.
type snapshotDocument struct {
	Books []Observation `json:"books"`
}

// Client fetches snapshots from an HTTP endpoint, authenticating with
// credentials resolved by the creds manager.
type Client struct {
	endpoint string
	manager  *creds.Manager
	http     *http.Client
}

// NewClient creates a snapshot client for the given endpoint.
func NewClient(endpoint string, manager *creds.Manager) *Client {
	return &Client{
		endpoint: endpoint,
		manager:  manager,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchSnapshot retrieves and decodes the current snapshot. Every failure
// mode (credential resolution, transport, non-200 status, malformed body)
// wraps ErrUnavailable.
func (c *Client) FetchSnapshot(ctx context.Context) ([]Observation, error) {
	cr, err := c.manager.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: resolve credentials: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.SetBasicAuth(cr.Username, cr.Password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	}

	var doc snapshotDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %v", ErrUnavailable, err)
	}

	return doc.Books, nil
}

// FileSource reads a snapshot export from disk. Useful offline and for
// driving a sync from a previously captured export.
type FileSource struct {
	Path string
}

// FetchSnapshot decodes the snapshot document at Path. A missing or
// malformed file is "couldn't check", so it wraps ErrUnavailable.
func (f FileSource) FetchSnapshot(ctx context.Context) ([]Observation, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot %s: %v", ErrUnavailable, f.Path, err)
	}

	return doc.Books, nil
}

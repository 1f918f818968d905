package event

import (
	"fmt"
	"regexp"
	"strconv"
)

// ParseError indicates a line that does not match any event's textual form.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable event line %q", e.Line)
}

// Line patterns mirror String() on each variant exactly. ASINs are
// alphanumeric tokens; positions are non-negative decimal integers.
var (
	addPattern      = regexp.MustCompile(`^ADD (\w+)$`)
	readingPattern  = regexp.MustCompile(`^START READING (\w+) FROM ` + PositionMeasure + ` (\d+)$`)
	readPattern     = regexp.MustCompile(`^READ (\w+) FOR (\d+) ` + PositionMeasure + `S$`)
	finishedPattern = regexp.MustCompile(`^FINISHED READING (\w+)$`)
)

// Parse decodes a single line of the legacy textual format into an Event.
// Returns a *ParseError if the line matches no variant.
func Parse(line string) (Event, error) {
	if m := addPattern.FindStringSubmatch(line); m != nil {
		return AddEvent{Asin: m[1]}, nil
	}
	if m := readingPattern.FindStringSubmatch(line); m != nil {
		pos, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, &ParseError{Line: line}
		}
		return SetReadingEvent{Asin: m[1], Position: pos}, nil
	}
	if m := readPattern.FindStringSubmatch(line); m != nil {
		delta, err := strconv.Atoi(m[2])
		if err != nil || delta <= 0 {
			return nil, &ParseError{Line: line}
		}
		return ReadEvent{Asin: m[1], Delta: delta}, nil
	}
	if m := finishedPattern.FindStringSubmatch(line); m != nil {
		return SetFinishedEvent{Asin: m[1]}, nil
	}
	return nil, &ParseError{Line: line}
}

// Package extractor locates the pricing table inside a fetched document and
// splits it into rows and cells.
package extractor

import (
	"errors"
	"fmt"
)

// ErrNoTableBody is returned when the document has no table body region.
var ErrNoTableBody = errors.New("no table body found")

// Row is one row region. Cells holds each cell's inner markup in document order.
type Row struct {
	Cells []string
}

// Table is the ordered list of rows found inside the first table body.
type Table struct {
	Rows []Row
}

// Extractor turns a raw document into a Table.
type Extractor interface {
	// Name returns the extractor identifier ("regex" or "tree").
	Name() string

	// Extract returns ErrNoTableBody when the document has no table body.
	Extract(doc string) (*Table, error)
}

// New returns the extractor registered under name.
func New(name string) (Extractor, error) {
	switch name {
	case "", "regex":
		return Regex{}, nil
	case "tree":
		return Tree{}, nil
	default:
		return nil, fmt.Errorf("extractor: unknown extractor %q (want regex or tree)", name)
	}
}

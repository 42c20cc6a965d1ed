package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	selTableBody = cascadia.MustCompile("tbody")
	selRow       = cascadia.MustCompile("tbody > tr")
	selCell      = cascadia.MustCompile("tr > td")
)

// Tree extracts the table from a parsed document tree. Rows are the direct
// tr children of the first tbody, cells the direct td children of each row.
//
// The HTML parser inserts a tbody into any table that has rows, so a table
// written without one is still found here while Regex reports ErrNoTableBody.
type Tree struct{}

func (Tree) Name() string { return "tree" }

func (Tree) Extract(doc string) (*Table, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("extractor: parse document: %w", err)
	}

	body := d.FindMatcher(selTableBody).First()
	if body.Length() == 0 {
		return nil, ErrNoTableBody
	}

	table := &Table{}
	var cellErr error
	body.ChildrenMatcher(selRow).Each(func(_ int, tr *goquery.Selection) {
		r := Row{}
		tr.ChildrenMatcher(selCell).Each(func(_ int, td *goquery.Selection) {
			inner, err := td.Html()
			if err != nil && cellErr == nil {
				cellErr = err
			}
			r.Cells = append(r.Cells, inner)
		})
		table.Rows = append(table.Rows, r)
	})
	if cellErr != nil {
		return nil, fmt.Errorf("extractor: render cell: %w", cellErr)
	}
	return table, nil
}

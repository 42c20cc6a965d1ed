// Package prices turns extracted table rows into a price book keyed by
// normalized champion and skin names.
package prices

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/use-agent/skinprices/extractor"
)

// Special is stored for skins whose cost cell carries no price text
// (event rewards, legacy and other non-purchasable skins).
const Special = "Special"

// Cell positions within a qualifying row.
const (
	cellChampion = 0
	cellSkin     = 1
	cellCost     = 3
	minCells     = 4
)

var (
	reTag      = regexp.MustCompile(`<[^>]*>`)
	reStyle    = regexp.MustCompile(`<style[^>]*>[\s\S]*?</style>`)
	reNonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// Label strips all markup from a cell and trims surrounding whitespace.
// The result may be empty.
func Label(cell string) string {
	return strings.TrimFunc(reTag.ReplaceAllString(cell, ""), isSpace)
}

// Price returns the first whitespace-delimited token of a cost cell after
// removing embedded style blocks and markup, or Special when nothing is left.
// Tags become a space so adjacent fragments do not run together.
func Price(cell string) string {
	text := reStyle.ReplaceAllString(cell, "")
	fields := strings.FieldsFunc(reTag.ReplaceAllString(text, " "), isSpace)
	if len(fields) == 0 {
		return Special
	}
	return fields[0]
}

// isSpace also counts the ASCII file, group, record and unit separators
// (0x1c-0x1f) as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Normalize keeps only ASCII letters and digits, lowercased.
func Normalize(label string) string {
	return strings.ToLower(reNonAlnum.ReplaceAllString(label, ""))
}

// Key derives the book key for a champion and skin label:
// "Ashe", "Queen of Frost" -> "ashe_queenoffrost".
func Key(champion, skin string) string {
	return Normalize(champion) + "_" + Normalize(skin)
}

// Build converts a table into a book. The first row is a header and is never
// read; rows with fewer than four cells are skipped. A later row whose key
// matches an earlier one overwrites its price.
func Build(table *extractor.Table) *Book {
	book := NewBook()
	if table == nil || len(table.Rows) < 2 {
		return book
	}
	for _, row := range table.Rows[1:] {
		if len(row.Cells) < minCells {
			continue
		}
		champion := Label(row.Cells[cellChampion])
		skin := Label(row.Cells[cellSkin])
		book.Set(Key(champion, skin), Price(row.Cells[cellCost]))
	}
	return book
}

// Qualifying counts the rows Build would read: every row after the header
// with at least four cells.
func Qualifying(table *extractor.Table) int {
	if table == nil || len(table.Rows) < 2 {
		return 0
	}
	n := 0
	for _, row := range table.Rows[1:] {
		if len(row.Cells) >= minCells {
			n++
		}
	}
	return n
}

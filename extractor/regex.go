package extractor

import "regexp"

// The patterns match raw markup as flat text; no tree is built. Nested tags
// of the same name, or attributes containing '>', are not handled specially.
var (
	reTableBody = regexp.MustCompile(`<tbody[^>]*>([\s\S]*?)</tbody>`)
	reRow       = regexp.MustCompile(`<tr[^>]*>([\s\S]*?)</tr>`)
	reCell      = regexp.MustCompile(`<td[^>]*>([\s\S]*?)</td>`)
)

// Regex extracts the table with non-greedy pattern matching over raw markup.
type Regex struct{}

func (Regex) Name() string { return "regex" }

func (Regex) Extract(doc string) (*Table, error) {
	body, ok := Locate(doc)
	if !ok {
		return nil, ErrNoTableBody
	}

	rows := reRow.FindAllStringSubmatch(body, -1)
	table := &Table{Rows: make([]Row, 0, len(rows))}
	for _, row := range rows {
		cells := reCell.FindAllStringSubmatch(row[1], -1)
		r := Row{Cells: make([]string, 0, len(cells))}
		for _, cell := range cells {
			r.Cells = append(r.Cells, cell[1])
		}
		table.Rows = append(table.Rows, r)
	}
	return table, nil
}

// Locate returns the inner markup of the first table body region.
func Locate(doc string) (string, bool) {
	m := reTableBody.FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	return m[1], true
}

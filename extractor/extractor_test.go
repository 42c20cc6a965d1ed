package extractor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head><title>List of champion skins</title></head>
<body>
<table class="article-table sortable">
<tbody class="skins">
<tr><th>Champion</th><th>Skin</th><th>Release</th><th>Cost</th></tr>
<tr>
  <td data-sort-value="Ahri"><a href="/en-us/Ahri">Ahri</a></td>
  <td>Foxfire</td>
  <td>2011-12-14</td>
  <td><style>.a{}</style>1350 RP</td>
</tr>
<tr class="odd"><td>Ahri</td><td>Midnight</td><td>2011-12-14</td><td><style>.a{}</style> </td></tr>
<tr><td>only</td><td>three</td><td>cells</td></tr>
</tbody>
</table>
<table><tbody><tr><td>second</td><td>table</td><td>is</td><td>ignored</td></tr></tbody></table>
</body></html>`

func TestRegex_Extract(t *testing.T) {
	table, err := Regex{}.Extract(page)
	require.NoError(t, err)
	require.Len(t, table.Rows, 4)

	assert.Empty(t, table.Rows[0].Cells, "header uses th cells")
	require.Len(t, table.Rows[1].Cells, 4)
	assert.Equal(t, `<a href="/en-us/Ahri">Ahri</a>`, table.Rows[1].Cells[0])
	assert.Equal(t, "Foxfire", table.Rows[1].Cells[1])
	assert.Equal(t, "<style>.a{}</style>1350 RP", table.Rows[1].Cells[3])
	assert.Equal(t, "<style>.a{}</style> ", table.Rows[2].Cells[3])
	assert.Len(t, table.Rows[3].Cells, 3)
}

func TestRegex_FirstBodyOnly(t *testing.T) {
	table, err := Regex{}.Extract(page)
	require.NoError(t, err)
	for _, r := range table.Rows {
		for _, c := range r.Cells {
			assert.NotEqual(t, "second", c)
		}
	}
}

func TestRegex_NoTableBody(t *testing.T) {
	_, err := Regex{}.Extract(`<table><tr><td>a</td></tr></table>`)
	assert.True(t, errors.Is(err, ErrNoTableBody))
}

func TestRegex_FlatMatching(t *testing.T) {
	// A nested tbody closes the outer region early: matching is textual.
	doc := `<tbody><tr><td>x</td></tr><tbody><tr><td>y</td></tr></tbody><tr><td>z</td></tr></tbody>`
	table, err := Regex{}.Extract(doc)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"x"}, table.Rows[0].Cells)
	assert.Equal(t, []string{"y"}, table.Rows[1].Cells)
}

func TestTree_AgreesWithRegex(t *testing.T) {
	want, err := Regex{}.Extract(page)
	require.NoError(t, err)
	got, err := Tree{}.Extract(page)
	require.NoError(t, err)

	require.Len(t, got.Rows, len(want.Rows))
	for i := range want.Rows {
		require.Len(t, got.Rows[i].Cells, len(want.Rows[i].Cells), "row %d", i)
		for j := range want.Rows[i].Cells {
			assert.Equal(t,
				strings.TrimSpace(want.Rows[i].Cells[j]),
				strings.TrimSpace(got.Rows[i].Cells[j]),
				"row %d cell %d", i, j)
		}
	}
}

func TestTree_NoTable(t *testing.T) {
	_, err := Tree{}.Extract(`<html><body><p>nothing here</p></body></html>`)
	assert.True(t, errors.Is(err, ErrNoTableBody))
}

func TestLocate(t *testing.T) {
	body, ok := Locate(page)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(body, "\n<tr><th>Champion</th>"))

	_, ok = Locate("<p>no table</p>")
	assert.False(t, ok)
}

func TestMarkdown(t *testing.T) {
	body, ok := Locate(page)
	require.True(t, ok)

	md, err := Markdown(body, "https://wiki.leagueoflegends.com")
	require.NoError(t, err)
	assert.Contains(t, md, "Foxfire")
	assert.Contains(t, md, "|")
	assert.NotContains(t, md, ".a{}", "style blocks are dropped")
}

func TestNew(t *testing.T) {
	e, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "regex", e.Name())

	e, err = New("tree")
	require.NoError(t, err)
	assert.Equal(t, "tree", e.Name())

	_, err = New("xpath")
	assert.Error(t, err)
}

func TestTableWithoutBody(t *testing.T) {
	doc := `<table>
<tr><th>Champion</th><th>Skin</th><th>Release</th><th>Cost</th></tr>
<tr><td>Ahri</td><td>Foxfire</td><td>2011-12-14</td><td>1350 RP</td></tr>
</table>`

	_, err := Regex{}.Extract(doc)
	assert.True(t, errors.Is(err, ErrNoTableBody), "regex needs a literal tbody")

	table, err := Tree{}.Extract(doc)
	require.NoError(t, err, "the parser inserts a tbody")
	require.Len(t, table.Rows, 2)
	assert.Empty(t, table.Rows[0].Cells)
	assert.Equal(t, []string{"Ahri", "Foxfire", "2011-12-14", "1350 RP"}, table.Rows[1].Cells)
}

package extractor

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// newMarkdownConverter strips script/style noise and keeps table structure
// with minimal cell padding.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// Markdown renders the inner markup of a table body (as returned by Locate)
// as a Markdown table. Relative links are resolved against domain.
func Markdown(tableBody string, domain string) (string, error) {
	conv := newMarkdownConverter()
	return conv.ConvertString("<table><tbody>"+tableBody+"</tbody></table>", converter.WithDomain(domain))
}

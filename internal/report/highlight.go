package report

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightHTML colorizes an element snippet for terminal display. On any
// failure it returns the snippet unchanged.
func HighlightHTML(snippet string, noColor bool) string {
	if noColor || snippet == "" {
		return snippet
	}
	lexer := lexers.Get("html")
	if lexer == nil {
		return snippet
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return snippet
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	it, err := lexer.Tokenise(nil, snippet)
	if err != nil {
		return snippet
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, it); err != nil {
		return snippet
	}
	return b.String()
}

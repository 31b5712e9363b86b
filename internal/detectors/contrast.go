package detectors

import (
	"fmt"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// ColorContrast flags text whose contrast against its resolved background
// falls below the WCAG AA threshold: 4.5:1 for normal text, 3:1 for large
// text. Elements with missing or unparseable style are skipped, never
// reported.
func ColorContrast(doc dom.StyleComputingDocument, pageURL string) []types.Finding {
	var out []types.Finding
	doc.Walk(func(n *dom.Node) {
		if n.OwnText() == "" {
			return
		}
		st, ok := doc.Style(n)
		if !ok || st.Color.Transparent() {
			return
		}
		bg := dom.ResolveBackground(n, doc)
		ratio := dom.ContrastRatio(st.Color, bg)
		required := dom.RequiredContrast(st.FontSizePx, st.FontWeight)
		if ratio >= required {
			return
		}
		f := finding("color-contrast", pageURL, n, types.ImpactSerious,
			fmt.Sprintf("text contrast %.2f:1 is below the required %.1f:1", ratio, required),
			"increase the difference between text and background colors")
		f.Aux = map[string]string{
			"contrastRatio": fmt.Sprintf("%.2f", ratio),
			"required":      fmt.Sprintf("%.1f", required),
			"foreground":    st.Color.String(),
			"background":    bg.String(),
			"fontSizePx":    fmt.Sprintf("%.1f", st.FontSizePx),
		}
		out = append(out, f)
	})
	return out
}

package detectors

import (
	"fmt"
	"strings"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// sensoryPhrases are directional or purely visual references that exclude
// non-sighted users. Phrase matching is approximate; these rules are in the
// heuristic category.
var sensoryPhrases = []string{
	"click the red button",
	"click the green button",
	"the button below",
	"the link below",
	"see below",
	"see above",
	"to the left",
	"to the right",
	"on the left side",
	"on the right side",
	"shown in red",
	"shown in green",
	"highlighted in yellow",
}

// SensoryLanguage flags text that instructs users through visual or spatial
// cues alone.
func SensoryLanguage(doc dom.Document, pageURL string) []types.Finding {
	var out []types.Finding
	doc.Walk(func(n *dom.Node) {
		text := strings.ToLower(n.OwnText())
		if text == "" {
			return
		}
		for _, phrase := range sensoryPhrases {
			if strings.Contains(text, phrase) {
				out = append(out, finding("sensory-language", pageURL, n, types.ImpactModerate,
					fmt.Sprintf("text relies on a sensory cue: %q", phrase),
					"describe the target by name or function, not position or color"))
				break
			}
		}
	})
	return out
}

// readingOrderTextThreshold is the minimum text length before a positioned
// element is considered content rather than decoration.
const readingOrderTextThreshold = 20

// ReadingOrderRisk flags absolutely or fixed positioned elements carrying
// substantial text and child structure; their visual position may not match
// the DOM reading order.
func ReadingOrderRisk(doc dom.StyleComputingDocument, pageURL string) []types.Finding {
	var out []types.Finding
	doc.Walk(func(n *dom.Node) {
		st, ok := doc.Style(n)
		if !ok {
			return
		}
		if st.Position != "absolute" && st.Position != "fixed" {
			return
		}
		if len(n.Text()) <= readingOrderTextThreshold || len(n.Children) == 0 {
			return
		}
		f := finding("reading-order", pageURL, n, types.ImpactModerate,
			fmt.Sprintf("%s positioned element may read out of visual order", st.Position),
			"verify the DOM order matches the visual order for positioned content")
		f.Aux = map[string]string{"position": st.Position}
		out = append(out, f)
	})
	return out
}

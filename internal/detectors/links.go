package detectors

import (
	"fmt"
	"strings"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// genericLinkPhrases carry no information out of context.
var genericLinkPhrases = map[string]bool{
	"click here": true,
	"here":       true,
	"more":       true,
	"read more":  true,
}

// EmptyLink flags anchors with no accessible name: no text, no aria
// labelling, no title and no descendant image with alt text.
func EmptyLink(doc dom.Document, pageURL string) []types.Finding {
	var out []types.Finding
	for _, a := range doc.Elements("a") {
		if a.Text() != "" {
			continue
		}
		if a.AttrValue("aria-label") != "" || a.AttrValue("aria-labelledby") != "" || a.AttrValue("title") != "" {
			continue
		}
		if hasImageWithAlt(a) {
			continue
		}
		out = append(out, finding("link-empty", pageURL, a, types.ImpactSerious,
			"link has no accessible name",
			"add link text, an aria-label, or alt text on the contained image"))
	}
	return out
}

func hasImageWithAlt(a *dom.Node) bool {
	for _, d := range a.Descendants() {
		if d.Tag == "img" && strings.TrimSpace(d.AttrValue("alt")) != "" {
			return true
		}
	}
	return false
}

// GenericLinkText flags links whose entire text is a low-information phrase
// and which carry no aria-label overriding it.
func GenericLinkText(doc dom.Document, pageURL string) []types.Finding {
	var out []types.Finding
	for _, a := range doc.Elements("a") {
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		if !genericLinkPhrases[text] {
			continue
		}
		if a.AttrValue("aria-label") != "" {
			continue
		}
		out = append(out, finding("link-generic-text", pageURL, a, types.ImpactModerate,
			fmt.Sprintf("link text %q does not describe its target", text),
			"rewrite the link text to describe the destination, or add an aria-label"))
	}
	return out
}

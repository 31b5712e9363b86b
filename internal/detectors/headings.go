package detectors

import (
	"fmt"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

func headings(doc dom.Document) []*dom.Node {
	return doc.Elements("h1", "h2", "h3", "h4", "h5", "h6")
}

// HeadingSkip flags headings whose level jumps by more than one from the
// previous heading in document order. The first heading never counts as a
// skip; FirstHeadingNotH1 covers it.
func HeadingSkip(doc dom.Document, pageURL string) []types.Finding {
	var out []types.Finding
	prev := 0
	for _, h := range headings(doc) {
		level := headingLevel(h.Tag)
		if prev != 0 && level > prev+1 {
			out = append(out, finding("heading-skip", pageURL, h, types.ImpactModerate,
				fmt.Sprintf("heading level skips from h%d to h%d", prev, level),
				"use heading levels sequentially so the document outline stays navigable"))
		}
		prev = level
	}
	return out
}

// MissingMainHeading flags documents without any h1.
func MissingMainHeading(doc dom.Document, pageURL string) []types.Finding {
	if len(doc.Elements("h1")) > 0 {
		return nil
	}
	return []types.Finding{documentFinding("page-has-h1", pageURL, types.ImpactModerate,
		"document has no h1 heading",
		"add a single h1 describing the main content of the page")}
}

// FirstHeadingNotH1 flags documents whose first heading is deeper than h1.
func FirstHeadingNotH1(doc dom.Document, pageURL string) []types.Finding {
	hs := headings(doc)
	if len(hs) == 0 {
		return nil
	}
	if headingLevel(hs[0].Tag) == 1 {
		return nil
	}
	return []types.Finding{finding("first-heading-h1", pageURL, hs[0], types.ImpactModerate,
		fmt.Sprintf("first heading is %s, expected h1", hs[0].Tag),
		"start the heading hierarchy at h1")}
}

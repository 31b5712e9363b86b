package detectors

import (
	"time"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// wholeDocument stands in for the element snippet on issues that are not
// bound to a single element (missing title, missing doctype).
const wholeDocument = "whole document"

// finding builds a Finding bound to an element. The ID is a content hash so
// the same logical issue keys identically across static and rendered passes.
func finding(rule, pageURL string, n *dom.Node, impact types.Impact, msg, remediation string) types.Finding {
	snippet := wholeDocument
	locator := ""
	if n != nil {
		snippet = types.TruncateSnippet(n.Snippet())
		locator = n.Locator()
	}
	return types.Finding{
		ID:          types.FindingID(rule, pageURL, locator, msg),
		Rule:        rule,
		SourceURL:   pageURL,
		Message:     msg,
		Remediation: remediation,
		Snippet:     snippet,
		Locator:     locator,
		Impact:      impact.Normalize(),
		DetectedAt:  time.Now(),
	}
}

// documentFinding builds a Finding for issues spanning the whole page.
func documentFinding(rule, pageURL string, impact types.Impact, msg, remediation string) types.Finding {
	return finding(rule, pageURL, nil, impact, msg, remediation)
}

// headingLevel returns 1..6 for h1..h6 tags and 0 otherwise.
func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// interactiveTags are natively keyboard-operable elements.
var interactiveTags = map[string]bool{
	"a": true, "button": true, "input": true, "select": true,
	"textarea": true, "summary": true, "option": true,
}

// interactiveRoles are ARIA roles that make a widget keyboard-expected.
var interactiveRoles = map[string]bool{
	"button": true, "link": true, "checkbox": true, "radio": true,
	"switch": true, "tab": true, "menuitem": true, "menuitemcheckbox": true,
	"menuitemradio": true, "option": true, "combobox": true, "listbox": true,
	"slider": true, "spinbutton": true, "textbox": true, "searchbox": true,
	"gridcell": true, "treeitem": true,
}

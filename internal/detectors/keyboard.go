package detectors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// KeyboardInaccessible flags elements that react to clicks but are neither
// natively interactive nor made focusable: no interactive tag, no interactive
// role, no tabindex. Click handlers come from the rendered pass (element
// onclick properties) or the onclick attribute.
func KeyboardInaccessible(doc dom.StyleComputingDocument, pageURL string) []types.Finding {
	var out []types.Finding
	doc.Walk(func(n *dom.Node) {
		clickable := n.HasAttr("onclick")
		if !clickable {
			if st, ok := doc.Style(n); ok {
				clickable = st.HasOnClick
			}
		}
		if !clickable {
			return
		}
		if interactiveTags[n.Tag] {
			return
		}
		if interactiveRoles[strings.ToLower(n.AttrValue("role"))] {
			return
		}
		if n.HasAttr("tabindex") {
			return
		}
		out = append(out, finding("keyboard-access", pageURL, n, types.ImpactCritical,
			fmt.Sprintf("%s element handles clicks but is not keyboard reachable", n.Tag),
			"use a button or link, or add tabindex=\"0\" plus a key handler"))
	})
	return out
}

// PositiveTabindex flags any tabindex greater than zero, which overrides the
// natural focus order.
func PositiveTabindex(doc dom.Document, pageURL string) []types.Finding {
	var out []types.Finding
	doc.Walk(func(n *dom.Node) {
		raw, ok := n.Attr("tabindex")
		if !ok {
			return
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || v <= 0 {
			return
		}
		out = append(out, finding("tabindex-positive", pageURL, n, types.ImpactModerate,
			fmt.Sprintf("tabindex=%d overrides the natural focus order", v),
			"use tabindex=\"0\" and source order to control focus"))
	})
	return out
}

package detectors

import (
	"fmt"
	"strings"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// validRoles is the WAI-ARIA 1.2 role vocabulary, including abstract roles
// authors should not use but which are at least defined.
var validRoles = map[string]bool{
	"alert": true, "alertdialog": true, "application": true, "article": true,
	"banner": true, "blockquote": true, "button": true, "caption": true,
	"cell": true, "checkbox": true, "code": true, "columnheader": true,
	"combobox": true, "complementary": true, "contentinfo": true,
	"definition": true, "deletion": true, "dialog": true, "directory": true,
	"document": true, "emphasis": true, "feed": true, "figure": true,
	"form": true, "generic": true, "grid": true, "gridcell": true,
	"group": true, "heading": true, "img": true, "insertion": true,
	"link": true, "list": true, "listbox": true, "listitem": true,
	"log": true, "main": true, "marquee": true, "math": true, "menu": true,
	"menubar": true, "menuitem": true, "menuitemcheckbox": true,
	"menuitemradio": true, "meter": true, "navigation": true, "none": true,
	"note": true, "option": true, "paragraph": true, "presentation": true,
	"progressbar": true, "radio": true, "radiogroup": true, "region": true,
	"row": true, "rowgroup": true, "rowheader": true, "scrollbar": true,
	"search": true, "searchbox": true, "separator": true, "slider": true,
	"spinbutton": true, "status": true, "strong": true, "subscript": true,
	"superscript": true, "switch": true, "tab": true, "table": true,
	"tablist": true, "tabpanel": true, "term": true, "textbox": true,
	"time": true, "timer": true, "toolbar": true, "tooltip": true,
	"tree": true, "treegrid": true, "treeitem": true,
}

// InvalidARIARole flags role attribute values outside the ARIA vocabulary.
func InvalidARIARole(doc dom.Document, pageURL string) []types.Finding {
	var out []types.Finding
	doc.Walk(func(n *dom.Node) {
		role, ok := n.Attr("role")
		if !ok {
			return
		}
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" || validRoles[role] {
			return
		}
		out = append(out, finding("aria-role-valid", pageURL, n, types.ImpactModerate,
			fmt.Sprintf("role %q is not a valid ARIA role", role),
			"use a role from the WAI-ARIA specification or remove the attribute"))
	})
	return out
}

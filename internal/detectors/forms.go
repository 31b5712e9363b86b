package detectors

import (
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// input types that carry their own accessible behavior and need no label.
var unlabeledExemptTypes = map[string]bool{
	"hidden": true, "button": true, "submit": true, "reset": true,
}

// UnlabeledFormControl flags input/select/textarea elements reachable by
// users that have no programmatic label: no matching label[for], no wrapping
// label, no aria-label and no aria-labelledby.
func UnlabeledFormControl(doc dom.Document, pageURL string) []types.Finding {
	labelFor := map[string]bool{}
	for _, l := range doc.Elements("label") {
		if id := l.AttrValue("for"); id != "" {
			labelFor[id] = true
		}
	}

	var out []types.Finding
	for _, ctl := range doc.Elements("input", "select", "textarea") {
		if ctl.Tag == "input" && unlabeledExemptTypes[ctl.AttrValue("type")] {
			continue
		}
		if ctl.AttrValue("aria-label") != "" || ctl.AttrValue("aria-labelledby") != "" {
			continue
		}
		if id := ctl.AttrValue("id"); id != "" && labelFor[id] {
			continue
		}
		if ctl.Closest(func(p *dom.Node) bool { return p.Tag == "label" }) != nil {
			continue
		}
		out = append(out, finding("form-label", pageURL, ctl, types.ImpactCritical,
			"form control has no associated label",
			"associate a <label for=...>, wrap the control in a <label>, or add aria-label"))
	}
	return out
}

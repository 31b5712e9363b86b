// Package reconcile merges findings from multiple analysis passes of the
// same URL into one canonical, de-duplicated collection.
package reconcile

import (
	"sort"

	"github.com/a11yscan/a11yscan/internal/types"
)

// Merge combines the static and rendered pass findings keyed by finding ID.
// On a key collision the rendered version wins: it carries richer locator and
// style-derived detail. The static pass still contributes baseline coverage
// for keys the rendered pass did not produce. The merge is deliberately not
// commutative.
func Merge(static, rendered []types.Finding) []types.Finding {
	byID := make(map[string]types.Finding, len(static)+len(rendered))
	var order []string
	for _, f := range static {
		if _, seen := byID[f.ID]; !seen {
			order = append(order, f.ID)
		}
		byID[f.ID] = f
	}
	for _, f := range rendered {
		if _, seen := byID[f.ID]; !seen {
			order = append(order, f.ID)
		}
		byID[f.ID] = f
	}
	out := make([]types.Finding, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Impact.Rank() < out[j].Impact.Rank()
	})
	return out
}

// Result assembles a ScanResult from merged findings, recomputing the
// summary so it always equals the counts of the finding set it wraps.
func Result(url string, static, rendered []types.Finding, reduced bool) types.ScanResult {
	r := types.ScanResult{
		URL:               url,
		Findings:          Merge(static, rendered),
		ReducedConfidence: reduced,
	}
	r.Recount()
	return r
}

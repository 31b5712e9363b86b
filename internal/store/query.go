package store

import (
	"sort"
	"strings"

	"github.com/a11yscan/a11yscan/internal/types"
)

// SortKey selects the ordering of query results.
type SortKey string

const (
	SortBySeverity SortKey = "severity"
	SortByURL      SortKey = "url"
	SortByDate     SortKey = "date"
)

// Params describes one query against the store.
type Params struct {
	Page     int
	PageSize int
	SortBy   SortKey
	// Search matches case-insensitively against URL, message, remediation,
	// snippet, locator and serialized auxiliary data.
	Search string
	// Severities restricts results to the given impacts; empty means all.
	Severities []types.Impact
	// Tags restricts results to findings carrying at least one of the tags;
	// empty means all.
	Tags []types.ComplianceTag
}

// Page is one page of query results. TotalCount and Summary cover the whole
// filtered set, not just the page.
type Page struct {
	Items      []types.Finding       `json:"items"`
	TotalCount int                   `json:"totalCount"`
	Summary    types.SeveritySummary `json:"summary"`
}

// Query filters, sorts and paginates the current finding collection.
// Identical parameters against an unchanged store return identical output.
func (s *Store) Query(p Params) Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 25
	}

	filtered := filter(s.Findings(), p)
	sortFindings(filtered, p.SortBy)

	out := Page{
		TotalCount: len(filtered),
		Summary:    types.Summarize(filtered),
	}
	skip := (p.Page - 1) * p.PageSize
	if skip >= len(filtered) {
		out.Items = []types.Finding{}
		return out
	}
	end := skip + p.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	out.Items = append([]types.Finding(nil), filtered[skip:end]...)
	return out
}

func filter(findings []types.Finding, p Params) []types.Finding {
	search := strings.ToLower(strings.TrimSpace(p.Search))
	sevs := map[types.Impact]bool{}
	for _, s := range p.Severities {
		sevs[s] = true
	}
	out := make([]types.Finding, 0, len(findings))
	for _, f := range findings {
		if len(sevs) > 0 && !sevs[f.Impact] {
			continue
		}
		if len(p.Tags) > 0 && !hasAnyTag(f, p.Tags) {
			continue
		}
		if search != "" && !matchesSearch(f, search) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func hasAnyTag(f types.Finding, tags []types.ComplianceTag) bool {
	for _, t := range tags {
		if f.HasTag(t) {
			return true
		}
	}
	return false
}

func matchesSearch(f types.Finding, search string) bool {
	for _, field := range []string{f.SourceURL, f.Message, f.Remediation, f.Snippet, f.Locator} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	for k, v := range f.Aux {
		if strings.Contains(strings.ToLower(k+"="+v), search) {
			return true
		}
	}
	return false
}

func sortFindings(findings []types.Finding, key SortKey) {
	switch key {
	case SortBySeverity:
		sort.SliceStable(findings, func(i, j int) bool {
			return findings[i].Impact.Rank() < findings[j].Impact.Rank()
		})
	case SortByURL:
		sort.SliceStable(findings, func(i, j int) bool {
			return findings[i].SourceURL < findings[j].SourceURL
		})
	case SortByDate:
		sort.SliceStable(findings, func(i, j int) bool {
			return findings[i].DetectedAt.After(findings[j].DetectedAt)
		})
	default:
		// unrecognized sort keys leave the stored order untouched
	}
}

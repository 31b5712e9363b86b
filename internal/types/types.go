package types

import (
	"fmt"
	"sort"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
)

// Impact is the severity scale for accessibility findings. The legacy data
// carried impact and severity as duplicate fields; this model keeps one.
type Impact string

const (
	ImpactCritical Impact = "critical"
	ImpactSerious  Impact = "serious"
	ImpactModerate Impact = "moderate"
	ImpactMinor    Impact = "minor"
)

// Rank orders impacts for sorting: critical sorts first, unknown levels last.
func (i Impact) Rank() int {
	switch i {
	case ImpactCritical:
		return 0
	case ImpactSerious:
		return 1
	case ImpactModerate:
		return 2
	case ImpactMinor:
		return 3
	default:
		return 4
	}
}

// Valid reports whether the impact is one of the four defined levels.
func (i Impact) Valid() bool {
	return i.Rank() < 4
}

// Normalize maps any unrecognized level to moderate. Detectors call this so
// an unclassifiable issue never leaves the package with an unknown impact.
func (i Impact) Normalize() Impact {
	if !i.Valid() {
		return ImpactModerate
	}
	return i
}

// ComplianceTag identifies a standard or rule set a finding violates.
type ComplianceTag string

const (
	TagWCAGA        ComplianceTag = "wcag2a"
	TagWCAGAA       ComplianceTag = "wcag2aa"
	TagWCAGAAA      ComplianceTag = "wcag2aaa"
	TagSection508   ComplianceTag = "section508"
	TagBestPractice ComplianceTag = "best-practice"
	TagExperimental ComplianceTag = "experimental"
)

// SnippetLimit bounds stored element markup. Longer snippets are truncated
// with an ellipsis marker.
const SnippetLimit = 300

// Finding is one concrete accessibility issue instance on one page.
type Finding struct {
	ID           string            `json:"id"`
	Rule         string            `json:"rule"`
	SourceURL    string            `json:"sourceUrl"`
	Message      string            `json:"message"`
	Remediation  string            `json:"remediation,omitempty"`
	Snippet      string            `json:"elementSnippet"`
	Locator      string            `json:"elementLocator,omitempty"`
	Impact       Impact            `json:"impact"`
	Tags         []ComplianceTag   `json:"complianceTags,omitempty"`
	Aux          map[string]string `json:"auxiliaryData,omitempty"`
	EvidencePath string            `json:"capturedEvidencePath,omitempty"`
	DetectedAt   time.Time         `json:"detectedAt"`
}

// FindingID derives a stable identifier from the rule, page, locator and
// message. Re-running analysis on the same page produces the same ID for the
// same logical issue, so the reconciler's keyed merge is reproducible across
// passes (the legacy rule-name+index scheme was not).
func FindingID(rule, sourceURL, locator, message string) string {
	sum := xxhash.Sum64String(rule + "|" + sourceURL + "|" + locator + "|" + message)
	return fmt.Sprintf("%016x", sum)
}

// HasTag reports whether the finding carries the given compliance tag.
func (f Finding) HasTag(tag ComplianceTag) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TruncateSnippet bounds serialized element markup for storage.
func TruncateSnippet(s string) string {
	if len(s) <= SnippetLimit {
		return s
	}
	return s[:SnippetLimit] + "…"
}

// SeveritySummary aggregates finding counts per impact level. It is always
// derived from a finding set via Summarize, never mutated on its own.
type SeveritySummary struct {
	Critical     int `json:"critical"`
	Serious      int `json:"serious"`
	Moderate     int `json:"moderate"`
	Minor        int `json:"minor"`
	Total        int `json:"total"`
	URLsAnalyzed int `json:"urlsAnalyzed"`
}

// Summarize recomputes a summary from a finding set.
func Summarize(findings []Finding) SeveritySummary {
	var s SeveritySummary
	urls := map[string]bool{}
	for _, f := range findings {
		switch f.Impact {
		case ImpactCritical:
			s.Critical++
		case ImpactSerious:
			s.Serious++
		case ImpactMinor:
			s.Minor++
		default:
			s.Moderate++
		}
		s.Total++
		urls[f.SourceURL] = true
	}
	s.URLsAnalyzed = len(urls)
	return s
}

// ScanResult groups all findings for one analyzed URL.
type ScanResult struct {
	URL               string          `json:"url"`
	Findings          []Finding       `json:"findings"`
	Summary           SeveritySummary `json:"summary"`
	ReducedConfidence bool            `json:"reducedConfidence,omitempty"`
	ScannedAt         time.Time       `json:"scannedAt"`
}

// Recount refreshes the embedded summary from the current finding set.
func (r *ScanResult) Recount() {
	r.Summary = Summarize(r.Findings)
}

// BatchResult is the outcome of one batch submission: per-URL results in
// submission order plus error messages for URLs that could not be analyzed.
type BatchResult struct {
	Results  []ScanResult    `json:"results"`
	Errors   []string        `json:"errors,omitempty"`
	Summary  SeveritySummary `json:"summary"`
	Duration time.Duration   `json:"duration"`
}

// AllFindings flattens the batch into one collection, preserving per-URL
// order within submission order.
func (b BatchResult) AllFindings() []Finding {
	var out []Finding
	for _, r := range b.Results {
		out = append(out, r.Findings...)
	}
	return out
}

// SortStable orders findings by impact rank, then URL, then locator, so
// renderers and exporters see a deterministic order.
func SortStable(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Impact.Rank() != findings[j].Impact.Rank() {
			return findings[i].Impact.Rank() < findings[j].Impact.Rank()
		}
		if findings[i].SourceURL != findings[j].SourceURL {
			return findings[i].SourceURL < findings[j].SourceURL
		}
		return findings[i].Locator < findings[j].Locator
	})
}

// Package detectors holds the accessibility rule checks. Each rule is a pure
// function over a document model; structural rules run against any parse,
// style rules require the rendered adapter's capability interface.
package detectors

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// Category separates exact structural rules from approximate heuristics so
// consumers can treat heuristic findings as lower-confidence.
type Category string

const (
	CategoryStructural Category = "structural"
	CategoryHeuristic  Category = "heuristic"
)

// StructuralFunc checks any parsed document.
type StructuralFunc func(doc dom.Document, pageURL string) []types.Finding

// RenderedFunc checks a document with computed style. The signature keeps
// style-dependent rules off static documents at compile time.
type RenderedFunc func(doc dom.StyleComputingDocument, pageURL string) []types.Finding

// Rule is one registered accessibility check. Exactly one of Structural or
// Rendered is set.
type Rule struct {
	ID         string
	Category   Category
	Tags       []types.ComplianceTag
	Structural StructuralFunc
	Rendered   RenderedFunc

	enabled func(types.ComplianceOptions) bool
}

var all = []Rule{
	// Core rules: always on.
	{ID: "image-alt", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagWCAGA}, Structural: MissingAltText, enabled: always},
	{ID: "image-alt-decorative", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagWCAGA, types.TagBestPractice}, Structural: DecorativeAltMiscoded, enabled: always},
	{ID: "heading-skip", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagBestPractice}, Structural: HeadingSkip, enabled: always},
	{ID: "page-has-h1", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagBestPractice}, Structural: MissingMainHeading, enabled: always},
	{ID: "first-heading-h1", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagBestPractice}, Structural: FirstHeadingNotH1, enabled: always},
	{ID: "form-label", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagWCAGA}, Structural: UnlabeledFormControl, enabled: always},
	{ID: "link-empty", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagWCAGA}, Structural: EmptyLink, enabled: always},
	{ID: "link-generic-text", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagBestPractice}, Structural: GenericLinkText, enabled: always},
	{ID: "duplicate-id", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagWCAGA}, Structural: DuplicateIDs, enabled: always},
	{ID: "html-lang", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagWCAGA}, Structural: MissingLang, enabled: always},
	{ID: "document-title", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagWCAGA}, Structural: MissingTitle, enabled: always},

	// Best-practice extras.
	{ID: "doctype", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagBestPractice}, Structural: MissingDoctype,
		enabled: func(o types.ComplianceOptions) bool { return o.BestPractices }},

	// AA and above.
	{ID: "aria-role-valid", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagWCAGAA}, Structural: InvalidARIARole,
		enabled: func(o types.ComplianceOptions) bool { return o.WCAGLevel.AtLeast(types.WCAGLevelAA) }},
	{ID: "color-contrast", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagWCAGAA}, Rendered: ColorContrast,
		enabled: func(o types.ComplianceOptions) bool { return o.WCAGLevel.AtLeast(types.WCAGLevelAA) }},

	// AAA heuristics.
	{ID: "sensory-language", Category: CategoryHeuristic, Tags: []types.ComplianceTag{types.TagWCAGAAA}, Structural: SensoryLanguage,
		enabled: func(o types.ComplianceOptions) bool { return o.WCAGLevel.AtLeast(types.WCAGLevelAAA) }},

	// Section 508 keyboard rules.
	{ID: "keyboard-access", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagSection508}, Rendered: KeyboardInaccessible,
		enabled: func(o types.ComplianceOptions) bool { return o.Section508 }},
	{ID: "tabindex-positive", Category: CategoryStructural, Tags: []types.ComplianceTag{types.TagSection508, types.TagBestPractice}, Structural: PositiveTabindex,
		enabled: func(o types.ComplianceOptions) bool { return o.Section508 }},

	// Experimental layout heuristics.
	{ID: "reading-order", Category: CategoryHeuristic, Tags: []types.ComplianceTag{types.TagExperimental}, Rendered: ReadingOrderRisk,
		enabled: func(o types.ComplianceOptions) bool { return o.Experimental }},
}

func always(types.ComplianceOptions) bool { return true }

// IDs returns every registered rule ID.
func IDs() []string {
	out := make([]string, 0, len(all))
	for _, r := range all {
		out = append(out, r.ID)
	}
	return out
}

// Select returns the rules enabled by the compliance profile.
func Select(opts types.ComplianceOptions) []Rule {
	var out []Rule
	for _, r := range all {
		if r.enabled(opts) {
			out = append(out, r)
		}
	}
	return out
}

// Run executes the selected rules against one document and collects their
// findings. Each finding gets a normalized impact and its rule's compliance
// tags. Rendered rules only run when the document carries the style-computing
// capability. A panicking rule is isolated: it is logged and contributes
// nothing, the remaining rules still run.
func Run(rules []Rule, doc dom.Document, pageURL string, log *zap.SugaredLogger) []types.Finding {
	styled, hasStyle := doc.(dom.StyleComputingDocument)
	var out []types.Finding
	for _, r := range rules {
		fs, err := runOne(r, doc, styled, hasStyle, pageURL)
		if err != nil {
			if log != nil {
				log.Warnw("detector failed", "rule", r.ID, "url", pageURL, "error", err)
			}
			continue
		}
		for i := range fs {
			fs[i].Impact = fs[i].Impact.Normalize()
			fs[i].Tags = r.Tags
		}
		out = append(out, fs...)
	}
	return out
}

func runOne(r Rule, doc dom.Document, styled dom.StyleComputingDocument, hasStyle bool, pageURL string) (fs []types.Finding, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			fs = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	switch {
	case r.Structural != nil:
		return r.Structural(doc, pageURL), nil
	case r.Rendered != nil && hasStyle:
		return r.Rendered(styled, pageURL), nil
	default:
		return nil, nil
	}
}

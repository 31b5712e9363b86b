package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/logging"
	"github.com/a11yscan/a11yscan/internal/types"
)

const testURL = "https://example.com/page"

func parse(t *testing.T, markup string) *dom.StaticDocument {
	t.Helper()
	doc, err := dom.ParseStatic(markup)
	require.NoError(t, err)
	return doc
}

func ruleIDs(fs []types.Finding) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Rule)
	}
	return out
}

func TestSelectProfiles(t *testing.T) {
	has := func(rules []Rule, id string) bool {
		for _, r := range rules {
			if r.ID == id {
				return true
			}
		}
		return false
	}

	levelA := Select(types.ComplianceOptions{WCAGLevel: types.WCAGLevelA})
	assert.True(t, has(levelA, "image-alt"))
	assert.True(t, has(levelA, "form-label"))
	assert.False(t, has(levelA, "color-contrast"))
	assert.False(t, has(levelA, "aria-role-valid"))
	assert.False(t, has(levelA, "sensory-language"))
	assert.False(t, has(levelA, "keyboard-access"))
	assert.False(t, has(levelA, "doctype"))

	levelAA := Select(types.ComplianceOptions{WCAGLevel: types.WCAGLevelAA})
	assert.True(t, has(levelAA, "color-contrast"))
	assert.True(t, has(levelAA, "aria-role-valid"))
	assert.False(t, has(levelAA, "sensory-language"))

	levelAAA := Select(types.ComplianceOptions{WCAGLevel: types.WCAGLevelAAA})
	assert.True(t, has(levelAAA, "sensory-language"))
	assert.True(t, has(levelAAA, "color-contrast"))

	s508 := Select(types.ComplianceOptions{WCAGLevel: types.WCAGLevelA, Section508: true})
	assert.True(t, has(s508, "keyboard-access"))
	assert.True(t, has(s508, "tabindex-positive"))

	bp := Select(types.ComplianceOptions{WCAGLevel: types.WCAGLevelA, BestPractices: true})
	assert.True(t, has(bp, "doctype"))

	exp := Select(types.ComplianceOptions{WCAGLevel: types.WCAGLevelA, Experimental: true})
	assert.True(t, has(exp, "reading-order"))
}

func TestRunSkipsRenderedRulesOnStaticDocuments(t *testing.T) {
	doc := parse(t, `<html lang="en"><head><title>t</title></head><body><h1>h</h1><p>text</p></body></html>`)
	rules := Select(types.ComplianceOptions{WCAGLevel: types.WCAGLevelAA})

	findings := Run(rules, doc, testURL, logging.Nop())
	for _, f := range findings {
		assert.NotEqual(t, "color-contrast", f.Rule, "style rules must not run without computed style")
	}
}

func TestRunIsolatesPanickingRule(t *testing.T) {
	rules := []Rule{
		{ID: "boom", Category: CategoryStructural, Structural: func(dom.Document, string) []types.Finding {
			panic("detector bug")
		}},
		{ID: "image-alt", Category: CategoryStructural, Structural: MissingAltText},
	}
	doc := parse(t, `<html><body><img src="a.png"></body></html>`)

	findings := Run(rules, doc, testURL, logging.Nop())
	require.Len(t, findings, 1, "the healthy rule must still run")
	assert.Equal(t, "image-alt", findings[0].Rule)
}

func TestRunAttachesComplianceTags(t *testing.T) {
	// no lang, no title, no doctype, bare image: several rules fire
	doc := parse(t, `<html><body><img src="a.png"></body></html>`)
	findings := Run(Select(types.DefaultOptions()), doc, testURL, logging.Nop())
	require.NotEmpty(t, findings)

	tagsByRule := map[string][]types.ComplianceTag{}
	for _, f := range findings {
		assert.NotEmpty(t, f.Tags, "rule %s emitted a finding without compliance tags", f.Rule)
		tagsByRule[f.Rule] = f.Tags
	}
	assert.Equal(t, []types.ComplianceTag{types.TagWCAGA}, tagsByRule["image-alt"])
	assert.Equal(t, []types.ComplianceTag{types.TagBestPractice}, tagsByRule["doctype"])
}

func TestRunNormalizesUnknownImpacts(t *testing.T) {
	rules := []Rule{
		{ID: "weird", Category: CategoryStructural, Structural: func(d dom.Document, u string) []types.Finding {
			return []types.Finding{{Rule: "weird", Impact: types.Impact("catastrophic")}}
		}},
	}
	doc := parse(t, `<html><body></body></html>`)
	findings := Run(rules, doc, testURL, logging.Nop())
	require.Len(t, findings, 1)
	assert.Equal(t, types.ImpactModerate, findings[0].Impact)
}

func TestHeuristicRulesAreCategorized(t *testing.T) {
	byID := map[string]Category{}
	for _, r := range all {
		byID[r.ID] = r.Category
	}
	assert.Equal(t, CategoryHeuristic, byID["sensory-language"])
	assert.Equal(t, CategoryHeuristic, byID["reading-order"])
	assert.Equal(t, CategoryStructural, byID["image-alt"])
	assert.Equal(t, CategoryStructural, byID["color-contrast"])
}

func TestIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, id := range IDs() {
		assert.False(t, seen[id], "duplicate rule id %s", id)
		seen[id] = true
	}
}

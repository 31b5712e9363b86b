package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yscan/a11yscan/internal/types"
)

func TestMissingAltText(t *testing.T) {
	doc := parse(t, `<html><body><img src="a.png"></body></html>`)
	findings := MissingAltText(doc, testURL)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "image-alt", f.Rule)
	assert.Equal(t, types.ImpactSerious, f.Impact)
	assert.Contains(t, f.Snippet, `src="a.png"`)
	assert.NotEmpty(t, f.Locator)
	assert.NotEmpty(t, f.ID)

	ok := parse(t, `<html><body><img src="a.png" alt="a chart"></body></html>`)
	assert.Empty(t, MissingAltText(ok, testURL))
}

func TestDecorativeAltMiscoded(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		want   int
	}{
		{"empty alt no role", `<img src="a.png" alt="">`, 1},
		{"empty alt role presentation", `<img src="a.png" alt="" role="presentation">`, 0},
		{"empty alt role none", `<img src="a.png" alt="" role="none">`, 0},
		{"real alt", `<img src="a.png" alt="chart">`, 0},
		{"no alt at all", `<img src="a.png">`, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := parse(t, "<html><body>"+c.markup+"</body></html>")
			fs := DecorativeAltMiscoded(doc, testURL)
			assert.Len(t, fs, c.want)
			if c.want > 0 {
				assert.Equal(t, types.ImpactModerate, fs[0].Impact)
			}
		})
	}
}

func TestHeadingSkip(t *testing.T) {
	doc := parse(t, `<html><body><h1>a</h1><h3>b</h3></body></html>`)
	findings := HeadingSkip(doc, testURL)

	require.Len(t, findings, 1)
	assert.Equal(t, types.ImpactModerate, findings[0].Impact)
	assert.Contains(t, findings[0].Message, "h1 to h3")

	// first heading alone is never a skip, even when deep
	first := parse(t, `<html><body><h4>only</h4></body></html>`)
	assert.Empty(t, HeadingSkip(first, testURL))

	// descending and single steps are fine
	ok := parse(t, `<html><body><h1>a</h1><h2>b</h2><h1>c</h1><h2>d</h2></body></html>`)
	assert.Empty(t, HeadingSkip(ok, testURL))
}

func TestMissingMainHeading(t *testing.T) {
	doc := parse(t, `<html><body><h2>a</h2></body></html>`)
	findings := MissingMainHeading(doc, testURL)
	require.Len(t, findings, 1)
	assert.Equal(t, "whole document", findings[0].Snippet)

	ok := parse(t, `<html><body><h1>a</h1></body></html>`)
	assert.Empty(t, MissingMainHeading(ok, testURL))
}

func TestFirstHeadingNotH1(t *testing.T) {
	doc := parse(t, `<html><body><h2>a</h2><h1>b</h1></body></html>`)
	findings := FirstHeadingNotH1(doc, testURL)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "h2")

	assert.Empty(t, FirstHeadingNotH1(parse(t, `<html><body><h1>a</h1></body></html>`), testURL))
	assert.Empty(t, FirstHeadingNotH1(parse(t, `<html><body><p>no headings</p></body></html>`), testURL))
}

func TestUnlabeledFormControl(t *testing.T) {
	doc := parse(t, `<html><body><input id="x"></body></html>`)
	findings := UnlabeledFormControl(doc, testURL)

	require.Len(t, findings, 1)
	assert.Equal(t, "form-label", findings[0].Rule)
	assert.Equal(t, types.ImpactCritical, findings[0].Impact)

	labeled := []string{
		`<label for="x">Name</label><input id="x">`,
		`<label>Name <input></label>`,
		`<input aria-label="Name">`,
		`<input aria-labelledby="lbl"><span id="lbl">Name</span>`,
		`<input type="hidden">`,
		`<input type="submit">`,
		`<input type="button">`,
		`<input type="reset">`,
	}
	for _, m := range labeled {
		d := parse(t, "<html><body>"+m+"</body></html>")
		assert.Empty(t, UnlabeledFormControl(d, testURL), "markup: %s", m)
	}

	// select and textarea need labels too
	d := parse(t, `<html><body><select><option>a</option></select><textarea></textarea></body></html>`)
	assert.Len(t, UnlabeledFormControl(d, testURL), 2)

	// type=image is a real control: it submits the form and needs a label
	img := parse(t, `<html><body><input type="image" src="go.png"></body></html>`)
	assert.Len(t, UnlabeledFormControl(img, testURL), 1)
}

func TestEmptyLink(t *testing.T) {
	doc := parse(t, `<html><body><a href="/x"></a></body></html>`)
	findings := EmptyLink(doc, testURL)
	require.Len(t, findings, 1)
	assert.Equal(t, types.ImpactSerious, findings[0].Impact)

	named := []string{
		`<a href="/x">read the docs</a>`,
		`<a href="/x" aria-label="docs"></a>`,
		`<a href="/x" title="docs"></a>`,
		`<a href="/x"><img src="i.png" alt="docs icon"></a>`,
	}
	for _, m := range named {
		d := parse(t, "<html><body>"+m+"</body></html>")
		assert.Empty(t, EmptyLink(d, testURL), "markup: %s", m)
	}

	// an image without alt does not name the link
	d := parse(t, `<html><body><a href="/x"><img src="i.png"></a></body></html>`)
	assert.Len(t, EmptyLink(d, testURL), 1)
}

func TestGenericLinkText(t *testing.T) {
	for _, phrase := range []string{"click here", "Click Here", "HERE", "more", "Read More"} {
		d := parse(t, `<html><body><a href="/x">`+phrase+`</a></body></html>`)
		fs := GenericLinkText(d, testURL)
		require.Len(t, fs, 1, "phrase %q", phrase)
		assert.Equal(t, types.ImpactModerate, fs[0].Impact)
	}

	ok := []string{
		`<a href="/x">read the changelog</a>`,
		`<a href="/x" aria-label="release notes">more</a>`,
		`<a href="/x">more details about pricing</a>`,
	}
	for _, m := range ok {
		d := parse(t, "<html><body>"+m+"</body></html>")
		assert.Empty(t, GenericLinkText(d, testURL), "markup: %s", m)
	}
}

func TestInvalidARIARole(t *testing.T) {
	doc := parse(t, `<html><body><div role="banner">a</div><div role="bananas">b</div></body></html>`)
	findings := InvalidARIARole(doc, testURL)

	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "bananas")
	assert.Equal(t, types.ImpactModerate, findings[0].Impact)

	// roles are case-insensitive, empty role is ignored
	ok := parse(t, `<html><body><div role="BUTTON">a</div><div role="">b</div></body></html>`)
	assert.Empty(t, InvalidARIARole(ok, testURL))
}

func TestDuplicateIDsOneFindingPerValue(t *testing.T) {
	doc := parse(t, `<html><body><div id="dup">a</div><span id="dup">b</span><p id="unique">c</p></body></html>`)
	findings := DuplicateIDs(doc, testURL)

	require.Len(t, findings, 1, "one finding per duplicated id value")
	f := findings[0]
	assert.Equal(t, types.ImpactSerious, f.Impact)
	assert.Contains(t, f.Message, `"dup"`)
	assert.Contains(t, f.Message, "2 elements")
	assert.Equal(t, "2", f.Aux["occurrences"])
	assert.NotEmpty(t, f.Aux["locator.1"])
	assert.NotEmpty(t, f.Aux["locator.2"])
}

func TestMissingLangTitleDoctype(t *testing.T) {
	doc := parse(t, `<html><body><p>x</p></body></html>`)

	lang := MissingLang(doc, testURL)
	require.Len(t, lang, 1)
	assert.Equal(t, types.ImpactSerious, lang[0].Impact)

	title := MissingTitle(doc, testURL)
	require.Len(t, title, 1)
	assert.Equal(t, types.ImpactSerious, title[0].Impact)
	assert.Equal(t, "whole document", title[0].Snippet)

	doctype := MissingDoctype(doc, testURL)
	require.Len(t, doctype, 1)
	assert.Equal(t, types.ImpactMinor, doctype[0].Impact)

	ok := parse(t, `<!DOCTYPE html><html lang="en"><head><title>t</title></head><body></body></html>`)
	assert.Empty(t, MissingLang(ok, testURL))
	assert.Empty(t, MissingTitle(ok, testURL))
	assert.Empty(t, MissingDoctype(ok, testURL))
}

func TestPositiveTabindex(t *testing.T) {
	doc := parse(t, `<html><body><div tabindex="3">a</div><div tabindex="0">b</div><div tabindex="-1">c</div></body></html>`)
	findings := PositiveTabindex(doc, testURL)

	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "tabindex=3")
}

func TestSensoryLanguage(t *testing.T) {
	doc := parse(t, `<html><body><p>To continue, click the red button in the corner.</p></body></html>`)
	findings := SensoryLanguage(doc, testURL)

	require.Len(t, findings, 1)
	assert.Equal(t, "sensory-language", findings[0].Rule)
	assert.Equal(t, types.ImpactModerate, findings[0].Impact)

	ok := parse(t, `<html><body><p>To continue, choose Submit.</p></body></html>`)
	assert.Empty(t, SensoryLanguage(ok, testURL))
}

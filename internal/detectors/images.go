package detectors

import (
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// MissingAltText flags img elements with no alt attribute at all.
func MissingAltText(doc dom.Document, pageURL string) []types.Finding {
	var out []types.Finding
	for _, img := range doc.Elements("img") {
		if img.HasAttr("alt") {
			continue
		}
		out = append(out, finding("image-alt", pageURL, img, types.ImpactSerious,
			"image has no alt attribute",
			"add an alt attribute describing the image, or alt=\"\" with role=\"presentation\" if it is decorative"))
	}
	return out
}

// DecorativeAltMiscoded flags img elements with an empty alt that are not
// marked presentational, so assistive tech cannot tell intent.
func DecorativeAltMiscoded(doc dom.Document, pageURL string) []types.Finding {
	var out []types.Finding
	for _, img := range doc.Elements("img") {
		alt, ok := img.Attr("alt")
		if !ok || alt != "" {
			continue
		}
		if role := img.AttrValue("role"); role == "presentation" || role == "none" {
			continue
		}
		out = append(out, finding("image-alt-decorative", pageURL, img, types.ImpactModerate,
			"image has empty alt but is not marked decorative",
			"add role=\"presentation\" if the image is decorative, or provide descriptive alt text"))
	}
	return out
}

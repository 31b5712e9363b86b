package dom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an sRGB color with alpha. Alpha 0 means fully transparent.
type Color struct {
	R, G, B uint8
	A       float64
}

var (
	White = Color{255, 255, 255, 1}
	Black = Color{0, 0, 0, 1}
)

// Transparent reports whether the color contributes nothing visually.
func (c Color) Transparent() bool { return c.A == 0 }

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// named covers the CSS keywords browsers actually return for the properties
// we read; computed style normally comes back as rgb()/rgba(), so this list
// only needs the handful of keywords that leak through.
var named = map[string]Color{
	"white":       White,
	"black":       Black,
	"red":         {255, 0, 0, 1},
	"green":       {0, 128, 0, 1},
	"blue":        {0, 0, 255, 1},
	"yellow":      {255, 255, 0, 1},
	"gray":        {128, 128, 128, 1},
	"grey":        {128, 128, 128, 1},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses hex, rgb()/rgba() and a small named subset. It returns
// false for anything it cannot interpret; callers skip the element rather
// than guessing.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, false
	}
	if c, ok := named[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunc(s)
	}
	return Color{}, false
}

func parseHex(h string) (Color, bool) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return Color{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(v >> 16), uint8(v >> 8 & 0xff), uint8(v & 0xff), 1}, true
}

func parseRGBFunc(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	close := strings.IndexByte(s, ')')
	if open < 0 || close < open {
		return Color{}, false
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) < 3 {
		return Color{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, false
		}
		ch[i] = uint8(v)
	}
	alpha := 1.0
	if len(parts) >= 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, false
		}
		alpha = a
	}
	return Color{ch[0], ch[1], ch[2], alpha}, true
}

// Luminance returns WCAG relative luminance: each channel gamma-corrected
// (c <= 0.03928 ? c/12.92 : ((c+0.055)/1.055)^2.4), then weighted
// 0.2126/0.7152/0.0722.
func (c Color) Luminance() float64 {
	lin := func(v uint8) float64 {
		ch := float64(v) / 255
		if ch <= 0.03928 {
			return ch / 12.92
		}
		return math.Pow((ch+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio returns (L_lighter + 0.05) / (L_darker + 0.05).
func ContrastRatio(a, b Color) float64 {
	la, lb := a.Luminance(), b.Luminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// IsLargeText implements the WCAG large-text cutoff: at least 18px, or at
// least 14px when bold (weight >= 700).
func IsLargeText(sizePx float64, weight int) bool {
	if sizePx >= 18 {
		return true
	}
	return sizePx >= 14 && weight >= 700
}

// RequiredContrast returns the minimum ratio for the given text metrics:
// 3:1 for large text, 4.5:1 otherwise.
func RequiredContrast(sizePx float64, weight int) float64 {
	if IsLargeText(sizePx, weight) {
		return 3.0
	}
	return 4.5
}

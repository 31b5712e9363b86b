// Package render drives a headless browser to produce documents with
// computed style for the rendered analysis pass.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// ErrUnavailable marks a missing or unlaunchable browser engine. Callers
// degrade to static-only analysis when they see it.
var ErrUnavailable = errors.New("browser engine unavailable")

const defaultTimeout = 30 * time.Second

// Options controls one rendered pass.
type Options struct {
	// Timeout bounds navigation plus script evaluation. Zero uses the
	// default.
	Timeout time.Duration
	// CaptureDir, when set, enables a full-page screenshot written under it.
	CaptureDir string
}

// Result is the outcome of rendering one page.
type Result struct {
	Doc *dom.RenderedDocument
	// EvidencePath is the captured screenshot, "" when capture was off or
	// failed. Capture failure never fails the pass.
	EvidencePath string
}

type extractedStyle struct {
	Color      string `json:"color"`
	Background string `json:"background"`
	FontSize   string `json:"fontSize"`
	FontWeight string `json:"fontWeight"`
	Position   string `json:"position"`
	OnClick    bool   `json:"onclick"`
}

type extractPayload struct {
	HTML    string           `json:"html"`
	Doctype bool             `json:"doctype"`
	Styles  []extractedStyle `json:"styles"`
}

// Page navigates to the URL in a fresh browser context, extracts the
// rendered DOM and computed styles, and releases the context before
// returning on every path.
func Page(ctx context.Context, pageURL string, opts Options) (*Result, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
	)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var payload extractPayload
	var shot []byte
	actions := []chromedp.Action{
		chromedp.Navigate(pageURL),
		chromedp.Evaluate(extractScript, &payload),
	}
	if opts.CaptureDir != "" {
		actions = append(actions, captureAction(&shot))
	}
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		if isLaunchFailure(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("render %s: %w", pageURL, err)
	}

	static, err := dom.ParseStatic(payload.HTML)
	if err != nil {
		return nil, fmt.Errorf("render %s: parse rendered markup: %w", pageURL, err)
	}
	static.MarkDoctype(payload.Doctype)

	styles := make([]dom.Style, len(payload.Styles))
	for i, s := range payload.Styles {
		styles[i] = toStyle(s)
	}
	res := &Result{Doc: dom.NewRendered(static, styles)}
	if len(shot) > 0 {
		if p, err := writeEvidence(opts.CaptureDir, pageURL, shot); err == nil {
			res.EvidencePath = p
		}
	}
	return res, nil
}

// captureAction takes a full-page screenshot but never fails the run.
func captureAction(buf *[]byte) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		_ = chromedp.FullScreenshot(buf, 80).Do(ctx)
		return nil
	})
}

func writeEvidence(dir, pageURL string, shot []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := "page-" + types.FindingID("evidence", pageURL, "", "") + ".png"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, shot, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func isLaunchFailure(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "exec:") ||
		strings.Contains(msg, "chrome failed to start")
}

// toStyle converts browser-reported values into the detector style model.
// Unparseable colors become transparent, which the detectors treat as skip.
func toStyle(s extractedStyle) dom.Style {
	st := dom.Style{
		Position:   s.Position,
		HasOnClick: s.OnClick,
	}
	if c, ok := dom.ParseColor(s.Color); ok {
		st.Color = c
	}
	if c, ok := dom.ParseColor(s.Background); ok {
		st.Background = c
	}
	st.FontSizePx = parsePx(s.FontSize)
	st.FontWeight = parseWeight(s.FontWeight)
	return st
}

func parsePx(v string) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseWeight(v string) int {
	switch strings.TrimSpace(v) {
	case "bold", "bolder":
		return 700
	case "normal", "":
		return 400
	case "lighter":
		return 300
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return n
	}
	return 400
}

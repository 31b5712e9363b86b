// Package engine orchestrates batch analysis: URL validation, the static and
// rendered passes per URL, detector selection, and reconciliation into a
// batch result.
package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"runtime"
	"strings"
	"sync"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/a11yscan/a11yscan/internal/detectors"
	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/fetch"
	"github.com/a11yscan/a11yscan/internal/logging"
	"github.com/a11yscan/a11yscan/internal/reconcile"
	"github.com/a11yscan/a11yscan/internal/render"
	"github.com/a11yscan/a11yscan/internal/types"
)

// ErrEmptyBatch is returned when no valid URL survives validation; nothing
// was analyzed.
var ErrEmptyBatch = errors.New("no valid urls in batch")

// Fetcher retrieves page markup for the static pass.
type Fetcher interface {
	Get(pageURL string) (string, error)
}

// RenderFunc produces the rendered pass for one URL. Swappable in tests.
type RenderFunc func(ctx context.Context, pageURL string, opts render.Options) (*render.Result, error)

// Config controls batch behavior including profile, parallelism and scope.
type Config struct {
	Options types.ComplianceOptions
	// Threads bounds per-URL parallelism; 0 means GOMAXPROCS.
	Threads int
	// Timeout bounds fetch and render per URL.
	Timeout time.Duration
	// IncludeGlobs/ExcludeGlobs are comma-separated doublestar patterns
	// matched against host+path; include acts as a positive filter when set,
	// excludes are subtracted last.
	IncludeGlobs string
	ExcludeGlobs string
	// CaptureDir receives evidence screenshots when the profile asks for
	// them.
	CaptureDir string
	// SkipRendered forces static-only analysis, e.g. when no browser is
	// installed.
	SkipRendered bool

	Log *zap.SugaredLogger

	// Test seams; nil selects the real implementations.
	Fetcher  Fetcher
	Renderer RenderFunc
}

// Run analyzes the batch. URLs run in parallel but results keep submission
// order. Partial success beats total failure: per-URL problems become error
// entries, and Run only errors when nothing could be attempted.
func Run(ctx context.Context, urls []string, cfg Config) (types.BatchResult, error) {
	if cfg.Log == nil {
		cfg.Log = logging.Nop()
	}
	if cfg.Fetcher == nil {
		cfg.Fetcher = fetch.New(cfg.Timeout)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.Page
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}

	var batch types.BatchResult
	valid := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if err := fetch.ValidateURL(raw); err != nil {
			batch.Errors = append(batch.Errors, err.Error())
			continue
		}
		if !allowedByGlobs(raw, cfg) {
			batch.Errors = append(batch.Errors, fmt.Sprintf("skipped %s: excluded by url patterns", raw))
			continue
		}
		valid = append(valid, raw)
	}
	if len(valid) == 0 {
		return batch, ErrEmptyBatch
	}

	rules := detectors.Select(cfg.Options)
	started := time.Now()

	results := make([]types.ScanResult, len(valid))
	errCh := make(chan string, len(valid))
	sem := make(chan struct{}, cfg.Threads)
	var wg sync.WaitGroup
	for i, pageURL := range valid {
		wg.Add(1)
		sem <- struct{}{}
		go func(slot int, pageURL string) {
			defer wg.Done()
			defer func() { <-sem }()
			res, errMsg := analyzeOne(ctx, pageURL, rules, cfg)
			results[slot] = res
			if errMsg != "" {
				errCh <- errMsg
			}
		}(i, pageURL)
	}
	wg.Wait()
	close(errCh)
	for msg := range errCh {
		batch.Errors = append(batch.Errors, msg)
	}

	batch.Results = results
	batch.Summary = types.Summarize(batch.AllFindings())
	batch.Duration = time.Since(started)
	return batch, nil
}

// analyzeOne runs both passes for one URL. A fetch failure yields an empty
// ScanResult plus an error message; a rendered-pass failure degrades to
// static-only results flagged as reduced confidence.
func analyzeOne(ctx context.Context, pageURL string, rules []detectors.Rule, cfg Config) (types.ScanResult, string) {
	empty := types.ScanResult{URL: pageURL, ScannedAt: time.Now()}

	markup, err := cfg.Fetcher.Get(pageURL)
	if err != nil {
		cfg.Log.Warnw("fetch failed", "url", pageURL, "error", err)
		return empty, err.Error()
	}
	staticDoc, err := dom.ParseStatic(markup)
	if err != nil {
		cfg.Log.Warnw("parse failed", "url", pageURL, "error", err)
		return empty, fmt.Sprintf("parse %s: %v", pageURL, err)
	}
	staticFindings := detectors.Run(rules, staticDoc, pageURL, cfg.Log)

	var renderedFindings []types.Finding
	reduced := false
	if cfg.SkipRendered {
		reduced = true
	} else {
		ropts := render.Options{Timeout: cfg.Timeout}
		if cfg.Options.CaptureScreenshots {
			ropts.CaptureDir = cfg.CaptureDir
		}
		rres, rerr := cfg.Renderer(ctx, pageURL, ropts)
		switch {
		case rerr == nil:
			renderedFindings = detectors.Run(rules, rres.Doc, pageURL, cfg.Log)
			if rres.EvidencePath != "" {
				for i := range renderedFindings {
					renderedFindings[i].EvidencePath = rres.EvidencePath
				}
			}
		case errors.Is(rerr, render.ErrUnavailable):
			cfg.Log.Warnw("rendered pass unavailable, static results only", "url", pageURL, "error", rerr)
			reduced = true
		default:
			cfg.Log.Warnw("rendered pass failed, static results only", "url", pageURL, "error", rerr)
			reduced = true
		}
	}

	res := reconcile.Result(pageURL, staticFindings, renderedFindings, reduced)
	res.ScannedAt = time.Now()
	return res, ""
}

func allowedByGlobs(pageURL string, cfg Config) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	target := u.Host + u.Path
	includes := parseGlobs(cfg.IncludeGlobs)
	excludes := parseGlobs(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAny(target, includes) {
		return false
	}
	if len(excludes) > 0 && matchAny(target, excludes) {
		return false
	}
	return true
}

func parseGlobs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchAny(target string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, target); ok {
			return true
		}
	}
	return false
}

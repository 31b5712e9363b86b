package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/render"
	"github.com/a11yscan/a11yscan/internal/store"
	"github.com/a11yscan/a11yscan/internal/types"
)

const (
	goodPage = `<!DOCTYPE html><html lang="en"><head><title>ok</title></head><body><h1>hi</h1><img src="a.png"></body></html>`
	// missing lang, title and h1 on top of the bare image
	badPage = `<html><body><img src="b.png"></body></html>`
)

// stubFetcher serves canned markup per URL and fails everything else.
type stubFetcher struct {
	pages map[string]string
}

func (s *stubFetcher) Get(pageURL string) (string, error) {
	if body, ok := s.pages[pageURL]; ok {
		return body, nil
	}
	return "", fmt.Errorf("fetch %s: status 503", pageURL)
}

func staticOnly() Config {
	return Config{
		Options:      types.DefaultOptions(),
		SkipRendered: true,
		Fetcher: &stubFetcher{pages: map[string]string{
			"https://one.example/":   goodPage,
			"https://three.example/": badPage,
		}},
	}
}

func TestRunPartialFailure(t *testing.T) {
	urls := []string{"https://one.example/", "https://two.example/", "https://three.example/"}
	batch, err := Run(context.Background(), urls, staticOnly())
	require.NoError(t, err, "one failed url must not fail the batch")

	require.Len(t, batch.Results, 3, "submission order keeps a slot per valid url")
	assert.Equal(t, "https://one.example/", batch.Results[0].URL)
	assert.Equal(t, "https://two.example/", batch.Results[1].URL)
	assert.Equal(t, "https://three.example/", batch.Results[2].URL)

	assert.Empty(t, batch.Results[1].Findings, "failed url contributes no findings")
	require.Len(t, batch.Errors, 1)
	assert.Contains(t, batch.Errors[0], "two.example")

	assert.NotEmpty(t, batch.Results[0].Findings)
	assert.NotEmpty(t, batch.Results[2].Findings)
	assert.Equal(t, batch.Summary, types.Summarize(batch.AllFindings()))
}

func TestRunRejectsInvalidURLs(t *testing.T) {
	urls := []string{"ftp://files.example/x", "not a url at all", "https://one.example/", ""}
	batch, err := Run(context.Background(), urls, staticOnly())
	require.NoError(t, err)

	require.Len(t, batch.Results, 1)
	assert.Equal(t, "https://one.example/", batch.Results[0].URL)
	assert.Len(t, batch.Errors, 2, "blank entries are dropped silently")
}

func TestRunEmptyBatch(t *testing.T) {
	_, err := Run(context.Background(), nil, staticOnly())
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = Run(context.Background(), []string{"mailto:x@example.com", ""}, staticOnly())
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestRunGlobFilters(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://site.example/docs/intro": goodPage,
		"https://site.example/admin/keys": goodPage,
	}}
	urls := []string{"https://site.example/docs/intro", "https://site.example/admin/keys"}

	cfg := Config{Options: types.DefaultOptions(), SkipRendered: true, Fetcher: fetcher}
	cfg.ExcludeGlobs = "site.example/admin/**"
	batch, err := Run(context.Background(), urls, cfg)
	require.NoError(t, err)

	require.Len(t, batch.Results, 1)
	assert.Equal(t, "https://site.example/docs/intro", batch.Results[0].URL)
	require.Len(t, batch.Errors, 1)
	assert.Contains(t, batch.Errors[0], "excluded by url patterns")

	cfg = Config{Options: types.DefaultOptions(), SkipRendered: true, Fetcher: fetcher}
	cfg.IncludeGlobs = "site.example/docs/**"
	batch, err = Run(context.Background(), urls, cfg)
	require.NoError(t, err)
	require.Len(t, batch.Results, 1)
	assert.Equal(t, "https://site.example/docs/intro", batch.Results[0].URL)
}

func TestRunStaticOnlyIsReducedConfidence(t *testing.T) {
	batch, err := Run(context.Background(), []string{"https://one.example/"}, staticOnly())
	require.NoError(t, err)
	assert.True(t, batch.Results[0].ReducedConfidence)
}

func TestRunRenderedPassWins(t *testing.T) {
	cfg := staticOnly()
	cfg.SkipRendered = false
	cfg.Renderer = func(ctx context.Context, pageURL string, opts render.Options) (*render.Result, error) {
		doc, err := dom.ParseStatic(goodPage)
		if err != nil {
			return nil, err
		}
		rd := dom.NewRenderedWithMap(doc, nil)
		return &render.Result{Doc: rd, EvidencePath: "evidence/one.png"}, nil
	}

	batch, err := Run(context.Background(), []string{"https://one.example/"}, cfg)
	require.NoError(t, err)

	res := batch.Results[0]
	assert.False(t, res.ReducedConfidence)
	require.NotEmpty(t, res.Findings)
	for _, f := range res.Findings {
		// the rendered copy of each colliding finding carries the evidence path
		if f.Rule == "image-alt" {
			assert.Equal(t, "evidence/one.png", f.EvidencePath)
		}
	}
	assert.Equal(t, res.Summary, types.Summarize(res.Findings), "summary recomputed after merge")
}

func TestRunDegradesWhenBrowserUnavailable(t *testing.T) {
	cfg := staticOnly()
	cfg.SkipRendered = false
	cfg.Renderer = func(ctx context.Context, pageURL string, opts render.Options) (*render.Result, error) {
		return nil, fmt.Errorf("start browser: %w", render.ErrUnavailable)
	}

	batch, err := Run(context.Background(), []string{"https://one.example/"}, cfg)
	require.NoError(t, err, "browser absence degrades, it does not fail")

	res := batch.Results[0]
	assert.True(t, res.ReducedConfidence)
	assert.NotEmpty(t, res.Findings, "static findings survive the degrade")
	assert.Empty(t, batch.Errors)
}

func TestRunFindingsCarryTagsIntoQueries(t *testing.T) {
	batch, err := Run(context.Background(), []string{"https://three.example/"}, staticOnly())
	require.NoError(t, err)

	st := store.New()
	st.Replace(batch)

	page := st.Query(store.Params{Tags: []types.ComplianceTag{types.TagWCAGA}})
	require.NotZero(t, page.TotalCount, "detector findings must be reachable through tag filters")
	for _, f := range page.Items {
		assert.True(t, f.HasTag(types.TagWCAGA))
	}
}

func TestRunBoundedParallelismPreservesOrder(t *testing.T) {
	pages := map[string]string{}
	var urls []string
	for i := 0; i < 12; i++ {
		u := fmt.Sprintf("https://site%02d.example/", i)
		pages[u] = badPage
		urls = append(urls, u)
	}
	cfg := Config{
		Options:      types.DefaultOptions(),
		Threads:      3,
		SkipRendered: true,
		Fetcher:      &stubFetcher{pages: pages},
	}

	batch, err := Run(context.Background(), urls, cfg)
	require.NoError(t, err)
	require.Len(t, batch.Results, len(urls))
	for i, u := range urls {
		assert.Equal(t, u, batch.Results[i].URL)
	}
}

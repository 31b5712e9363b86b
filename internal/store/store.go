// Package store holds the canonical finding collection for the most recent
// batch and serves paginated, filtered views of it.
package store

import (
	"sync/atomic"
	"time"

	"github.com/a11yscan/a11yscan/internal/types"
)

// snapshot is one immutable batch of results. The store swaps whole
// snapshots; nothing mutates a published snapshot, so readers never observe
// a torn state.
type snapshot struct {
	batch    types.BatchResult
	findings []types.Finding
	loadedAt time.Time
}

// Store is the in-memory result store. The zero value is empty and usable.
type Store struct {
	current atomic.Pointer[snapshot]
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Replace publishes a new batch, discarding the previous one. Concurrent
// readers see either the old or the new batch in full.
func (s *Store) Replace(batch types.BatchResult) {
	findings := batch.AllFindings()
	types.SortStable(findings)
	s.current.Store(&snapshot{
		batch:    batch,
		findings: findings,
		loadedAt: time.Now(),
	})
}

// Batch returns the most recent batch result, or a zero value when nothing
// has been published.
func (s *Store) Batch() types.BatchResult {
	if snap := s.current.Load(); snap != nil {
		return snap.batch
	}
	return types.BatchResult{}
}

// Findings returns the full reconciled collection of the current batch.
func (s *Store) Findings() []types.Finding {
	if snap := s.current.Load(); snap != nil {
		return snap.findings
	}
	return nil
}

// Summary returns the severity summary over the current batch.
func (s *Store) Summary() types.SeveritySummary {
	return types.Summarize(s.Findings())
}

package engine

import (
	"context"
	"sort"

	"aspectgraph/internal/domain"
)

// Rank computes each path's aggregate weight, caches it on the path, and
// orders the result best-first (weight descending). Equal weights fall back
// to lexicographic order on the intermediate sequence so the output is
// deterministic.
func (e *Engine) Rank(ctx context.Context, paths []domain.Path) ([]domain.Path, error) {
	ranked := make([]domain.Path, len(paths))
	for i, p := range paths {
		ranked[i] = p.Clone()
		w, err := e.PathWeight(ctx, ranked[i])
		if err != nil {
			return nil, err
		}
		ranked[i].SetWeight(w)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		wi, _ := ranked[i].Weight()
		wj, _ := ranked[j].Weight()
		if wi != wj {
			return wi > wj
		}
		return lessIntermediates(ranked[i].Intermediates(), ranked[j].Intermediates())
	})
	return ranked, nil
}

// SearchRanked is Search followed by Rank. An empty result means the
// endpoints are not connected within stepsN intermediates.
func (e *Engine) SearchRanked(ctx context.Context, from, to domain.ElementHandle, stepsN int) ([]domain.Path, error) {
	paths, err := e.Search(ctx, from, to, stepsN)
	if err != nil {
		return nil, err
	}
	return e.Rank(ctx, paths)
}

// IsPathViable re-validates that every consecutive pair in
// [start, intermediates..., end] is connected. It is an independent
// consistency check over already-produced paths, not the search's own
// bookkeeping.
func (e *Engine) IsPathViable(ctx context.Context, p domain.Path) (bool, error) {
	chain := p.Chain()
	for i := 0; i+1 < len(chain); i++ {
		connected, err := e.Connected(ctx, chain[i], chain[i+1])
		if err != nil {
			return false, err
		}
		if !connected {
			return false, nil
		}
	}
	return true, nil
}

func lessIntermediates(a, b []domain.ElementHandle) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i].Less(b[i])
		}
	}
	return len(a) < len(b)
}

package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"aspectgraph/internal/domain"
	"aspectgraph/internal/seed"
	"aspectgraph/internal/store"
)

// memStore is an in-memory Store over a seed dataset, used to exercise the
// engine without a graph database.
type memStore struct {
	recipes map[domain.ElementHandle]domain.Decomposition
	uses    map[domain.ElementHandle][]domain.ElementHandle
	base    map[domain.ElementHandle]float64
	held    map[domain.ElementHandle]float64
}

func newMemStore(t *testing.T, ds seed.Dataset) *memStore {
	t.Helper()
	require.NoError(t, ds.Validate())
	require.NoError(t, ds.DeriveBaseValues())

	ms := &memStore{
		recipes: make(map[domain.ElementHandle]domain.Decomposition),
		uses:    make(map[domain.ElementHandle][]domain.ElementHandle),
		base:    make(map[domain.ElementHandle]float64),
		held:    make(map[domain.ElementHandle]float64),
	}
	for _, e := range ds.Elements {
		h := domain.Handle(e.Name)
		ms.base[h] = e.BaseValue
		ms.held[h] = e.Held
	}
	for _, r := range ds.Recipes {
		product := domain.Handle(r.Product)
		a, b := domain.Handle(r.ComponentA), domain.Handle(r.ComponentB)
		ms.recipes[product] = domain.Decomposition{A: a, B: b}
		ms.uses[a] = append(ms.uses[a], product)
		if b != a {
			ms.uses[b] = append(ms.uses[b], product)
		}
	}
	return ms
}

func (m *memStore) setHeld(name string, quantity float64) {
	m.held[domain.Handle(name)] = quantity
}

func (m *memStore) Components(_ context.Context, h domain.ElementHandle) (domain.Decomposition, bool, error) {
	dec, ok := m.recipes[h]
	return dec, ok, nil
}

func (m *memStore) ProductsUsing(_ context.Context, h domain.ElementHandle) ([]domain.ElementHandle, error) {
	return m.uses[h], nil
}

func (m *memStore) BaseValue(_ context.Context, h domain.ElementHandle) (float64, error) {
	v, ok := m.base[h]
	if !ok {
		return 0, fmt.Errorf("base value of %s: %w", h.Name(), store.ErrNotFound)
	}
	return v, nil
}

func (m *memStore) HeldQuantity(_ context.Context, h domain.ElementHandle) (float64, error) {
	v, ok := m.held[h]
	if !ok {
		return 0, fmt.Errorf("held quantity of %s: %w", h.Name(), store.ErrNotFound)
	}
	return v, nil
}

func newFixtureEngine(t *testing.T) (*Engine, *memStore) {
	t.Helper()
	ms := newMemStore(t, seed.Default())
	eng, err := New(ms)
	require.NoError(t, err)
	return eng, ms
}

func pathStrings(paths []domain.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		// render without the weight annotation for stable comparison
		chain := p.Chain()
		s := chain[0].Name()
		for _, h := range chain[1:] {
			s += "->" + h.Name()
		}
		out[i] = s
	}
	return out
}

package service

import (
	"context"
	"errors"
	"testing"

	"aspectgraph/internal/domain"
	"aspectgraph/internal/seed"
	"aspectgraph/internal/store"
)

// stubStore implements Store over a seed dataset.
type stubStore struct {
	recipes  map[domain.ElementHandle]domain.Decomposition
	uses     map[domain.ElementHandle][]domain.ElementHandle
	base     map[domain.ElementHandle]float64
	held     map[domain.ElementHandle]float64
	setCalls map[string]float64
}

func newStubStore(t *testing.T, ds seed.Dataset) *stubStore {
	t.Helper()
	if err := ds.Validate(); err != nil {
		t.Fatalf("fixture dataset invalid: %v", err)
	}
	if err := ds.DeriveBaseValues(); err != nil {
		t.Fatalf("fixture derivation failed: %v", err)
	}

	st := &stubStore{
		recipes:  make(map[domain.ElementHandle]domain.Decomposition),
		uses:     make(map[domain.ElementHandle][]domain.ElementHandle),
		base:     make(map[domain.ElementHandle]float64),
		held:     make(map[domain.ElementHandle]float64),
		setCalls: make(map[string]float64),
	}
	for _, e := range ds.Elements {
		h := domain.Handle(e.Name)
		st.base[h] = e.BaseValue
		st.held[h] = e.Held
	}
	for _, r := range ds.Recipes {
		product := domain.Handle(r.Product)
		a, b := domain.Handle(r.ComponentA), domain.Handle(r.ComponentB)
		st.recipes[product] = domain.Decomposition{A: a, B: b}
		st.uses[a] = append(st.uses[a], product)
		if b != a {
			st.uses[b] = append(st.uses[b], product)
		}
	}
	return st
}

func (s *stubStore) Components(_ context.Context, h domain.ElementHandle) (domain.Decomposition, bool, error) {
	dec, ok := s.recipes[h]
	return dec, ok, nil
}

func (s *stubStore) ProductsUsing(_ context.Context, h domain.ElementHandle) ([]domain.ElementHandle, error) {
	return s.uses[h], nil
}

func (s *stubStore) BaseValue(_ context.Context, h domain.ElementHandle) (float64, error) {
	v, ok := s.base[h]
	if !ok {
		return 0, store.ErrNotFound
	}
	return v, nil
}

func (s *stubStore) HeldQuantity(_ context.Context, h domain.ElementHandle) (float64, error) {
	v, ok := s.held[h]
	if !ok {
		return 0, store.ErrNotFound
	}
	return v, nil
}

func (s *stubStore) ElementExists(_ context.Context, h domain.ElementHandle) (bool, error) {
	_, ok := s.base[h]
	return ok, nil
}

func (s *stubStore) SetHeldQuantity(_ context.Context, h domain.ElementHandle, quantity float64) error {
	if _, ok := s.base[h]; !ok {
		return store.ErrNotFound
	}
	s.held[h] = quantity
	s.setCalls[h.Name()] = quantity
	return nil
}

func (s *stubStore) ListElements(context.Context) ([]domain.Element, error) {
	out := make([]domain.Element, 0, len(s.base))
	for h, v := range s.base {
		out = append(out, domain.Element{Name: h.Name(), BaseValue: v})
	}
	return out, nil
}

func (s *stubStore) ListRecipes(context.Context) ([]domain.Recipe, error) {
	out := make([]domain.Recipe, 0, len(s.recipes))
	for product, dec := range s.recipes {
		out = append(out, domain.Recipe{Product: product, A: dec.A, B: dec.B})
	}
	return out, nil
}

func (s *stubStore) ListMods(context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubStore) ListHoldings(context.Context) ([]domain.Holding, error) {
	out := make([]domain.Holding, 0, len(s.held))
	for h, q := range s.held {
		out = append(out, domain.Holding{Handle: h, Quantity: q})
	}
	return out, nil
}

func (s *stubStore) PrimitiveElements(context.Context) ([]domain.ElementHandle, error) {
	var out []domain.ElementHandle
	for h := range s.base {
		if _, compound := s.recipes[h]; !compound {
			out = append(out, h)
		}
	}
	return out, nil
}

func newFixtureService(t *testing.T) (*AspectService, *stubStore) {
	t.Helper()
	st := newStubStore(t, seed.Default())
	svc, err := NewAspectService(st)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, st
}

func TestSearchRankedRejectsUnknownEndpoint(t *testing.T) {
	svc, _ := newFixtureService(t)

	_, err := svc.SearchRanked(context.Background(), "Aer", "Nonsense", 1)
	if !errors.Is(err, ErrUnknownElement) {
		t.Fatalf("expected ErrUnknownElement, got %v", err)
	}

	_, err = svc.SearchRanked(context.Background(), "Nonsense", "Aer", 1)
	if !errors.Is(err, ErrUnknownElement) {
		t.Fatalf("expected ErrUnknownElement, got %v", err)
	}
}

func TestSearchRankedFindsChain(t *testing.T) {
	svc, _ := newFixtureService(t)

	paths, err := svc.SearchRanked(context.Background(), "Aer", "Ignis", 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(paths))
	}
	if got := paths[0].Intermediates(); len(got) != 1 || got[0].Name() != "Lux" {
		t.Fatalf("expected intermediate Lux, got %v", got)
	}
	if _, ok := paths[0].Weight(); !ok {
		t.Fatal("ranked path must carry a cached weight")
	}
}

func TestCrackMergesAndScales(t *testing.T) {
	svc, _ := newFixtureService(t)

	rows, err := svc.Crack(context.Background(), []CrackRequest{
		{Name: "Lux", Quantity: 2},
		{Name: "Aer", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("crack failed: %v", err)
	}

	// Lux*2 -> {Aer:2, Ignis:2}; Aer*3 -> {Aer:3}
	want := map[string]int{"Aer": 5, "Ignis": 2}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d: %v", len(want), len(rows), rows)
	}
	for _, row := range rows {
		if want[row.Handle.Name()] != row.Count {
			t.Fatalf("count for %s = %d, want %d", row.Handle.Name(), row.Count, want[row.Handle.Name()])
		}
	}
	// rows are ordered by name
	if rows[0].Handle.Name() != "Aer" || rows[1].Handle.Name() != "Ignis" {
		t.Fatalf("rows out of order: %v", rows)
	}
}

func TestCrackPrimitiveIdentity(t *testing.T) {
	svc, _ := newFixtureService(t)

	rows, err := svc.Crack(context.Background(), []CrackRequest{{Name: "Terra", Quantity: 1}})
	if err != nil {
		t.Fatalf("crack failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Handle.Name() != "Terra" || rows[0].Count != 1 {
		t.Fatalf("expected {Terra: 1}, got %v", rows)
	}
}

func TestCrackRejectsBadInput(t *testing.T) {
	svc, _ := newFixtureService(t)
	ctx := context.Background()

	if _, err := svc.Crack(ctx, nil); err == nil {
		t.Fatal("expected error for empty request")
	}
	if _, err := svc.Crack(ctx, []CrackRequest{{Name: "Aer", Quantity: 0}}); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	if _, err := svc.Crack(ctx, []CrackRequest{{Name: "Nonsense", Quantity: 1}}); !errors.Is(err, ErrUnknownElement) {
		t.Fatalf("expected ErrUnknownElement, got %v", err)
	}
}

func TestSetHolding(t *testing.T) {
	svc, st := newFixtureService(t)
	ctx := context.Background()

	if err := svc.SetHolding(ctx, "Aer", 48); err != nil {
		t.Fatalf("set holding failed: %v", err)
	}
	if st.setCalls["Aer"] != 48 {
		t.Fatalf("expected store write of 48, got %v", st.setCalls["Aer"])
	}

	if err := svc.SetHolding(ctx, "Aer", -1); err == nil {
		t.Fatal("expected error for negative quantity")
	}
	if err := svc.SetHolding(ctx, "Nonsense", 1); !errors.Is(err, ErrUnknownElement) {
		t.Fatalf("expected ErrUnknownElement, got %v", err)
	}
}

package seed

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"aspectgraph/internal/domain"
)

func TestDefaultDatasetIsConsistent(t *testing.T) {
	ds := Default()
	if err := ds.Validate(); err != nil {
		t.Fatalf("default dataset failed validation: %v", err)
	}
	if len(ds.Recipes) == 0 {
		t.Fatal("default dataset has no recipes")
	}

	values := make(map[string]float64, len(ds.Elements))
	for _, e := range ds.Elements {
		if e.BaseValue <= 0 {
			t.Fatalf("element %s has non-positive base value %v", e.Name, e.BaseValue)
		}
		values[e.Name] = e.BaseValue
	}
	for _, r := range ds.Recipes {
		want := values[r.ComponentA] + values[r.ComponentB]
		if values[r.Product] != want {
			t.Fatalf("base value of %s = %v, want %v (= %s + %s)",
				r.Product, values[r.Product], want, r.ComponentA, r.ComponentB)
		}
	}
}

func TestValidateRejectsDuplicateRecipe(t *testing.T) {
	ds := Dataset{
		Elements: []ElementSeed{{Name: "Aer"}, {Name: "Ignis"}, {Name: "Lux"}},
		Recipes: []RecipeSeed{
			{Product: "Lux", ComponentA: "Aer", ComponentB: "Ignis"},
			{Product: "Lux", ComponentA: "Ignis", ComponentB: "Aer"},
		},
	}
	if err := ds.Validate(); err == nil {
		t.Fatal("expected duplicate-recipe validation error")
	}
}

func TestValidateRejectsUndeclaredComponent(t *testing.T) {
	ds := Dataset{
		Elements: []ElementSeed{{Name: "Lux"}, {Name: "Aer"}},
		Recipes:  []RecipeSeed{{Product: "Lux", ComponentA: "Aer", ComponentB: "Ignis"}},
	}
	if err := ds.Validate(); err == nil {
		t.Fatal("expected undeclared-element validation error")
	}
}

func TestDeriveBaseValuesDetectsCycle(t *testing.T) {
	ds := Dataset{
		Elements: []ElementSeed{{Name: "A"}, {Name: "B"}},
		Recipes: []RecipeSeed{
			{Product: "A", ComponentA: "B", ComponentB: "B"},
			{Product: "B", ComponentA: "A", ComponentB: "A"},
		},
	}
	if err := ds.DeriveBaseValues(); err == nil {
		t.Fatal("expected cycle detection error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing dataset file")
	}
}

type recordingWriter struct {
	mu       sync.Mutex
	elements []domain.Element
	recipes  []domain.Recipe
	fail     error
}

func (w *recordingWriter) UpsertElement(_ context.Context, e domain.Element, _ float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return w.fail
	}
	w.elements = append(w.elements, e)
	return nil
}

func (w *recordingWriter) UpsertRecipe(_ context.Context, r domain.Recipe) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return w.fail
	}
	w.recipes = append(w.recipes, r)
	return nil
}

func TestBulkLoaderWritesEverything(t *testing.T) {
	ds := Default()
	w := &recordingWriter{}

	if err := NewBulkLoader(w, 4).Load(context.Background(), ds); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(w.elements) != len(ds.Elements) {
		t.Fatalf("wrote %d elements, want %d", len(w.elements), len(ds.Elements))
	}
	if len(w.recipes) != len(ds.Recipes) {
		t.Fatalf("wrote %d recipes, want %d", len(w.recipes), len(ds.Recipes))
	}
}

func TestBulkLoaderAggregatesErrors(t *testing.T) {
	boom := errors.New("write refused")
	w := &recordingWriter{fail: boom}

	err := NewBulkLoader(w, 2).Load(context.Background(), Default())
	if err == nil {
		t.Fatal("expected aggregated load error")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if len(loadErr.Errors) == 0 {
		t.Fatal("expected at least one recorded failure")
	}
}

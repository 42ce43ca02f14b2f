// Package service composes the search engine and the store behind the
// operations the CLI and HTTP surfaces expose.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"aspectgraph/internal/domain"
	"aspectgraph/internal/engine"
)

// Store is the persistence contract required by the aspect service. It
// extends the engine's read-only slice with existence checks, listings and
// the single mutation the holdings-adjustment command needs.
type Store interface {
	engine.Store

	ElementExists(ctx context.Context, h domain.ElementHandle) (bool, error)
	SetHeldQuantity(ctx context.Context, h domain.ElementHandle, quantity float64) error
	ListElements(ctx context.Context) ([]domain.Element, error)
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	ListMods(ctx context.Context) ([]string, error)
	ListHoldings(ctx context.Context) ([]domain.Holding, error)
	PrimitiveElements(ctx context.Context) ([]domain.ElementHandle, error)
}

// ErrUnknownElement indicates a caller-supplied element name does not exist
// in the store.
var ErrUnknownElement = errors.New("unknown element")

// CrackRequest names an element to decompose together with the requested
// quantity.
type CrackRequest struct {
	Name     string
	Quantity int
}

// LeafCount is one row of a crack result: a primitive element and its total
// count across all requested decompositions.
type LeafCount struct {
	Handle domain.ElementHandle
	Count  int
}

// AspectService validates user input and delegates to the engine and store.
type AspectService struct {
	store  Store
	engine *engine.Engine
}

// NewAspectService constructs the service and its engine.
func NewAspectService(st Store) (*AspectService, error) {
	eng, err := engine.New(st)
	if err != nil {
		return nil, err
	}
	return &AspectService{store: st, engine: eng}, nil
}

// SearchRanked returns every chain of exactly stepsN intermediates between
// the two named elements, best-first. An empty result means the endpoints
// cannot be connected within stepsN. Both endpoints must exist.
func (s *AspectService) SearchRanked(ctx context.Context, from, to string, stepsN int) ([]domain.Path, error) {
	fromH, err := s.requireElement(ctx, from)
	if err != nil {
		return nil, err
	}
	toH, err := s.requireElement(ctx, to)
	if err != nil {
		return nil, err
	}
	return s.engine.SearchRanked(ctx, fromH, toH, stepsN)
}

// IsPathViable re-validates every adjacency along the path.
func (s *AspectService) IsPathViable(ctx context.Context, p domain.Path) (bool, error) {
	return s.engine.IsPathViable(ctx, p)
}

// Crack decomposes each requested element into its primitive leaf multiset,
// scales by the requested quantity and merges counts additively. Rows come
// back ordered by element name.
func (s *AspectService) Crack(ctx context.Context, requests []CrackRequest) ([]LeafCount, error) {
	if len(requests) == 0 {
		return nil, errors.New("at least one element is required")
	}

	merged := make(map[domain.ElementHandle]int)
	for _, req := range requests {
		if req.Quantity < 1 {
			return nil, fmt.Errorf("quantity for %s must be positive, got %d", req.Name, req.Quantity)
		}
		h, err := s.requireElement(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		leaves, err := s.engine.LeafMultiset(ctx, h)
		if err != nil {
			return nil, err
		}
		for leaf, count := range leaves {
			merged[leaf] += count * req.Quantity
		}
	}

	rows := make([]LeafCount, 0, len(merged))
	for h, count := range merged {
		rows = append(rows, LeafCount{Handle: h, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Handle.Less(rows[j].Handle) })
	return rows, nil
}

// SetHolding updates the held quantity of the named element.
func (s *AspectService) SetHolding(ctx context.Context, name string, quantity float64) error {
	if quantity < 0 {
		return fmt.Errorf("held quantity must be non-negative, got %v", quantity)
	}
	h, err := s.requireElement(ctx, name)
	if err != nil {
		return err
	}
	return s.store.SetHeldQuantity(ctx, h, quantity)
}

// Elements lists every element.
func (s *AspectService) Elements(ctx context.Context) ([]domain.Element, error) {
	return s.store.ListElements(ctx)
}

// Recipes lists every recipe.
func (s *AspectService) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	return s.store.ListRecipes(ctx)
}

// Mods lists the distinct mods elements belong to.
func (s *AspectService) Mods(ctx context.Context) ([]string, error) {
	return s.store.ListMods(ctx)
}

// Holdings lists every recorded holding.
func (s *AspectService) Holdings(ctx context.Context) ([]domain.Holding, error) {
	return s.store.ListHoldings(ctx)
}

// Primitives lists every element without a recipe.
func (s *AspectService) Primitives(ctx context.Context) ([]domain.ElementHandle, error) {
	return s.store.PrimitiveElements(ctx)
}

func (s *AspectService) requireElement(ctx context.Context, name string) (domain.ElementHandle, error) {
	h := domain.Handle(name)
	exists, err := s.store.ElementExists(ctx, h)
	if err != nil {
		return domain.ElementHandle{}, err
	}
	if !exists {
		return domain.ElementHandle{}, fmt.Errorf("element %s: %w", name, ErrUnknownElement)
	}
	return h, nil
}

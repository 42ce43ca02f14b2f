// Package engine answers reachability and decomposition questions over the
// recipe graph: which chains of exactly N intermediate elements connect two
// endpoints, ranked by desirability, and which primitive elements a compound
// element breaks down into.
package engine

import (
	"context"

	"aspectgraph/internal/domain"
)

// Store is the read-only slice of the persistence layer the engine consumes.
// Implementations must treat "no recipe" as the ok=false outcome of
// Components, never as an error.
type Store interface {
	Components(ctx context.Context, h domain.ElementHandle) (domain.Decomposition, bool, error)
	ProductsUsing(ctx context.Context, h domain.ElementHandle) ([]domain.ElementHandle, error)
	BaseValue(ctx context.Context, h domain.ElementHandle) (float64, error)
	HeldQuantity(ctx context.Context, h domain.ElementHandle) (float64, error)
}

// Engine evaluates searches and weights against a store. It holds no mutable
// state of its own; the curve parameters are computed once at construction.
type Engine struct {
	store Store
	curve *Curve
}

// New constructs an Engine with the default curve configuration.
func New(store Store) (*Engine, error) {
	curve, err := NewCurve(DefaultAlpha)
	if err != nil {
		return nil, err
	}
	return &Engine{store: store, curve: curve}, nil
}

// Relatives returns the one-hop adjacency set of h: its two recipe
// components, if it has a recipe, plus every element whose recipe uses h as
// either component. Adjacency is symmetric by construction. The handle is not
// validated for existence; callers must have checked it against the store.
func (e *Engine) Relatives(ctx context.Context, h domain.ElementHandle) (domain.HandleSet, error) {
	set := make(domain.HandleSet)

	dec, ok, err := e.store.Components(ctx, h)
	if err != nil {
		return nil, err
	}
	if ok {
		set.Add(dec.A)
		set.Add(dec.B)
	}

	products, err := e.store.ProductsUsing(ctx, h)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		set.Add(p)
	}
	return set, nil
}

// Connected reports whether a and b are adjacent per Relatives.
func (e *Engine) Connected(ctx context.Context, a, b domain.ElementHandle) (bool, error) {
	rel, err := e.Relatives(ctx, a)
	if err != nil {
		return false, err
	}
	return rel.Contains(b), nil
}

package engine

import (
	"context"

	"aspectgraph/internal/domain"
)

// weightRate balances an element's own weight against its decomposition when
// scoring a tree.
const weightRate = 0.7

// Weight scores a single element as curve(held_quantity) / base_value. Both
// store lookups happen before any arithmetic; a failed lookup aborts the
// evaluation.
func (e *Engine) Weight(ctx context.Context, h domain.ElementHandle) (float64, error) {
	base, err := e.store.BaseValue(ctx, h)
	if err != nil {
		return 0, err
	}
	held, err := e.store.HeldQuantity(ctx, h)
	if err != nil {
		return 0, err
	}
	v, err := e.curve.Eval(held)
	if err != nil {
		return 0, err
	}
	return v / base, nil
}

// TreeWeight scores an entire decomposition tree. The root's own weight is
// blended with the reciprocal of the sub-weight sum, which starts at 1 and
// accumulates the weight of every non-root node:
//
//	weightRate*Weight(root) + (1-weightRate)*(1 / (1 + sum(Weight(node))))
//
// One store round-trip pair per node; any failure aborts with no partial
// result.
func (e *Engine) TreeWeight(ctx context.Context, tree *domain.DecompositionTree) (float64, error) {
	rootWeight, err := e.Weight(ctx, tree.Root())
	if err != nil {
		return 0, err
	}

	subWeight := 1.0
	for i := 1; i < tree.Len(); i++ {
		w, err := e.Weight(ctx, tree.Node(i))
		if err != nil {
			return 0, err
		}
		subWeight += w
	}
	return weightRate*rootWeight + (1-weightRate)*(1/subWeight), nil
}

// PathWeight sums the tree weight of every intermediate element of the path;
// the endpoints do not contribute.
func (e *Engine) PathWeight(ctx context.Context, p domain.Path) (float64, error) {
	var total float64
	for _, h := range p.Intermediates() {
		tree, err := e.Decompose(ctx, h)
		if err != nil {
			return 0, err
		}
		w, err := e.TreeWeight(ctx, tree)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

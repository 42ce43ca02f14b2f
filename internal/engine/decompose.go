package engine

import (
	"context"
	"errors"
	"fmt"

	"aspectgraph/internal/domain"
)

// maxDecompositionDepth guards against a store whose recipes form a cycle;
// recipes are assumed acyclic and well-formed data never comes close.
const maxDecompositionDepth = 64

// ErrDepthExceeded indicates the decomposition exceeded the depth guard,
// which only a cyclic recipe set can cause.
var ErrDepthExceeded = errors.New("decomposition depth limit exceeded")

// Decompose expands root into its full recipe tree, breadth-first, level by
// level, until a level yields no further expansion. Primitive elements stay
// leaves; every decomposed node gains exactly its two recipe components.
func (e *Engine) Decompose(ctx context.Context, root domain.ElementHandle) (*domain.DecompositionTree, error) {
	tree := domain.NewDecompositionTree(root)
	level := []int{0}

	for depth := 0; len(level) > 0; depth++ {
		if depth >= maxDecompositionDepth {
			return nil, fmt.Errorf("decomposing %s: %w", root.Name(), ErrDepthExceeded)
		}
		var next []int
		for _, idx := range level {
			dec, ok, err := e.store.Components(ctx, tree.Node(idx))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			a, b := tree.AppendChildren(idx, dec)
			next = append(next, a, b)
		}
		level = next
	}
	return tree, nil
}

// LeafMultiset decomposes root and counts each primitive leaf's occurrences.
func (e *Engine) LeafMultiset(ctx context.Context, root domain.ElementHandle) (map[domain.ElementHandle]int, error) {
	tree, err := e.Decompose(ctx, root)
	if err != nil {
		return nil, err
	}
	return tree.Leaves(), nil
}

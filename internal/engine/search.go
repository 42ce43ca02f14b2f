package engine

import (
	"context"
	"fmt"

	"aspectgraph/internal/domain"
)

// Search enumerates every chain of exactly stepsN intermediate elements
// between from and to. The returned order is unspecified; ranking is a
// separate step. stepsN of 0, 1 and 2 use closed-form enumeration; deeper
// searches backtrack over an explicit depth-indexed frontier stack.
//
// Chains may revisit an element: the search does not enforce distinctness
// along a chain, so for stepsN >= 3 a path can pass through the same element
// twice.
func (e *Engine) Search(ctx context.Context, from, to domain.ElementHandle, stepsN int) ([]domain.Path, error) {
	if stepsN < 0 {
		return nil, fmt.Errorf("steps_n must be non-negative, got %d", stepsN)
	}

	switch stepsN {
	case 0:
		connected, err := e.Connected(ctx, from, to)
		if err != nil {
			return nil, err
		}
		if !connected {
			return nil, nil
		}
		return []domain.Path{domain.NewPath(from, to)}, nil
	case 1:
		return e.searchOne(ctx, from, to)
	case 2:
		return e.searchTwo(ctx, from, to)
	default:
		return e.searchDeep(ctx, from, to, stepsN)
	}
}

// searchOne emits one path per element adjacent to both endpoints.
func (e *Engine) searchOne(ctx context.Context, from, to domain.ElementHandle) ([]domain.Path, error) {
	fromRel, err := e.Relatives(ctx, from)
	if err != nil {
		return nil, err
	}
	toRel, err := e.Relatives(ctx, to)
	if err != nil {
		return nil, err
	}

	var paths []domain.Path
	for _, mid := range fromRel.Intersect(toRel).Sorted() {
		p := domain.NewPath(from, to)
		p.Push(mid)
		paths = append(paths, p)
	}
	return paths, nil
}

// searchTwo enumerates both adjacency sets fully and emits a path for every
// connected pair; there is no early pruning, so the worst case performs
// |relatives(from)| * |relatives(to)| connectivity checks.
func (e *Engine) searchTwo(ctx context.Context, from, to domain.ElementHandle) ([]domain.Path, error) {
	fromRel, err := e.Relatives(ctx, from)
	if err != nil {
		return nil, err
	}
	toRel, err := e.Relatives(ctx, to)
	if err != nil {
		return nil, err
	}

	var paths []domain.Path
	for _, a := range fromRel.Sorted() {
		for _, b := range toRel.Sorted() {
			connected, err := e.Connected(ctx, a, b)
			if err != nil {
				return nil, err
			}
			if !connected {
				continue
			}
			p := domain.NewPath(from, to)
			p.Push(a)
			p.Push(b)
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// searchDeep runs the general backtracking chain search. frames[d] holds the
// not-yet-exhausted candidates at depth d, the chosen element being the last
// entry; depth 0 holds only from. A frame at depth stepsN is terminal: every
// candidate there that is adjacent to the target closes one chain. Depth is
// bounded by stepsN, so the search always terminates.
func (e *Engine) searchDeep(ctx context.Context, from, to domain.ElementHandle, stepsN int) ([]domain.Path, error) {
	endRel, err := e.Relatives(ctx, to)
	if err != nil {
		return nil, err
	}

	frames := [][]domain.ElementHandle{{from}}
	var paths []domain.Path

	for len(frames) > 0 {
		depth := len(frames) - 1

		if depth < stepsN {
			cur := frames[depth]
			rel, err := e.Relatives(ctx, cur[len(cur)-1])
			if err != nil {
				return nil, err
			}
			if candidates := rel.Sorted(); len(candidates) > 0 {
				frames = append(frames, candidates)
			} else {
				// dead end; advance the current frame instead
				frames = backtrack(frames)
			}
			continue
		}

		for _, cand := range frames[depth] {
			if !endRel.Contains(cand) {
				continue
			}
			p := domain.NewPath(from, to)
			for d := 1; d < depth; d++ {
				lvl := frames[d]
				p.Push(lvl[len(lvl)-1])
			}
			p.Push(cand)
			paths = append(paths, p)
		}

		frames = backtrack(frames[:depth])
	}
	return paths, nil
}

// backtrack advances the deepest frame past its chosen element, popping
// frames that become exhausted. An empty result means the search space is
// spent.
func backtrack(frames [][]domain.ElementHandle) [][]domain.ElementHandle {
	for len(frames) > 0 {
		top := frames[len(frames)-1]
		top = top[:len(top)-1]
		frames[len(frames)-1] = top
		if len(top) > 0 {
			return frames
		}
		frames = frames[:len(frames)-1]
	}
	return frames
}

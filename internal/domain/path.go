package domain

import (
	"fmt"
	"strings"
)

// Path is a chain of adjacent elements between two fixed endpoints. The
// intermediates are ordered; consecutive elements of
// [start, intermediates..., end] are adjacent per the relatives relation.
// A weight is attached once the path has been ranked.
type Path struct {
	start         ElementHandle
	end           ElementHandle
	intermediates []ElementHandle
	weight        *float64
}

// NewPath creates a path with no intermediates between start and end.
func NewPath(start, end ElementHandle) Path {
	return Path{start: start, end: end}
}

// Start returns the fixed starting endpoint.
func (p Path) Start() ElementHandle {
	return p.start
}

// End returns the fixed final endpoint.
func (p Path) End() ElementHandle {
	return p.end
}

// Intermediates returns the ordered intermediate elements.
func (p Path) Intermediates() []ElementHandle {
	return p.intermediates
}

// Push appends an intermediate element to the chain.
func (p *Path) Push(h ElementHandle) {
	p.intermediates = append(p.intermediates, h)
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	cp := p
	cp.intermediates = append([]ElementHandle(nil), p.intermediates...)
	return cp
}

// SetWeight caches the ranked weight on the path.
func (p *Path) SetWeight(w float64) {
	p.weight = &w
}

// Weight returns the cached weight, if the path has been ranked.
func (p Path) Weight() (float64, bool) {
	if p.weight == nil {
		return 0, false
	}
	return *p.weight, true
}

// Chain returns the full sequence [start, intermediates..., end].
func (p Path) Chain() []ElementHandle {
	chain := make([]ElementHandle, 0, len(p.intermediates)+2)
	chain = append(chain, p.start)
	chain = append(chain, p.intermediates...)
	chain = append(chain, p.end)
	return chain
}

// String renders the chain as "start -> i1 -> ... -> end", with a trailing
// weight annotation when ranked.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString(p.start.Name())
	for _, h := range p.intermediates {
		b.WriteString("->")
		b.WriteString(h.Name())
	}
	b.WriteString("->")
	b.WriteString(p.end.Name())
	if p.weight != nil {
		fmt.Fprintf(&b, ": weight %v", *p.weight)
	}
	return b.String()
}

package domain

import "sort"

// ElementHandle identifies an element in the recipe graph by name. It is a
// cheap value type; equality and ordering follow the name.
type ElementHandle struct {
	name string
}

// Handle wraps a raw element name.
func Handle(name string) ElementHandle {
	return ElementHandle{name: name}
}

// Name returns the element name backing the handle.
func (h ElementHandle) Name() string {
	return h.name
}

// Less orders handles lexicographically by name.
func (h ElementHandle) Less(other ElementHandle) bool {
	return h.name < other.name
}

func (h ElementHandle) String() string {
	return h.name
}

// Element is a listing row for a single element.
type Element struct {
	Name      string
	Mod       string // empty when the element belongs to the base game
	BaseValue float64
}

// Holding is a listing row pairing an element with its held quantity.
type Holding struct {
	Handle   ElementHandle
	Quantity float64
}

// Recipe states that Product is crafted from exactly the two ordered
// components A and B. An element has at most one recipe; an element without
// one is primitive.
type Recipe struct {
	Product ElementHandle
	A       ElementHandle
	B       ElementHandle
}

// Decomposition is the component pair of a single recipe, as returned by the
// store for a non-primitive element.
type Decomposition struct {
	A ElementHandle
	B ElementHandle
}

// HandleSet is a set of element handles keyed by name.
type HandleSet map[ElementHandle]struct{}

// NewHandleSet builds a set from the given handles.
func NewHandleSet(handles ...ElementHandle) HandleSet {
	s := make(HandleSet, len(handles))
	for _, h := range handles {
		s[h] = struct{}{}
	}
	return s
}

// Add inserts a handle into the set.
func (s HandleSet) Add(h ElementHandle) {
	s[h] = struct{}{}
}

// Contains reports whether the set holds h.
func (s HandleSet) Contains(h ElementHandle) bool {
	_, ok := s[h]
	return ok
}

// Intersect returns the handles present in both sets.
func (s HandleSet) Intersect(other HandleSet) HandleSet {
	out := make(HandleSet)
	for h := range s {
		if other.Contains(h) {
			out.Add(h)
		}
	}
	return out
}

// Sorted returns the set members ordered by name.
func (s HandleSet) Sorted() []ElementHandle {
	out := make([]ElementHandle, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Package store persists the recipe graph: Element nodes carrying base value
// and held quantity, and MADE_FROM relationships describing each element's
// single two-component recipe.
package store

import "errors"

var (
	// ErrNotFound indicates an unknown element handle was passed to a query.
	ErrNotFound = errors.New("element not found")

	// ErrIntegrity indicates the store violated its own invariants, e.g. an
	// element with more than one recipe or a malformed recipe row.
	ErrIntegrity = errors.New("store integrity violation")
)

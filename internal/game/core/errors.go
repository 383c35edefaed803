package core

import "errors"

var (
	// ErrOutOfBounds reports coordinate arithmetic that produced a cell
	// outside the arena. Resolution guards every step with bounds checks,
	// so seeing it escape a query API means caller error.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

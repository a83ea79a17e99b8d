package game

import (
	"errors"
	"fmt"
)

// Validation failures, matched with errors.Is
var (
	ErrBaseSize          = errors.New("base size out of range")
	ErrBorderSize        = errors.New("border size out of range")
	ErrTooManyBuildings  = errors.New("too many buildings")
	ErrNoTownHall        = errors.New("map has no town hall")
	ErrDuplicateTownHall = errors.New("map has more than one town hall")
	ErrOutOfBounds       = errors.New("building outside the base")
	ErrBuildingOverlap   = errors.New("buildings overlap")
	ErrReserve           = errors.New("invalid clan castle reserve")
	ErrNoDropZone        = errors.New("map leaves no drop zone")
	ErrCount             = errors.New("count must be positive")
	ErrHousing           = errors.New("housing space exceeded")
)

// ValidationError reports which invariant an input document broke and where
type ValidationError struct {
	Field string // Collection the element belongs to, e.g. "buildings"
	Index int    // Element index, -1 for document-level failures
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s[%d]: %v", e.Field, e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, index int, err error) error {
	return &ValidationError{Field: field, Index: index, Err: err}
}

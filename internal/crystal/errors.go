package crystal

import (
	"errors"
	"fmt"
)

// GeometryError reports a structure whose geometry cannot be analyzed:
// a degenerate lattice, non-finite coordinates, an empty atom list, or
// a species symbol missing from the element table.
//
// GeometryError is fatal for the affected structure and is never
// retried. In batch mode it is isolated to the one structure that
// raised it.
type GeometryError struct {
	// Structure names the offending structure when known (batch name
	// or file path). May be empty for anonymous values.
	Structure string

	// Reason is a human-readable description of the defect.
	Reason string

	// AtomIndex is the offending atom, or -1 when the defect is not
	// tied to a single site.
	AtomIndex int
}

func (e *GeometryError) Error() string {
	if e.AtomIndex >= 0 {
		return fmt.Sprintf("geometry error: %s (atom %d)", e.Reason, e.AtomIndex)
	}
	return fmt.Sprintf("geometry error: %s", e.Reason)
}

// IsGeometryError reports whether err is (or wraps) a GeometryError.
func IsGeometryError(err error) bool {
	var ge *GeometryError
	return errors.As(err, &ge)
}

func geometryErrorf(atom int, format string, args ...any) *GeometryError {
	return &GeometryError{Reason: fmt.Sprintf(format, args...), AtomIndex: atom}
}

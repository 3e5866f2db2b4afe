package kdtree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrPreconditionViolation is the parent of all caller precondition errors.
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrDuplicatePoint is returned by Insert when a datum with the same coords exists.
	ErrDuplicatePoint = fmt.Errorf("%w: point already present", ErrPreconditionViolation)

	// ErrPointNotFound is returned by Delete when no datum has the given coords.
	ErrPointNotFound = fmt.Errorf("%w: point not found", ErrPreconditionViolation)

	// ErrDegenerateSplit is returned when an overflowing leaf has no axis with a
	// non-zero spread and therefore cannot be split.
	ErrDegenerateSplit = fmt.Errorf("%w: leaf data has no axis with non-zero spread", ErrPreconditionViolation)
)

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidConfig indicates an invalid tree configuration.
type ErrInvalidConfig struct {
	Field string
	Value int
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid %s: %d (must be >= 1)", e.Field, e.Value)
}

// ErrInvariant reports a structural invariant violation found by Validate.
// It signals a bug in the maintenance logic, never a caller error.
type ErrInvariant struct {
	Path   string // Path from the root, e.g. "root.l.r"
	Reason string
}

func (e *ErrInvariant) Error() string {
	return fmt.Sprintf("invariant violated at %s: %s", e.Path, e.Reason)
}

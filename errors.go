package kdgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kdgo/kdtree"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("store is closed")

	// ErrDuplicatePoint is returned when inserting coords that are already stored.
	ErrDuplicatePoint = errors.New("point already present")

	// ErrNotFound is returned when deleting coords that are not stored.
	ErrNotFound = errors.New("not found")
)

// ErrDimensionMismatch indicates a point/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidConfig indicates an invalid dimensionality or leaf capacity.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidConfig struct {
	Field string
	Value int
	cause error
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Field, e.Value)
}

func (e *ErrInvalidConfig) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kdtree.ErrPointNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if errors.Is(err, kdtree.ErrDuplicatePoint) {
		return fmt.Errorf("%w: %w", ErrDuplicatePoint, err)
	}
	if errors.Is(err, kdtree.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	var dm *kdtree.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var ic *kdtree.ErrInvalidConfig
	if errors.As(err, &ic) {
		return &ErrInvalidConfig{Field: ic.Field, Value: ic.Value, cause: err}
	}

	return err
}

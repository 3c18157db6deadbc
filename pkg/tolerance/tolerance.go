// Package tolerance provides elementwise comparisons which treat
// approximately equal values as equal.
package tolerance

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultRelative = 1e-5
	DefaultAbsolute = 1e-8
)

var ErrShapeMismatch = errors.New("operands have different lengths")

// Tolerance defines when two values are close: |a-b| <= Absolute + Relative*|b|.
type Tolerance struct {
	Relative float64
	Absolute float64
}

// Default is the tolerance used by the package-level functions.
var Default = Tolerance{
	Relative: DefaultRelative,
	Absolute: DefaultAbsolute,
}

// IsClose reports whether a is close to b. NaN is never close to anything;
// infinities are close only to themselves.
func (tol Tolerance) IsClose(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= tol.Absolute+tol.Relative*math.Abs(b)
}

// LeqClose returns x[i] <= y[i] || x[i] is close to y[i].
func (tol Tolerance) LeqClose(x, y []float64) ([]bool, error) {
	return elementwise(x, y, func(a, b float64) bool {
		return a <= b || tol.IsClose(a, b)
	})
}

// GeqClose returns x[i] >= y[i] || x[i] is close to y[i].
func (tol Tolerance) GeqClose(x, y []float64) ([]bool, error) {
	return elementwise(x, y, func(a, b float64) bool {
		return a >= b || tol.IsClose(a, b)
	})
}

// LeqStrict returns x[i] <= y[i] && x[i] is not close to y[i].
func (tol Tolerance) LeqStrict(x, y []float64) ([]bool, error) {
	return elementwise(x, y, func(a, b float64) bool {
		return a <= b && !tol.IsClose(a, b)
	})
}

func IsClose(a, b float64) bool {
	return Default.IsClose(a, b)
}

func LeqClose(x, y []float64) ([]bool, error) {
	return Default.LeqClose(x, y)
}

func GeqClose(x, y []float64) ([]bool, error) {
	return Default.GeqClose(x, y)
}

func LeqStrict(x, y []float64) ([]bool, error) {
	return Default.LeqStrict(x, y)
}

// elementwise applies cmp pairwise; an operand of length 1 is broadcast
// against the other one.
func elementwise(x, y []float64, cmp func(a, b float64) bool) ([]bool, error) {
	n := len(x)
	switch {
	case len(x) == len(y):
	case len(x) == 1:
		n = len(y)
	case len(y) == 1:
	default:
		return nil, fmt.Errorf("%w: %d != %d", ErrShapeMismatch, len(x), len(y))
	}

	result := make([]bool, n)
	for idx := range result {
		result[idx] = cmp(x[min(idx, len(x)-1)], y[min(idx, len(y)-1)])
	}
	return result, nil
}

// Package interpolation defines the way a single gap of missing values is
// filled from the valid samples surrounding it.
package interpolation

// Interpolator produces the values of a gap of gapLen missing samples.
//
// before holds the valid samples preceding the gap (empty if the gap starts
// the sequence) and after holds the valid samples following it (empty if the
// gap ends the sequence). The result must have exactly gapLen values; NaN
// marks the positions the Interpolator leaves missing.
type Interpolator interface {
	Interpolate(before, after []float64, gapLen int) []float64
}

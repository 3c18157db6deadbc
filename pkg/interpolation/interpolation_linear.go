package interpolation

import (
	"math"
)

type linear struct{}

var _ Interpolator = (*linear)(nil)

// NewLinear returns an Interpolator which draws a straight line between
// the last sample before the gap and the first sample after it.
func NewLinear() Interpolator {
	return &linear{}
}

func (l *linear) Interpolate(before, after []float64, gapLen int) []float64 {
	result := make([]float64, gapLen)
	if len(before) == 0 || len(after) == 0 {
		for i := range result {
			result[i] = math.NaN()
		}
		return result
	}
	v0 := before[len(before)-1]
	v1 := after[0]
	for i := 0; i < gapLen; i++ {
		t := float64(i+1) / float64(gapLen+1)
		result[i] = (1-t)*v0 + t*v1
	}
	return result
}

package nearest

import (
	"fmt"
	"math"

	"github.com/xaionaro-go/gapfill/pkg/gapfill"
	"github.com/xaionaro-go/gapfill/pkg/interpolation"
)

const (
	Name             = "nearest"
	NameLeftRounding = "nearest-left"
)

func init() {
	interpolation.RegisterFactory(Name, interpolation.FactoryFunc(func(period int) (interpolation.Interpolator, error) {
		return New(period)
	}))
	interpolation.RegisterFactory(NameLeftRounding, interpolation.FactoryFunc(func(period int) (interpolation.Interpolator, error) {
		interp, err := New(period)
		if err != nil {
			return nil, err
		}
		interp.Rounding = gapfill.RoundToLeft
		return interp, nil
	}))
}

// Interpolator copies the nearest valid sample into at most Period
// positions from each side of a gap. Positions reachable from neither side
// are left NaN.
type Interpolator struct {
	Period   int
	Rounding gapfill.Rounding
}

var _ interpolation.Interpolator = (*Interpolator)(nil)

func New(period int) (*Interpolator, error) {
	if period < 0 {
		return nil, fmt.Errorf("%w: negative period %d", gapfill.ErrInvalidArgument, period)
	}
	return &Interpolator{
		Period:   period,
		Rounding: gapfill.RoundToRight,
	}, nil
}

func (i *Interpolator) Interpolate(before, after []float64, gapLen int) []float64 {
	result := make([]float64, gapLen)
	for idx := range result {
		result[idx] = math.NaN()
	}

	split := i.Rounding.Split(gapLen, i.Period)
	if len(before) > 0 {
		v := before[len(before)-1]
		for idx := 0; idx < split.Left; idx++ {
			result[idx] = v
		}
	}
	if len(after) > 0 {
		v := after[0]
		for idx := gapLen - split.Right; idx < gapLen; idx++ {
			result[idx] = v
		}
	}
	return result
}

package gapfill

import (
	"fmt"
	"math"

	"github.com/xaionaro-go/gapfill/pkg/interpolation"
)

// FillWith returns a copy of seq where the values of every missing run are
// produced by interp.
//
// interp receives the valid samples between the previous run and the current
// one as "before", and the valid samples between the current run and the
// next one as "after". Both are taken from seq, so the fill of one run never
// depends on the fill of another one.
func FillWith(seq []float64, interp interpolation.Interpolator) ([]float64, error) {
	if interp == nil {
		return nil, fmt.Errorf("%w: interpolator is nil", ErrInvalidArgument)
	}

	result := make([]float64, len(seq))
	copy(result, seq)
	runs := DetectRuns(seq)
	for idx, run := range runs {
		beforeStart := 0
		if idx > 0 {
			beforeStart = runs[idx-1].End
		}
		afterEnd := len(seq)
		if idx+1 < len(runs) {
			afterEnd = runs[idx+1].Start
		}

		values := interp.Interpolate(seq[beforeStart:run.Start], seq[run.End:afterEnd], run.Len())
		if len(values) != run.Len() {
			return nil, fmt.Errorf("%T returned %d values for the run %s of length %d", interp, len(values), run, run.Len())
		}
		copy(result[run.Start:run.End], values)
	}
	return result, nil
}

// Stats describes the effect of a fill.
type Stats struct {
	Runs     int
	Missing  int
	Filled   int
	Residual int
}

func (s Stats) Add(other Stats) Stats {
	return Stats{
		Runs:     s.Runs + other.Runs,
		Missing:  s.Missing + other.Missing,
		Filled:   s.Filled + other.Filled,
		Residual: s.Residual + other.Residual,
	}
}

// Analyze compares a sequence with its filled version.
func Analyze(before, after []float64) Stats {
	var s Stats
	s.Runs = len(DetectRuns(before))
	for idx, v := range before {
		if !math.IsNaN(v) {
			continue
		}
		s.Missing++
		if idx < len(after) && !math.IsNaN(after[idx]) {
			s.Filled++
		} else {
			s.Residual++
		}
	}
	return s
}

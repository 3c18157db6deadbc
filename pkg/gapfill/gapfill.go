// Package gapfill fills runs of missing (NaN) values in one-dimensional
// sequences with the values of their nearest valid neighbours.
package gapfill

import (
	"fmt"
	"math"
)

// Run is a maximal half-open range [Start, End) of missing values.
type Run struct {
	Start int
	End   int
}

// Len returns the amount of missing values in the run.
func (r Run) Len() int {
	return r.End - r.Start
}

func (r Run) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Split tells how many positions of a run are filled from each side.
//
// Left positions are counted from the start of the run and take the value
// preceding the run; Right positions are counted from the end of the run and
// take the value following it.
type Split struct {
	Left  int
	Right int
}

// Residual returns the amount of positions of a run of the given length
// which are reachable from neither side.
func (s Split) Residual(length int) int {
	return max(0, length-s.Left-s.Right)
}

// DetectRuns returns the ordered list of maximal missing runs of seq.
//
// A run touching the first element starts at 0 and a run touching the last
// element ends at len(seq).
func DetectRuns(seq []float64) []Run {
	var runs []Run
	start := -1
	for idx, v := range seq {
		switch {
		case math.IsNaN(v) && start < 0:
			start = idx
		case !math.IsNaN(v) && start >= 0:
			runs = append(runs, Run{Start: start, End: idx})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Run{Start: start, End: len(seq)})
	}
	return runs
}

// Rounding decides which side of an odd-length run gets the middle
// position.
type Rounding int

const (
	// RoundToRight gives the middle position to the value following the run.
	RoundToRight Rounding = iota
	// RoundToLeft gives the middle position to the value preceding the run.
	RoundToLeft
)

func (r Rounding) String() string {
	switch r {
	case RoundToRight:
		return "right"
	case RoundToLeft:
		return "left"
	default:
		return fmt.Sprintf("unknown_rounding_%d", int(r))
	}
}

// Split splits a run of the given length between its two fill directions,
// each side reaching at most period positions.
func (r Rounding) Split(length, period int) Split {
	floor := length / 2
	ceil := length - floor
	if r == RoundToLeft {
		return Split{
			Left:  min(period, ceil),
			Right: min(period, floor),
		}
	}
	return Split{
		Left:  min(period, floor),
		Right: min(period, ceil),
	}
}

// SplitRun splits a run of the given length between its two fill
// directions. When the length is odd the right side gets the extra unit.
func SplitRun(length, period int) Split {
	return RoundToRight.Split(length, period)
}

// Fill returns a copy of seq where every missing run is filled with at most
// period values of the preceding valid element (counting from the start of
// the run) and at most period values of the following valid element
// (counting from the end of the run). The middle position of an odd-length
// run belongs to the following element.
//
// For example, with period=1:
//
//	input:  __1___23_4___
//	output: _111_223444__
func Fill(seq []float64, period int) ([]float64, error) {
	return FillRounding(seq, period, RoundToRight)
}

// FillRounding is Fill with an explicit choice of the side which gets the
// middle position of odd-length runs. With RoundToLeft and period=1:
//
//	input:  __1___23_4___
//	output: _111_223344__
func FillRounding(seq []float64, period int, rounding Rounding) ([]float64, error) {
	if period < 0 {
		return nil, fmt.Errorf("%w: negative period %d", ErrInvalidArgument, period)
	}

	result := make([]float64, len(seq))
	copy(result, seq)
	for _, run := range DetectRuns(seq) {
		split := rounding.Split(run.Len(), period)
		if run.Start > 0 {
			fillRange(result[run.Start:run.Start+split.Left], seq[run.Start-1])
		}
		if run.End < len(seq) {
			fillRange(result[run.End-split.Right:run.End], seq[run.End])
		}
	}
	return result, nil
}

func fillRange(dst []float64, v float64) {
	for idx := range dst {
		dst[idx] = v
	}
}

package fourier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/gapfill/pkg/gapfill"
	"github.com/xaionaro-go/gapfill/pkg/interpolation"
)

func sine(freq, sampleRate float64, from, count int) []float64 {
	result := make([]float64, count)
	for i := range result {
		result[i] = math.Sin(2 * math.Pi * freq * float64(from+i) / sampleRate)
	}
	return result
}

func TestInterpolateFourier_NoSteps(t *testing.T) {
	freq := 440.0
	sampleRate := 44100.0

	before := sine(freq, sampleRate, 0, 2048)
	size := 441 // 10ms gap
	after := sine(freq, sampleRate, len(before)+size, 2048)

	interpolated := New().Interpolate(before, after, size)
	require.Equal(t, size, len(interpolated))

	// Typical difference between samples in the signal
	maxDiff := 0.0
	for i := 1; i < len(before); i++ {
		d := math.Abs(before[i] - before[i-1])
		if d > maxDiff {
			maxDiff = d
		}
	}

	d1 := math.Abs(interpolated[0] - before[len(before)-1])
	require.LessOrEqual(t, d1, maxDiff*1.5, "Value jump too large at before boundary")

	d2 := math.Abs(after[0] - interpolated[len(interpolated)-1])
	require.LessOrEqual(t, d2, maxDiff*1.5, "Value jump too large at after boundary")

	for i := 1; i < len(interpolated); i++ {
		d := math.Abs(interpolated[i] - interpolated[i-1])
		require.LessOrEqual(t, d, maxDiff*3.0, "Step detected within interpolated part at index %d", i)
	}
}

func TestInterpolateFourier_NotEnoughSamples(t *testing.T) {
	interpolated := New().Interpolate([]float64{1, 2}, []float64{3, 4, 5}, 3)
	require.Len(t, interpolated, 3)
	for _, v := range interpolated {
		require.True(t, math.IsNaN(v))
	}

	require.Empty(t, New().Interpolate(nil, nil, 0))
}

func TestInterpolateFourier_OneSide(t *testing.T) {
	// a straight line is continued by its trend alone
	interpolated := New().Interpolate([]float64{1, 2}, []float64{3, 4, 5, 6}, 3)
	require.Len(t, interpolated, 3)
	for idx, expected := range []float64{0, 1, 2} {
		require.InDelta(t, expected, interpolated[idx], 1e-9, "index %d", idx)
	}

	interpolated = New().Interpolate([]float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}, nil, 2)
	require.InDelta(t, 4.0, interpolated[0], 1e-9)
	require.InDelta(t, 4.5, interpolated[1], 1e-9)
}

func TestInterpolateFourier_FillWith(t *testing.T) {
	seq := sine(50, 1000, 0, 512)
	for i := 200; i < 220; i++ {
		seq[i] = math.NaN()
	}

	filled, err := gapfill.FillWith(seq, New())
	require.NoError(t, err)
	require.Len(t, filled, len(seq))
	require.Empty(t, gapfill.DetectRuns(filled))
	for i := range seq {
		if !math.IsNaN(seq[i]) {
			require.Equal(t, seq[i], filled[i])
		}
	}
}

func TestInterpolateFourier_FillWithEdges(t *testing.T) {
	nan := math.NaN()
	seq := []float64{nan, nan, 2, 3, 4, 5, 6, 7, 8, 9, nan}

	filled, err := gapfill.FillWith(seq, New())
	require.NoError(t, err)
	require.Len(t, filled, len(seq))
	for idx, expected := range []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10} {
		require.InDelta(t, expected, filled[idx], 1e-9, "index %d", idx)
	}
}

func TestRegistered(t *testing.T) {
	interp, err := interpolation.NewByName(Name, 0)
	require.NoError(t, err)
	require.IsType(t, &Interpolator{}, interp)
}

func BenchmarkInterpolate(b *testing.B) {
	sampleRate := 44100.0
	freq := 440.0
	before := sine(freq, sampleRate, 0, 2048)

	durations := []struct {
		name string
		ms   int
	}{
		{"10ms", 10},
		{"100ms", 100},
	}

	interpolator := New()

	for _, d := range durations {
		gapLen := int(float64(d.ms) * sampleRate / 1000.0)
		after := sine(freq, sampleRate, len(before)+gapLen, 2048)

		b.Run(d.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = interpolator.Interpolate(before, after, gapLen)
			}
		})
	}
}

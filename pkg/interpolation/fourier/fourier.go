package fourier

import (
	"math"

	"github.com/brettbuddin/fourier"
	"github.com/xaionaro-go/gapfill/pkg/interpolation"
)

const (
	Name = "fourier"

	// DefaultMaxWindowSize is the maximum number of samples of one side
	// used for the spectral analysis.
	DefaultMaxWindowSize = 1024

	// DefaultMinSamples is the minimum number of valid samples a side needs
	// to be projected into the gap.
	DefaultMinSamples = 4

	// DefaultSensitivity determines how far a spectral peak must stand above
	// the average magnitude to be kept.
	DefaultSensitivity = 2.5
)

func init() {
	interpolation.RegisterFactory(Name, interpolation.FactoryFunc(func(int) (interpolation.Interpolator, error) {
		return New(), nil
	}))
}

// Interpolator fills a gap with a projection of the trend and the dominant
// periodic components of the valid samples around it.
type Interpolator struct {
	MaxWindowSize int
	MinSamples    int
	Sensitivity   float64
}

var _ interpolation.Interpolator = (*Interpolator)(nil)

func New() *Interpolator {
	return &Interpolator{
		MaxWindowSize: DefaultMaxWindowSize,
		MinSamples:    DefaultMinSamples,
		Sensitivity:   DefaultSensitivity,
	}
}

// Interpolate projects each side which has at least MinSamples samples into
// the gap:
//
//   - the window is the largest power-of-two run of samples (up to
//     MaxWindowSize) adjacent to the gap;
//   - a least-squares line is fitted to the window and the residual is
//     transformed with a forward FFT, keeping only the local magnitude peaks
//     standing Sensitivity times above the mean magnitude;
//   - the line and the kept components are continued into the gap and
//     shifted so the model matches the sample adjacent to the gap.
//
// The side after the gap is processed in reversed time. When both sides are
// projected they are cross-faded with the weight 3t^2 - 2t^3. When only one
// side is usable (e.g. the gap touches an end of the sequence) its projection
// is used alone; when none is, the gap is left missing.
func (i *Interpolator) Interpolate(before, after []float64, gapLen int) []float64 {
	if gapLen == 0 {
		return []float64{}
	}

	forward, forwardOK := i.project(before, gapLen)
	backward, backwardOK := i.project(reversed(after), gapLen)
	switch {
	case forwardOK && backwardOK:
	case forwardOK:
		return forward
	case backwardOK:
		return reversed(backward)
	default:
		return missing(gapLen)
	}

	result := make([]float64, gapLen)
	for idx := range result {
		t := float64(idx+1) / float64(gapLen+1)
		w := t * t * (3 - 2*t)
		result[idx] = (1-w)*forward[idx] + w*backward[gapLen-1-idx]
	}
	return result
}

// project continues samples by gapLen positions past their end.
func (i *Interpolator) project(samples []float64, gapLen int) ([]float64, bool) {
	if len(samples) < max(i.MinSamples, 2) {
		return nil, false
	}
	n := largestPowerOfTwo(min(len(samples), max(i.MaxWindowSize, 2)))
	window := samples[len(samples)-n:]

	intercept, slope := fitLine(window)
	coeffs := make([]complex128, n)
	for x, v := range window {
		coeffs[x] = complex(v-(intercept+slope*float64(x)), 0)
	}
	if err := fourier.Forward(coeffs); err != nil {
		return nil, false
	}
	peaks := sieve(coeffs, i.Sensitivity)

	model := func(x float64) float64 {
		v := intercept + slope*x
		for _, p := range peaks {
			v += p.amplitude * math.Cos(2*math.Pi*float64(p.bin)*x/float64(n)+p.phase)
		}
		return v
	}

	offset := window[n-1] - model(float64(n-1))
	result := make([]float64, gapLen)
	for idx := range result {
		result[idx] = model(float64(n+idx)) + offset
	}
	return result, true
}

type peak struct {
	bin       int
	amplitude float64
	phase     float64
}

func sieve(coeffs []complex128, sensitivity float64) []peak {
	n := len(coeffs)
	magnitudes := make([]float64, n)
	var threshold float64
	for idx, c := range coeffs {
		magnitudes[idx] = math.Hypot(real(c), imag(c))
		threshold += magnitudes[idx]
	}
	threshold = threshold / float64(n) * sensitivity

	var peaks []peak
	for bin := 1; bin < n/2; bin++ {
		m := magnitudes[bin]
		if m <= threshold || m <= magnitudes[bin-1] || m <= magnitudes[bin+1] {
			continue
		}
		peaks = append(peaks, peak{
			bin:       bin,
			amplitude: 2 * m / float64(n), // two-sided spectrum
			phase:     math.Atan2(imag(coeffs[bin]), real(coeffs[bin])),
		})
	}
	return peaks
}

// fitLine returns the least-squares line through (x, samples[x]).
func fitLine(samples []float64) (intercept, slope float64) {
	n := float64(len(samples))
	meanX := (n - 1) / 2
	var meanY float64
	for _, v := range samples {
		meanY += v
	}
	meanY /= n

	var num, den float64
	for x, v := range samples {
		dx := float64(x) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}
	if den != 0 {
		slope = num / den
	}
	return meanY - slope*meanX, slope
}

func reversed(s []float64) []float64 {
	result := make([]float64, len(s))
	for idx, v := range s {
		result[len(s)-1-idx] = v
	}
	return result
}

func missing(gapLen int) []float64 {
	result := make([]float64, gapLen)
	for idx := range result {
		result[idx] = math.NaN()
	}
	return result
}

func largestPowerOfTwo(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

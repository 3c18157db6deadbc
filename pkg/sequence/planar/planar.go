// Package planar converts between interleaved multi-channel samples and
// one sequence per channel.
package planar

import (
	"fmt"
)

// Planarize splits interleaved samples (ch0, ch1, ..., ch0, ch1, ...) into
// one sequence per channel.
func Planarize(channels int, input []float64) ([][]float64, error) {
	if channels < 1 {
		return nil, fmt.Errorf("invalid amount of channels: %d", channels)
	}
	if len(input)%channels != 0 {
		return nil, fmt.Errorf("expected a length that is a multiple of %d, but received %d", channels, len(input))
	}

	samplesPerChan := len(input) / channels
	output := make([][]float64, channels)
	for ch := range output {
		output[ch] = make([]float64, samplesPerChan)
		for samplePos := 0; samplePos < samplesPerChan; samplePos++ {
			output[ch][samplePos] = input[samplePos*channels+ch]
		}
	}
	return output, nil
}

// Unplanarize is the inverse of Planarize.
func Unplanarize(input [][]float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("no channels")
	}
	samplesPerChan := len(input[0])
	for ch, samples := range input {
		if len(samples) != samplesPerChan {
			return nil, fmt.Errorf("the lengths of the channels are not equal: %d != %d (channel %d)", len(samples), samplesPerChan, ch)
		}
	}

	channels := len(input)
	output := make([]float64, samplesPerChan*channels)
	for ch, samples := range input {
		for samplePos, v := range samples {
			output[samplePos*channels+ch] = v
		}
	}
	return output, nil
}

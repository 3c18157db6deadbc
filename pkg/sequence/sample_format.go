// Package sequence reads and writes sequences with missing values.
package sequence

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// SampleFormat is a binary encoding of a single sample. Only floating point
// encodings are supported, since only they can carry NaN.
type SampleFormat int

const (
	SampleFormatUndefined = SampleFormat(iota)
	SampleFormatFloat32LE
	SampleFormatFloat32BE
	SampleFormatFloat64LE
	SampleFormatFloat64BE
	EndOfSampleFormat
)

func (f SampleFormat) String() string {
	switch f {
	case SampleFormatUndefined:
		return "undefined"
	case SampleFormatFloat32LE:
		return "f32le"
	case SampleFormatFloat32BE:
		return "f32be"
	case SampleFormatFloat64LE:
		return "f64le"
	case SampleFormatFloat64BE:
		return "f64be"
	default:
		return fmt.Sprintf("unknown_format_%d", int(f))
	}
}

// ParseSampleFormat is the inverse of SampleFormat.String.
func ParseSampleFormat(s string) (SampleFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f := SampleFormatUndefined + 1; f < EndOfSampleFormat; f++ {
		if f.String() == s {
			return f, nil
		}
	}
	return SampleFormatUndefined, fmt.Errorf("unknown sample format %q", s)
}

// Size returns the amount of bytes per sample.
func (f SampleFormat) Size() uint {
	switch f {
	case SampleFormatFloat32LE, SampleFormatFloat32BE:
		return 4
	case SampleFormatFloat64LE, SampleFormatFloat64BE:
		return 8
	default:
		return 0
	}
}

func getFloat64(f SampleFormat, p []byte) float64 {
	switch f {
	case SampleFormatFloat32LE:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(p)))
	case SampleFormatFloat32BE:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(p)))
	case SampleFormatFloat64LE:
		return math.Float64frombits(binary.LittleEndian.Uint64(p))
	case SampleFormatFloat64BE:
		return math.Float64frombits(binary.BigEndian.Uint64(p))
	default:
		panic(fmt.Sprintf("unknown format: %v", f))
	}
}

func setFloat64(f SampleFormat, p []byte, v float64) {
	switch f {
	case SampleFormatFloat32LE:
		binary.LittleEndian.PutUint32(p, math.Float32bits(float32(v)))
	case SampleFormatFloat32BE:
		binary.BigEndian.PutUint32(p, math.Float32bits(float32(v)))
	case SampleFormatFloat64LE:
		binary.LittleEndian.PutUint64(p, math.Float64bits(v))
	case SampleFormatFloat64BE:
		binary.BigEndian.PutUint64(p, math.Float64bits(v))
	default:
		panic(fmt.Sprintf("unknown format: %v", f))
	}
}

// Decode converts raw samples into a sequence.
func Decode(f SampleFormat, raw []byte) ([]float64, error) {
	sampleSize := int(f.Size())
	if sampleSize == 0 {
		return nil, fmt.Errorf("unsupported sample format: %v", f)
	}
	if len(raw)%sampleSize != 0 {
		return nil, fmt.Errorf("expected a length that is a multiple of %d, but received %d", sampleSize, len(raw))
	}

	result := make([]float64, len(raw)/sampleSize)
	for idx := range result {
		result[idx] = getFloat64(f, raw[idx*sampleSize:])
	}
	return result, nil
}

// Encode converts a sequence into raw samples.
func Encode(f SampleFormat, seq []float64) ([]byte, error) {
	sampleSize := int(f.Size())
	if sampleSize == 0 {
		return nil, fmt.Errorf("unsupported sample format: %v", f)
	}

	result := make([]byte, len(seq)*sampleSize)
	for idx, v := range seq {
		setFloat64(f, result[idx*sampleSize:], v)
	}
	return result, nil
}

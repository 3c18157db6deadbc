package runner

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/gapfill/pkg/components"
	"github.com/xaionaro-go/gapfill/pkg/gapfill"
	"github.com/xaionaro-go/gapfill/pkg/interpolation"
	"github.com/xaionaro-go/gapfill/pkg/interpolation/nearest"
	"github.com/xaionaro-go/gapfill/pkg/sequence"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type Config struct {
	// Period bounds how many positions are filled from each side of a run.
	Period int
	// Method is the name of a registered interpolation method.
	Method string
	// Components to fill; nil means every column except IndexColumn.
	Components components.Names
	// Format is "csv", "xlsx" or a raw sample format (see sequence.SampleFormat).
	Format string
	// Channels is the amount of interleaved channels of raw inputs.
	Channels int
	// Sheet of XLSX inputs and outputs; empty means the first sheet.
	Sheet string
	// IndexColumn names the column used by From/To (e.g. depth or time).
	IndexColumn string
	// From and To crop tables by IndexColumn; NaN means unbounded.
	From float64
	To   float64
	// OutputDir receives the filled files, named after the record IDs.
	OutputDir string
	// Sources maps record IDs to paths explicitly.
	Sources map[string]string
	// InputGlobs build the files index used when Sources is nil.
	InputGlobs []string
	// Concurrent fills the components of a record in parallel.
	Concurrent bool
}

func DefaultConfig() Config {
	return Config{
		Period:   1,
		Method:   nearest.Name,
		Format:   FormatCSV,
		Channels: 1,
		From:     math.NaN(),
		To:       math.NaN(),
	}
}

func (cfg Config) isTable() bool {
	return cfg.Format == FormatCSV || cfg.Format == FormatXLSX
}

func (cfg Config) Validate() error {
	var mErr *multierror.Error
	if cfg.Period < 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("%w: negative period %d", gapfill.ErrInvalidArgument, cfg.Period))
	}
	if !slices.Contains(interpolation.Names(), cfg.Method) {
		mErr = multierror.Append(mErr, fmt.Errorf("%w: %q", interpolation.ErrUnknownMethod, cfg.Method))
	}
	if !cfg.isTable() {
		if _, err := sequence.ParseSampleFormat(cfg.Format); err != nil {
			mErr = multierror.Append(mErr, err)
		}
		if cfg.IndexColumn != "" {
			mErr = multierror.Append(mErr, fmt.Errorf("an index column is not applicable to raw format %q", cfg.Format))
		}
	}
	if cfg.Channels < 1 {
		mErr = multierror.Append(mErr, fmt.Errorf("%w: invalid amount of channels %d", gapfill.ErrInvalidArgument, cfg.Channels))
	}
	if cfg.OutputDir == "" {
		mErr = multierror.Append(mErr, errors.New("the output directory is not set"))
	}
	if (!math.IsNaN(cfg.From) || !math.IsNaN(cfg.To)) && cfg.IndexColumn == "" {
		mErr = multierror.Append(mErr, errors.New("cropping requires an index column"))
	}
	return mErr.ErrorOrNil()
}

// Package runner fills the gaps of records stored in files.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/datacounter"
	"github.com/xaionaro-go/gapfill/pkg/components"
	"github.com/xaionaro-go/gapfill/pkg/gapfill"
	"github.com/xaionaro-go/gapfill/pkg/interpolation"
	_ "github.com/xaionaro-go/gapfill/pkg/interpolation/fourier"
	_ "github.com/xaionaro-go/gapfill/pkg/interpolation/nearest"
	"github.com/xaionaro-go/gapfill/pkg/pathresolve"
	"github.com/xaionaro-go/gapfill/pkg/sequence"
	"github.com/xaionaro-go/gapfill/pkg/sequence/planar"
)

var (
	ErrNoRecords       = errors.New("no records to process")
	ErrDuplicateOutput = errors.New("output path is already used by another record")
)

// Result describes a processed record.
type Result struct {
	ID           string
	InputPath    string
	OutputPath   string
	BytesWritten uint64
	Stats        gapfill.Stats
}

// Run fills the gaps of the given records. If ids is empty, all the records
// known to the files index (or to cfg.Sources) are processed.
//
// A failure of one record does not stop the others; all the failures are
// returned as a *multierror.Error.
func Run(
	ctx context.Context,
	cfg Config,
	ids []string,
) (_ []Result, _err error) {
	logger.Tracef(ctx, "Run(%v)", ids)
	defer func() { logger.Tracef(ctx, "/Run(%v): %v", ids, _err) }()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	interp, err := interpolation.NewByName(cfg.Method, cfg.Period)
	if err != nil {
		return nil, err
	}

	var (
		pathIndex  pathresolve.PathIndex
		filesIndex *pathresolve.FilesIndex
	)
	if len(cfg.InputGlobs) > 0 {
		filesIndex, err = pathresolve.NewFilesIndex(cfg.InputGlobs...)
		if err != nil {
			return nil, fmt.Errorf("unable to build the files index: %w", err)
		}
		logger.Debugf(ctx, "indexed %d files", filesIndex.Len())
		pathIndex = filesIndex
	}

	if len(ids) == 0 {
		switch {
		case cfg.Sources != nil:
			for id := range cfg.Sources {
				ids = append(ids, id)
			}
			sort.Strings(ids)
		case filesIndex != nil:
			ids = filesIndex.IDs()
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoRecords
	}

	if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
		return nil, fmt.Errorf("unable to create the output directory %q: %w", cfg.OutputDir, err)
	}

	var (
		results     []Result
		mErr        *multierror.Error
		outputPaths = map[string]string{}
	)
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return results, multierror.Append(mErr, ctx.Err())
		default:
		}

		result, err := processRecord(ctx, cfg, interp, pathIndex, outputPaths, id)
		if err != nil {
			logger.Errorf(ctx, "record %q: %v", id, err)
			mErr = multierror.Append(mErr, fmt.Errorf("record %q: %w", id, err))
			continue
		}
		logger.Infof(ctx, "record %q: %s -> %s (%d bytes): %+v", id, result.InputPath, result.OutputPath, result.BytesWritten, result.Stats)
		results = append(results, *result)
	}
	return results, mErr.ErrorOrNil()
}

func processRecord(
	ctx context.Context,
	cfg Config,
	interp interpolation.Interpolator,
	pathIndex pathresolve.PathIndex,
	outputPaths map[string]string,
	id string,
) (_ *Result, _err error) {
	logger.Tracef(ctx, "processRecord(%q)", id)
	defer func() { logger.Tracef(ctx, "/processRecord(%q): %v", id, _err) }()

	inputPath, err := pathresolve.Resolve(id, cfg.Sources, pathIndex)
	if err != nil {
		return nil, err
	}
	outputPath, err := outputPathFor(cfg.OutputDir, id, inputPath)
	if err != nil {
		return nil, err
	}
	if sameFile(inputPath, outputPath) {
		return nil, fmt.Errorf("the output path %q would overwrite the input", outputPath)
	}
	if otherID, ok := outputPaths[outputPath]; ok {
		return nil, fmt.Errorf("%w: %q is written by record %q", ErrDuplicateOutput, outputPath, otherID)
	}
	outputPaths[outputPath] = id

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", inputPath, err)
	}

	var output bytes.Buffer
	var stats gapfill.Stats
	if cfg.isTable() {
		stats, err = fillTable(ctx, cfg, interp, input, &output)
	} else {
		stats, err = fillRaw(ctx, cfg, interp, input, &output)
	}
	if err != nil {
		return nil, err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("unable to create %q: %w", outputPath, err)
	}
	wc := datacounter.NewWriterCounter(f)
	_, err = io.Copy(wc, &output)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("unable to write %q: %w", outputPath, err)
	}

	return &Result{
		ID:           id,
		InputPath:    inputPath,
		OutputPath:   outputPath,
		BytesWritten: wc.Count(),
		Stats:        stats,
	}, nil
}

// outputPathFor names the output after the record ID, keeping the extension
// of the input.
func outputPathFor(outputDir, id, inputPath string) (string, error) {
	if id == "" || id == "." || id == ".." || filepath.Base(id) != id {
		return "", fmt.Errorf("record ID %q cannot be used as a file name", id)
	}
	path, err := filepath.Abs(filepath.Join(outputDir, id+filepath.Ext(inputPath)))
	if err != nil {
		return "", fmt.Errorf("unable to get the absolute path of the output: %w", err)
	}
	return path, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func fillTable(
	ctx context.Context,
	cfg Config,
	interp interpolation.Interpolator,
	input []byte,
	output io.Writer,
) (gapfill.Stats, error) {
	var (
		table *sequence.Table
		err   error
	)
	switch cfg.Format {
	case FormatCSV:
		table, err = sequence.ReadCSV(bytes.NewReader(input))
	case FormatXLSX:
		table, err = sequence.ReadXLSX(bytes.NewReader(input), cfg.Sheet)
	}
	if err != nil {
		return gapfill.Stats{}, err
	}
	logger.Debugf(ctx, "read a table of %d rows, columns: %v", table.Len(), table.Columns)

	if cfg.IndexColumn != "" && (!math.IsNaN(cfg.From) || !math.IsNaN(cfg.To)) {
		table, err = table.Crop(cfg.IndexColumn, cfg.From, cfg.To)
		if err != nil {
			return gapfill.Stats{}, fmt.Errorf("unable to crop: %w", err)
		}
		logger.Debugf(ctx, "cropped to %d rows", table.Len())
	}

	names := cfg.Components
	if names == nil {
		names = components.Names{}
		for _, column := range table.Columns {
			if column != cfg.IndexColumn {
				names = append(names, column)
			}
		}
	}
	stats, err := fill(ctx, cfg, interp, table.Data, names)
	if err != nil {
		return stats, err
	}

	switch cfg.Format {
	case FormatCSV:
		err = table.WriteCSV(output)
	case FormatXLSX:
		err = table.WriteXLSX(output, cfg.Sheet)
	}
	return stats, err
}

func channelName(ch int) string {
	return fmt.Sprintf("ch%d", ch)
}

func fillRaw(
	ctx context.Context,
	cfg Config,
	interp interpolation.Interpolator,
	input []byte,
	output io.Writer,
) (gapfill.Stats, error) {
	format, err := sequence.ParseSampleFormat(cfg.Format)
	if err != nil {
		return gapfill.Stats{}, err
	}
	samples, err := sequence.Decode(format, input)
	if err != nil {
		return gapfill.Stats{}, fmt.Errorf("unable to decode: %w", err)
	}
	channels, err := planar.Planarize(cfg.Channels, samples)
	if err != nil {
		return gapfill.Stats{}, fmt.Errorf("unable to planarize: %w", err)
	}

	set := gapfill.Components{}
	for ch, seq := range channels {
		set[channelName(ch)] = seq
	}
	stats, err := fill(ctx, cfg, interp, set, cfg.Components)
	if err != nil {
		return stats, err
	}
	for ch := range channels {
		channels[ch] = set[channelName(ch)]
	}

	samples, err = planar.Unplanarize(channels)
	if err != nil {
		return stats, fmt.Errorf("unable to unplanarize: %w", err)
	}
	raw, err := sequence.Encode(format, samples)
	if err != nil {
		return stats, fmt.Errorf("unable to encode: %w", err)
	}
	_, err = output.Write(raw)
	return stats, err
}

func fill(
	ctx context.Context,
	cfg Config,
	interp interpolation.Interpolator,
	set gapfill.Components,
	names components.Names,
) (gapfill.Stats, error) {
	if names == nil {
		names = components.All(set)
	}
	before := make(gapfill.Components, len(set))
	for name, seq := range set {
		before[name] = seq
	}

	if err := gapfill.FillComponents(ctx, set, names, interp, cfg.Concurrent); err != nil {
		return gapfill.Stats{}, err
	}

	var total gapfill.Stats
	for _, name := range components.Normalize(names) {
		total = total.Add(gapfill.Analyze(before[name], set[name]))
	}
	return total, nil
}

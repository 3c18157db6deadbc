package runner

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/gapfill/pkg/gapfill"
	"github.com/xaionaro-go/gapfill/pkg/pathresolve"
	"github.com/xaionaro-go/gapfill/pkg/sequence"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, content, 0640))
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Period = -1
	require.ErrorIs(t, bad.Validate(), gapfill.ErrInvalidArgument)

	bad = cfg
	bad.Method = "no-such-method"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Format = "s16le"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Channels = 0
	require.Error(t, bad.Validate())

	bad = cfg
	bad.OutputDir = ""
	require.Error(t, bad.Validate())

	bad = cfg
	bad.From = 10
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Format = "f32le"
	bad.IndexColumn = "DEPTH"
	require.Error(t, bad.Validate())
}

func TestRun_CSV(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")

	writeFile(t, filepath.Join(inputDir, "well_1.csv"), []byte("DEPTH,GR,RHOB\n"+
		"1,,2\n"+
		"2,10,\n"+
		"3,,\n"+
		"4,,\n"+
		"5,20,3\n"+
		"6,,\n"))
	writeFile(t, filepath.Join(inputDir, "well_2.csv"), []byte("DEPTH,GR,RHOB\n"+
		"1,1,1\n"))

	cfg := DefaultConfig()
	cfg.OutputDir = outputDir
	cfg.InputGlobs = []string{filepath.Join(inputDir, "*.csv")}
	cfg.IndexColumn = "DEPTH"

	results, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "well_1", results[0].ID)
	require.Equal(t, "well_2", results[1].ID)

	output, err := os.ReadFile(filepath.Join(outputDir, "well_1.csv"))
	require.NoError(t, err)
	require.Equal(t, "DEPTH,GR,RHOB\n"+
		"1,10,2\n"+
		"2,10,2\n"+
		"3,10,NaN\n"+
		"4,20,3\n"+
		"5,20,3\n"+
		"6,NaN,NaN\n", string(output))
	assert.Equal(t, uint64(len(output)), results[0].BytesWritten)
	assert.Equal(t, gapfill.Stats{Runs: 5, Missing: 8, Filled: 5, Residual: 3}, results[0].Stats)
}

func TestRun_CSVCrop(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	inputPath := filepath.Join(inputDir, "log.csv")
	writeFile(t, inputPath, []byte("DEPTH,GR\n"+
		"0.1,1\n"+
		"0.2,\n"+
		"0.3,3\n"+
		"0.4,\n"))

	cfg := DefaultConfig()
	cfg.OutputDir = outputDir
	cfg.Sources = map[string]string{"log": inputPath}
	cfg.IndexColumn = "DEPTH"
	cfg.From = 0.2
	cfg.To = 0.30000000000000004
	cfg.Method = "linear"

	_, err := Run(context.Background(), cfg, []string{"log"})
	require.NoError(t, err)

	output, err := os.ReadFile(filepath.Join(outputDir, "log.csv"))
	require.NoError(t, err)
	require.Equal(t, "DEPTH,GR\n"+
		"0.2,NaN\n"+
		"0.3,3\n", string(output))
}

func TestRun_XLSX(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	table, err := sequence.NewTable([]string{"T", "V"}, 4)
	require.NoError(t, err)
	copy(table.Data["T"], []float64{0, 1, 2, 3})
	copy(table.Data["V"], []float64{1, math.NaN(), math.NaN(), 4})
	var buf bytes.Buffer
	require.NoError(t, table.WriteXLSX(&buf, "data"))
	writeFile(t, filepath.Join(inputDir, "series.xlsx"), buf.Bytes())

	cfg := DefaultConfig()
	cfg.Format = FormatXLSX
	cfg.Sheet = "data"
	cfg.OutputDir = outputDir
	cfg.InputGlobs = []string{filepath.Join(inputDir, "*.xlsx")}
	cfg.Components = []string{"V"}
	cfg.Concurrent = true

	_, err = Run(context.Background(), cfg, []string{"series"})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(outputDir, "series.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	result, err := sequence.ReadXLSX(f, "data")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2, 3}, result.Data["T"])
	require.Equal(t, []float64{1, 1, 4, 4}, result.Data["V"])
}

func TestRun_Raw(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	nan := math.NaN()
	// two interleaved channels
	samples := []float64{
		1, 10,
		nan, nan,
		nan, 30,
		4, nan,
	}
	raw, err := sequence.Encode(sequence.SampleFormatFloat32LE, samples)
	require.NoError(t, err)
	writeFile(t, filepath.Join(inputDir, "rec.raw"), raw)

	cfg := DefaultConfig()
	cfg.Format = "f32le"
	cfg.Channels = 2
	cfg.OutputDir = outputDir
	cfg.InputGlobs = []string{filepath.Join(inputDir, "*.raw")}

	_, err = Run(context.Background(), cfg, nil)
	require.NoError(t, err)

	output, err := os.ReadFile(filepath.Join(outputDir, "rec.raw"))
	require.NoError(t, err)
	result, err := sequence.Decode(sequence.SampleFormatFloat32LE, output)
	require.NoError(t, err)
	require.Len(t, result, 8)

	expected := []float64{
		1, 10,
		1, 30,
		4, 30,
		4, nan,
	}
	for idx := range expected {
		if math.IsNaN(expected[idx]) {
			require.True(t, math.IsNaN(result[idx]), "index %d", idx)
			continue
		}
		require.Equal(t, expected[idx], result[idx], "index %d", idx)
	}
}

func TestRun_Errors(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeFile(t, filepath.Join(inputDir, "good.csv"), []byte("A\n1\n\n"))
	writeFile(t, filepath.Join(inputDir, "bad.csv"), []byte("A\nxyz\n"))

	cfg := DefaultConfig()
	cfg.OutputDir = outputDir
	cfg.InputGlobs = []string{filepath.Join(inputDir, "*.csv")}

	results, err := Run(context.Background(), cfg, []string{"bad", "good", "missing"})
	require.Error(t, err)
	require.ErrorIs(t, err, pathresolve.ErrUnknownRecord)
	require.Contains(t, err.Error(), `"bad"`)
	require.Len(t, results, 1)
	require.Equal(t, "good", results[0].ID)
	output, err := os.ReadFile(filepath.Join(outputDir, "good.csv"))
	require.NoError(t, err)
	require.Equal(t, "A\n1\nNaN\n", string(output))

	cfg.InputGlobs = nil
	_, err = Run(context.Background(), cfg, []string{"good"})
	require.ErrorIs(t, err, pathresolve.ErrMissingSource)

	_, err = Run(context.Background(), cfg, nil)
	require.ErrorIs(t, err, ErrNoRecords)

	cfg.OutputDir = inputDir
	cfg.InputGlobs = []string{filepath.Join(inputDir, "*.csv")}
	_, err = Run(context.Background(), cfg, []string{"good"})
	require.Error(t, err)
}

func TestRun_SameBaseName(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	outputDir := t.TempDir()
	writeFile(t, filepath.Join(dirA, "log.csv"), []byte("V\n1\n\n"))
	writeFile(t, filepath.Join(dirB, "log.csv"), []byte("V\n7\n"))

	cfg := DefaultConfig()
	cfg.OutputDir = outputDir
	cfg.Sources = map[string]string{
		"a": filepath.Join(dirA, "log.csv"),
		"b": filepath.Join(dirB, "log.csv"),
	}

	results, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.NotEqual(t, results[0].OutputPath, results[1].OutputPath)

	output, err := os.ReadFile(filepath.Join(outputDir, "a.csv"))
	require.NoError(t, err)
	require.Equal(t, "V\n1\nNaN\n", string(output))
	output, err = os.ReadFile(filepath.Join(outputDir, "b.csv"))
	require.NoError(t, err)
	require.Equal(t, "V\n7\n", string(output))

	_, err = Run(context.Background(), cfg, []string{"a", "a"})
	require.ErrorIs(t, err, ErrDuplicateOutput)

	cfg.Sources = map[string]string{"../a": filepath.Join(dirA, "log.csv")}
	_, err = Run(context.Background(), cfg, nil)
	require.Error(t, err)
}

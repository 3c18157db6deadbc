package main

import (
	"context"
	"fmt"
	"math"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/gapfill/pkg/components"
	"github.com/xaionaro-go/gapfill/pkg/interpolation"
	"github.com/xaionaro-go/gapfill/pkg/runner"
	"github.com/xaionaro-go/observability"
)

func main() {
	cfg := runner.DefaultConfig()

	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	pflag.IntVar(&cfg.Period, "period", cfg.Period, "the maximal amount of positions filled from each side of a gap")
	method := pflag.String("method", cfg.Method, "interpolation method (registered: "+strings.Join(interpolation.Names(), ", ")+")")
	componentsFlag := pflag.StringSlice("components", nil, "the components (columns, or ch<N> for raw inputs) to fill; all by default")
	pflag.StringVar(&cfg.Format, "format", cfg.Format, "input format: csv, xlsx, f32le, f32be, f64le, f64be")
	pflag.IntVar(&cfg.Channels, "channels", cfg.Channels, "the amount of interleaved channels of raw inputs")
	pflag.StringVar(&cfg.Sheet, "sheet", "", "the sheet of xlsx inputs; the first one by default")
	pflag.StringVar(&cfg.IndexColumn, "index-column", "", "the column used for cropping and excluded from filling (e.g. DEPTH)")
	pflag.Float64Var(&cfg.From, "from", math.NaN(), "keep only rows with the index column value >= from")
	pflag.Float64Var(&cfg.To, "to", math.NaN(), "keep only rows with the index column value <= to")
	pflag.StringVarP(&cfg.OutputDir, "output-dir", "o", "", "the directory to write the filled files to")
	sources := pflag.StringToString("src", nil, "explicit record paths: <id>=<path>")
	pflag.StringSliceVar(&cfg.InputGlobs, "input", nil, "glob patterns of the input files")
	pflag.BoolVar(&cfg.Concurrent, "concurrent", false, "fill the components of a record concurrently")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [record-id ...]\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	cfg.Method = *method
	if pflag.CommandLine.Changed("components") {
		cfg.Components = components.Names(*componentsFlag)
	}
	if pflag.CommandLine.Changed("src") {
		cfg.Sources = *sources
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func() { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	assertNoError(cfg.Validate())

	results, err := runner.Run(ctx, cfg, pflag.Args())
	logger.Infof(ctx, "processed %d records", len(results))
	if err != nil {
		logger.Errorf(ctx, "%v", err)
		belt.Flush(ctx)
		os.Exit(1)
	}
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}

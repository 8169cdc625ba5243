package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mafrasiabi/tabular"
	"go.uber.org/zap"
)

var floatReducers = map[string]tabular.Reducer[float64]{
	"mean":   tabular.Mean,
	"sum":    tabular.Sum,
	"min":    tabular.Min,
	"max":    tabular.Max,
	"median": tabular.Median,
	"var":    tabular.Var,
	"sd":     tabular.SD,
}

var intReducers = map[string]tabular.Reducer[int]{
	"count":  tabular.Count,
	"length": tabular.Length,
}

func knownFun(name string) bool {
	_, f := floatReducers[name]
	_, i := intReducers[name]
	return f || i
}

// readInput reads the whole input file, in chunks if cfg.Chunk is
// positive.
func readInput(cfg *jobConfig) (*tabular.Table, error) {

	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rdr := tabular.NewCSVReader(f)
	if cfg.NAValues != nil {
		rdr.NAValues = cfg.NAValues
	}
	if cfg.DateLayout != "" {
		rdr.DateLayout = cfg.DateLayout
	}
	rdr.TypeHintsName = cfg.TypeHints

	if cfg.Chunk > 0 {
		return tabular.ReadAll(rdr, cfg.Chunk)
	}
	return rdr.Read(-1)
}

// applyFactors replaces each column named in cfg.Factors by its
// categorical recoding.
func applyFactors(tbl *tabular.Table, factors []factorDef) (*tabular.Table, error) {

	for _, fs := range factors {
		col, err := tbl.Column(fs.Column)
		if err != nil {
			return nil, err
		}
		fac, err := tabular.Factor(col, fs.Levels, fs.Labels)
		if err != nil {
			return nil, err
		}
		if tbl, err = tbl.With(fac); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func (cfg *jobConfig) options(logger *zap.Logger) tabular.Options {

	opts := tabular.Options{
		SkipMissing: *cfg.SkipMissing,
		Logger:      logger,
	}
	if cfg.KeepMissingKeys {
		opts.MissingKeys = tabular.KeepMissingKeys
	}
	if cfg.Order == "first" {
		opts.Order = tabular.FirstSeenOrder
	}
	if cfg.Workers > 1 {
		opts.Executor = tabular.Parallel{Workers: cfg.Workers}
	}
	return opts
}

func aggregateTable[T tabular.Number](tbl *tabular.Table, cfg *jobConfig, r tabular.Reducer[T], opts tabular.Options) (*tabular.Table, error) {

	res, err := tabular.AggregateWith(tbl, cfg.Target, cfg.By, r, opts)
	if err != nil {
		return nil, err
	}
	return tabular.ResultTable(res, cfg.Target+"_"+cfg.Fun)
}

// writeOutput writes the result to cfg.Output, choosing parquet for a
// .parquet extension and CSV otherwise.  An empty output goes to
// stdout as CSV.
func writeOutput(out *tabular.Table, cfg *jobConfig, stdout io.Writer) error {

	switch {
	case cfg.Output == "":
		return tabular.WriteCSV(out, stdout)
	case strings.EqualFold(filepath.Ext(cfg.Output), ".parquet"):
		return tabular.WriteParquet(out, cfg.Output, int64(cfg.Workers))
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if err := tabular.WriteCSV(out, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// run carries out one aggregation job.
func run(cfg *jobConfig, logger *zap.Logger, stdout io.Writer) error {

	tbl, err := readInput(cfg)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input, err)
	}
	logger.Info("read input",
		zap.String("file", cfg.Input),
		zap.Int("rows", tbl.NumRows()),
		zap.Strings("columns", tbl.Names()))

	if tbl, err = applyFactors(tbl, cfg.Factors); err != nil {
		return err
	}

	opts := cfg.options(logger)
	var out *tabular.Table
	if r, ok := floatReducers[cfg.Fun]; ok {
		out, err = aggregateTable(tbl, cfg, r, opts)
	} else {
		out, err = aggregateTable(tbl, cfg, intReducers[cfg.Fun], opts)
	}
	if err != nil {
		return err
	}

	if err := writeOutput(out, cfg, stdout); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	logger.Info("wrote result",
		zap.String("fun", cfg.Fun),
		zap.Int("groups", out.NumRows()),
		zap.String("output", cfg.Output))
	return nil
}

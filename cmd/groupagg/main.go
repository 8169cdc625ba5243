package main

// groupagg reads a CSV file, partitions its rows by one or more
// grouping columns and reduces a target column within each group.
// The result, one row per observed key, is written as CSV (to standard
// output by default) or as a parquet file.
//
// A job can be described in a YAML file passed with -config; flags
// given on the command line override the file.
//
//	groupagg -in haart.csv -target weight -by male,aids -fun mean

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// parseArgs builds the job configuration from the command line.
func parseArgs(args []string, stderr io.Writer) (*jobConfig, error) {

	fs := flag.NewFlagSet("groupagg", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML job file")
	in := fs.String("in", "", "input CSV file")
	target := fs.String("target", "", "column to reduce")
	by := fs.String("by", "", "comma separated grouping columns")
	fun := fs.String("fun", "mean", "mean, sum, count, length, min, max, median, var or sd")
	skipna := fs.Bool("skipna", true, "drop missing target values before reducing")
	keepna := fs.Bool("keepna", false, "keep rows with missing grouping values")
	order := fs.String("order", "sorted", "group order: sorted or first")
	workers := fs.Int("workers", 1, "number of goroutines for the reductions")
	out := fs.String("out", "", "output file; .parquet writes parquet, otherwise CSV")
	chunk := fs.Int("chunk", 0, "read the input in chunks of this many rows")
	logMode := fs.String("log", "dev", "log format: dev or prod")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := new(jobConfig)
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Input = *in
		case "target":
			cfg.Target = *target
		case "by":
			cfg.By = splitList(*by)
		case "fun":
			cfg.Fun = *fun
		case "skipna":
			cfg.SkipMissing = skipna
		case "keepna":
			cfg.KeepMissingKeys = *keepna
		case "order":
			cfg.Order = *order
		case "workers":
			cfg.Workers = *workers
		case "out":
			cfg.Output = *out
		case "chunk":
			cfg.Chunk = *chunk
		case "log":
			cfg.Log = *logMode
		}
	})

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {

	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "groupagg: %v\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "groupagg: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("aggregation failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

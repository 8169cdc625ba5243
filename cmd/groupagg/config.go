package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// A factorDef recodes one column as categorical before aggregation.
type factorDef struct {
	Column string   `yaml:"column"`
	Levels []string `yaml:"levels"`
	Labels []string `yaml:"labels"`
}

// jobConfig describes one aggregation run.  It is read from a YAML
// file and then overridden by command line flags.
type jobConfig struct {
	Input           string            `yaml:"input"`
	Target          string            `yaml:"target"`
	By              []string          `yaml:"by"`
	Fun             string            `yaml:"fun"`
	SkipMissing     *bool             `yaml:"skip_missing"`
	KeepMissingKeys bool              `yaml:"keep_missing_keys"`
	Order           string            `yaml:"order"`
	Workers         int               `yaml:"workers"`
	Output          string            `yaml:"output"`
	Chunk           int               `yaml:"chunk"`
	NAValues        []string          `yaml:"na_values"`
	TypeHints       map[string]string `yaml:"type_hints"`
	DateLayout      string            `yaml:"date_layout"`
	Factors         []factorDef      `yaml:"factors"`
	Log             string            `yaml:"log"`
}

// loadConfig reads a job file.  Unknown keys are an error.
func loadConfig(path string) (*jobConfig, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg jobConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// setDefaults fills in the fields left empty by both the job file and
// the flags.
func (cfg *jobConfig) setDefaults() {

	if cfg.Fun == "" {
		cfg.Fun = "mean"
	}
	if cfg.SkipMissing == nil {
		skip := true
		cfg.SkipMissing = &skip
	}
	if cfg.Order == "" {
		cfg.Order = "sorted"
	}
	if cfg.Log == "" {
		cfg.Log = "dev"
	}
}

func (cfg *jobConfig) validate() error {

	var errs []error
	if cfg.Input == "" {
		errs = append(errs, errors.New("no input file"))
	}
	if cfg.Target == "" {
		errs = append(errs, errors.New("no target column"))
	}
	if len(cfg.By) == 0 {
		errs = append(errs, errors.New("no grouping columns"))
	}
	if !knownFun(cfg.Fun) {
		errs = append(errs, fmt.Errorf("unknown function %q", cfg.Fun))
	}
	switch cfg.Order {
	case "sorted", "first":
	default:
		errs = append(errs, fmt.Errorf("unknown order %q", cfg.Order))
	}
	if cfg.Chunk < 0 {
		errs = append(errs, fmt.Errorf("negative chunk size %d", cfg.Chunk))
	}
	return errors.Join(errs...)
}

// splitList splits a comma separated flag value, dropping empty
// entries.
func splitList(s string) []string {

	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

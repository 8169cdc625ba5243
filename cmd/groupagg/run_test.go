package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mafrasiabi/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var haart = filepath.Join("..", "..", "test_files", "data", "haart.csv")

func testConfig(t *testing.T, args ...string) *jobConfig {
	t.Helper()
	cfg, err := parseArgs(append([]string{"-in", haart}, args...), nil)
	require.NoError(t, err)
	return cfg
}

func TestRunMean(t *testing.T) {

	cfg := testConfig(t, "-target", "weight", "-by", "male")

	var out strings.Builder
	require.NoError(t, run(cfg, zaptest.NewLogger(t), &out))
	assert.Equal(t, "male,weight_mean\n0,56\n1,59\n", out.String())
}

func TestRunCompositeParallel(t *testing.T) {

	cfg := testConfig(t, "-target", "weight", "-by", "male,aids", "-workers", "3", "-chunk", "3")

	var out strings.Builder
	require.NoError(t, run(cfg, zaptest.NewLogger(t), &out))
	assert.Equal(t, "male,aids,weight_mean\n0,0,50\n0,1,62\n1,0,59\n1,1,59\n", out.String())
}

func TestRunCountFactor(t *testing.T) {

	cfg := testConfig(t, "-target", "cd4baseline", "-by", "male", "-fun", "count", "-order", "first")
	cfg.Factors = []factorDef{{Column: "male", Levels: []string{"0", "1"}, Labels: []string{"female", "male"}}}

	var out strings.Builder
	require.NoError(t, run(cfg, zaptest.NewLogger(t), &out))
	assert.Equal(t, "male,cd4baseline_count\nmale,4\nfemale,2\n", out.String())
}

func TestRunNoSkip(t *testing.T) {

	cfg := testConfig(t, "-target", "weight", "-by", "aids", "-skipna=false")

	var out strings.Builder
	require.NoError(t, run(cfg, zaptest.NewLogger(t), &out))
	assert.Equal(t, "aids,weight_mean\n0,\n1,60\n", out.String())
}

func TestRunParquet(t *testing.T) {

	path := filepath.Join(t.TempDir(), "out.parquet")
	cfg := testConfig(t, "-target", "weight", "-by", "male", "-out", path)
	require.NoError(t, run(cfg, zaptest.NewLogger(t), nil))
	assert.FileExists(t, path)
}

func TestRunCSVFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "out.csv")
	cfg := testConfig(t, "-target", "age", "-by", "death", "-fun", "max", "-out", path)
	require.NoError(t, run(cfg, zaptest.NewLogger(t), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "death,age_max\nfalse,49\ntrue,45\n", string(data))
}

func TestRunErrors(t *testing.T) {

	cfg := testConfig(t, "-target", "init.reg", "-by", "male")
	err := run(cfg, zaptest.NewLogger(t), new(strings.Builder))
	assert.ErrorIs(t, err, tabular.ErrTypeMismatch)

	cfg = testConfig(t, "-target", "weight", "-by", "sex")
	err = run(cfg, zaptest.NewLogger(t), new(strings.Builder))
	assert.ErrorIs(t, err, tabular.ErrInvalidColumn)

	cfg = testConfig(t, "-target", "weight", "-by", "male")
	cfg.Input = "no/such/file.csv"
	assert.Error(t, run(cfg, zaptest.NewLogger(t), new(strings.Builder)))
}

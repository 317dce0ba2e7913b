package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maskmeta/pkg/meta"
	"maskmeta/pkg/neighbors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "maskmeta.yaml", `
meta:
  radius: 2
  buildAdjacency: true
  accelerate: false
  metric: euclidean
processing:
  numCores: 3
log:
  verbose: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Meta.Radius)
	assert.True(t, cfg.Meta.BuildAdjacency)
	assert.False(t, cfg.Meta.Accelerate)
	assert.Equal(t, 3, cfg.Processing.NumCores)
	assert.True(t, cfg.Log.Verbose)

	opts, err := cfg.Options(nil)
	require.NoError(t, err)
	assert.Equal(t, neighbors.Euclidean, opts.Metric)
	assert.Equal(t, 3, opts.Workers)
}

func TestLoadConfigYAMLUnknownOption(t *testing.T) {
	path := writeFile(t, "bad.yaml", "meta:\n  radios: 2\n")
	_, err := LoadConfig(path)
	require.ErrorIs(t, err, meta.ErrUnknownOption)

	var oe *meta.OptionError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "radios", oe.Name)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "maskmeta.toml", `
[meta]
radius = 3
strategy = "kdtree"

[processing]
numCores = 2
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Meta.Radius)

	opts, err := cfg.Options(nil)
	require.NoError(t, err)
	f, err := opts.ExplicitFinder()
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, neighbors.KDTreeName, f.Name())
}

func TestLoadConfigTOMLLogKeys(t *testing.T) {
	path := writeFile(t, "maskmeta.toml", `
[log]
logfile = "maskmeta.log"
maxLogSize = 5
maxLogAge = 3
verbose = true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "maskmeta.log", cfg.Log.Logfile)
	assert.Equal(t, 5, cfg.Log.MaxSize)
	assert.Equal(t, 3, cfg.Log.MaxAge)
	assert.True(t, cfg.Log.Verbose)

	path = writeFile(t, "old.toml", "[log]\nmax_log_size = 5\n")
	_, err = LoadConfig(path)
	assert.ErrorIs(t, err, meta.ErrUnknownOption)
}

func TestLoadConfigTOMLUnknownOption(t *testing.T) {
	path := writeFile(t, "bad.toml", "[meta]\nbuild_adjacency = true\n")
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, meta.ErrUnknownOption)
	assert.Contains(t, err.Error(), "build_adjacency")
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Meta.Radius = 4
	cfg.Output.SlicesDir = "slices"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	def := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, CreateDefaultConfigFile(def))
	loaded, err = LoadConfig(def)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)
}

func TestConfigOptionsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Meta.Metric = "manhattan"
	_, err := cfg.Options(nil)
	assert.ErrorIs(t, err, meta.ErrInvalidOption)

	cfg = DefaultConfig()
	cfg.Meta.Strategy = "gpu"
	_, err = cfg.Options(nil)
	assert.ErrorIs(t, err, meta.ErrInvalidOption)

	cfg = DefaultConfig()
	cfg.Meta.Radius = 0
	_, err = cfg.Options(nil)
	assert.ErrorIs(t, err, meta.ErrInvalidOption)
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions("radius", "2", "BuildAdjacency", "true", "accelerate", "false", "metric", "sphere")
	require.NoError(t, err)
	assert.Equal(t, 2, opts.Radius)
	assert.True(t, opts.BuildAdjacency)
	assert.False(t, opts.Accelerate)
	assert.Equal(t, neighbors.Euclidean, opts.Metric)

	opts, err = ParseOptions()
	require.NoError(t, err)
	assert.Equal(t, meta.DefaultRadius, opts.Radius)
	assert.Equal(t, meta.DefaultAccelerate, opts.Accelerate)
}

func TestParseOptionsErrors(t *testing.T) {
	cases := []struct {
		name  string
		pairs []string
		want  error
	}{
		{"Unknown", []string{"radius", "1", "neighbourhood", "3"}, meta.ErrUnknownOption},
		{"BadRadius", []string{"radius", "zero"}, meta.ErrInvalidOption},
		{"NegativeRadius", []string{"radius", "-1"}, meta.ErrInvalidOption},
		{"BadBool", []string{"buildAdjacency", "maybe"}, meta.ErrInvalidOption},
		{"BadStrategy", []string{"strategy", "gpu"}, meta.ErrInvalidOption},
		{"Odd", []string{"radius"}, ErrOddPairs},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOptions(tc.pairs...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestApplyOptionsAtomic(t *testing.T) {
	opts := meta.DefaultOptions()
	err := ApplyOptions(&opts, "radius", "5", "bogus", "1")
	require.ErrorIs(t, err, meta.ErrUnknownOption)
	assert.Equal(t, meta.DefaultRadius, opts.Radius)
}

func TestSplitAssignments(t *testing.T) {
	pairs, err := SplitAssignments([]string{"radius=2", " metric = euclidean "})
	require.NoError(t, err)
	assert.Equal(t, []string{"radius", "2", "metric", "euclidean"}, pairs)

	_, err = SplitAssignments([]string{"radius"})
	assert.ErrorIs(t, err, meta.ErrInvalidOption)
}

func TestStrategyUsesFinalWorkers(t *testing.T) {
	for _, pairs := range [][]string{
		{"strategy", "parallel", "workers", "3"},
		{"workers", "3", "strategy", "parallel"},
	} {
		opts, err := ParseOptions(pairs...)
		require.NoError(t, err)
		f, err := opts.ExplicitFinder()
		require.NoError(t, err)
		assert.Equal(t, neighbors.Parallel{Workers: 3}, f, pairs)
	}
}

func TestConfigStrategyWithWorkerOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Meta.Strategy = "parallel"
	cfg.Processing.NumCores = 2
	opts, err := cfg.Options(nil)
	require.NoError(t, err)
	require.NoError(t, ApplyOptions(&opts, "workers", "8"))

	f, err := opts.ExplicitFinder()
	require.NoError(t, err)
	assert.Equal(t, neighbors.Parallel{Workers: 8}, f)
}

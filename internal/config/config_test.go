package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, 100_000, c.Benchmark.Iterations)
	assert.Equal(t, 10, c.Benchmark.Trials)
	assert.Equal(t, []string{PathFixed, PathGeneric}, c.Benchmark.Paths)
	assert.Equal(t, "gob", c.Benchmark.GenericCodec)
	assert.Equal(t, "shared", c.Random.Mode)
}

func TestLoad_EmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadYAML_Overrides(t *testing.T) {
	src := `
benchmark:
  iterations: 500
  paths: [generic]
  generic_codec: yaml
random:
  mode: reseed
  seed: 12
log:
  level: debug
`
	c, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 500, c.Benchmark.Iterations)
	assert.Equal(t, DefaultTrials, c.Benchmark.Trials, "unset keys keep their defaults")
	assert.Equal(t, []string{PathGeneric}, c.Benchmark.Paths)
	assert.Equal(t, "yaml", c.Benchmark.GenericCodec)
	assert.Equal(t, "reseed", c.Random.Mode)
	assert.EqualValues(t, 12, c.Random.Seed)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Encoding)
}

func TestLoadYAML_EmptyDocument(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadYAML_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":       "benchmark:\n  iterationz: 5\n",
		"zero iterations":   "benchmark:\n  iterations: 0\n",
		"negative trials":   "benchmark:\n  trials: -1\n",
		"no paths":          "benchmark:\n  paths: []\n",
		"unknown path":      "benchmark:\n  paths: [fixed, protobuf]\n",
		"duplicate path":    "benchmark:\n  paths: [fixed, fixed]\n",
		"unknown codec":     "benchmark:\n  generic_codec: msgpack\n",
		"unknown rand mode": "random:\n  mode: urandom\n",
		"unknown log level": "log:\n  level: loud\n",
		"malformed":         "benchmark: [\n",
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("benchmark:\n  trials: 3\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Benchmark.Trials)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

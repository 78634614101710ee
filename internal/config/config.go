package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeusync/floatbench/internal/core/codec/generic"
	"github.com/zeusync/floatbench/internal/core/observability/log"
	"github.com/zeusync/floatbench/internal/core/random"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIterations = 100_000
	DefaultTrials     = 10

	PathFixed   = "fixed"
	PathGeneric = "generic"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the full run configuration. Every field has a default, so an
// absent config file is equivalent to the built-in constants.
type Config struct {
	Benchmark BenchmarkConfig `json:"benchmark" yaml:"benchmark"`
	Random    RandomConfig    `json:"random" yaml:"random"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

type BenchmarkConfig struct {
	Iterations   int      `json:"iterations" yaml:"iterations"`
	Trials       int      `json:"trials" yaml:"trials"`
	Paths        []string `json:"paths" yaml:"paths"`
	GenericCodec string   `json:"generic_codec" yaml:"generic_codec"`
}

// RandomConfig controls the quaternion source. Seed 0 means time-seeded.
type RandomConfig struct {
	Mode string `json:"mode" yaml:"mode"`
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

type LogConfig struct {
	Level    string   `json:"level" yaml:"level"`
	Encoding string   `json:"encoding" yaml:"encoding"`
	Output   []string `json:"output,omitempty" yaml:"output,omitempty"`
}

func Default() *Config {
	return &Config{
		Benchmark: BenchmarkConfig{
			Iterations:   DefaultIterations,
			Trials:       DefaultTrials,
			Paths:        []string{PathFixed, PathGeneric},
			GenericCodec: generic.GobName,
		},
		Random: RandomConfig{
			Mode: string(random.ModeShared),
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
			Output:   []string{"stderr"},
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	c, err := LoadYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// LoadYAML loads config from YAML reader. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Benchmark.Iterations <= 0 {
		return fmt.Errorf("%w: benchmark.iterations must be positive, got %d", ErrInvalidConfig, c.Benchmark.Iterations)
	}
	if c.Benchmark.Trials <= 0 {
		return fmt.Errorf("%w: benchmark.trials must be positive, got %d", ErrInvalidConfig, c.Benchmark.Trials)
	}
	if len(c.Benchmark.Paths) == 0 {
		return fmt.Errorf("%w: benchmark.paths must name at least one path", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Benchmark.Paths))
	for _, p := range c.Benchmark.Paths {
		if p != PathFixed && p != PathGeneric {
			return fmt.Errorf("%w: unknown benchmark path %q", ErrInvalidConfig, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: benchmark path %q listed twice", ErrInvalidConfig, p)
		}
		seen[p] = true
	}

	if _, err := generic.ByName(c.Benchmark.GenericCodec); err != nil {
		return fmt.Errorf("%w: benchmark.generic_codec: %w", ErrInvalidConfig, err)
	}
	if _, err := random.ParseMode(c.Random.Mode); err != nil {
		return fmt.Errorf("%w: random.mode: %w", ErrInvalidConfig, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}

	return nil
}

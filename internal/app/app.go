// Package app assembles a benchmark run from configuration.
package app

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/zeusync/floatbench/internal/config"
	"github.com/zeusync/floatbench/internal/core/bench"
	"github.com/zeusync/floatbench/internal/core/codec/generic"
	"github.com/zeusync/floatbench/internal/core/observability/log"
	"github.com/zeusync/floatbench/internal/core/random"
)

// App is a fully wired benchmark run.
type App struct {
	config  *config.Config
	logger  log.Log
	harness *bench.Harness
	paths   []bench.Path
}

func New(cfg *config.Config, logger log.Log, harness *bench.Harness, paths []bench.Path) *App {
	return &App{
		config:  cfg,
		logger:  logger,
		harness: harness,
		paths:   paths,
	}
}

// Run executes every configured path and returns the per-path reports.
func (a *App) Run() ([]bench.PathReport, error) {
	names := make([]string, len(a.paths))
	for i, p := range a.paths {
		names[i] = p.Name()
	}

	opts := a.harness.Options()
	a.logger.Info("benchmark starting",
		log.Int("iterations", opts.Iterations),
		log.Int("trials", opts.Trials),
		log.Any("paths", names),
		log.String("random_mode", a.config.Random.Mode),
	)

	reports, err := a.harness.RunAll(a.paths...)
	if err != nil {
		a.logger.Error("benchmark aborted", log.Error(err))
		return reports, err
	}

	a.logger.Info("benchmark finished", log.Int("paths", len(reports)))
	return reports, nil
}

// ProvideLogger builds the run logger and tags it with a fresh run id.
func ProvideLogger(cfg *config.Config) (log.Log, func(), error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	logger, err := log.New(level, log.Options{
		Encoding:    cfg.Log.Encoding,
		OutputPaths: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() { _ = logger.Sync() }
	return logger.With(log.String("run_id", uuid.NewString())), cleanup, nil
}

func ProvideOptions(cfg *config.Config) bench.Options {
	return bench.Options{
		Iterations: cfg.Benchmark.Iterations,
		Trials:     cfg.Benchmark.Trials,
	}
}

// ProvideGenerator returns the quaternion source. A zero seed means time-seeded.
func ProvideGenerator(cfg *config.Config) (*random.Generator, error) {
	mode, err := random.ParseMode(cfg.Random.Mode)
	if err != nil {
		return nil, err
	}
	if cfg.Random.Seed == 0 {
		return random.NewWithMode(mode), nil
	}
	return random.NewWithSeed(cfg.Random.Seed, mode), nil
}

// ProvidePaths maps configured path names to benchmark paths, in order.
func ProvidePaths(cfg *config.Config) ([]bench.Path, error) {
	paths := make([]bench.Path, 0, len(cfg.Benchmark.Paths))
	for _, name := range cfg.Benchmark.Paths {
		switch name {
		case config.PathFixed:
			paths = append(paths, bench.NewFixedPath())
		case config.PathGeneric:
			c, err := generic.ByName(cfg.Benchmark.GenericCodec)
			if err != nil {
				return nil, err
			}
			paths = append(paths, bench.NewGenericPath(c))
		default:
			return nil, fmt.Errorf("%w: unknown benchmark path %q", config.ErrInvalidConfig, name)
		}
	}
	return paths, nil
}

// Package bench runs serialization paths for a fixed number of timed trials
// and prints one result line per trial.
package bench

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/zeusync/floatbench/internal/core/codec"
	"github.com/zeusync/floatbench/internal/core/codec/fixed"
	"github.com/zeusync/floatbench/internal/core/observability/log"
	"github.com/zeusync/floatbench/internal/core/random"
)

const (
	DefaultIterations = 100_000
	DefaultTrials     = 10

	separator = "\n---\n"
)

var ErrNoPaths = errors.New("no benchmark paths")

type Options struct {
	Iterations int
	Trials     int
}

func DefaultOptions() Options {
	return Options{Iterations: DefaultIterations, Trials: DefaultTrials}
}

// TrialResult is the outcome of one timed trial.
type TrialResult struct {
	Path        string
	Trial       int
	Iterations  int
	Elapsed     time.Duration
	Failures    int
	InputDigest uint64
}

// PathReport groups the trials of one path with their summary.
type PathReport struct {
	Path    string
	Trials  []TrialResult
	Summary Summary
}

type Harness struct {
	opts   Options
	out    io.Writer
	logger log.Log
	rng    *random.Generator
}

// NewHarness builds a harness writing result lines to out. Non-positive
// option values fall back to the defaults.
func NewHarness(opts Options, out io.Writer, logger log.Log, rng *random.Generator) *Harness {
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	if opts.Trials <= 0 {
		opts.Trials = DefaultTrials
	}
	if rng == nil {
		rng = random.Default()
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Harness{opts: opts, out: out, logger: logger, rng: rng}
}

func (h *Harness) Options() Options { return h.opts }

// RunAll runs every path in sequence, printing a header before each block and
// a separator between blocks.
func (h *Harness) RunAll(paths ...Path) ([]PathReport, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	reports := make([]PathReport, 0, len(paths))
	for i, p := range paths {
		if i > 0 {
			if _, err := fmt.Fprint(h.out, separator+"\n"); err != nil {
				return reports, fmt.Errorf("write separator: %w", err)
			}
		}
		if _, err := fmt.Fprintf(h.out, "Starting Serialize with %s ...\n", p.Name()); err != nil {
			return reports, fmt.Errorf("write header: %w", err)
		}

		trials, err := h.Run(p)
		report := PathReport{Path: p.Name(), Trials: trials, Summary: Summarize(trials)}
		reports = append(reports, report)
		if err != nil {
			return reports, err
		}

		h.logger.Info("path finished",
			log.String("path", report.Path),
			log.Int("trials", report.Summary.Trials),
			log.Duration("min", report.Summary.Min),
			log.Duration("max", report.Summary.Max),
			log.Duration("mean", report.Summary.Mean),
			log.Int("failures", report.Summary.Failures),
			log.Uint64("input_digest", report.Summary.InputDigest),
		)
	}
	return reports, nil
}

// Run executes Trials trials of p and prints "Result in ms: <n>" after each.
func (h *Harness) Run(p Path) ([]TrialResult, error) {
	results := make([]TrialResult, 0, h.opts.Trials)
	for trial := 1; trial <= h.opts.Trials; trial++ {
		res, err := h.runTrial(p, trial)
		if err != nil {
			return results, err
		}
		if _, err = fmt.Fprintf(h.out, "Result in ms: %d\n", res.Elapsed.Milliseconds()); err != nil {
			return results, fmt.Errorf("write result: %w", err)
		}

		h.logger.Debug("trial finished",
			log.String("path", res.Path),
			log.Int("trial", res.Trial),
			log.Int("iterations", res.Iterations),
			log.Duration("elapsed", res.Elapsed),
			log.Int("failures", res.Failures),
			log.Uint64("input_digest", res.InputDigest),
		)
		results = append(results, res)
	}
	return results, nil
}

func (h *Harness) runTrial(p Path, trial int) (TrialResult, error) {
	v := random.StandardVector()
	q := h.rng.Quaternion()

	res := TrialResult{
		Path:        p.Name(),
		Trial:       trial,
		Iterations:  h.opts.Iterations,
		InputDigest: fixed.Digest(fixed.Pack(v, q)),
	}

	if l, ok := p.(Looper); ok {
		start := time.Now()
		err := l.Loop(h.opts.Iterations, v, q)
		res.Elapsed = time.Since(start)
		if err != nil {
			return res, fmt.Errorf("%s: trial %d %w", p.Name(), trial, err)
		}
		return res, nil
	}

	policy := p.Policy()
	start := time.Now()
	for i := 0; i < h.opts.Iterations; i++ {
		if err := p.Cycle(v, q); err != nil {
			if policy == Abort {
				return res, fmt.Errorf("%s: trial %d iteration %d: %w", p.Name(), trial, i, err)
			}
			res.Failures++
			h.reportFailure(p, err)
		}
	}
	res.Elapsed = time.Since(start)

	return res, nil
}

func (h *Harness) reportFailure(p Path, err error) {
	msg := "Cycle Failed"
	switch codec.GetErrorCode(err) {
	case codec.ErrorCodeSerializationFailed:
		msg = "Serialization Failed"
	case codec.ErrorCodeDeserializationFailed:
		msg = "Deserialization Failed"
	}
	h.logger.Warn(msg, log.String("path", p.Name()), log.Error(err))
}

package bench

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/floatbench/internal/core/codec"
	"github.com/zeusync/floatbench/internal/core/codec/generic"
	"github.com/zeusync/floatbench/internal/core/observability/log"
	"github.com/zeusync/floatbench/internal/core/random"
	"github.com/zeusync/floatbench/internal/core/systems/physics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingPath struct {
	name   string
	policy FailurePolicy
	// failEvery makes every n-th call (1-based) return err. Zero never fails.
	failEvery int
	err       error

	calls       int
	vectors     []physics.Vector3
	quaternions []physics.Quaternion
}

func (p *countingPath) Name() string          { return p.name }
func (p *countingPath) Policy() FailurePolicy { return p.policy }

func (p *countingPath) Cycle(v physics.Vector3, q physics.Quaternion) error {
	p.calls++
	p.vectors = append(p.vectors, v)
	p.quaternions = append(p.quaternions, q)
	if p.failEvery > 0 && p.calls%p.failEvery == 0 {
		return p.err
	}
	return nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func newTestHarness(n, r int, out *bytes.Buffer, logger log.Log) *Harness {
	return NewHarness(Options{Iterations: n, Trials: r}, out, logger, random.New(1))
}

func TestHarness_RunCountsIterationsAndTrials(t *testing.T) {
	var out bytes.Buffer
	p := &countingPath{name: "counting", policy: Abort}

	results, err := newTestHarness(1000, 4, &out, nil).Run(p)
	require.NoError(t, err)

	assert.Equal(t, 4000, p.calls)
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, i+1, r.Trial)
		assert.Equal(t, 1000, r.Iterations)
		assert.GreaterOrEqual(t, r.Elapsed, time.Duration(0))
		assert.Zero(t, r.Failures)
		assert.Equal(t, "counting", r.Path)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.Regexp(t, `^Result in ms: \d+$`, l)
	}
}

func TestHarness_SetupOncePerTrial(t *testing.T) {
	p := &countingPath{name: "setup", policy: Abort}
	const n, r = 50, 3

	_, err := newTestHarness(n, r, &bytes.Buffer{}, nil).Run(p)
	require.NoError(t, err)
	require.Len(t, p.quaternions, n*r)

	for trial := 0; trial < r; trial++ {
		first := p.quaternions[trial*n]
		for i := trial * n; i < (trial+1)*n; i++ {
			require.True(t, first.BitEqual(p.quaternions[i]), "quaternion changed within trial %d", trial)
			require.Equal(t, random.StandardVector(), p.vectors[i])
		}
	}
	assert.False(t, p.quaternions[0].BitEqual(p.quaternions[n]), "each trial draws a new quaternion")
}

func TestHarness_ReportPolicyAbsorbsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := log.NewFromZap(zap.New(core), log.LevelDebug)

	p := &countingPath{
		name:      "flaky",
		policy:    Report,
		failEvery: 2,
		err:       codec.SerializationFailed("gob", errors.New("type not registered")),
	}

	results, err := newTestHarness(10, 2, &bytes.Buffer{}, logger).Run(p)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 20, p.calls)
	assert.Equal(t, 5, results[0].Failures)
	assert.Equal(t, 5, results[1].Failures)

	failures := logs.FilterMessage("Serialization Failed")
	assert.Equal(t, 10, failures.Len())
	assert.Equal(t, "flaky", failures.All()[0].ContextMap()["path"])
}

func TestHarness_ReportPolicyDeserializationMessage(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := log.NewFromZap(zap.New(core), log.LevelDebug)

	p := &countingPath{
		name:      "corrupt",
		policy:    Report,
		failEvery: 1,
		err:       codec.DeserializationFailed("gob", errors.New("unexpected EOF")),
	}

	_, err := newTestHarness(3, 1, &bytes.Buffer{}, logger).Run(p)
	require.NoError(t, err)
	assert.Equal(t, 3, logs.FilterMessage("Deserialization Failed").Len())
}

func TestHarness_AbortPolicyStopsTrial(t *testing.T) {
	var out bytes.Buffer
	p := &countingPath{
		name:      "broken",
		policy:    Abort,
		failEvery: 4,
		err:       codec.LengthMismatch("fixed", 27, 28),
	}

	results, err := newTestHarness(100, 3, &out, nil).Run(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrLengthMismatch)
	assert.Contains(t, err.Error(), "broken: trial 1 iteration 3")
	assert.Equal(t, 4, p.calls)
	assert.Empty(t, results)
	assert.Empty(t, out.String())
}

func TestHarness_RunAllOutputFormat(t *testing.T) {
	var out bytes.Buffer
	h := newTestHarness(5, 3, &out, nil)

	reports, err := h.RunAll(
		&countingPath{name: "first", policy: Abort},
		&countingPath{name: "second", policy: Report},
	)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "first", reports[0].Path)
	assert.Equal(t, 3, reports[1].Summary.Trials)

	normalized := regexp.MustCompile(`Result in ms: \d+`).ReplaceAllString(out.String(), "Result in ms: N")
	want := "Starting Serialize with first ...\n" +
		"Result in ms: N\nResult in ms: N\nResult in ms: N\n" +
		"\n---\n\n" +
		"Starting Serialize with second ...\n" +
		"Result in ms: N\nResult in ms: N\nResult in ms: N\n"
	assert.Equal(t, want, normalized)
}

func TestHarness_RunAllRealPaths(t *testing.T) {
	var out bytes.Buffer
	h := newTestHarness(200, 2, &out, nil)

	reports, err := h.RunAll(NewFixedPath(), NewGenericPath(generic.Gob{}), NewGenericPath(generic.YAML{}))
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "fixed-layout", reports[0].Path)
	assert.Equal(t, "generic/gob", reports[1].Path)
	assert.Equal(t, "generic/yaml", reports[2].Path)
	for _, r := range reports {
		require.Len(t, r.Trials, 2)
		assert.Zero(t, r.Summary.Failures, r.Path)
	}
	assert.Equal(t, 6, strings.Count(out.String(), "Result in ms: "))
	assert.Equal(t, 2, strings.Count(out.String(), "---"))
}

func TestHarness_RunAllErrors(t *testing.T) {
	h := newTestHarness(1, 1, &bytes.Buffer{}, nil)
	_, err := h.RunAll()
	assert.ErrorIs(t, err, ErrNoPaths)

	h = NewHarness(Options{Iterations: 1, Trials: 1}, failingWriter{}, nil, random.New(1))
	_, err = h.RunAll(NewFixedPath())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write header")
}

func TestNewHarness_Defaults(t *testing.T) {
	h := NewHarness(Options{}, &bytes.Buffer{}, nil, nil)
	assert.Equal(t, DefaultOptions(), h.Options())
	assert.Equal(t, 100_000, h.Options().Iterations)
	assert.Equal(t, 10, h.Options().Trials)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	s := Summarize([]TrialResult{
		{Elapsed: 30 * time.Millisecond, Failures: 1},
		{Elapsed: 10 * time.Millisecond},
		{Elapsed: 20 * time.Millisecond, Failures: 2},
	})
	assert.Equal(t, 3, s.Trials)
	assert.Equal(t, 10*time.Millisecond, s.Min)
	assert.Equal(t, 30*time.Millisecond, s.Max)
	assert.Equal(t, 20*time.Millisecond, s.Mean)
	assert.Equal(t, 3, s.Failures)
}

func TestFixedPath_Cycle(t *testing.T) {
	p := NewFixedPath()
	assert.Equal(t, Abort, p.Policy())
	require.NoError(t, p.Cycle(random.StandardVector(), physics.Identity()))
	assert.Equal(t, random.StandardVector(), sinkVector)
	assert.Equal(t, physics.Identity(), sinkQuaternion)
}

func TestGenericPath_Cycle(t *testing.T) {
	p := NewGenericPath(generic.Gob{})
	assert.Equal(t, Report, p.Policy())
	assert.Equal(t, "report", p.Policy().String())
	require.NoError(t, p.Cycle(random.StandardVector(), physics.Identity()))
	require.Len(t, sinkValues, 2)
}

type loopingPath struct {
	countingPath
	loops   []int
	loopErr error
}

func (p *loopingPath) Loop(n int, v physics.Vector3, q physics.Quaternion) error {
	p.loops = append(p.loops, n)
	p.vectors = append(p.vectors, v)
	p.quaternions = append(p.quaternions, q)
	return p.loopErr
}

func TestHarness_LooperRunsWholeTrial(t *testing.T) {
	var out bytes.Buffer
	p := &loopingPath{countingPath: countingPath{name: "looping", policy: Abort}}

	results, err := newTestHarness(500, 3, &out, nil).Run(p)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Zero(t, p.calls, "Cycle must not be called for a Looper")
	assert.Equal(t, []int{500, 500, 500}, p.loops)
	for _, v := range p.vectors {
		assert.Equal(t, random.StandardVector(), v)
	}
	assert.Equal(t, 3, strings.Count(out.String(), "Result in ms: "))
}

func TestHarness_LooperErrorAborts(t *testing.T) {
	var out bytes.Buffer
	p := &loopingPath{
		countingPath: countingPath{name: "looping", policy: Report},
		loopErr:      fmt.Errorf("iteration 7: %w", codec.LengthMismatch("fixed", 27, 28)),
	}

	results, err := newTestHarness(10, 2, &out, nil).Run(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrLengthMismatch)
	assert.Contains(t, err.Error(), "looping: trial 1 iteration 7")
	assert.Empty(t, results)
	assert.Empty(t, out.String())
}

func TestFixedPath_Loop(t *testing.T) {
	var p Path = NewFixedPath()
	l, ok := p.(Looper)
	require.True(t, ok, "FixedPath must run its own loop")

	q := physics.NewQuaternion(0.5, -1e-30, 3e38, float32(math.Inf(-1)))
	require.NoError(t, l.Loop(100, random.StandardVector(), q))
	assert.Equal(t, random.StandardVector(), sinkVector)
	assert.True(t, q.BitEqual(sinkQuaternion))

	require.NoError(t, l.Loop(0, random.StandardVector(), q))
}

func TestSummarize_InputDigest(t *testing.T) {
	trials := []TrialResult{{InputDigest: 1}, {InputDigest: 2}, {InputDigest: 3}}

	s := Summarize(trials)
	assert.NotZero(t, s.InputDigest)
	assert.Equal(t, s.InputDigest, Summarize(trials).InputDigest)

	reordered := []TrialResult{{InputDigest: 3}, {InputDigest: 2}, {InputDigest: 1}}
	assert.NotEqual(t, s.InputDigest, Summarize(reordered).InputDigest)
	assert.NotEqual(t, s.InputDigest, Summarize(trials[:2]).InputDigest)
}

func TestHarness_SummaryDigestTracesInputs(t *testing.T) {
	run := func(seed uint64) Summary {
		h := NewHarness(Options{Iterations: 10, Trials: 4}, &bytes.Buffer{}, nil, random.New(seed))
		reports, err := h.RunAll(NewFixedPath())
		require.NoError(t, err)
		return reports[0].Summary
	}

	assert.Equal(t, run(11).InputDigest, run(11).InputDigest)
	assert.NotEqual(t, run(11).InputDigest, run(12).InputDigest)

	core, logs := observer.New(zapcore.InfoLevel)
	logger := log.NewFromZap(zap.New(core), log.LevelInfo)
	h := NewHarness(Options{Iterations: 10, Trials: 2}, &bytes.Buffer{}, logger, random.New(11))
	reports, err := h.RunAll(NewFixedPath())
	require.NoError(t, err)

	finished := logs.FilterMessage("path finished").All()
	require.Len(t, finished, 1)
	assert.EqualValues(t, reports[0].Summary.InputDigest, finished[0].ContextMap()["input_digest"])
}

package bench

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Summary aggregates the trials of one path.
type Summary struct {
	Trials   int
	Min      time.Duration
	Max      time.Duration
	Mean     time.Duration
	Failures int
	// InputDigest hashes the trial input digests in trial order. Two runs
	// that fed a path the same inputs share it.
	InputDigest uint64
}

func Summarize(results []TrialResult) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	s := Summary{
		Trials: len(results),
		Min:    results[0].Elapsed,
		Max:    results[0].Elapsed,
	}
	var (
		total time.Duration
		buf   [8]byte
	)
	d := xxhash.New()
	for _, r := range results {
		s.Min = min(s.Min, r.Elapsed)
		s.Max = max(s.Max, r.Elapsed)
		s.Failures += r.Failures
		total += r.Elapsed

		binary.LittleEndian.PutUint64(buf[:], r.InputDigest)
		_, _ = d.Write(buf[:])
	}
	s.Mean = total / time.Duration(len(results))
	s.InputDigest = d.Sum64()
	return s
}

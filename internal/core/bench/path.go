package bench

import (
	"fmt"

	"github.com/zeusync/floatbench/internal/core/codec/fixed"
	"github.com/zeusync/floatbench/internal/core/systems/physics"
	"github.com/zeusync/floatbench/pkg/encoding"
)

// FailurePolicy decides what the harness does when a cycle returns an error.
type FailurePolicy uint8

const (
	// Abort stops the trial and surfaces the error to the caller.
	Abort FailurePolicy = iota
	// Report logs the error, counts it and moves on to the next iteration.
	Report
)

func (p FailurePolicy) String() string {
	switch p {
	case Abort:
		return "abort"
	case Report:
		return "report"
	default:
		return "unknown"
	}
}

// Path is one serialization strategy under measurement. Cycle performs a
// single encode+decode of its inputs and discards the result.
type Path interface {
	Name() string
	Policy() FailurePolicy
	Cycle(v physics.Vector3, q physics.Quaternion) error
}

// Looper is implemented by paths that run the whole timed loop themselves,
// so the harness does not dispatch through Path once per iteration. Any error
// returned by Loop aborts the trial.
type Looper interface {
	Loop(n int, v physics.Vector3, q physics.Quaternion) error
}

var (
	sinkVector     physics.Vector3
	sinkQuaternion physics.Quaternion
	sinkValues     []any
)

// FixedPath measures fixed.Pack followed by fixed.Unpack. Buffers are
// allocated per cycle on purpose; that cost is part of the measurement.
type FixedPath struct{}

func NewFixedPath() FixedPath { return FixedPath{} }

func (FixedPath) Name() string { return "fixed-layout" }

// Policy is Abort: an unpack failure means the codec itself is broken.
func (FixedPath) Policy() FailurePolicy { return Abort }

func (FixedPath) Cycle(v physics.Vector3, q physics.Quaternion) error {
	dv, dq, err := fixed.Unpack(fixed.Pack(v, q))
	if err != nil {
		return err
	}
	sinkVector, sinkQuaternion = dv, dq
	return nil
}

// Loop runs n pack/unpack cycles with static calls only.
func (FixedPath) Loop(n int, v physics.Vector3, q physics.Quaternion) error {
	var (
		dv  physics.Vector3
		dq  physics.Quaternion
		err error
	)
	for i := 0; i < n; i++ {
		dv, dq, err = fixed.Unpack(fixed.Pack(v, q))
		if err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
	}
	sinkVector, sinkQuaternion = dv, dq
	return nil
}

// GenericPath measures a structured codec on the same inputs, wrapped in a
// heterogeneous value list.
type GenericPath struct {
	codec encoding.StructuredCodec
}

func NewGenericPath(codec encoding.StructuredCodec) GenericPath {
	return GenericPath{codec: codec}
}

func (p GenericPath) Name() string { return "generic/" + p.codec.Name() }

func (GenericPath) Policy() FailurePolicy { return Report }

func (p GenericPath) Cycle(v physics.Vector3, q physics.Quaternion) error {
	data, err := p.codec.Serialize([]any{v, q})
	if err != nil {
		return err
	}
	values, err := p.codec.Deserialize(data)
	if err != nil {
		return err
	}
	sinkValues = values
	return nil
}

// Package fixed packs a Vector3 and a Quaternion into a fixed 28 byte layout.
//
// Layout (little-endian IEEE-754 binary32, 4 bytes per field):
//
//	offset  0: v.X   offset  4: v.Y   offset  8: v.Z
//	offset 12: q.W   offset 16: q.X   offset 20: q.Y   offset 24: q.Z
//
// Values are reinterpreted bit for bit, so NaN payloads, infinities, signed
// zeros and subnormals survive a round trip unchanged.
package fixed

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/floatbench/internal/core/codec"
	"github.com/zeusync/floatbench/internal/core/systems/physics"
)

const (
	// Name identifies this codec in errors and logs.
	Name = "fixed"

	// Fields is the number of float32 values in one frame.
	Fields = 7

	// FloatSize is the encoded width of a single field.
	FloatSize = 4

	// Size is the exact length of a packed frame.
	Size = Fields * FloatSize
)

// Pack lays out v and q in wire order and returns a freshly allocated
// Size-byte buffer.
func Pack(v physics.Vector3, q physics.Quaternion) []byte {
	source := [Fields]float32{v.X, v.Y, v.Z, q.W, q.X, q.Y, q.Z}

	buf := make([]byte, Size)
	for i, f := range source {
		binary.LittleEndian.PutUint32(buf[i*FloatSize:], math.Float32bits(f))
	}
	return buf
}

// Unpack reverses Pack. It fails with codec.ErrLengthMismatch unless b is
// exactly Size bytes long.
func Unpack(b []byte) (physics.Vector3, physics.Quaternion, error) {
	if len(b) != Size {
		return physics.Vector3{}, physics.Quaternion{}, codec.LengthMismatch(Name, len(b), Size)
	}

	var target [Fields]float32
	for i := range target {
		target[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*FloatSize:]))
	}

	v := physics.Vector3{X: target[0], Y: target[1], Z: target[2]}
	q := physics.Quaternion{W: target[3], X: target[4], Y: target[5], Z: target[6]}
	return v, q, nil
}

// Digest fingerprints a packed frame. Two frames share a digest only if their
// inputs were bit-identical (modulo hash collisions).
func Digest(b []byte) uint64 {
	return xxhash.Sum64(b)
}

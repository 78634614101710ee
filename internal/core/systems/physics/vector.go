// Package physics holds the small value types exchanged between simulation
// and the wire: a float32 position vector and a float32 rotation quaternion.
package physics

import "math"

// Vector3 is a 3D vector with single-precision components.
type Vector3 struct {
	X, Y, Z float32
}

func NewVector3(x, y, z float32) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// Components returns the fields in wire order.
func (v Vector3) Components() [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

// BitEqual reports whether both vectors carry identical IEEE-754 bit patterns.
// Unlike ==, NaN payloads compare equal to themselves and 0 differs from -0.
func (v Vector3) BitEqual(o Vector3) bool {
	return math.Float32bits(v.X) == math.Float32bits(o.X) &&
		math.Float32bits(v.Y) == math.Float32bits(o.Y) &&
		math.Float32bits(v.Z) == math.Float32bits(o.Z)
}

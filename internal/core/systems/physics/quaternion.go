package physics

import "math"

// Quaternion is a rotation in w + xi + yj + zk form with single-precision components.
type Quaternion struct {
	W, X, Y, Z float32
}

func NewQuaternion(w, x, y, z float32) Quaternion { return Quaternion{W: w, X: x, Y: y, Z: z} }

// Identity is the no-rotation quaternion.
func Identity() Quaternion { return Quaternion{W: 1} }

// Components returns the fields in wire order.
func (q Quaternion) Components() [4]float32 { return [4]float32{q.W, q.X, q.Y, q.Z} }

func (q Quaternion) BitEqual(o Quaternion) bool {
	return math.Float32bits(q.W) == math.Float32bits(o.W) &&
		math.Float32bits(q.X) == math.Float32bits(o.X) &&
		math.Float32bits(q.Y) == math.Float32bits(o.Y) &&
		math.Float32bits(q.Z) == math.Float32bits(o.Z)
}

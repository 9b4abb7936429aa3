package physics

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// QuatIdentity is the no-rotation orientation.
var QuatIdentity = quat.Number{Real: 1}

// QuatFromAxisAngle builds a unit quaternion rotating angle radians about axis.
// The axis does not need to be normalized.
func QuatFromAxisAngle(axis r3.Vec, angle float64) quat.Number {
	n := r3.Norm(axis)
	if n == 0 {
		return QuatIdentity
	}
	s := math.Sin(angle/2) / n
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

// Rotate applies the rotation q to vector v.
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vec{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// RotateInv applies the inverse of rotation q to vector v.
// q must be unit length.
func RotateInv(q quat.Number, v r3.Vec) r3.Vec {
	return Rotate(quat.Conj(q), v)
}

// integrateOrientation advances q by angular velocity w over dt and renormalizes.
// Uses the standard first-order update q' = q + (dt/2)·w⊗q.
func integrateOrientation(q quat.Number, w r3.Vec, dt float64) quat.Number {
	wq := quat.Number{Imag: w.X, Jmag: w.Y, Kmag: w.Z}
	dq := quat.Scale(dt/2, quat.Mul(wq, q))
	q = quat.Add(q, dq)
	n := quat.Abs(q)
	if n == 0 {
		return QuatIdentity
	}
	return quat.Scale(1/n, q)
}

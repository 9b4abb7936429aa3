package physics

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Body is a rigid body. Mass 0 marks a static body: it is never integrated
// and acts as an immovable collider (boundaries). Dynamic bodies are
// integrated every fixed step.
type Body struct {
	Shape    Shape
	Material string

	Mass    float64
	InvMass float64

	Position    r3.Vec
	Orientation quat.Number

	Velocity        r3.Vec
	AngularVelocity r3.Vec

	// Per-second multiplicative velocity decay, both in [0,1).
	LinearDamping  float64
	AngularDamping float64

	// Inverse of the diagonal local inertia tensor. Zero for static bodies.
	invInertia r3.Vec
}

// NewBody creates a body with the given shape, mass and material tag.
// mass 0 creates a static body. The local inertia tensor is derived from the
// shape: exact for spheres and boxes, bounding-box approximation for hulls.
func NewBody(shape Shape, mass float64, material string) *Body {
	b := &Body{
		Shape:       shape,
		Material:    material,
		Mass:        mass,
		Orientation: QuatIdentity,
	}
	if mass > 0 {
		b.InvMass = 1 / mass
		b.invInertia = invInertiaFor(shape, mass)
	}
	return b
}

// Dynamic reports whether the body is integrated by the world.
func (b *Body) Dynamic() bool { return b.Mass > 0 }

// invInertiaFor returns the inverse diagonal inertia tensor for a shape.
func invInertiaFor(shape Shape, mass float64) r3.Vec {
	switch s := shape.(type) {
	case Sphere:
		// Solid sphere: I = 2/5·m·r² on every axis.
		i := 2.0 / 5.0 * mass * s.Radius * s.Radius
		if i == 0 {
			return r3.Vec{}
		}
		return r3.Vec{X: 1 / i, Y: 1 / i, Z: 1 / i}
	case *Box:
		return boxInvInertia(s.HalfExtents, mass)
	case *Hull:
		// Bounding-box approximation; close enough for a decorative toy.
		var he r3.Vec
		for _, v := range s.Vertices {
			if a := abs(v.X); a > he.X {
				he.X = a
			}
			if a := abs(v.Y); a > he.Y {
				he.Y = a
			}
			if a := abs(v.Z); a > he.Z {
				he.Z = a
			}
		}
		return boxInvInertia(he, mass)
	default:
		// Planes and unknown shapes are only used for statics.
		return r3.Vec{}
	}
}

// boxInvInertia is the solid box tensor: I_x = m/12·(h_y²+h_z²) etc.,
// with h the full extents.
func boxInvInertia(half r3.Vec, mass float64) r3.Vec {
	x2 := 4 * half.X * half.X
	y2 := 4 * half.Y * half.Y
	z2 := 4 * half.Z * half.Z
	ix := mass / 12 * (y2 + z2)
	iy := mass / 12 * (x2 + z2)
	iz := mass / 12 * (x2 + y2)
	inv := r3.Vec{}
	if ix > 0 {
		inv.X = 1 / ix
	}
	if iy > 0 {
		inv.Y = 1 / iy
	}
	if iz > 0 {
		inv.Z = 1 / iz
	}
	return inv
}

// applyInvInertia maps an angular impulse (world space) to an angular
// velocity change: rotate into local frame, scale by the diagonal inverse
// tensor, rotate back.
func (b *Body) applyInvInertia(l r3.Vec) r3.Vec {
	local := RotateInv(b.Orientation, l)
	local = r3.Vec{
		X: local.X * b.invInertia.X,
		Y: local.Y * b.invInertia.Y,
		Z: local.Z * b.invInertia.Z,
	}
	return Rotate(b.Orientation, local)
}

// applyImpulse applies an impulse at offset r from the center of mass.
func (b *Body) applyImpulse(impulse, r r3.Vec) {
	if !b.Dynamic() {
		return
	}
	b.Velocity = r3.Add(b.Velocity, r3.Scale(b.InvMass, impulse))
	b.AngularVelocity = r3.Add(b.AngularVelocity, b.applyInvInertia(r3.Cross(r, impulse)))
}

// velocityAt returns the velocity of the material point at offset r from the
// center of mass.
func (b *Body) velocityAt(r r3.Vec) r3.Vec {
	return r3.Add(b.Velocity, r3.Cross(b.AngularVelocity, r))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

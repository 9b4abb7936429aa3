// Package physics implements a small 3D rigid-body simulation: spheres,
// boxes, planes and convex hulls stepped at a fixed cadence inside a set of
// static boundaries, with an externally driven gravity vector.
package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Shape is a collision shape attached to a body.
type Shape interface {
	// BoundingRadius returns the radius of a sphere centered at the body
	// origin that encloses the shape. Planes are unbounded and return +Inf.
	BoundingRadius() float64
}

// polyhedron is the shared collision view of Box and Hull: a set of local
// vertices plus outward unit face normals. The narrow phase treats both
// through this interface.
type polyhedron interface {
	Shape
	localVertices() []r3.Vec
	localFaceNormals() []r3.Vec
}

// Plane is an infinite half-space. The inward normal (the direction kept
// clear of penetration) is the body orientation applied to local +Y, so an
// unrotated plane is a ground plane.
type Plane struct{}

func (Plane) BoundingRadius() float64 { return math.Inf(1) }

// planeLocalNormal is the inward normal of an unrotated Plane.
var planeLocalNormal = r3.Vec{Y: 1}

// Sphere is a ball of the given radius.
type Sphere struct {
	Radius float64
}

func (s Sphere) BoundingRadius() float64 { return s.Radius }

// Box is an axis-aligned box in local space with the given half extents.
type Box struct {
	HalfExtents r3.Vec

	corners []r3.Vec
	normals []r3.Vec
}

// NewBox creates a box shape and precomputes its corners and face normals.
func NewBox(halfExtents r3.Vec) *Box {
	b := &Box{HalfExtents: halfExtents}
	h := halfExtents
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				b.corners = append(b.corners, r3.Vec{X: sx * h.X, Y: sy * h.Y, Z: sz * h.Z})
			}
		}
	}
	b.normals = []r3.Vec{
		{X: 1}, {X: -1},
		{Y: 1}, {Y: -1},
		{Z: 1}, {Z: -1},
	}
	return b
}

func (b *Box) BoundingRadius() float64 { return r3.Norm(b.HalfExtents) }

func (b *Box) localVertices() []r3.Vec    { return b.corners }
func (b *Box) localFaceNormals() []r3.Vec { return b.normals }

// worldVertices returns the polyhedron's vertices transformed by the body pose.
func worldVertices(p polyhedron, b *Body) []r3.Vec {
	local := p.localVertices()
	out := make([]r3.Vec, len(local))
	for i, v := range local {
		out[i] = r3.Add(b.Position, Rotate(b.Orientation, v))
	}
	return out
}

// worldFaceNormals returns the polyhedron's face normals rotated by the body pose.
func worldFaceNormals(p polyhedron, b *Body) []r3.Vec {
	local := p.localFaceNormals()
	out := make([]r3.Vec, len(local))
	for i, n := range local {
		out[i] = Rotate(b.Orientation, n)
	}
	return out
}

package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Contact is a single penetration constraint between two bodies.
// Normal is unit length and points from A into B; Depth is positive while
// the shapes overlap.
type Contact struct {
	A, B   *Body
	Point  r3.Vec
	Normal r3.Vec
	Depth  float64
}

// shapeRank orders shapes so the narrow phase only handles one ordering of
// each pair: plane < sphere < polyhedron.
func shapeRank(s Shape) int {
	switch s.(type) {
	case Plane:
		return 0
	case Sphere:
		return 1
	default:
		return 2
	}
}

// collide appends the contacts between two bodies to dst and returns it.
// Pairs with no overlap append nothing. Unsupported pairs (plane-plane)
// produce no contacts.
func collide(dst []Contact, a, b *Body) []Contact {
	if shapeRank(a.Shape) > shapeRank(b.Shape) {
		a, b = b, a
	}
	switch sa := a.Shape.(type) {
	case Plane:
		switch sb := b.Shape.(type) {
		case Sphere:
			return collidePlaneSphere(dst, a, b, sb)
		case polyhedron:
			return collidePlanePoly(dst, a, b, sb)
		}
	case Sphere:
		switch sb := b.Shape.(type) {
		case Sphere:
			return collideSphereSphere(dst, a, sa, b, sb)
		case polyhedron:
			return collideSpherePoly(dst, a, sa, b, sb)
		}
	case polyhedron:
		if sb, ok := b.Shape.(polyhedron); ok {
			return collidePolyPoly(dst, a, sa, b, sb)
		}
	}
	return dst
}

// planeNormal returns the world inward normal of the plane body.
func planeNormal(plane *Body) r3.Vec {
	return Rotate(plane.Orientation, planeLocalNormal)
}

func collidePlaneSphere(dst []Contact, plane, sphere *Body, s Sphere) []Contact {
	n := planeNormal(plane)
	d := r3.Dot(r3.Sub(sphere.Position, plane.Position), n)
	if d >= s.Radius {
		return dst
	}
	return append(dst, Contact{
		A:      plane,
		B:      sphere,
		Point:  r3.Sub(sphere.Position, r3.Scale(s.Radius, n)),
		Normal: n,
		Depth:  s.Radius - d,
	})
}

// collidePlanePoly emits one contact per penetrating vertex, giving the
// solver a multi-point manifold for stable resting contact.
func collidePlanePoly(dst []Contact, plane, body *Body, p polyhedron) []Contact {
	n := planeNormal(plane)
	for _, v := range worldVertices(p, body) {
		d := r3.Dot(r3.Sub(v, plane.Position), n)
		if d >= 0 {
			continue
		}
		dst = append(dst, Contact{
			A:      plane,
			B:      body,
			Point:  v,
			Normal: n,
			Depth:  -d,
		})
	}
	return dst
}

func collideSphereSphere(dst []Contact, a *Body, sa Sphere, b *Body, sb Sphere) []Contact {
	delta := r3.Sub(b.Position, a.Position)
	dist := r3.Norm(delta)
	if dist >= sa.Radius+sb.Radius {
		return dst
	}
	n := r3.Vec{Y: 1} // coincident centers: any axis works
	if dist > 0 {
		n = r3.Scale(1/dist, delta)
	}
	return append(dst, Contact{
		A:      a,
		B:      b,
		Point:  r3.Add(a.Position, r3.Scale(sa.Radius, n)),
		Normal: n,
		Depth:  sa.Radius + sb.Radius - dist,
	})
}

// collideSpherePoly tests the sphere center against the polyhedron's face
// planes. If the center is within the radius of every face plane, the least
// penetrated face provides the contact. Corners and edges are approximated
// by their adjacent faces; the error is small at toy penetration depths.
func collideSpherePoly(dst []Contact, sphere *Body, s Sphere, body *Body, p polyhedron) []Contact {
	center := RotateInv(body.Orientation, r3.Sub(sphere.Position, body.Position))

	best := math.Inf(-1)
	bestIdx := -1
	for i, fp := range localFacePlanes(p) {
		d := r3.Dot(r3.Sub(center, fp.Point), fp.Normal)
		if d >= s.Radius {
			return dst // separated by this face
		}
		if d > best {
			best = d
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return dst
	}
	n := Rotate(body.Orientation, localFacePlanes(p)[bestIdx].Normal)
	// Normal points from the polyhedron toward the sphere; flip so it runs
	// A (sphere) into B (polyhedron).
	return append(dst, Contact{
		A:      sphere,
		B:      body,
		Point:  r3.Sub(sphere.Position, r3.Scale(s.Radius, n)),
		Normal: r3.Scale(-1, n),
		Depth:  s.Radius - best,
	})
}

// collidePolyPoly runs a separating-axis test over the world face normals of
// both polyhedra and emits one contact at the deepest vertex. Edge-edge axes
// are omitted; the occasional missed edge contact shows as slightly softer
// corner collisions, acceptable here.
func collidePolyPoly(dst []Contact, a *Body, pa polyhedron, b *Body, pb polyhedron) []Contact {
	va := worldVertices(pa, a)
	vb := worldVertices(pb, b)

	axes := worldFaceNormals(pa, a)
	axes = append(axes, worldFaceNormals(pb, b)...)

	minOverlap := math.Inf(1)
	var axis r3.Vec
	for _, ax := range axes {
		minA, maxA := project(va, ax)
		minB, maxB := project(vb, ax)
		overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
		if overlap <= 0 {
			return dst
		}
		if overlap < minOverlap {
			minOverlap = overlap
			axis = ax
		}
	}

	// Orient the axis from A toward B.
	if r3.Dot(r3.Sub(centroid(vb), centroid(va)), axis) < 0 {
		axis = r3.Scale(-1, axis)
	}

	// Deepest vertex of B along -axis is the point furthest into A.
	point := vb[0]
	minProj := math.Inf(1)
	for _, v := range vb {
		if p := r3.Dot(v, axis); p < minProj {
			minProj = p
			point = v
		}
	}

	return append(dst, Contact{
		A:      a,
		B:      b,
		Point:  point,
		Normal: axis,
		Depth:  minOverlap,
	})
}

// facePlane is a polyhedron face in local space.
type facePlane struct {
	Normal r3.Vec // unit, outward
	Point  r3.Vec // any point on the face
}

func localFacePlanes(p polyhedron) []facePlane {
	switch s := p.(type) {
	case *Box:
		h := s.HalfExtents
		return []facePlane{
			{Normal: r3.Vec{X: 1}, Point: r3.Vec{X: h.X}},
			{Normal: r3.Vec{X: -1}, Point: r3.Vec{X: -h.X}},
			{Normal: r3.Vec{Y: 1}, Point: r3.Vec{Y: h.Y}},
			{Normal: r3.Vec{Y: -1}, Point: r3.Vec{Y: -h.Y}},
			{Normal: r3.Vec{Z: 1}, Point: r3.Vec{Z: h.Z}},
			{Normal: r3.Vec{Z: -1}, Point: r3.Vec{Z: -h.Z}},
		}
	case *Hull:
		planes := make([]facePlane, len(s.Faces))
		for i := range s.Faces {
			planes[i] = facePlane{Normal: s.normals[i], Point: s.faceRef(i)}
		}
		return planes
	}
	return nil
}

func project(vs []r3.Vec, axis r3.Vec) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		p := r3.Dot(v, axis)
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

func centroid(vs []r3.Vec) r3.Vec {
	var c r3.Vec
	for _, v := range vs {
		c = r3.Add(c, v)
	}
	if len(vs) > 0 {
		c = r3.Scale(1/float64(len(vs)), c)
	}
	return c
}

// Package scene provides the asset-loading collaborator: it produces posed,
// scaled, centered meshes asynchronously. The core only consumes the result;
// it never blocks on loading.
package scene

import "math"

// MeshData is a triangulated mesh: flat vertex position triples plus a
// triangle index list.
type MeshData struct {
	Positions []float32
	Indices   []uint16
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max [3]float32
}

// Bounds returns the mesh bounding box. A mesh with no vertices returns the
// zero box.
func (m MeshData) Bounds() BBox {
	var b BBox
	if len(m.Positions) < 3 {
		return b
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = m.Positions[i]
		b.Max[i] = m.Positions[i]
	}
	for i := 3; i+2 < len(m.Positions); i += 3 {
		for j := 0; j < 3; j++ {
			v := m.Positions[i+j]
			if v < b.Min[j] {
				b.Min[j] = v
			}
			if v > b.Max[j] {
				b.Max[j] = v
			}
		}
	}
	return b
}

// HalfExtents returns the box half sizes.
func (b BBox) HalfExtents() [3]float32 {
	return [3]float32{
		(b.Max[0] - b.Min[0]) / 2,
		(b.Max[1] - b.Min[1]) / 2,
		(b.Max[2] - b.Min[2]) / 2,
	}
}

// Degenerate reports a zero-extent box. Degenerate meshes get no collision
// body.
func (b BBox) Degenerate() bool {
	return b.Max[0]-b.Min[0] <= 0 || b.Max[1]-b.Min[1] <= 0 || b.Max[2]-b.Min[2] <= 0
}

// centerAndScale translates the mesh so its bounding box is centered at the
// origin and uniformly scales it so the largest half-extent equals size.
func centerAndScale(m MeshData, size float32) MeshData {
	b := m.Bounds()
	if b.Degenerate() || size <= 0 {
		return m
	}
	cx := (b.Min[0] + b.Max[0]) / 2
	cy := (b.Min[1] + b.Max[1]) / 2
	cz := (b.Min[2] + b.Max[2]) / 2
	he := b.HalfExtents()
	maxHE := he[0]
	if he[1] > maxHE {
		maxHE = he[1]
	}
	if he[2] > maxHE {
		maxHE = he[2]
	}
	s := size / maxHE
	for i := 0; i+2 < len(m.Positions); i += 3 {
		m.Positions[i] = (m.Positions[i] - cx) * s
		m.Positions[i+1] = (m.Positions[i+1] - cy) * s
		m.Positions[i+2] = (m.Positions[i+2] - cz) * s
	}
	return m
}

// heartSamples is the resolution of the heart outline.
const heartSamples = 24

// HeartMesh generates an extruded heart: the classic parametric outline
// swept along Z with fan caps. Concave only at the top notch; the collision
// shape uses an icosahedron approximation instead (see IcosahedronMesh).
func HeartMesh() MeshData {
	const halfDepth = 0.35
	var m MeshData

	// Outline in the XY plane, roughly unit sized.
	outline := make([][2]float32, heartSamples)
	for i := 0; i < heartSamples; i++ {
		t := 2 * math.Pi * float64(i) / heartSamples
		x := 16 * math.Pow(math.Sin(t), 3)
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		outline[i] = [2]float32{float32(x / 16), float32(y / 16)}
	}

	// Front ring, back ring, then the two cap centers.
	for _, p := range outline {
		m.Positions = append(m.Positions, p[0], p[1], halfDepth)
	}
	for _, p := range outline {
		m.Positions = append(m.Positions, p[0], p[1], -halfDepth)
	}
	frontCenter := uint16(2 * heartSamples)
	backCenter := uint16(2*heartSamples + 1)
	m.Positions = append(m.Positions, 0, 0, halfDepth)
	m.Positions = append(m.Positions, 0, 0, -halfDepth)

	for i := 0; i < heartSamples; i++ {
		j := (i + 1) % heartSamples
		fi, fj := uint16(i), uint16(j)
		bi, bj := uint16(i+heartSamples), uint16(j+heartSamples)

		// Side quad
		m.Indices = append(m.Indices, fi, fj, bi)
		m.Indices = append(m.Indices, fj, bj, bi)
		// Caps
		m.Indices = append(m.Indices, frontCenter, fi, fj)
		m.Indices = append(m.Indices, backCenter, bj, bi)
	}

	return centerAndScale(m, 1)
}

// FrameMesh generates a photo-frame slab: a flat box, wider than deep.
func FrameMesh() MeshData {
	return boxMesh(1, 0.75, 0.08)
}

// boxMesh builds a box with the given half extents: 8 corners, 12 triangles.
func boxMesh(hx, hy, hz float32) MeshData {
	var m MeshData
	for _, sx := range []float32{-1, 1} {
		for _, sy := range []float32{-1, 1} {
			for _, sz := range []float32{-1, 1} {
				m.Positions = append(m.Positions, sx*hx, sy*hy, sz*hz)
			}
		}
	}
	// Corner index is a 3-bit code: x<<2 | y<<1 | z, negative = 0.
	m.Indices = []uint16{
		0, 1, 3, 0, 3, 2, // -X
		4, 6, 7, 4, 7, 5, // +X
		0, 4, 5, 0, 5, 1, // -Y
		2, 3, 7, 2, 7, 6, // +Y
		0, 2, 6, 0, 6, 4, // -Z
		1, 5, 7, 1, 7, 3, // +Z
	}
	return m
}

// IcosahedronMesh generates a regular icosahedron stretched to the given
// per-axis half extents. Used as the convex collision proxy for models whose
// render meshes are not convex.
func IcosahedronMesh(hx, hy, hz float32) MeshData {
	phi := float32((1 + math.Sqrt(5)) / 2)
	norm := float32(math.Sqrt(float64(1 + phi*phi)))
	a := 1 / norm
	b := phi / norm

	verts := [][3]float32{
		{-a, b, 0}, {a, b, 0}, {-a, -b, 0}, {a, -b, 0},
		{0, -a, b}, {0, a, b}, {0, -a, -b}, {0, a, -b},
		{b, 0, -a}, {b, 0, a}, {-b, 0, -a}, {-b, 0, a},
	}
	faces := []uint16{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	var m MeshData
	for _, v := range verts {
		m.Positions = append(m.Positions, v[0]*hx, v[1]*hy, v[2]*hz)
	}
	m.Indices = faces
	return m
}

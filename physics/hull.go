package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// hullTolerance is the vertex dedup grid size in world units. Vertices whose
// quantized positions coincide collapse to a single hull vertex.
const hullTolerance = 1e-3

// Hull is a convex collision shape: deduplicated vertices plus triangular
// faces referencing them. It is a format conversion of a render mesh, not a
// convexity enforcer; the source mesh is assumed convex-ish.
type Hull struct {
	Vertices []r3.Vec
	Faces    [][3]int

	normals []r3.Vec // per face, unit, outward
	radius  float64
}

// NewHullFromMesh builds a hull from a triangulated mesh's flat vertex
// position list and optional index list. When indices is nil, consecutive
// vertex triples form the triangles. Faces that collapse to fewer than three
// distinct vertices after dedup are dropped silently; degenerate input is
// not an error, just a smaller hull.
func NewHullFromMesh(positions []float32, indices []uint16) *Hull {
	h := &Hull{}

	type gridKey struct{ x, y, z int64 }
	seen := make(map[gridKey]int)
	remap := make([]int, len(positions)/3)

	for i := 0; i+2 < len(positions); i += 3 {
		v := r3.Vec{
			X: float64(positions[i]),
			Y: float64(positions[i+1]),
			Z: float64(positions[i+2]),
		}
		key := gridKey{
			x: int64(math.Round(v.X / hullTolerance)),
			y: int64(math.Round(v.Y / hullTolerance)),
			z: int64(math.Round(v.Z / hullTolerance)),
		}
		idx, ok := seen[key]
		if !ok {
			idx = len(h.Vertices)
			seen[key] = idx
			h.Vertices = append(h.Vertices, v)
		}
		remap[i/3] = idx
	}

	addFace := func(a, b, c int) {
		ra, rb, rc := remap[a], remap[b], remap[c]
		if ra == rb || rb == rc || ra == rc {
			return
		}
		h.Faces = append(h.Faces, [3]int{ra, rb, rc})
	}

	if indices != nil {
		for i := 0; i+2 < len(indices); i += 3 {
			addFace(int(indices[i]), int(indices[i+1]), int(indices[i+2]))
		}
	} else {
		for i := 0; i+2 < len(remap); i += 3 {
			addFace(i, i+1, i+2)
		}
	}

	h.finalize()
	return h
}

// Empty reports whether the hull has no usable faces. Callers treat an empty
// hull as "no collision shape" and skip body creation.
func (h *Hull) Empty() bool { return len(h.Faces) == 0 }

// finalize computes face normals (oriented outward from the centroid) and
// the bounding radius.
func (h *Hull) finalize() {
	var centroid r3.Vec
	for _, v := range h.Vertices {
		centroid = r3.Add(centroid, v)
	}
	if len(h.Vertices) > 0 {
		centroid = r3.Scale(1/float64(len(h.Vertices)), centroid)
	}

	h.normals = make([]r3.Vec, 0, len(h.Faces))
	for _, f := range h.Faces {
		a, b, c := h.Vertices[f[0]], h.Vertices[f[1]], h.Vertices[f[2]]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		if r3.Norm(n) == 0 {
			// Collinear but index-distinct corners; keep the face out of the
			// normal set by pointing it nowhere useful.
			h.normals = append(h.normals, r3.Vec{Y: 1})
			continue
		}
		n = r3.Unit(n)
		if r3.Dot(n, r3.Sub(a, centroid)) < 0 {
			n = r3.Scale(-1, n)
		}
		h.normals = append(h.normals, n)
	}

	h.radius = 0
	for _, v := range h.Vertices {
		if d := r3.Norm(v); d > h.radius {
			h.radius = d
		}
	}
}

func (h *Hull) BoundingRadius() float64 { return h.radius }

func (h *Hull) localVertices() []r3.Vec    { return h.Vertices }
func (h *Hull) localFaceNormals() []r3.Vec { return h.normals }

// faceRef returns a vertex lying on face i, used as the plane reference point.
func (h *Hull) faceRef(i int) r3.Vec { return h.Vertices[h.Faces[i][0]] }

package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// cubePositions returns a unit-half-extent cube as 24 vertices (4 per face,
// so every corner appears three times), the way render meshes usually arrive.
func cubePositions() ([]float32, []uint16) {
	corners := [8][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	// Each face lists its four corner indices counterclockwise.
	faces := [6][4]int{
		{0, 1, 2, 3}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {3, 2, 6, 7},
		{0, 3, 7, 4}, {1, 2, 6, 5},
	}

	var positions []float32
	var indices []uint16
	for _, f := range faces {
		base := uint16(len(positions) / 3)
		for _, ci := range f {
			positions = append(positions, corners[ci][0], corners[ci][1], corners[ci][2])
		}
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return positions, indices
}

// TestHullDedup verifies that per-face duplicated vertices collapse to one
// hull vertex each while all faces survive.
func TestHullDedup(t *testing.T) {
	positions, indices := cubePositions()
	h := NewHullFromMesh(positions, indices)

	if got := len(h.Vertices); got != 8 {
		t.Errorf("unique vertices = %d, want 8", got)
	}
	if got := len(h.Faces); got != 12 {
		t.Errorf("faces = %d, want 12", got)
	}
	if h.Empty() {
		t.Error("cube hull reported empty")
	}
}

// TestHullNearCoincidentVerticesMerge verifies the quantization: vertices
// closer than the tolerance merge, farther ones stay distinct.
func TestHullNearCoincidentVerticesMerge(t *testing.T) {
	eps := float32(hullTolerance) / 4
	positions := []float32{
		0, 0, 0,
		eps, 0, 0, // merges with vertex 0
		1, 0, 0,
		0, 1, 0,
	}
	indices := []uint16{0, 2, 3, 1, 2, 3}
	h := NewHullFromMesh(positions, indices)

	if got := len(h.Vertices); got != 3 {
		t.Errorf("unique vertices = %d, want 3", got)
	}
	// Both triangles remap to the same three vertices; both are kept since
	// each still has three distinct corners.
	if got := len(h.Faces); got != 2 {
		t.Errorf("faces = %d, want 2", got)
	}
}

// TestHullDegenerateFacesDropped verifies that faces collapsing to fewer
// than three distinct vertices are dropped, and that a mesh made only of
// such faces yields an empty hull.
func TestHullDegenerateFacesDropped(t *testing.T) {
	positions := []float32{
		0, 0, 0,
		0, 0, 0, // duplicate of vertex 0
		1, 0, 0,
	}
	h := NewHullFromMesh(positions, []uint16{0, 1, 2})

	if !h.Empty() {
		t.Errorf("hull with only degenerate faces: faces = %d, want 0", len(h.Faces))
	}
}

// TestHullNormalsOutward verifies every face normal points away from the
// hull centroid.
func TestHullNormalsOutward(t *testing.T) {
	positions, indices := cubePositions()
	h := NewHullFromMesh(positions, indices)

	for i := range h.Faces {
		n := h.normals[i]
		if math.Abs(r3.Norm(n)-1) > 1e-9 {
			t.Errorf("face %d normal not unit: %v", i, n)
		}
		if r3.Dot(n, h.faceRef(i)) <= 0 {
			t.Errorf("face %d normal %v points inward", i, n)
		}
	}
}

// TestHullBoundingRadius verifies the radius reaches the farthest vertex.
func TestHullBoundingRadius(t *testing.T) {
	positions, indices := cubePositions()
	h := NewHullFromMesh(positions, indices)

	want := math.Sqrt(3)
	if math.Abs(h.BoundingRadius()-want) > 1e-9 {
		t.Errorf("bounding radius = %v, want %v", h.BoundingRadius(), want)
	}
}

// TestHullNilIndices verifies the consecutive-triple path.
func TestHullNilIndices(t *testing.T) {
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	h := NewHullFromMesh(positions, nil)

	if len(h.Faces) != 1 {
		t.Fatalf("faces = %d, want 1", len(h.Faces))
	}
	if len(h.Vertices) != 3 {
		t.Errorf("vertices = %d, want 3", len(h.Vertices))
	}
}

package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func staticPlane() *Body {
	return NewBody(Plane{}, 0, "ground")
}

// TestCollidePlaneSphere checks depth and normal for a sphere resting into
// the floor.
func TestCollidePlaneSphere(t *testing.T) {
	sphere := NewBody(Sphere{Radius: 1}, 1, "model")
	sphere.Position = r3.Vec{Y: 0.8}

	contacts := collide(nil, staticPlane(), sphere)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if math.Abs(c.Depth-0.2) > 1e-12 {
		t.Errorf("depth = %v, want 0.2", c.Depth)
	}
	if !vecNear(c.Normal, r3.Vec{Y: 1}, 1e-12) {
		t.Errorf("normal = %v, want +Y", c.Normal)
	}

	// Separated sphere produces nothing.
	sphere.Position = r3.Vec{Y: 1.5}
	if got := collide(nil, staticPlane(), sphere); len(got) != 0 {
		t.Errorf("separated pair produced %d contacts", len(got))
	}
}

// TestCollidePlaneBoxManifold verifies a box face resting on the floor emits
// one contact per penetrating corner, which is what keeps it from rocking.
func TestCollidePlaneBoxManifold(t *testing.T) {
	box := NewBody(NewBox(r3.Vec{X: 1, Y: 1, Z: 1}), 1, "model")
	box.Position = r3.Vec{Y: 0.95}

	contacts := collide(nil, staticPlane(), box)
	if len(contacts) != 4 {
		t.Fatalf("contacts = %d, want the 4 bottom corners", len(contacts))
	}
	for _, c := range contacts {
		if math.Abs(c.Depth-0.05) > 1e-12 {
			t.Errorf("corner depth = %v, want 0.05", c.Depth)
		}
	}
}

// TestCollideSphereBox verifies the face-plane approximation against a box.
func TestCollideSphereBox(t *testing.T) {
	box := NewBody(NewBox(r3.Vec{X: 1, Y: 1, Z: 1}), 0, "wall")

	sphere := NewBody(Sphere{Radius: 0.5}, 1, "model")
	sphere.Position = r3.Vec{X: 1.3}

	contacts := collide(nil, sphere, box)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if math.Abs(c.Depth-0.2) > 1e-12 {
		t.Errorf("depth = %v, want 0.2", c.Depth)
	}
	// Normal runs from the sphere into the box: -X here.
	if !vecNear(c.Normal, r3.Vec{X: -1}, 1e-12) {
		t.Errorf("normal = %v, want -X", c.Normal)
	}

	sphere.Position = r3.Vec{X: 1.6}
	if got := collide(nil, sphere, box); len(got) != 0 {
		t.Errorf("separated pair produced %d contacts", len(got))
	}
}

// TestCollideBoxBox verifies the separating-axis test for two boxes.
func TestCollideBoxBox(t *testing.T) {
	a := NewBody(NewBox(r3.Vec{X: 1, Y: 1, Z: 1}), 1, "model")
	b := NewBody(NewBox(r3.Vec{X: 1, Y: 1, Z: 1}), 1, "model")
	b.Position = r3.Vec{X: 1.8}

	contacts := collide(nil, a, b)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if math.Abs(c.Depth-0.2) > 1e-9 {
		t.Errorf("depth = %v, want 0.2", c.Depth)
	}
	if math.Abs(math.Abs(c.Normal.X)-1) > 1e-9 {
		t.Errorf("normal = %v, want along X", c.Normal)
	}

	b.Position = r3.Vec{X: 2.5}
	if got := collide(nil, a, b); len(got) != 0 {
		t.Errorf("separated pair produced %d contacts", len(got))
	}
}

// TestCollideHullPlane verifies a hull built from a mesh collides like any
// other polyhedron.
func TestCollideHullPlane(t *testing.T) {
	positions, indices := cubePositions()
	hull := NewHullFromMesh(positions, indices)

	body := NewBody(hull, 1, "model")
	body.Position = r3.Vec{Y: 0.9}

	contacts := collide(nil, staticPlane(), body)
	if len(contacts) != 4 {
		t.Fatalf("contacts = %d, want 4 penetrating corners", len(contacts))
	}
}

// TestCollidePlanePlaneUnsupported verifies the unsupported pair degrades to
// no contacts rather than panicking.
func TestCollidePlanePlaneUnsupported(t *testing.T) {
	if got := collide(nil, staticPlane(), staticPlane()); len(got) != 0 {
		t.Errorf("plane-plane produced %d contacts", len(got))
	}
}

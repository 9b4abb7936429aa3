package physics

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const testDT = 1.0 / 60.0

func testMaterials() *MaterialTable {
	return NewMaterialTable(ContactParams{Friction: 0.3, Restitution: 0.3})
}

// floorWorld builds a world with a ground plane at y=0.
func floorWorld(opts Options) *World {
	w := NewWorld(testMaterials(), opts)
	w.SetGravity(r3.Vec{Y: -25})
	w.ReplaceStatics([]*Body{NewBody(Plane{}, 0, "ground")})
	return w
}

// TestSetGravityOverwrites verifies gravity replacement semantics: the last
// write wins, nothing accumulates.
func TestSetGravityOverwrites(t *testing.T) {
	w := NewWorld(testMaterials(), DefaultOptions())
	w.SetGravity(r3.Vec{X: 3, Y: -25})
	w.SetGravity(r3.Vec{X: -3, Y: -25})

	want := r3.Vec{X: -3, Y: -25}
	if w.Gravity() != want {
		t.Errorf("gravity = %v, want %v", w.Gravity(), want)
	}
}

// TestStepBatchingInvariant verifies that N fixed substeps produce the same
// body state no matter how they are grouped across Step calls.
func TestStepBatchingInvariant(t *testing.T) {
	build := func() *World {
		w := floorWorld(DefaultOptions())
		w.SetGravity(r3.Vec{X: 4, Y: -25, Z: -2})
		ball := NewBody(Sphere{Radius: 0.5}, 2, "model")
		ball.Position = r3.Vec{Y: 3}
		w.AddBody(ball)
		return w
	}

	oneByOne := build()
	for i := 0; i < 8; i++ {
		oneByOne.Step(testDT, testDT, 8)
	}

	batched := build()
	batched.Step(testDT, 4*testDT, 8)
	batched.Step(testDT, 4*testDT, 8)

	a := oneByOne.Bodies()
	b := batched.Bodies()
	for i := range a {
		if a[i].Position != b[i].Position {
			t.Errorf("body %d position: one-by-one %v, batched %v", i, a[i].Position, b[i].Position)
		}
		if a[i].Velocity != b[i].Velocity {
			t.Errorf("body %d velocity: one-by-one %v, batched %v", i, a[i].Velocity, b[i].Velocity)
		}
	}
}

// TestStepDropsSurplus verifies the catch-up bound: a huge real delta runs
// maxSubsteps increments and discards the rest instead of spiraling.
func TestStepDropsSurplus(t *testing.T) {
	w := floorWorld(DefaultOptions())

	stats := w.Step(testDT, 100*testDT, 4)
	if stats.Substeps != 4 {
		t.Errorf("substeps = %d, want 4", stats.Substeps)
	}
	if !stats.Dropped {
		t.Error("expected surplus time to be reported as dropped")
	}

	// The surplus is gone: the next normal-sized delta runs exactly one step.
	stats = w.Step(testDT, testDT, 4)
	if stats.Substeps != 1 || stats.Dropped {
		t.Errorf("after drop: substeps = %d, dropped = %v, want 1 step and no drop",
			stats.Substeps, stats.Dropped)
	}
}

// TestSphereDropSettles drops a sphere onto the floor and expects it to come
// to rest at its radius above the plane, bounces damped out by the
// restitution threshold.
func TestSphereDropSettles(t *testing.T) {
	w := floorWorld(DefaultOptions())
	ball := NewBody(Sphere{Radius: 0.5}, 2, "model")
	ball.Position = r3.Vec{Y: 5}
	w.AddBody(ball)

	for i := 0; i < 600; i++ {
		w.Step(testDT, testDT, 1)
	}

	if math.Abs(ball.Position.Y-0.5) > 0.1 {
		t.Errorf("rest height = %v, want near 0.5", ball.Position.Y)
	}
	if v := r3.Norm(ball.Velocity); v > 0.05 {
		t.Errorf("rest speed = %v, want near zero", v)
	}
}

// TestRestitutionBounce verifies an impact above the threshold bounces back
// with roughly the material's restitution.
func TestRestitutionBounce(t *testing.T) {
	materials := NewMaterialTable(ContactParams{Friction: 0, Restitution: 0.5})
	w := NewWorld(materials, DefaultOptions())
	w.SetGravity(r3.Vec{Y: -25})
	w.ReplaceStatics([]*Body{NewBody(Plane{}, 0, "ground")})

	ball := NewBody(Sphere{Radius: 0.5}, 1, "model")
	ball.Position = r3.Vec{Y: 0.45} // already touching so the first step resolves the impact
	ball.Velocity = r3.Vec{Y: -10}
	w.AddBody(ball)

	w.Step(testDT, testDT, 1)

	// Impact at ~10 downward should leave ~5 upward.
	if ball.Velocity.Y < 3.5 || ball.Velocity.Y > 5.5 {
		t.Errorf("post-bounce vertical velocity = %v, want near +5", ball.Velocity.Y)
	}
}

// TestSphereDropScenario runs the reference drop end to end: a unit sphere
// falls from y=5 under g=(0,-10,0), hits the floor near the one-second mark,
// rebounds with roughly half its impact speed, and is at rest on its radius
// within five simulated seconds.
func TestSphereDropScenario(t *testing.T) {
	materials := NewMaterialTable(ContactParams{Friction: 0.3, Restitution: 0.5})
	w := NewWorld(materials, DefaultOptions())
	w.SetGravity(r3.Vec{Y: -10})
	w.ReplaceStatics([]*Body{NewBody(Plane{}, 0, "ground")})

	ball := NewBody(Sphere{Radius: 1}, 5, "model")
	ball.Position = r3.Vec{Y: 5}
	ball.LinearDamping = 0.1
	ball.AngularDamping = 0.1
	w.AddBody(ball)

	impactStep := -1
	var vDown, vUp float64
	for i := 0; i < 300; i++ { // five seconds at 60Hz
		before := ball.Velocity.Y
		w.Step(testDT, testDT, 1)
		if impactStep < 0 && before < 0 && ball.Velocity.Y > 0 {
			impactStep = i
			vDown = -before
			vUp = ball.Velocity.Y
		}
	}

	if impactStep < 0 {
		t.Fatal("sphere never bounced")
	}
	if impactTime := float64(impactStep+1) * testDT; impactTime < 0.8 || impactTime > 1.1 {
		t.Errorf("impact at t=%.3fs, want near 1.0s", impactTime)
	}
	if vDown < 8 || vDown > 10.5 {
		t.Errorf("impact speed = %.2f, want near 10", vDown)
	}
	if ratio := vUp / vDown; ratio < 0.4 || ratio > 0.6 {
		t.Errorf("rebound ratio = %.3f, want near 0.5", ratio)
	}
	if math.Abs(ball.Position.Y-1) > 0.1 {
		t.Errorf("rest height = %v, want near 1", ball.Position.Y)
	}
	if math.Abs(ball.Velocity.Y) > 0.05 {
		t.Errorf("rest vertical speed = %v, want near zero", ball.Velocity.Y)
	}
}

// TestStaticBodiesImmobile verifies statics never move, whatever hits them.
func TestStaticBodiesImmobile(t *testing.T) {
	w := floorWorld(DefaultOptions())
	wall := NewBody(NewBox(r3.Vec{X: 0.5, Y: 3, Z: 3}), 0, "wall")
	wall.Position = r3.Vec{X: 2, Y: 3}
	w.AddBody(wall)

	ball := NewBody(Sphere{Radius: 0.5}, 5, "model")
	ball.Position = r3.Vec{Y: 3}
	ball.Velocity = r3.Vec{X: 20}
	w.AddBody(ball)

	wallPos := wall.Position
	for i := 0; i < 120; i++ {
		w.Step(testDT, testDT, 1)
	}

	if wall.Position != wallPos {
		t.Errorf("static wall moved from %v to %v", wallPos, wall.Position)
	}
	if wall.Velocity != (r3.Vec{}) {
		t.Errorf("static wall gained velocity %v", wall.Velocity)
	}
}

// TestContainmentUnderTilt hammers a walled arena with shifting gravity and
// checks the body never escapes. This is the tilt toy's core guarantee: no
// reachable gravity direction may fling a body through a boundary.
func TestContainmentUnderTilt(t *testing.T) {
	const inner = 5.0 // wall inner faces at ±inner

	w := NewWorld(testMaterials(), Options{
		SolverIterations:     10,
		RestitutionThreshold: 0.5,
		MaxSpeed:             40,
	})
	statics := []*Body{NewBody(Plane{}, 0, "ground")}
	for _, wall := range []struct {
		pos  r3.Vec
		half r3.Vec
	}{
		{r3.Vec{X: -inner - 0.5, Y: 3}, r3.Vec{X: 0.5, Y: 3, Z: inner + 1}},
		{r3.Vec{X: inner + 0.5, Y: 3}, r3.Vec{X: 0.5, Y: 3, Z: inner + 1}},
		{r3.Vec{Z: -inner - 0.5, Y: 3}, r3.Vec{X: inner + 1, Y: 3, Z: 0.5}},
		{r3.Vec{Z: inner + 0.5, Y: 3}, r3.Vec{X: inner + 1, Y: 3, Z: 0.5}},
	} {
		b := NewBody(NewBox(wall.half), 0, "wall")
		b.Position = wall.pos
		statics = append(statics, b)
	}
	w.ReplaceStatics(statics)

	ball := NewBody(Sphere{Radius: 0.5}, 2, "model")
	ball.Position = r3.Vec{Y: 3}
	w.AddBody(ball)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 3000; i++ {
		if i%97 == 0 {
			// Re-aim gravity the way a wild pointer would.
			w.SetGravity(r3.Vec{
				X: (rng.Float64()*2 - 1) * 12,
				Y: -25,
				Z: (rng.Float64()*2 - 1) * 12,
			})
		}
		w.Step(testDT, testDT, 1)

		p := ball.Position
		if math.Abs(p.X) > inner+1 || math.Abs(p.Z) > inner+1 || p.Y < -1 {
			t.Fatalf("ball escaped at step %d: %v", i, p)
		}
	}
}

// TestMaxSpeedClamp verifies the speed cap holds after force application.
func TestMaxSpeedClamp(t *testing.T) {
	w := NewWorld(testMaterials(), Options{
		SolverIterations:     10,
		RestitutionThreshold: 0.5,
		MaxSpeed:             10,
	})
	w.SetGravity(r3.Vec{Y: -25})

	ball := NewBody(Sphere{Radius: 0.5}, 1, "model")
	ball.Position = r3.Vec{Y: 100}
	w.AddBody(ball)

	for i := 0; i < 300; i++ {
		w.Step(testDT, testDT, 1)
		if v := r3.Norm(ball.Velocity); v > 10+1e-9 {
			t.Fatalf("speed %v exceeds clamp at step %d", v, i)
		}
	}
}

package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tiltbox/config"
)

func init() {
	config.MustInit("")
}

// runHeadless advances a fresh headless game until the tick counter reaches
// maxTicks. Asset loads complete during the first few calls.
func runHeadless(t *testing.T, seed int64, mode string, maxTicks int) *Game {
	t.Helper()
	g := NewGameWithOptions(Options{Seed: seed, Headless: true, Mode: mode})
	t.Cleanup(g.Unload)

	for guard := 0; int(g.Tick()) < maxTicks; guard++ {
		if guard > maxTicks+100000 {
			t.Fatalf("stuck at tick %d waiting for %d", g.Tick(), maxTicks)
		}
		g.UpdateHeadless()
	}
	return g
}

// TestHeadlessSessionSpawnsAndSettles runs a full headless session: all
// configured models load, get bodies, and come to rest inside the arena.
func TestHeadlessSessionSpawnsAndSettles(t *testing.T) {
	g := runHeadless(t, 42, "well", 900)

	if got := g.DynamicBodies(); got != config.Cfg().Scene.Count {
		t.Fatalf("dynamic bodies = %d, want %d", got, config.Cfg().Scene.Count)
	}

	halfW, halfH := g.view.HalfExtents()
	for i, b := range g.bodies {
		p := b.Position
		if p.Y < -1 || p.Y > config.Cfg().Scene.DropHeight+5 {
			t.Errorf("body %d at unreasonable height %v", i, p.Y)
		}
		if p.X < -halfW-2 || p.X > halfW+2 || p.Z < -halfH-2 || p.Z > halfH+2 {
			t.Errorf("body %d escaped the arena: %v", i, p)
		}
		// 15 simulated seconds with no tilt input: everything should be slow.
		if v := r3.Norm(b.Velocity); v > 1 {
			t.Errorf("body %d still moving at %v after settling time", i, v)
		}
	}
}

// TestHeadlessDeterminism verifies two same-seed sessions land bit-identical.
func TestHeadlessDeterminism(t *testing.T) {
	a := runHeadless(t, 7, "well", 300)
	b := runHeadless(t, 7, "well", 300)

	if a.DynamicBodies() != b.DynamicBodies() {
		t.Fatalf("body counts differ: %d vs %d", a.DynamicBodies(), b.DynamicBodies())
	}
	for i := range a.bodies {
		if a.bodies[i].Position != b.bodies[i].Position {
			t.Errorf("body %d position differs: %v vs %v",
				i, a.bodies[i].Position, b.bodies[i].Position)
		}
		if a.bodies[i].Orientation != b.bodies[i].Orientation {
			t.Errorf("body %d orientation differs", i)
		}
	}
}

// TestResetRestoresSpawnPose verifies Reset puts bodies back exactly.
func TestResetRestoresSpawnPose(t *testing.T) {
	g := runHeadless(t, 3, "well", 120)

	g.Reset()
	for i, b := range g.bodies {
		if b.Position != g.spawns[i].position {
			t.Errorf("body %d at %v after reset, want %v", i, b.Position, g.spawns[i].position)
		}
		if b.Velocity != (r3.Vec{}) || b.AngularVelocity != (r3.Vec{}) {
			t.Errorf("body %d retains velocity after reset", i)
		}
	}
}

// TestTopologyForModes locks the mode-to-topology mapping.
func TestTopologyForModes(t *testing.T) {
	if topologyFor("well") != topologyFor("box") {
		t.Error("well and box should share the floor topology")
	}
	if topologyFor("orbit") == topologyFor("well") {
		t.Error("orbit should use its own topology")
	}
}

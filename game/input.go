package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tiltbox/render"
	"github.com/pthm-cable/tiltbox/tilt"
)

// handleInput samples the pointer into a tilt reading, applies the resulting
// gravity and processes the keyboard shortcuts. Window resizes rebuild the
// boundaries before the physics step runs so nothing falls through a stale
// wall.
func (g *Game) handleInput() {
	if rl.IsWindowResized() {
		g.handleResize()
	}

	nx := float64(rl.GetMouseX())/float64(g.screenWidth)*2 - 1
	ny := float64(rl.GetMouseY())/float64(g.screenHeight)*2 - 1
	g.reading = tilt.PointerReading(nx, ny, g.tiltCfg)
	g.phys.SetGravity(tilt.Gravity(g.reading, g.tiltCfg))

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
		slog.Info("pause toggled", "paused", g.paused)
	}
	if rl.IsKeyPressed(rl.KeyD) {
		g.debugDraw = !g.debugDraw
		g.tuning.DebugDraw = g.debugDraw
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.cycleMode()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}
}

// handleResize refits the arena to the new window before anything else sees
// the new size.
func (g *Game) handleResize() {
	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())
	g.view.Aspect = float64(g.screenWidth) / float64(g.screenHeight)
	g.rebuildBoundaries()
	if g.panel != nil {
		g.panel.Resize(int32(g.screenWidth))
	}
	slog.Info("window resized", "width", g.screenWidth, "height", g.screenHeight)
}

// cycleMode advances well -> box -> orbit -> well, swapping the boundary
// topology and camera and re-dropping the bodies into the new arena.
func (g *Game) cycleMode() {
	switch g.mode {
	case "well":
		g.mode = "box"
	case "box":
		g.mode = "orbit"
	default:
		g.mode = "well"
	}
	g.topology = topologyFor(g.mode)
	g.rebuildBoundaries()
	if g.renderer != nil {
		g.renderer.SetMode(render.ParseMode(g.mode))
	}
	g.respawnAll()
	slog.Info("mode changed", "mode", g.mode)
}

// respawnAll re-rolls drop positions for the current topology. Used on mode
// changes, where the old spawn points may sit outside the new arena.
func (g *Game) respawnAll() {
	for i, body := range g.bodies {
		body.Position = g.spawnPosition(i)
		g.spawns[i].position = body.Position
		body.Velocity = r3.Vec{}
		body.AngularVelocity = r3.Vec{}
	}
}

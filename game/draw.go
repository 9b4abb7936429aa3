package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tiltbox/telemetry"
)

// Draw renders the frame: 3D pass, optional debug overlays, HUD and the
// tuning panel. Panel edits are written back into the live tilt config.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	g.renderer.Begin()

	query := g.entityFilter.Query()
	i := 0
	for query.Next() {
		pose, _, visual := query.Get()
		g.renderer.DrawPose(*pose, *visual, i)
		i++
	}

	if g.debugDraw {
		halfW, halfH := g.view.HalfExtents()
		g.renderer.DrawBoundaries(g.boundaries, halfW, halfH)
		g.renderer.DrawGravity(g.phys.Gravity())
	}

	g.renderer.End()

	g.hud.Draw(g.tick, len(g.bodies), len(g.pending), g.phys.Gravity(), g.mode, g.paused)

	acts := g.panel.Draw(&g.tuning)
	g.tiltCfg.Scale = float64(g.tuning.GravityScale)
	g.tiltCfg.MaxAngleDeg = float64(g.tuning.MaxTiltDeg)
	g.debugDraw = g.tuning.DebugDraw
	if acts.Reset {
		g.Reset()
	}
	if acts.CycleMode {
		g.cycleMode()
	}

	rl.EndDrawing()
	g.perf.EndFrame()
}

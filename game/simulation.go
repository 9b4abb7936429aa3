package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tiltbox/config"
	"github.com/pthm-cable/tiltbox/telemetry"
)

// Update runs one interactive frame up to (not including) drawing: input,
// load polling, the fixed-step physics advance and the pose sync.
func (g *Game) Update() {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perf.StartPhase(telemetry.PhaseLoading)
	g.pollLoads()

	g.perf.StartPhase(telemetry.PhasePhysics)
	g.advance(float64(rl.GetFrameTime()))

	g.perf.StartPhase(telemetry.PhaseSync)
	g.syncPoses()

	g.flushTelemetry()
}

// UpdateHeadless runs one simulation frame with a synthetic real-time delta
// of exactly one fixed step. Used by the headless runs and the settle tool.
func (g *Game) UpdateHeadless() {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseLoading)
	g.pollLoads()
	if len(g.pending) > 0 {
		// Hold the clock until every asset is in; headless runs are
		// compared across seeds and must not race the loader.
		g.perf.EndFrame()
		return
	}

	g.perf.StartPhase(telemetry.PhasePhysics)
	g.advance(config.Cfg().Physics.DT)

	g.perf.StartPhase(telemetry.PhaseSync)
	g.syncPoses()

	g.flushTelemetry()
	g.perf.EndFrame()
}

// advance feeds real elapsed time into the fixed-step world and records the
// step outcome.
func (g *Game) advance(realDT float64) {
	if g.paused {
		return
	}
	cfg := config.Cfg()
	stats := g.phys.Step(cfg.Physics.DT, realDT, cfg.Physics.MaxSubsteps)
	g.tick += int32(stats.Substeps)
	g.collector.RecordStep(stats.Substeps, stats.Dropped, stats.Contacts, stats.MaxPenetration)
	if stats.Dropped {
		slog.Debug("simulation behind real time, dropped surplus", "tick", g.tick)
	}
}

// syncPoses copies each body's physics pose into its render component,
// verbatim. Entities whose asset never produced a body keep their last pose.
func (g *Game) syncPoses() {
	query := g.entityFilter.Query()
	for query.Next() {
		pose, collider, visual := query.Get()
		if !visual.Ready {
			continue
		}
		body := g.bodies[collider.Slot]
		pose.X = float32(body.Position.X)
		pose.Y = float32(body.Position.Y)
		pose.Z = float32(body.Position.Z)
		pose.QX = float32(body.Orientation.Imag)
		pose.QY = float32(body.Orientation.Jmag)
		pose.QZ = float32(body.Orientation.Kmag)
		pose.QW = float32(body.Orientation.Real)
	}
	g.collector.RecordSync()
}

// flushTelemetry emits the window stats when the collector's window closes.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	speeds := make([]float64, 0, len(g.bodies))
	for _, b := range g.bodies {
		speeds = append(speeds, r3.Norm(b.Velocity))
	}
	grav := g.phys.Gravity()

	stats := g.collector.Flush(g.tick, len(g.bodies), speeds, [3]float64{grav.X, grav.Y, grav.Z})
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.Log()
		perfStats.Log()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("writing telemetry window", "error", err)
	}
	if err := g.output.WritePerf(perfStats, g.tick); err != nil {
		slog.Error("writing perf window", "error", err)
	}
}

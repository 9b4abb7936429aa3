// Package game wires the physics world, the boundary system, asset loading,
// input and rendering into the per-frame loop.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tiltbox/arena"
	"github.com/pthm-cable/tiltbox/components"
	"github.com/pthm-cable/tiltbox/config"
	"github.com/pthm-cable/tiltbox/physics"
	"github.com/pthm-cable/tiltbox/render"
	"github.com/pthm-cable/tiltbox/scene"
	"github.com/pthm-cable/tiltbox/telemetry"
	"github.com/pthm-cable/tiltbox/tilt"
	"github.com/pthm-cable/tiltbox/ui"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Mode           string // override config scene mode, "" = use config
}

// pendingLoad is an in-flight asset load paired with its spawn slot.
type pendingLoad struct {
	load  *scene.Pending
	index int // spawn index, used for position jitter and tinting
}

// Game holds the complete session state.
type Game struct {
	world *ecs.World
	phys  *physics.World
	rng   *rand.Rand

	entityMapper *ecs.Map3[
		components.Pose,
		components.Collider,
		components.Visual,
	]
	entityFilter *ecs.Filter3[
		components.Pose,
		components.Collider,
		components.Visual,
	]

	// Dynamic body registry; Collider.Slot indexes this slice.
	bodies []*physics.Body
	spawns []spawnState

	// Drop poses rolled up front, indexed by spawn index. Drawing them at
	// construction keeps same-seed runs identical even when asset loads
	// complete in a different order.
	spawnPoses []spawnState

	pending []pendingLoad

	// Boundary state
	topology   arena.Topology
	view       arena.View
	boundaries []arena.Boundary

	// Rendering and UI (nil in headless mode)
	renderer *render.Renderer
	hud      ui.HUD
	panel    *ui.ControlsPanel
	tuning   ui.Tuning

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	mode      string
	tiltCfg   tilt.Config
	reading   tilt.Reading
	tick      int32
	paused    bool
	debugDraw bool
	headless  bool
	logStats  bool

	screenWidth, screenHeight float32
}

// spawnState remembers where a body was dropped so Reset can put it back.
type spawnState struct {
	position    r3.Vec
	orientation [4]float64 // x, y, z, w
}

// NewGameWithOptions creates a game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	mode := cfg.Scene.Mode
	if opts.Mode != "" {
		mode = opts.Mode
	}

	world := ecs.NewWorld()
	g := &Game{
		world:        world,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		mode:         mode,
		headless:     opts.Headless,
		logStats:     opts.LogStats,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
		tiltCfg: tilt.Config{
			MaxAngleDeg: cfg.Tilt.MaxAngleDeg,
			Scale:       cfg.Tilt.Scale,
			Vertical:    cfg.Tilt.Vertical,
		},
	}
	g.entityMapper = ecs.NewMap3[
		components.Pose,
		components.Collider,
		components.Visual,
	](world)
	g.entityFilter = ecs.NewFilter3[
		components.Pose,
		components.Collider,
		components.Visual,
	](world)

	// Physics world with the configured material table
	materials := physics.NewMaterialTable(physics.ContactParams{
		Friction:    cfg.Materials.DefaultFriction,
		Restitution: cfg.Materials.DefaultRestitution,
	})
	for _, p := range cfg.Materials.Pairs {
		materials.Set(p.A, p.B, physics.ContactParams{
			Friction:    p.Friction,
			Restitution: p.Restitution,
		})
	}
	g.phys = physics.NewWorld(materials, physics.Options{
		SolverIterations:     cfg.Physics.SolverIterations,
		RestitutionThreshold: cfg.Physics.RestitutionThreshold,
		MaxSpeed:             cfg.Physics.MaxSpeed,
	})
	g.phys.SetGravity(tilt.Gravity(tilt.Reading{}, g.tiltCfg))

	// Boundaries for the initial viewport
	g.topology = topologyFor(g.mode)
	g.view = arena.View{
		FovYDeg:  cfg.Camera.FovYDeg,
		Aspect:   cfg.Derived.Aspect,
		Distance: cfg.Camera.Distance,
	}
	g.rebuildBoundaries()

	for i := 0; i < cfg.Scene.Count; i++ {
		g.spawnPoses = append(g.spawnPoses, g.rollSpawnPose(i))
	}

	// Kick off asset loads; bodies appear as each one completes
	for i := 0; i < cfg.Scene.Count; i++ {
		g.pending = append(g.pending, pendingLoad{
			load: scene.Load(scene.Spec{
				Kind:  cfg.Scene.Model,
				Path:  cfg.Scene.ModelPath,
				Scale: float32(cfg.Scene.ModelScale),
			}),
			index: i,
		})
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)
	g.perf = telemetry.NewPerfCollector(120)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("telemetry output disabled", "error", err)
	} else {
		g.output = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("writing config snapshot", "error", err)
		}
	}

	if !opts.Headless {
		g.renderer = render.New(
			render.ParseMode(g.mode),
			float32(cfg.Camera.FovYDeg),
			float32(cfg.Camera.Distance),
		)
		g.panel = ui.NewControlsPanel(int32(g.screenWidth)-230, 10, 220)
		g.tuning = ui.Tuning{
			GravityScale: float32(g.tiltCfg.Scale),
			MaxTiltDeg:   float32(g.tiltCfg.MaxAngleDeg),
		}
	}

	slog.Info("game created", "mode", g.mode, "models", cfg.Scene.Count, "seed", opts.Seed)
	return g
}

// topologyFor maps a scene mode onto a boundary topology.
func topologyFor(mode string) arena.Topology {
	if mode == "orbit" {
		return arena.TopologySandwich
	}
	return arena.TopologyFloor
}

// rebuildBoundaries recomputes the boundary set for the current view and
// installs it. Called at setup and synchronously on every resize or mode
// change; deferring it would let bodies sit outside the new bounds for a
// visible frame.
func (g *Game) rebuildBoundaries() {
	cfg := config.Cfg()
	g.boundaries = arena.Compute(g.topology, g.view, arena.Params{
		Margin:        cfg.Arena.Margin,
		WallHeight:    cfg.Arena.WallHeight,
		WallThickness: cfg.Arena.WallThickness,
		Depth:         cfg.Arena.Depth,
	})
	arena.Apply(g.phys, g.boundaries)
}

// Tick returns the simulation tick counter.
func (g *Game) Tick() int32 {
	return g.tick
}

// DynamicBodies returns the number of live dynamic bodies.
func (g *Game) DynamicBodies() int {
	return len(g.bodies)
}

// Physics exposes the physics world for headless tooling.
func (g *Game) Physics() *physics.World {
	return g.phys
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.renderer != nil {
		g.renderer.Unload()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("closing telemetry output", "error", err)
	}
}

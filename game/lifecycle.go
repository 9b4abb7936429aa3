package game

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tiltbox/arena"
	"github.com/pthm-cable/tiltbox/components"
	"github.com/pthm-cable/tiltbox/config"
	"github.com/pthm-cable/tiltbox/physics"
	"github.com/pthm-cable/tiltbox/scene"
)

// pollLoads checks the in-flight asset loads and spawns a body plus entity
// for each one that completed. Loads are consumed strictly in spawn-index
// order so the body registry ends up in the same order regardless of which
// goroutine finished first; a ready load behind a pending one waits.
func (g *Game) pollLoads() {
	for len(g.pending) > 0 {
		p := g.pending[0]
		asset, ready, err := p.load.Poll()
		if !ready {
			return
		}
		g.pending = g.pending[1:]
		if err != nil {
			slog.Error("model load failed", "index", p.index, "error", err)
			continue
		}
		g.spawnAsset(asset, p.index)
	}
}

// spawnAsset creates the rigid body and ECS entity for a loaded asset.
// Degenerate geometry produces no body: the session continues without it.
func (g *Game) spawnAsset(asset scene.Asset, index int) {
	cfg := config.Cfg()

	if asset.Render.Bounds().Degenerate() {
		slog.Warn("model has zero-extent bounds, skipping body", "index", index)
		return
	}

	hull := physics.NewHullFromMesh(asset.Collision.Positions, asset.Collision.Indices)
	if hull.Empty() {
		slog.Warn("model yielded an empty collision hull, skipping body", "index", index)
		return
	}

	spawn := g.spawnPoses[index]
	body := physics.NewBody(hull, cfg.Scene.Mass, "model")
	body.LinearDamping = cfg.Physics.LinearDamping
	body.AngularDamping = cfg.Physics.AngularDamping
	body.Position = spawn.position
	body.Orientation.Imag = spawn.orientation[0]
	body.Orientation.Jmag = spawn.orientation[1]
	body.Orientation.Kmag = spawn.orientation[2]
	body.Orientation.Real = spawn.orientation[3]

	g.phys.AddBody(body)
	slot := int32(len(g.bodies))
	g.bodies = append(g.bodies, body)
	g.spawns = append(g.spawns, spawn)

	model := int32(-1)
	if g.renderer != nil {
		model = g.renderer.AddMesh(asset.Render)
	}

	pose := poseFromBody(body)
	collider := components.Collider{Slot: slot}
	visual := components.Visual{Model: model, Ready: true, Scale: 1}
	g.entityMapper.NewEntity(&pose, &collider, &visual)

	slog.Info("model ready", "index", index,
		"hull_vertices", len(hull.Vertices), "hull_faces", len(hull.Faces))
}

// rollSpawnPose draws a drop pose for the index-th model: jittered across
// the arena, raised to the drop height in floor topologies, with a random
// initial orientation.
func (g *Game) rollSpawnPose(index int) spawnState {
	q := physics.QuatFromAxisAngle(
		r3.Vec{X: g.rng.Float64() - 0.5, Y: g.rng.Float64() - 0.5, Z: g.rng.Float64() - 0.5},
		g.rng.Float64()*2*math.Pi,
	)
	return spawnState{
		position:    g.spawnPosition(index),
		orientation: [4]float64{q.Imag, q.Jmag, q.Kmag, q.Real},
	}
}

// spawnPosition picks a drop point for the index-th model: jittered across
// the arena, raised to the drop height in floor topologies.
func (g *Game) spawnPosition(index int) r3.Vec {
	cfg := config.Cfg()
	halfW, halfH := g.view.HalfExtents()
	jx := (g.rng.Float64()*2 - 1) * halfW / 3
	jz := (g.rng.Float64()*2 - 1) * halfH / 3

	if g.topology == arena.TopologySandwich {
		return r3.Vec{X: jx, Y: jz}
	}
	// Stagger heights so simultaneous arrivals do not interpenetrate
	return r3.Vec{X: jx, Y: cfg.Scene.DropHeight + float64(index)*1.5, Z: jz}
}

// Reset puts every body back at its spawn pose with zero velocity.
func (g *Game) Reset() {
	for i, body := range g.bodies {
		s := g.spawns[i]
		body.Position = s.position
		body.Orientation.Imag = s.orientation[0]
		body.Orientation.Jmag = s.orientation[1]
		body.Orientation.Kmag = s.orientation[2]
		body.Orientation.Real = s.orientation[3]
		body.Velocity = r3.Vec{}
		body.AngularVelocity = r3.Vec{}
	}
	slog.Info("reset", "bodies", len(g.bodies))
}

// poseFromBody converts a body pose to the render component.
func poseFromBody(b *physics.Body) components.Pose {
	return components.Pose{
		X: float32(b.Position.X), Y: float32(b.Position.Y), Z: float32(b.Position.Z),
		QX: float32(b.Orientation.Imag), QY: float32(b.Orientation.Jmag),
		QZ: float32(b.Orientation.Kmag), QW: float32(b.Orientation.Real),
	}
}

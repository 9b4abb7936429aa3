package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Options holds solver parameters.
type Options struct {
	SolverIterations     int     // contact relaxation passes per substep
	RestitutionThreshold float64 // impacts slower than this do not bounce
	MaxSpeed             float64 // dynamic body speed clamp, 0 = off
}

// DefaultOptions returns the solver parameters used when a zero Options is passed.
func DefaultOptions() Options {
	return Options{
		SolverIterations:     10,
		RestitutionThreshold: 0.5,
	}
}

// StepStats summarizes one Step call for telemetry.
type StepStats struct {
	Substeps       int     // fixed substeps actually run
	Dropped        bool    // leftover time discarded at the substep bound
	Contacts       int     // contacts resolved in the last substep
	MaxPenetration float64 // deepest contact seen in the last substep
}

// World owns the full set of bodies, the contact material table, the current
// gravity vector and the solver parameters. Construct one per session and
// pass it by reference; there is no package-level state.
type World struct {
	bodies    []*Body
	gravity   r3.Vec
	materials *MaterialTable
	opts      Options

	accumulator float64
	contacts    []Contact // scratch, reused across substeps
}

// NewWorld creates an empty world.
func NewWorld(materials *MaterialTable, opts Options) *World {
	if opts.SolverIterations <= 0 {
		opts.SolverIterations = DefaultOptions().SolverIterations
	}
	if opts.RestitutionThreshold <= 0 {
		opts.RestitutionThreshold = DefaultOptions().RestitutionThreshold
	}
	if materials == nil {
		materials = NewMaterialTable(ContactParams{Friction: 0.3, Restitution: 0.3})
	}
	return &World{materials: materials, opts: opts}
}

// AddBody adds a body to the simulation.
func (w *World) AddBody(b *Body) {
	w.bodies = append(w.bodies, b)
}

// Bodies returns the world's body list (statics and dynamics).
func (w *World) Bodies() []*Body {
	return w.bodies
}

// ReplaceStatics removes every static body and installs the given set.
// Used for boundary recomputation on viewport changes; dynamic bodies and
// their state are untouched.
func (w *World) ReplaceStatics(statics []*Body) {
	kept := w.bodies[:0]
	for _, b := range w.bodies {
		if b.Dynamic() {
			kept = append(kept, b)
		}
	}
	w.bodies = append(kept, statics...)
}

// SetGravity overwrites the gravity vector wholesale. Gravity is a single
// world-wide simulation parameter; no body carries its own.
func (w *World) SetGravity(g r3.Vec) {
	w.gravity = g
}

// Gravity returns the current gravity vector.
func (w *World) Gravity() r3.Vec {
	return w.gravity
}

// Step advances the simulation by realDT seconds of wall time, in fixed
// increments of fixedDT. At most maxSubsteps increments run per call; any
// surplus accumulated time beyond that is discarded so a stalled frame (tab
// in background, debugger pause) cannot trigger runaway catch-up.
//
// A fixed substep is a pure function of prior state: N substeps produce the
// same result no matter how they are batched across Step calls.
func (w *World) Step(fixedDT, realDT float64, maxSubsteps int) StepStats {
	if maxSubsteps < 1 {
		maxSubsteps = 1
	}
	var stats StepStats

	w.accumulator += realDT
	for w.accumulator >= fixedDT {
		if stats.Substeps >= maxSubsteps {
			w.accumulator = 0
			stats.Dropped = true
			break
		}
		w.substep(fixedDT, &stats)
		w.accumulator -= fixedDT
		stats.Substeps++
	}
	return stats
}

// substep runs one fixed increment: forces, contact detection, velocity
// solve, integration, positional correction.
func (w *World) substep(dt float64, stats *StepStats) {
	w.applyForces(dt)

	w.contacts = w.contacts[:0]
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			if !a.Dynamic() && !b.Dynamic() {
				continue
			}
			if separatedByBounds(a, b) {
				continue
			}
			w.contacts = collide(w.contacts, a, b)
		}
	}

	stats.Contacts = len(w.contacts)
	stats.MaxPenetration = 0
	for i := range w.contacts {
		if d := w.contacts[i].Depth; d > stats.MaxPenetration {
			stats.MaxPenetration = d
		}
	}

	w.solveVelocities(w.contacts)
	w.integrate(dt)
	w.correctPositions(w.contacts)
}

// applyForces applies gravity as a uniform acceleration plus per-second
// damping decay to every dynamic body.
func (w *World) applyForces(dt float64) {
	for _, b := range w.bodies {
		if !b.Dynamic() {
			continue
		}
		b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, w.gravity))
		if b.LinearDamping > 0 {
			b.Velocity = r3.Scale(math.Pow(1-b.LinearDamping, dt), b.Velocity)
		}
		if b.AngularDamping > 0 {
			b.AngularVelocity = r3.Scale(math.Pow(1-b.AngularDamping, dt), b.AngularVelocity)
		}
		if w.opts.MaxSpeed > 0 {
			if v := r3.Norm(b.Velocity); v > w.opts.MaxSpeed {
				b.Velocity = r3.Scale(w.opts.MaxSpeed/v, b.Velocity)
			}
		}
	}
}

// integrate advances positions and orientations from velocities.
func (w *World) integrate(dt float64) {
	for _, b := range w.bodies {
		if !b.Dynamic() {
			continue
		}
		b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
		b.Orientation = integrateOrientation(b.Orientation, b.AngularVelocity, dt)
	}
}

// separatedByBounds is the broad-phase rejection test: bounding spheres
// around both body origins. Planes are unbounded and always pass.
func separatedByBounds(a, b *Body) bool {
	ra := a.Shape.BoundingRadius()
	rb := b.Shape.BoundingRadius()
	if math.IsInf(ra, 1) || math.IsInf(rb, 1) {
		return false
	}
	return r3.Norm(r3.Sub(b.Position, a.Position)) > ra+rb
}

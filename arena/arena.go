// Package arena computes the static boundary set that keeps bodies inside
// the visible viewport. Boundaries are recomputed whenever the camera or
// window changes; the computation is a pure function of its inputs, so
// re-running it with unchanged parameters yields bit-identical boundaries.
package arena

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tiltbox/physics"
)

// Topology selects the boundary layout.
type Topology int

const (
	// TopologyFloor is a ground plane plus four walls at the frustum edges:
	// the well and box modes.
	TopologyFloor Topology = iota
	// TopologySandwich is four side planes plus front/back planes bracketing
	// a thin depth range: the orbit mode, closed along the camera axis.
	TopologySandwich
)

// Material tags assigned to boundaries.
const (
	MaterialGround = "ground"
	MaterialWall   = "wall"
)

// View describes the camera as seen by boundary math: a symmetric
// perspective frustum and the perpendicular distance from the camera to the
// arena plane.
type View struct {
	FovYDeg  float64
	Aspect   float64
	Distance float64
}

// HalfExtents returns the visible half-width and half-height at the arena
// plane's depth.
func (v View) HalfExtents() (halfW, halfH float64) {
	halfH = v.Distance * math.Tan(v.FovYDeg*math.Pi/360)
	halfW = halfH * v.Aspect
	return halfW, halfH
}

// Params holds boundary geometry tuning.
type Params struct {
	Margin        float64 // wall overshoot past the frustum edges
	WallHeight    float64 // floor topology wall height
	WallThickness float64 // floor topology wall thickness
	Depth         float64 // sandwich half-depth along the camera axis
}

// Boundary is a static collision surface: shape, pose and material tag.
// For planes, the orientation's local +Y is the inward-facing normal.
type Boundary struct {
	Shape       physics.Shape
	Position    r3.Vec
	Orientation quat.Number
	Material    string
}

// Compute returns the boundary set for a topology and view. The result
// order is fixed so repeated calls with equal inputs compare equal.
func Compute(t Topology, view View, p Params) []Boundary {
	switch t {
	case TopologySandwich:
		return computeSandwich(view, p)
	default:
		return computeFloor(view, p)
	}
}

// computeFloor builds a ground plane at y=0 plus four wall boxes whose inner
// faces sit at the frustum edges at floor depth. Wall lengths overshoot the
// edges by the margin so corners cannot leak.
func computeFloor(view View, p Params) []Boundary {
	halfW, halfH := view.HalfExtents()
	t := p.WallThickness / 2
	h := p.WallHeight / 2

	alongZ := r3.Vec{X: t, Y: h, Z: halfH + p.Margin} // walls at ±X
	alongX := r3.Vec{X: halfW + p.Margin, Y: h, Z: t} // walls at ±Z

	return []Boundary{
		{Shape: physics.Plane{}, Orientation: physics.QuatIdentity, Material: MaterialGround},
		{Shape: physics.NewBox(alongZ), Position: r3.Vec{X: -halfW - t, Y: h}, Orientation: physics.QuatIdentity, Material: MaterialWall},
		{Shape: physics.NewBox(alongZ), Position: r3.Vec{X: halfW + t, Y: h}, Orientation: physics.QuatIdentity, Material: MaterialWall},
		{Shape: physics.NewBox(alongX), Position: r3.Vec{Y: h, Z: -halfH - t}, Orientation: physics.QuatIdentity, Material: MaterialWall},
		{Shape: physics.NewBox(alongX), Position: r3.Vec{Y: h, Z: halfH + t}, Orientation: physics.QuatIdentity, Material: MaterialWall},
	}
}

// computeSandwich builds six inward-facing planes around the arena plane at
// z=0: four at the frustum edges at that depth, two bracketing ±Depth along
// the camera axis so a free-floating body cannot escape toward or away from
// the camera.
func computeSandwich(view View, p Params) []Boundary {
	halfW, halfH := view.HalfExtents()

	xAxis := r3.Vec{X: 1}
	zAxis := r3.Vec{Z: 1}

	return []Boundary{
		// left, inward +X
		{Shape: physics.Plane{}, Position: r3.Vec{X: -halfW}, Orientation: physics.QuatFromAxisAngle(zAxis, -math.Pi/2), Material: MaterialWall},
		// right, inward -X
		{Shape: physics.Plane{}, Position: r3.Vec{X: halfW}, Orientation: physics.QuatFromAxisAngle(zAxis, math.Pi/2), Material: MaterialWall},
		// bottom, inward +Y
		{Shape: physics.Plane{}, Position: r3.Vec{Y: -halfH}, Orientation: physics.QuatIdentity, Material: MaterialGround},
		// top, inward -Y
		{Shape: physics.Plane{}, Position: r3.Vec{Y: halfH}, Orientation: physics.QuatFromAxisAngle(zAxis, math.Pi), Material: MaterialWall},
		// back, inward +Z
		{Shape: physics.Plane{}, Position: r3.Vec{Z: -p.Depth}, Orientation: physics.QuatFromAxisAngle(xAxis, math.Pi/2), Material: MaterialWall},
		// front, inward -Z
		{Shape: physics.Plane{}, Position: r3.Vec{Z: p.Depth}, Orientation: physics.QuatFromAxisAngle(xAxis, -math.Pi/2), Material: MaterialWall},
	}
}

// Apply installs the boundary set as the world's static bodies, replacing
// any previous set. Dynamic bodies are untouched, so this is safe to call
// mid-session on every resize.
func Apply(w *physics.World, boundaries []Boundary) {
	statics := make([]*physics.Body, len(boundaries))
	for i, bd := range boundaries {
		body := physics.NewBody(bd.Shape, 0, bd.Material)
		body.Position = bd.Position
		body.Orientation = bd.Orientation
		statics[i] = body
	}
	w.ReplaceStatics(statics)
}

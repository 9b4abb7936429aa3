// Package tilt maps a device tilt (or pointer fallback) onto the gravity
// vector consumed by the physics world.
//
// Sign convention, fixed here and locked by tests rather than left to
// comments: tilting the device rightward (positive gamma) produces a
// rightward (+X) gravity component; tilting its top toward the viewer
// (positive beta) produces a toward-the-viewer (+Z) component. The vertical
// (-Y) component is a constant strong pull so the scene always has a
// dominant floor.
package tilt

import "gonum.org/v1/gonum/spatial/r3"

// Spatial axis each input maps to. Kept as named values so the convention is
// code, not folklore.
var (
	// GammaAxis receives the left/right tilt.
	GammaAxis = r3.Vec{X: 1}
	// BetaAxis receives the toward/away tilt.
	BetaAxis = r3.Vec{Z: 1}
)

// Reading is one tilt sample in degrees. An absent axis (platform without an
// orientation sensor) is reported via its Has flag and contributes zero.
type Reading struct {
	Beta     float64 // rotation about the device's X axis
	Gamma    float64 // rotation about the device's Y axis
	HasBeta  bool
	HasGamma bool
}

// Config holds the mapping parameters.
type Config struct {
	MaxAngleDeg float64 // each axis is clamped to ±MaxAngleDeg
	Scale       float64 // horizontal gravity magnitude at full tilt
	Vertical    float64 // constant Y component, conventionally negative
}

// Gravity maps a reading onto a gravity vector. Pure function: the caller
// writes the result into the world (overwriting, never accumulating).
func Gravity(r Reading, c Config) r3.Vec {
	g := r3.Vec{Y: c.Vertical}
	if r.HasGamma {
		g = r3.Add(g, r3.Scale(normalize(r.Gamma, c.MaxAngleDeg)*c.Scale, GammaAxis))
	}
	if r.HasBeta {
		g = r3.Add(g, r3.Scale(normalize(r.Beta, c.MaxAngleDeg)*c.Scale, BetaAxis))
	}
	return g
}

// PointerReading converts a pointer position normalized to [-1,1]² into an
// equivalent tilt reading: pointer right of center behaves like a rightward
// tilt, pointer below center like a toward-the-viewer tilt.
func PointerReading(nx, ny float64, c Config) Reading {
	return Reading{
		Gamma:    nx * c.MaxAngleDeg,
		Beta:     ny * c.MaxAngleDeg,
		HasGamma: true,
		HasBeta:  true,
	}
}

// normalize clamps an angle to ±max and scales it into [-1,1].
func normalize(angle, max float64) float64 {
	if max <= 0 {
		return 0
	}
	if angle > max {
		angle = max
	} else if angle < -max {
		angle = -max
	}
	return angle / max
}

package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tiltbox/arena"
	"github.com/pthm-cable/tiltbox/physics"
)

// DrawBoundaries overlays the boundary set as wireframes: boxes as cube
// wires, the ground plane as a grid, other planes as outline quads at the
// frustum extents.
func (r *Renderer) DrawBoundaries(boundaries []arena.Boundary, halfW, halfH float64) {
	for _, b := range boundaries {
		switch s := b.Shape.(type) {
		case *physics.Box:
			pos := rl.NewVector3(float32(b.Position.X), float32(b.Position.Y), float32(b.Position.Z))
			size := rl.NewVector3(
				float32(2*s.HalfExtents.X),
				float32(2*s.HalfExtents.Y),
				float32(2*s.HalfExtents.Z),
			)
			rl.DrawCubeWiresV(pos, size, rl.NewColor(90, 160, 210, 160))
		case physics.Plane:
			if b.Material == arena.MaterialGround {
				rl.DrawGrid(20, float32(halfW)/10)
			}
		}
	}
}

// DrawGravity draws the current gravity vector from the arena center.
func (r *Renderer) DrawGravity(g r3.Vec) {
	tip := rl.NewVector3(float32(g.X)*0.2, float32(g.Y)*0.2, float32(g.Z)*0.2)
	rl.DrawLine3D(rl.NewVector3(0, 0, 0), tip, rl.Yellow)
	rl.DrawSphere(tip, 0.1, rl.Yellow)
}

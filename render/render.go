// Package render draws the arena and the loaded models with raylib. It
// consumes poses produced by the sync loop and owns the GPU-side model
// table; all calls must happen on the main thread.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tiltbox/components"
	"github.com/pthm-cable/tiltbox/scene"
)

// Mode mirrors the scene mode for camera placement.
type Mode int

const (
	ModeWell Mode = iota
	ModeBox
	ModeOrbit
)

// ParseMode maps the config string onto a Mode.
func ParseMode(s string) Mode {
	switch s {
	case "box":
		return ModeBox
	case "orbit":
		return ModeOrbit
	default:
		return ModeWell
	}
}

// modelEntry keeps the uploaded model together with the CPU-side mesh data
// it points into.
type modelEntry struct {
	model rl.Model
	mesh  scene.MeshData
}

// Renderer owns the camera and the uploaded models.
type Renderer struct {
	mode     Mode
	camera   rl.Camera3D
	distance float32
	models   []modelEntry

	tints []rl.Color
}

// New creates a renderer for the given mode and view parameters.
func New(mode Mode, fovYDeg, distance float32) *Renderer {
	r := &Renderer{
		mode:     mode,
		distance: distance,
		tints: []rl.Color{
			rl.NewColor(220, 60, 90, 255),
			rl.NewColor(235, 130, 150, 255),
			rl.NewColor(180, 40, 70, 255),
		},
	}
	r.camera = rl.Camera3D{
		Fovy:       fovYDeg,
		Projection: rl.CameraPerspective,
		Target:     rl.NewVector3(0, 0, 0),
	}
	r.placeCamera()
	return r
}

// placeCamera positions the camera for the mode at the configured distance.
func (r *Renderer) placeCamera() {
	d := r.distance
	switch r.mode {
	case ModeBox:
		// Elevated front view into the glass box.
		r.camera.Position = rl.NewVector3(0, d, d*0.35)
		r.camera.Up = rl.NewVector3(0, 0, -1)
	case ModeOrbit:
		r.camera.Position = rl.NewVector3(0, 0, d)
		r.camera.Up = rl.NewVector3(0, 1, 0)
	default: // well: straight top-down, screen-up is -Z
		r.camera.Position = rl.NewVector3(0, d, 0)
		r.camera.Up = rl.NewVector3(0, 0, -1)
	}
}

// SetMode switches the camera to the placement for mode.
func (r *Renderer) SetMode(mode Mode) {
	r.mode = mode
	r.placeCamera()
}

// AddMesh uploads a mesh and returns its model table index.
func (r *Renderer) AddMesh(m scene.MeshData) int32 {
	mesh := rl.Mesh{
		VertexCount:   int32(len(m.Positions) / 3),
		TriangleCount: int32(len(m.Indices) / 3),
	}
	if len(m.Positions) > 0 {
		mesh.Vertices = &m.Positions[0]
	}
	if len(m.Indices) > 0 {
		mesh.Indices = &m.Indices[0]
	}
	rl.UploadMesh(&mesh, false)

	r.models = append(r.models, modelEntry{
		model: rl.LoadModelFromMesh(mesh),
		mesh:  m,
	})
	return int32(len(r.models) - 1)
}

// Begin opens the 3D pass.
func (r *Renderer) Begin() {
	rl.ClearBackground(rl.NewColor(18, 18, 26, 255))
	rl.BeginMode3D(r.camera)
}

// End closes the 3D pass.
func (r *Renderer) End() {
	rl.EndMode3D()
}

// DrawPose draws the model for a visual at the given pose. The quaternion
// becomes the model transform; position and scale are passed to DrawModel.
func (r *Renderer) DrawPose(pose components.Pose, vis components.Visual, index int) {
	if vis.Model < 0 || int(vis.Model) >= len(r.models) {
		return
	}
	entry := &r.models[vis.Model]
	q := rl.NewQuaternion(pose.QX, pose.QY, pose.QZ, pose.QW)
	entry.model.Transform = rl.QuaternionToMatrix(q)

	tint := r.tints[index%len(r.tints)]
	pos := rl.NewVector3(pose.X, pose.Y, pose.Z)
	rl.DrawModel(entry.model, pos, vis.Scale, tint)
	rl.DrawModelWires(entry.model, pos, vis.Scale, rl.NewColor(30, 20, 24, 120))
}

// Unload releases the uploaded models.
func (r *Renderer) Unload() {
	for _, e := range r.models {
		rl.UnloadModel(e.model)
	}
	r.models = nil
}

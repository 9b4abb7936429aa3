package components

// Collider pairs an entity with a dynamic rigid body. Slot indexes the
// game's body registry.
type Collider struct {
	Slot int32
}

// Visual pairs an entity with a renderable model. Ready stays false until
// the asynchronous mesh load completes and the model is uploaded; the sync
// loop and renderer skip entities that are not ready.
type Visual struct {
	Model int32 // index into the renderer's model table, -1 = none
	Ready bool
	Scale float32
}

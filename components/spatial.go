package components

// Pose is an entity's render transform, copied verbatim from its rigid body
// every frame.
type Pose struct {
	X, Y, Z float32

	// Orientation quaternion
	QX, QY, QZ, QW float32
}

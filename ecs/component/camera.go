package component

import "github.com/go-gl/mathgl/mgl64"

// Camera is a third-person orbit camera. Yaw and Pitch are in degrees; a Yaw
// of 0 looks down +Z.
type Camera struct {
	TargetName string
	Yaw        float64
	Pitch      float64
	Distance   float64
	Height     float64
	// OrbitSpeed is in degrees per second at full orbit input.
	OrbitSpeed float64
	Smoothness float64

	// Derived each update.
	Position mgl64.Vec3
	Forward  mgl64.Vec3
	Right    mgl64.Vec3
}

var CameraComponent = NewComponent[Camera]()

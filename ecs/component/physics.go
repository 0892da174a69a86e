package component

import "github.com/go-gl/mathgl/mgl64"

// KinematicBody is a character collider moved by the swept mover.
type KinematicBody struct {
	Radius     float64
	Height     float64
	StepOffset float64

	// Last-move contact flags.
	Below bool
	Above bool
	Sides bool
}

var KinematicBodyComponent = NewComponent[KinematicBody]()

// Platform is a static slab of level geometry.
type Platform struct {
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Color string
}

var PlatformComponent = NewComponent[Platform]()

// Spawn is where a body returns to after falling below KillY.
type Spawn struct {
	Position mgl64.Vec3
	Yaw      float64
	KillY    float64
}

var SpawnComponent = NewComponent[Spawn]()

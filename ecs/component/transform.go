package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's pose. Position is at the feet for characters.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[Transform]()

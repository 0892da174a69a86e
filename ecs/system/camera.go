package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

type CameraSystem struct {
	dt           float64
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	placed       bool
}

func NewCameraSystem(dt float64) *CameraSystem {
	return &CameraSystem{dt: dt}
}

// Update orbits the camera entity around its target and refreshes its
// movement basis.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.placed = false
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !ecs.Has(w, cs.targetEntity, component.TransformComponent.Kind()) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}

	if in, ok := ecs.Get(w, cs.targetEntity, component.InputComponent.Kind()); ok {
		cam.Yaw = common.WrapDegrees(cam.Yaw + in.Orbit*cam.OrbitSpeed*cs.dt)
	}
	cam.Forward, cam.Right = orbitBasis(cam.Yaw, cam.Pitch)

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	focus := target.Position.Add(mgl64.Vec3{0, cam.Height, 0})
	desired := focus.Sub(cam.Forward.Mul(cam.Distance))
	if !cs.placed {
		cam.Position = desired
		cs.placed = true
		return
	}
	cam.Position = common.LerpVec(cam.Position, desired, common.DampFactor(cam.Smoothness, cs.dt))
}

// orbitBasis returns the view direction and its horizontal right vector for
// a yaw and downward pitch in degrees.
func orbitBasis(yaw, pitch float64) (forward, right mgl64.Vec3) {
	y, p := mgl64.DegToRad(yaw), mgl64.DegToRad(pitch)
	forward = mgl64.Vec3{math.Sin(y) * math.Cos(p), -math.Sin(p), math.Cos(y) * math.Cos(p)}
	right = mgl64.Vec3{math.Cos(y), 0, -math.Sin(y)}
	return forward, right
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if found == 0 && n.Value == name {
			found = e
		}
	})
	return found
}

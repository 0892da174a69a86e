package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/locomotion"
)

// LocomotionSystem runs a locomotion actor per entity at a fixed step.
type LocomotionSystem struct {
	dt float64
}

func NewLocomotionSystem(dt float64) *LocomotionSystem {
	return &LocomotionSystem{dt: dt}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion) {
		if loco.Controller == nil {
			return
		}
		if loco.Actor == nil {
			actor, err := newActor(w, e, loco.Controller)
			if err != nil {
				panic("locomotion system: entity " + e.String() + ": " + err.Error())
			}
			loco.Actor = actor
		}

		wasGrounded := loco.Controller.Ground() == locomotion.Grounded
		wasMidJump := loco.Controller.MidJump()

		res := loco.Actor.Update(s.dt)
		loco.Last = res

		if !wasMidJump && loco.Controller.MidJump() {
			w.Events().Push(ecs.Event{Type: ecs.EventJumped, Data: e})
		}
		if !wasGrounded && res.Ground == locomotion.Grounded {
			w.Events().Push(ecs.Event{Type: ecs.EventLanded, Data: e})
		}
	})

	respawnFallen(w)
}

// respawnFallen moves bodies below their kill plane back to the spawn point.
func respawnFallen(w *ecs.World) {
	ecs.ForEach3(w,
		component.SpawnComponent.Kind(),
		component.TransformComponent.Kind(),
		component.LocomotionComponent.Kind(),
		func(e ecs.Entity, spawn *component.Spawn, t *component.Transform, loco *component.Locomotion) {
			if t.Position.Y() >= spawn.KillY {
				return
			}
			slog.Debug("locomotion: respawn", "entity", e, "from", t.Position, "to", spawn.Position)
			t.Position = spawn.Position
			t.Rotation = mgl64.QuatRotate(mgl64.DegToRad(spawn.Yaw), mgl64.Vec3{0, 1, 0})
			if loco.Controller != nil {
				loco.Controller.Reset()
			}
			w.Events().Push(ecs.Event{Type: ecs.EventRespawned, Data: e})
		})
}

// newActor binds a controller to the entity's components.
func newActor(w *ecs.World, e ecs.Entity, ctrl *locomotion.Controller) (*locomotion.Actor, error) {
	var svc locomotion.Services

	if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
		svc.Axes = inputAxes{in: in}
	}
	if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
			svc.Camera = cameraRig{cam: cam}
		}
	}
	t, tok := ecs.Get(w, e, component.TransformComponent.Kind())
	kb, kok := ecs.Get(w, e, component.KinematicBodyComponent.Kind())
	if tok && kok {
		svc.Body = &kinematicBody{pw: w.PhysicsWorld(), t: t, kb: kb}
	}
	if pw := w.PhysicsWorld(); pw != nil {
		svc.Ground = pw
	}
	if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
		svc.Animator = anim
	}

	return locomotion.NewActor(ctrl, svc)
}

type inputAxes struct {
	in *component.Input
}

func (a inputAxes) Axis(name string) float64 {
	switch name {
	case locomotion.AxisVertical:
		return a.in.Vertical
	case locomotion.AxisHorizontal:
		return a.in.Horizontal
	case locomotion.AxisJump:
		return a.in.Jump
	case locomotion.AxisRun:
		return a.in.Run
	case AxisOrbit:
		return a.in.Orbit
	}
	return 0
}

type cameraRig struct {
	cam *component.Camera
}

func (r cameraRig) Forward() mgl64.Vec3 { return r.cam.Forward }
func (r cameraRig) Right() mgl64.Vec3 { return r.cam.Right }

// kinematicBody moves a Transform through the physics world's swept mover.
type kinematicBody struct {
	pw *ecs.PhysicsWorld
	t  *component.Transform
	kb *component.KinematicBody
}

func (b *kinematicBody) Position() mgl64.Vec3 { return b.t.Position }
func (b *kinematicBody) Rotation() mgl64.Quat { return b.t.Rotation }
func (b *kinematicBody) SetRotation(q mgl64.Quat) { b.t.Rotation = q }

func (b *kinematicBody) Move(delta mgl64.Vec3) {
	pos, contact := b.pw.Move(b.t.Position, delta, ecs.BodyShape{
		Radius:     b.kb.Radius,
		Height:     b.kb.Height,
		StepOffset: b.kb.StepOffset,
	})
	b.t.Position = pos
	b.kb.Below = contact.Below
	b.kb.Above = contact.Above
	b.kb.Sides = contact.Sides
}

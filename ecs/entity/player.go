package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/locomotion"
	"github.com/milk9111/thirdperson/prefabs"
)

// NewPlayer creates the player character at the level's spawn point.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, lvl *prefabs.LevelSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("player: world is nil")
	}
	if spec == nil || lvl == nil {
		return 0, fmt.Errorf("player: missing spec")
	}

	spawn := &component.Spawn{
		Position: lvl.Spawn.Vec(),
		Yaw:      lvl.SpawnYaw,
		KillY:    lvl.KillY,
	}

	name := spec.Name
	if name == "" {
		name = "player"
	}

	transitions := make([]component.AnimationTransition, 0, len(spec.Animator.Transitions))
	for _, tr := range spec.Animator.Transitions {
		transitions = append(transitions, component.AnimationTransition{Clip: tr.Clip, When: tr.When})
	}

	e := ecs.CreateEntity(w)
	steps := []struct {
		what string
		add  func() error
	}{
		{"player tag", func() error {
			return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
		}},
		{"name", func() error {
			return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name})
		}},
		{"transform", func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
				Position: spawn.Position,
				Rotation: SpawnRotation(spawn.Yaw),
			})
		}},
		{"input", func() error {
			return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
		}},
		{"kinematic body", func() error {
			return ecs.Add(w, e, component.KinematicBodyComponent.Kind(), &component.KinematicBody{
				Radius:     spec.Body.Radius,
				Height:     spec.Body.Height,
				StepOffset: spec.Body.StepOffset,
			})
		}},
		{"animator", func() error {
			return ecs.Add(w, e, component.AnimatorComponent.Kind(), component.NewAnimator(spec.Animator.Default, transitions))
		}},
		{"locomotion", func() error {
			return ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{
				Controller: locomotion.NewController(spec.Movement),
			})
		}},
		{"spawn", func() error {
			return ecs.Add(w, e, component.SpawnComponent.Kind(), spawn)
		}},
	}
	for _, step := range steps {
		if err := step.add(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("player: add %s: %w", step.what, err)
		}
	}
	return e, nil
}

// SpawnRotation is the body rotation for a spawn yaw in degrees.
func SpawnRotation(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(yaw), mgl64.Vec3{0, 1, 0})
}

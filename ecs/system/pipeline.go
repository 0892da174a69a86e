package system

import (
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/locomotion"
)

// Pipeline is the fixed-step system order shared by the game and the
// simulator: input, camera, locomotion, animation, then config reloads.
type Pipeline struct {
	*ecs.Scheduler
	Input  *InputSystem
	Reload *ConfigReloadSystem
}

func NewPipeline(src locomotion.Axes, dt float64, settings AxisSettings) *Pipeline {
	p := &Pipeline{
		Input:  NewInputSystem(src, dt, settings),
		Reload: NewConfigReloadSystem(),
	}
	p.Scheduler = ecs.NewScheduler(
		p.Input,
		NewCameraSystem(dt),
		NewLocomotionSystem(dt),
		NewAnimationSystem(dt),
		p.Reload,
	)
	return p
}

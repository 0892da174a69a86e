package system

import (
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem(dt float64) *AnimationSystem {
	return &AnimationSystem{dt: dt}
}

// Update picks each animator's clip from its parameters. The first transition
// whose conditions all hold wins; with none, the default clip plays.
func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, anim *component.Animator) {
		next := resolveClip(anim)
		if next == anim.Current {
			anim.Time += a.dt
			return
		}

		w.Events().Push(ecs.Event{
			Type: ecs.EventAnimationChanged,
			Data: ecs.AnimationChange{Entity: e, From: anim.Current, To: next},
		})
		anim.Current = next
		anim.Time = 0
	})
}

func resolveClip(anim *component.Animator) string {
	for _, tr := range anim.Transitions {
		matched := true
		for param, want := range tr.When {
			if anim.Bool(param) != want {
				matched = false
				break
			}
		}
		if matched {
			return tr.Clip
		}
	}
	return anim.Default
}

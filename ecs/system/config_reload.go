package system

import (
	"log/slog"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/locomotion"
)

// ConfigReloadSystem applies a queued locomotion config to every controller
// on its next update.
type ConfigReloadSystem struct {
	pending *locomotion.Config
}

func NewConfigReloadSystem() *ConfigReloadSystem {
	return &ConfigReloadSystem{}
}

// Queue replaces any config waiting to be applied.
func (s *ConfigReloadSystem) Queue(cfg locomotion.Config) {
	s.pending = &cfg
}

func (s *ConfigReloadSystem) Pending() bool { return s.pending != nil }

func (s *ConfigReloadSystem) Update(w *ecs.World) {
	if w == nil || s.pending == nil {
		return
	}
	cfg := *s.pending
	s.pending = nil

	n := 0
	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(_ ecs.Entity, loco *component.Locomotion) {
		if loco.Controller == nil {
			return
		}
		loco.Controller.SetConfig(cfg)
		n++
	})
	slog.Info("config: applied locomotion config", "controllers", n)
}

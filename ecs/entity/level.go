package entity

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

// LoadLevelToWorld attaches a physics world built from the level's platforms
// and creates a Platform entity for each one.
func LoadLevelToWorld(w *ecs.World, lvl *prefabs.LevelSpec) error {
	if w == nil || lvl == nil {
		return fmt.Errorf("level: world and spec are required")
	}

	pw := ecs.NewPhysicsWorld()
	for i, p := range lvl.Platforms {
		slab := ecs.Slab{Min: p.Min.Vec(), Max: p.Max.Vec()}
		pw.AddSlab(slab)

		e := ecs.CreateEntity(w)
		added := pw.Slabs()[len(pw.Slabs())-1]
		if err := ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{
			Min:   added.Min,
			Max:   added.Max,
			Color: p.Color,
		}); err != nil {
			return fmt.Errorf("level: platform %d: %w", i, err)
		}
		if p.Name != "" {
			if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: p.Name}); err != nil {
				return fmt.Errorf("level: platform %d name: %w", i, err)
			}
		}
	}
	w.SetPhysicsWorld(pw)

	slog.Info("level: loaded", "name", lvl.Name, "platforms", len(lvl.Platforms))
	return nil
}

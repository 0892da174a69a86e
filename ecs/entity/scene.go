package entity

import (
	"fmt"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/prefabs"
)

// Scene holds the entities a host needs to reach directly.
type Scene struct {
	Player ecs.Entity
	Camera ecs.Entity
}

// BuildScene loads the level, then the player at its spawn point and a camera
// following the player.
func BuildScene(w *ecs.World, player *prefabs.PlayerSpec, lvl *prefabs.LevelSpec) (Scene, error) {
	if err := LoadLevelToWorld(w, lvl); err != nil {
		return Scene{}, err
	}
	p, err := NewPlayer(w, player, lvl)
	if err != nil {
		return Scene{}, err
	}
	c, err := NewCamera(w, player.Camera, "player")
	if err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	return Scene{Player: p, Camera: c}, nil
}

package entity

import (
	"fmt"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

func NewCamera(w *ecs.World, spec prefabs.CameraSpec, target string) (ecs.Entity, error) {
	distance := spec.Distance
	if distance == 0 {
		distance = 6
	}
	orbit := spec.OrbitSpeed
	if orbit == 0 {
		orbit = 120
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName: target,
		Yaw:        spec.Yaw,
		Pitch:      spec.Pitch,
		Distance:   distance,
		Height:     spec.Height,
		OrbitSpeed: orbit,
		Smoothness: spec.Smoothness,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

package component

import "github.com/milk9111/thirdperson/locomotion"

// Locomotion attaches a locomotion controller to an entity.
type Locomotion struct {
	Controller *locomotion.Controller
	// Actor is built lazily by the locomotion system.
	Actor *locomotion.Actor
	Last  locomotion.Result
}

var LocomotionComponent = NewComponent[Locomotion]()

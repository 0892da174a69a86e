package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Prober answers a synchronous ray query against world geometry.
type Prober interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64) (hit bool, dist float64)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(origin, dir mgl64.Vec3, maxDist float64) (bool, float64)

func (f ProberFunc) Raycast(origin, dir mgl64.Vec3, maxDist float64) (bool, float64) {
	return f(origin, dir, maxDist)
}

type GroundState uint8

const (
	Airborne GroundState = iota
	Grounded
)

func (s GroundState) String() string {
	if s == Grounded {
		return "grounded"
	}
	return "airborne"
}

// nextGroundState decides the ground state from this tick's probe. A jump keeps
// the character airborne for guard seconds regardless of what the probe sees.
func nextGroundState(hit bool, sinceJump, guard float64) GroundState {
	if hit && sinceJump >= guard {
		return Grounded
	}
	return Airborne
}

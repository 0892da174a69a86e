package locomotion

// Animation parameter names pushed to the animator.
const (
	ParamWalking  = "IsWalking"
	ParamRunning  = "IsRunning"
	ParamGrounded = "IsGrounded"
)

// Flags are the two animation booleans produced by speed selection.
type Flags struct {
	Walking bool
	Running bool
}

// State is the exclusive locomotion state derived each tick.
type State uint8

const (
	Idle State = iota
	Walking
	Running
	Jumping
)

func (s State) String() string {
	switch s {
	case Walking:
		return "walking"
	case Running:
		return "running"
	case Jumping:
		return "jumping"
	default:
		return "idle"
	}
}

// Flags returns the animation booleans for s. Jumping and Idle set neither.
func (s State) Flags() Flags {
	return Flags{Walking: s == Walking, Running: s == Running}
}

func stateFor(ground GroundState, flags Flags) State {
	switch {
	case ground == Airborne:
		return Jumping
	case flags.Running:
		return Running
	case flags.Walking:
		return Walking
	default:
		return Idle
	}
}

package locomotion

// Speed range hint for WalkSpeed and RunSpeed. Only the prefab loader applies
// it; the controller accepts whatever it is given.
const (
	SpeedMin = 0.0
	SpeedMax = 100.0
)

const (
	DefaultGroundProbeDistance = 3.6
	DefaultJumpReleaseVel      = 5.0
	DefaultJumpGuard           = 0.2
)

// Config holds the author-tunable movement values. ForwardVel is rewritten by
// the controller every tick from the walk/run selection and VertVel carries the
// vertical velocity between ticks; the rest stay fixed for a session unless a
// reload replaces them.
type Config struct {
	ForwardVel float64 `yaml:"forward_vel"`
	RotateVel  float64 `yaml:"rotate_vel"`

	VertVel float64 `yaml:"vert_vel"`
	JumpVel float64 `yaml:"jump_vel"`
	TermVel float64 `yaml:"term_vel"`
	MinFall float64 `yaml:"min_fall"`

	DownAccel float64 `yaml:"down_accel"`

	WalkSpeed float64 `yaml:"walk_speed"`
	RunSpeed  float64 `yaml:"run_speed"`

	GroundProbeDistance float64 `yaml:"ground_probe_distance"`
	JumpReleaseVel      float64 `yaml:"jump_release_vel"`
	// JumpGuard is the time in seconds after a jump during which the ground
	// state stays Airborne even if the probe hits.
	JumpGuard float64 `yaml:"jump_guard"`
}

// DefaultConfig returns the stock movement settings.
func DefaultConfig() Config {
	return Config{
		RotateVel:           250,
		JumpVel:             6,
		TermVel:             -10,
		MinFall:             -1.5,
		DownAccel:           900,
		GroundProbeDistance: DefaultGroundProbeDistance,
		JumpReleaseVel:      DefaultJumpReleaseVel,
		JumpGuard:           DefaultJumpGuard,
	}
}

// ClampSpeeds applies the speed range hint and reports whether anything changed.
func (c *Config) ClampSpeeds() bool {
	walk, run := clamp(c.WalkSpeed, SpeedMin, SpeedMax), clamp(c.RunSpeed, SpeedMin, SpeedMax)
	changed := walk != c.WalkSpeed || run != c.RunSpeed
	c.WalkSpeed, c.RunSpeed = walk, run
	return changed
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

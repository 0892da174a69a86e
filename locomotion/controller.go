package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Frame is everything the controller senses for one tick.
type Frame struct {
	Camera   Camera
	Position mgl64.Vec3
	Rotation mgl64.Quat
	// Ground answers the downward probe. A nil Ground never hits.
	Ground Prober
	Dt     float64
}

// Result is what one tick asks the host to apply.
type Result struct {
	// Velocity is the combined horizontal and vertical velocity.
	Velocity mgl64.Vec3
	// Delta is Velocity scaled by the tick's dt, ready for the mover.
	Delta mgl64.Vec3
	// YawDelta is the rotation applied this tick, in degrees.
	YawDelta float64
	Rotation mgl64.Quat
	Heading  mgl64.Vec3
	Flags    Flags
	State    State
	Ground   GroundState
}

// Controller turns input and sensing into movement once per tick. Only the
// vertical velocity, the mid-jump latch and the time since the last jump carry
// over between ticks; everything else is recomputed from the current frame.
type Controller struct {
	cfg   Config
	input Input

	heading    mgl64.Vec3
	horizontal mgl64.Vec3
	ground     GroundState
	midJump    bool
	sinceJump  float64
}

// NewController returns a controller at rest, with the vertical velocity
// seeded to cfg.MinFall.
func NewController(cfg Config) *Controller {
	cfg.VertVel = cfg.MinFall
	return &Controller{
		cfg:       cfg,
		sinceJump: math.Inf(1),
	}
}

func (c *Controller) Config() Config { return c.cfg }

// SetConfig swaps in new tunables, keeping the runtime fields. The vertical
// velocity is raised to the new terminal velocity if it lies below it.
func (c *Controller) SetConfig(cfg Config) {
	cfg.ForwardVel = c.cfg.ForwardVel
	cfg.VertVel = math.Max(c.cfg.VertVel, cfg.TermVel)
	c.cfg = cfg
}

// Reset returns the controller to its at-rest state, as after a respawn. The
// tunables are kept.
func (c *Controller) Reset() {
	c.cfg.VertVel = c.cfg.MinFall
	c.cfg.ForwardVel = 0
	c.input = Input{}
	c.heading = mgl64.Vec3{}
	c.horizontal = mgl64.Vec3{}
	c.ground = Airborne
	c.midJump = false
	c.sinceJump = math.Inf(1)
}

func (c *Controller) Input() *Input { return &c.input }

// Poll refreshes the input frame from src.
func (c *Controller) Poll(src Axes) { c.input.Poll(src) }

func (c *Controller) VerticalVelocity() float64 { return c.cfg.VertVel }
func (c *Controller) MidJump() bool { return c.midJump }
func (c *Controller) Ground() GroundState { return c.ground }
func (c *Controller) Heading() mgl64.Vec3 { return c.heading }

// Tick advances the controller by one frame.
func (c *Controller) Tick(f Frame) Result {
	c.sinceJump += f.Dt

	dir := DesiredDirection(c.input, f.Camera)
	c.heading = LocalHeading(dir, f.Rotation)

	yaw := TurnAngle(c.heading, c.cfg.RotateVel, f.Dt)
	rot := Yaw(f.Rotation, yaw)

	flags := c.selectSpeed()
	fwd := Forward(rot)
	speed := c.heading.Len() * c.cfg.ForwardVel
	c.horizontal = mgl64.Vec3{fwd.X() * speed, 0, fwd.Z() * speed}

	c.ground = nextGroundState(c.probe(f), c.sinceJump, c.cfg.JumpGuard)
	c.integrateVertical(f.Dt)

	vel := mgl64.Vec3{c.horizontal.X(), c.cfg.VertVel, c.horizontal.Z()}
	return Result{
		Velocity: vel,
		Delta:    vel.Mul(f.Dt),
		YawDelta: yaw,
		Rotation: rot,
		Heading:  c.heading,
		Flags:    flags,
		State:    stateFor(c.ground, flags),
		Ground:   c.ground,
	}
}

// selectSpeed picks walk or run speed and consumes the run trigger.
func (c *Controller) selectSpeed() Flags {
	var flags Flags
	if c.input.Moving() {
		if c.input.Run == 0 {
			c.cfg.ForwardVel = c.cfg.WalkSpeed
			flags.Walking = true
		} else {
			c.cfg.ForwardVel = c.cfg.RunSpeed
			flags.Running = true
		}
	}
	c.input.Run = 0
	return flags
}

func (c *Controller) probe(f Frame) bool {
	if f.Ground == nil {
		return false
	}
	hit, _ := f.Ground.Raycast(f.Position, worldDown, c.cfg.GroundProbeDistance)
	return hit
}

func (c *Controller) integrateVertical(dt float64) {
	// The latch releases against last tick's velocity, so a jump applied this
	// tick is still reported as in progress.
	if c.cfg.VertVel >= c.cfg.JumpReleaseVel {
		c.midJump = false
	}

	if c.ground == Grounded {
		if c.input.Jump > 0 && !c.midJump {
			c.cfg.VertVel = c.cfg.JumpVel
			c.midJump = true
			c.sinceJump = 0
		} else {
			c.cfg.VertVel = c.cfg.MinFall
		}
	} else {
		c.input.Jump = 0
		c.cfg.VertVel -= c.cfg.DownAccel * dt
	}

	if c.cfg.VertVel < c.cfg.TermVel {
		c.cfg.VertVel = c.cfg.TermVel
	}
}

package locomotion

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrMissingService is returned when an Actor is built without one of the host
// services it drives.
var ErrMissingService = errors.New("locomotion: missing service")

// CameraRig exposes the orientation movement input is relative to.
type CameraRig interface {
	Forward() mgl64.Vec3
	Right() mgl64.Vec3
}

// Body is the character as seen by the host: its pose and the swept mover that
// resolves collisions for a position delta.
type Body interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
	Move(delta mgl64.Vec3)
}

// ParameterSink receives named animation booleans.
type ParameterSink interface {
	SetBool(name string, value bool)
}

// Services groups the host collaborators of an Actor.
type Services struct {
	Axes     Axes
	Camera   CameraRig
	Body     Body
	Ground   Prober
	Animator ParameterSink
}

func (s Services) validate() error {
	switch {
	case s.Axes == nil:
		return fmt.Errorf("%w: axes", ErrMissingService)
	case s.Camera == nil:
		return fmt.Errorf("%w: camera", ErrMissingService)
	case s.Body == nil:
		return fmt.Errorf("%w: body", ErrMissingService)
	case s.Ground == nil:
		return fmt.Errorf("%w: ground prober", ErrMissingService)
	case s.Animator == nil:
		return fmt.Errorf("%w: animator", ErrMissingService)
	}
	return nil
}

// Actor runs a Controller against live host services.
type Actor struct {
	ctrl *Controller
	svc  Services
	last Result
}

func NewActor(ctrl *Controller, svc Services) (*Actor, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("%w: controller", ErrMissingService)
	}
	if err := svc.validate(); err != nil {
		return nil, err
	}
	return &Actor{ctrl: ctrl, svc: svc}, nil
}

func (a *Actor) Controller() *Controller { return a.ctrl }

// Last returns the result of the most recent Update.
func (a *Actor) Last() Result { return a.last }

// Update polls input, ticks the controller and applies the result.
func (a *Actor) Update(dt float64) Result {
	a.ctrl.Poll(a.svc.Axes)

	res := a.ctrl.Tick(Frame{
		Camera:   Camera{Forward: a.svc.Camera.Forward(), Right: a.svc.Camera.Right()},
		Position: a.svc.Body.Position(),
		Rotation: a.svc.Body.Rotation(),
		Ground:   a.svc.Ground,
		Dt:       dt,
	})

	a.svc.Body.SetRotation(res.Rotation)
	a.svc.Body.Move(res.Delta)

	a.svc.Animator.SetBool(ParamRunning, res.Flags.Running)
	a.svc.Animator.SetBool(ParamWalking, res.Flags.Walking)
	a.svc.Animator.SetBool(ParamGrounded, res.Ground == Grounded)

	a.last = res
	return res
}

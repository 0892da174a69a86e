package locomotion

// Axis names polled every tick.
const (
	AxisVertical   = "Vertical"
	AxisHorizontal = "Horizontal"
	AxisJump       = "Jump"
	AxisRun        = "Run"
)

// Axes is the host's input poller.
type Axes interface {
	Axis(name string) float64
}

// AxesFunc adapts a function to Axes.
type AxesFunc func(name string) float64

func (f AxesFunc) Axis(name string) float64 { return f(name) }

// Input is the per-tick input frame. Forward and Sideward are replaced on every
// poll. Jump and Run are latched: a new value is only read while the previous
// one has been consumed.
type Input struct {
	Forward  float64
	Sideward float64
	Jump     float64
	Run      float64
}

// Poll reads the axes from src.
func (in *Input) Poll(src Axes) {
	in.Forward = src.Axis(AxisVertical)
	in.Sideward = src.Axis(AxisHorizontal)

	if in.Jump == 0 {
		in.Jump = src.Axis(AxisJump)
	}
	if in.Run == 0 {
		in.Run = src.Axis(AxisRun)
	}
}

// Moving reports whether either movement axis is non-zero.
func (in Input) Moving() bool {
	return in.Forward != 0 || in.Sideward != 0
}

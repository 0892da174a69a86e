package component

// Input stores the smoothed per-frame axes for an entity. Axis names match
// the locomotion axes.
type Input struct {
	Vertical   float64
	Horizontal float64
	Jump       float64
	Run        float64
	// Orbit turns the camera around its target, -1..1.
	Orbit float64
}

var InputComponent = NewComponent[Input]()

package component

import "github.com/elliotchance/orderedmap/v2"

// AnimationTransition selects Clip when every condition matches the
// animator's parameters.
type AnimationTransition struct {
	Clip string
	When map[string]bool
}

// Animator is a parameter-driven animation graph. Parameters keep insertion
// order so debug output is stable.
type Animator struct {
	Params      *orderedmap.OrderedMap[string, bool]
	Transitions []AnimationTransition
	Default     string

	Current string
	// Time is seconds spent in the current clip.
	Time float64
}

func NewAnimator(def string, transitions []AnimationTransition) *Animator {
	return &Animator{
		Params:      orderedmap.NewOrderedMap[string, bool](),
		Transitions: transitions,
		Default:     def,
		Current:     def,
	}
}

// SetBool sets a named parameter.
func (a *Animator) SetBool(name string, value bool) {
	if a.Params == nil {
		a.Params = orderedmap.NewOrderedMap[string, bool]()
	}
	a.Params.Set(name, value)
}

// Bool returns a parameter, false when unset.
func (a *Animator) Bool(name string) bool {
	if a.Params == nil {
		return false
	}
	v, _ := a.Params.Get(name)
	return v
}

var AnimatorComponent = NewComponent[Animator]()

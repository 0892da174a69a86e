package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptDispatch is appended to every input script so one Run evaluates the
// script's input function for the current frame.
const scriptDispatch = `
__out := input(__frame)
`

// ScriptedAxes reads axes from a tengo script that defines
// input := func(frame) { ... } and returns a map keyed by lower-case axis
// name. frame carries tick and time.
type ScriptedAxes struct {
	name     string
	compiled *tengo.Compiled
	dt       float64
	tick     int
	values   map[string]float64
}

func NewScriptedAxes(name string, src []byte, dt float64) (*ScriptedAxes, error) {
	body := make([]byte, 0, len(src)+len(scriptDispatch))
	body = append(body, src...)
	body = append(body, scriptDispatch...)

	script := tengo.NewScript(body)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("__frame", scriptFrame(0, 0)); err != nil {
		return nil, fmt.Errorf("input script %s: %w", name, err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input script %s: compile: %w", name, err)
	}

	return &ScriptedAxes{
		name:     name,
		compiled: compiled,
		dt:       dt,
		values:   map[string]float64{},
	}, nil
}

func scriptFrame(tick int, time float64) map[string]interface{} {
	return map[string]interface{}{"tick": tick, "time": time}
}

// Sample evaluates the script for the next tick.
func (s *ScriptedAxes) Sample() error {
	if err := s.compiled.Set("__frame", scriptFrame(s.tick, float64(s.tick)*s.dt)); err != nil {
		return fmt.Errorf("input script %s: %w", s.name, err)
	}
	s.tick++
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("input script %s: tick %d: %w", s.name, s.tick-1, err)
	}

	clear(s.values)
	for k, v := range s.compiled.Get("__out").Map() {
		s.values[strings.ToLower(k)] = scriptNumber(v)
	}
	return nil
}

// Tick is the number of frames sampled so far.
func (s *ScriptedAxes) Tick() int { return s.tick }

func (s *ScriptedAxes) Axis(name string) float64 {
	return s.values[strings.ToLower(name)]
}

func scriptNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

package ecs

import "github.com/milk9111/thirdperson/ecs/component"

// Query returns the live entities that have every given kind. It iterates the
// smallest store.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		sets = append(sets, s)
	}

	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.len())
	for _, e := range smallest.entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		matched := true
		for _, s := range sets {
			if !s.has(e) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}

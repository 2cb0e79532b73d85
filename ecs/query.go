package ecs

import "github.com/milk9111/floater/ecs/component"

// intersectIDs returns slot ids present in every set. The smallest set drives
// the iteration.
func intersectIDs(sets ...*SparseSet) []entityID {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]entityID, 0, smallest.Len())
	for _, id := range smallest.ids() {
		all := true
		for _, s := range sets {
			if s != smallest && !s.Has(id) {
				all = false
				break
			}
		}
		if all {
			out = append(out, id)
		}
	}
	return out
}

// Query returns the live entities that carry every given component kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		sets = append(sets, w.stores[k.ID()])
	}
	ids := intersectIDs(sets...)
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities.handle(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity carrying every given kind.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

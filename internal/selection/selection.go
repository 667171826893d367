// Package selection tracks which shapes are selected and recolors their
// buffer ranges for display.
package selection

import (
	"slices"

	"cadview/internal/logging"
	"cadview/internal/mesh"
)

// ChangeFunc is called after the selection changed with the full selected
// set and the shapes that were just deselected.
type ChangeFunc func(selected, unselected []mesh.ShapeID)

// Selection is an ordered set of shape IDs. The zero value is empty and
// ready to use. It is not safe for concurrent use.
type Selection struct {
	ids       []mesh.ShapeID
	listeners []ChangeFunc
}

// OnChange registers fn to run after every change.
func (s *Selection) OnChange(fn ChangeFunc) {
	s.listeners = append(s.listeners, fn)
}

// Selected returns a copy of the selected IDs in selection order.
func (s *Selection) Selected() []mesh.ShapeID {
	return slices.Clone(s.ids)
}

func (s *Selection) IsSelected(id mesh.ShapeID) bool {
	return slices.Contains(s.ids, id)
}

func (s *Selection) Len() int { return len(s.ids) }

// Select replaces the selection with ids. With toggle set, ids that are
// already selected are deselected and the others are added instead.
func (s *Selection) Select(ids []mesh.ShapeID, toggle bool) {
	if !toggle {
		removed := s.ids
		s.ids = nil
		s.add(ids)
		s.publish(without(removed, s.ids))
		return
	}
	var on, off []mesh.ShapeID
	for _, id := range ids {
		if s.IsSelected(id) {
			off = append(off, id)
		} else {
			on = append(on, id)
		}
	}
	s.remove(off)
	s.add(on)
	s.publish(off)
}

// Deselect removes ids from the selection.
func (s *Selection) Deselect(ids []mesh.ShapeID) {
	var off []mesh.ShapeID
	for _, id := range ids {
		if s.IsSelected(id) {
			off = append(off, id)
		}
	}
	s.remove(off)
	s.publish(off)
}

// Clear deselects everything.
func (s *Selection) Clear() {
	off := s.ids
	s.ids = nil
	s.publish(off)
}

func (s *Selection) add(ids []mesh.ShapeID) {
	for _, id := range ids {
		if !slices.Contains(s.ids, id) {
			s.ids = append(s.ids, id)
		}
	}
}

func (s *Selection) remove(ids []mesh.ShapeID) {
	s.ids = without(s.ids, ids)
}

func (s *Selection) publish(unselected []mesh.ShapeID) {
	logging.Logger().Debug("selection changed", "selected", len(s.ids), "unselected", len(unselected))
	for _, fn := range s.listeners {
		fn(s.Selected(), unselected)
	}
}

// without returns the elements of a that are not in b.
func without(a, b []mesh.ShapeID) []mesh.ShapeID {
	var out []mesh.ShapeID
	for _, id := range a {
		if !slices.Contains(b, id) {
			out = append(out, id)
		}
	}
	return out
}

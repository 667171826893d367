package mesh

import "sort"

// ShapeID is an opaque handle to the shape a group was produced from.
// Groups only use it as a lookup key.
type ShapeID uint64

// Group is a contiguous buffer range attributed to one shape. Start and
// Count are in the record's native units: vertices for point and line
// records, index entries for surface records.
type Group struct {
	Start int
	Count int
	Shape ShapeID
}

// End returns the offset one past the last element of the group.
func (g Group) End() int { return g.Start + g.Count }

// Contains reports whether offset falls inside the group.
func (g Group) Contains(offset int) bool {
	return offset >= g.Start && offset < g.End()
}

// GroupIndex is the ordered list of groups of a record. Groups never
// overlap and appear in the order they were closed.
type GroupIndex []Group

// Find returns every group owned by shape, in buffer order.
func (gi GroupIndex) Find(shape ShapeID) []Group {
	var out []Group
	for _, g := range gi {
		if g.Shape == shape {
			out = append(out, g)
		}
	}
	return out
}

// Lookup builds a shape -> groups map for repeated queries.
func (gi GroupIndex) Lookup() map[ShapeID][]Group {
	m := make(map[ShapeID][]Group, len(gi))
	for _, g := range gi {
		m[g.Shape] = append(m[g.Shape], g)
	}
	return m
}

// At returns the group containing offset. Zero-count groups never match.
func (gi GroupIndex) At(offset int) (Group, bool) {
	i := sort.Search(len(gi), func(i int) bool { return gi[i].End() > offset })
	if i < len(gi) && gi[i].Contains(offset) {
		return gi[i], true
	}
	return Group{}, false
}

// Total is the sum of all group counts.
func (gi GroupIndex) Total() int {
	n := 0
	for _, g := range gi {
		n += g.Count
	}
	return n
}

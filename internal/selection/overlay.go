package selection

import (
	"github.com/lucasb-eyer/go-colorful"

	"cadview/internal/config"
	"cadview/internal/mesh"
)

// State is the set of visual states of a shape.
type State uint8

const (
	Hover State = 1 << iota
	Selected

	Normal State = 0
)

func (s State) Has(f State) bool { return s&f != 0 }

// Palette holds the colors drawn for each state.
type Palette struct {
	Hover    colorful.Color
	Selected colorful.Color
}

// PaletteFrom reads the highlight colors from the visual settings.
func PaletteFrom(v config.Visual) Palette {
	return Palette{Hover: v.HighlightColor.Resolve(), Selected: v.SelectedColor.Resolve()}
}

// Range is a span of vertices.
type Range struct {
	Start, Count int
}

// Overlay is a mutable per-vertex color buffer on top of a record. Shapes
// put in a state are recolored over their group ranges only; everything
// else keeps the record's resolved color.
type Overlay struct {
	rec     mesh.Record
	palette Palette
	groups  map[mesh.ShapeID][]mesh.Group
	states  map[mesh.ShapeID]State
	colors  []float32
	dirty   []Range
}

func NewOverlay(rec mesh.Record, p Palette) *Overlay {
	o := &Overlay{
		rec:     rec,
		palette: p,
		groups:  rec.Groups().Lookup(),
		states:  make(map[mesh.ShapeID]State),
		colors:  make([]float32, rec.VertexCount()*3),
	}
	o.paint(Range{0, rec.VertexCount()}, Normal)
	o.dirty = nil
	return o
}

func (o *Overlay) Record() mesh.Record { return o.rec }

// Colors is the current flat RGB buffer, 3 floats per vertex.
func (o *Overlay) Colors() []float32 { return o.colors }

// ColorAt returns the current color of vertex i.
func (o *Overlay) ColorAt(i int) colorful.Color {
	j := i * 3
	if i < 0 || j+2 >= len(o.colors) {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(o.colors[j]), G: float64(o.colors[j+1]), B: float64(o.colors[j+2])}
}

func (o *Overlay) State(shape mesh.ShapeID) State { return o.states[shape] }

func (o *Overlay) AddState(shape mesh.ShapeID, s State) {
	o.SetState(shape, o.states[shape]|s)
}

func (o *Overlay) RemoveState(shape mesh.ShapeID, s State) {
	o.SetState(shape, o.states[shape]&^s)
}

// SetState sets the state of shape and recolors its ranges. Shapes with no
// group in the record are ignored.
func (o *Overlay) SetState(shape mesh.ShapeID, s State) {
	groups, ok := o.groups[shape]
	if !ok || o.states[shape] == s {
		return
	}
	if s == Normal {
		delete(o.states, shape)
	} else {
		o.states[shape] = s
	}
	for _, g := range groups {
		start, count := mesh.VertexRange(o.rec, g)
		if count > 0 {
			o.paint(Range{start, count}, s)
		}
	}
}

// paint colors r for state s. Hover wins over Selected.
func (o *Overlay) paint(r Range, s State) {
	base := o.rec.Color()
	for v := r.Start; v < r.Start+r.Count; v++ {
		c := base.At(v)
		switch {
		case s.Has(Hover):
			c = o.palette.Hover
		case s.Has(Selected):
			c = o.palette.Selected
		}
		j := v * 3
		o.colors[j], o.colors[j+1], o.colors[j+2] = float32(c.R), float32(c.G), float32(c.B)
	}
	o.dirty = append(o.dirty, r)
}

// Dirty returns the ranges recolored since the last Flush.
func (o *Overlay) Dirty() []Range { return o.dirty }

// Flush returns the dirty ranges and forgets them.
func (o *Overlay) Flush() []Range {
	d := o.dirty
	o.dirty = nil
	return d
}

// Overlays fans state changes out to the overlays of several records.
type Overlays []*Overlay

func NewOverlays(recs []mesh.Record, p Palette) Overlays {
	out := make(Overlays, 0, len(recs))
	for _, r := range recs {
		out = append(out, NewOverlay(r, p))
	}
	return out
}

func (ov Overlays) AddState(shape mesh.ShapeID, s State) {
	for _, o := range ov {
		o.AddState(shape, s)
	}
}

func (ov Overlays) RemoveState(shape mesh.ShapeID, s State) {
	for _, o := range ov {
		o.RemoveState(shape, s)
	}
}

// Track keeps the Selected state of the overlays in step with sel.
func (ov Overlays) Track(sel *Selection) {
	sel.OnChange(func(selected, unselected []mesh.ShapeID) {
		for _, id := range unselected {
			ov.RemoveState(id, Selected)
		}
		for _, id := range selected {
			ov.AddState(id, Selected)
		}
	})
}

// Of returns the overlay of rec, or nil.
func (ov Overlays) Of(rec mesh.Record) *Overlay {
	for _, o := range ov {
		if o.rec == rec {
			return o
		}
	}
	return nil
}

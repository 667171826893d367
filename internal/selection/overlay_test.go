package selection

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadview/internal/mesh"
)

var (
	grey    = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	palette = Palette{
		Hover:    colorful.Color{R: 1},
		Selected: colorful.Color{B: 1},
	}
)

func lines(t *testing.T) *mesh.LineMesh {
	b := mesh.NewEdgeBuilder(grey)
	for id, n := range []int{3, 2} {
		b.NewGroup()
		for i := range n {
			b.AddPosition(float32(i), float32(id), 0)
		}
		b.EndGroup(mesh.ShapeID(id + 1))
	}
	m, err := b.Lines()
	require.NoError(t, err)
	return m
}

func faces(t *testing.T) *mesh.SurfaceMesh {
	b := mesh.NewFaceBuilder(grey)
	for id := range 2 {
		b.NewGroup()
		for _, p := range [][2]float32{{0, 0}, {1, 0}, {0, 1}} {
			b.AddPosition(p[0], p[1], float32(id))
			b.AddNormal(0, 0, 1)
			b.AddUV(p[0], p[1])
		}
		b.AddIndices(0, 1, 2)
		b.EndGroup(mesh.ShapeID(id + 1))
	}
	m, err := b.Surface()
	require.NoError(t, err)
	return m
}

func TestOverlayRecolorsGroupOnly(t *testing.T) {
	m := lines(t)
	o := NewOverlay(m, palette)
	require.Len(t, o.Colors(), m.VertexCount()*3)
	assert.Empty(t, o.Dirty())

	o.AddState(2, Selected)
	assert.Equal(t, []Range{{Start: 4, Count: 2}}, o.Flush())
	assert.Empty(t, o.Dirty())
	for v := range m.VertexCount() {
		want := grey
		if v >= 4 {
			want = palette.Selected
		}
		assert.Equal(t, want, o.ColorAt(v), "vertex %d", v)
	}

	o.AddState(2, Hover)
	assert.Equal(t, palette.Hover, o.ColorAt(4))
	o.RemoveState(2, Hover)
	assert.Equal(t, palette.Selected, o.ColorAt(4))
	o.RemoveState(2, Selected)
	assert.Equal(t, grey, o.ColorAt(5))
	assert.Equal(t, Normal, o.State(2))
}

func TestOverlayIgnoresUnknownShape(t *testing.T) {
	o := NewOverlay(lines(t), palette)
	o.AddState(42, Hover)
	assert.Empty(t, o.Dirty())
	assert.Equal(t, Normal, o.State(42))
}

func TestOverlaySurfaceUsesReferencedVertices(t *testing.T) {
	m := faces(t)
	o := NewOverlay(m, palette)
	o.AddState(2, Hover)
	assert.Equal(t, []Range{{Start: 3, Count: 3}}, o.Dirty())
	assert.Equal(t, grey, o.ColorAt(2))
	assert.Equal(t, palette.Hover, o.ColorAt(3))
}

func TestOverlaysTrackSelection(t *testing.T) {
	l, f := lines(t), faces(t)
	ov := NewOverlays([]mesh.Record{l, f}, palette)
	var s Selection
	ov.Track(&s)

	s.Select([]mesh.ShapeID{1}, false)
	assert.Equal(t, Selected, ov.Of(l).State(1))
	assert.Equal(t, Selected, ov.Of(f).State(1))

	s.Select([]mesh.ShapeID{2}, false)
	assert.Equal(t, Normal, ov.Of(l).State(1))
	assert.Equal(t, Selected, ov.Of(f).State(2))
	assert.Equal(t, palette.Selected, ov.Of(f).ColorAt(4))
}

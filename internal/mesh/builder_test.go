package mesh

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderFailFast(t *testing.T) {
	tests := []struct {
		name string
		run  func(b Builder)
		want error
	}{
		{"end without new", func(b Builder) { b.EndGroup(1) }, ErrNoGroup},
		{"add outside group", func(b Builder) { b.AddPosition(1, 2, 3) }, ErrNoGroup},
		{"new twice", func(b Builder) { b.NewGroup(); b.NewGroup() }, ErrGroupOpen},
		{"build while open", func(b Builder) { b.NewGroup() }, ErrGroupOpen},
	}
	builders := map[string]func() Builder{
		"point": func() Builder { return NewPointBuilder(3, faceColor) },
		"edge":  func() Builder { return NewEdgeBuilder(faceColor) },
		"face":  func() Builder { return NewFaceBuilder(faceColor) },
	}
	for bname, mk := range builders {
		for _, tt := range tests {
			t.Run(bname+"/"+tt.name, func(t *testing.T) {
				b := mk()
				tt.run(b)
				rec, err := b.Build()
				assert.Nil(t, rec)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	}
}

func TestBuilderStickyError(t *testing.T) {
	b := NewEdgeBuilder(faceColor)
	b.EndGroup(1)
	first := b.Err()
	require.ErrorIs(t, first, ErrNoGroup)

	// later calls are ignored and keep the first error
	b.NewGroup()
	b.AddPosition(0, 0, 0)
	b.NewGroup()
	assert.Equal(t, first, b.Err())
}

func TestBuilderNotReusable(t *testing.T) {
	b := NewPointBuilder(2, faceColor)
	b.NewGroup()
	b.AddPosition(1, 1, 1)
	b.EndGroup(1)
	m, err := b.Points()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1}, m.Positions())

	b.NewGroup()
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilt)
	// the record is unaffected
	assert.Equal(t, []float32{1, 1, 1}, m.Positions())
}

func TestSettersAfterBuild(t *testing.T) {
	pb := NewPointBuilder(2, faceColor)
	pm, err := pb.Points()
	require.NoError(t, err)
	pb.SetSize(9)
	assert.ErrorIs(t, pb.Err(), ErrBuilt)
	assert.Equal(t, float32(2), pm.Size())

	eb := NewEdgeBuilder(faceColor)
	lm, err := eb.Lines()
	require.NoError(t, err)
	eb.SetType(Dash)
	assert.ErrorIs(t, eb.Err(), ErrBuilt)
	assert.Equal(t, Solid, lm.Style())
}

func TestGroupsMonotonic(t *testing.T) {
	b := NewPointBuilder(2, faceColor)
	for s := 1; s <= 5; s++ {
		b.NewGroup()
		for i := 0; i < s%3; i++ {
			b.AddPosition(float32(s), float32(i), 0)
		}
		b.EndGroup(ShapeID(s))
	}
	m, err := b.Points()
	require.NoError(t, err)
	gi := m.Groups()
	for i := 1; i < len(gi); i++ {
		assert.LessOrEqual(t, gi[i-1].End(), gi[i].Start)
	}
	assert.Equal(t, m.VertexCount(), gi.Total())
	assert.Equal(t, float32(2), m.Size())
}

func TestBuildColorResolution(t *testing.T) {
	uniform := colorful.Color{R: 1}

	b := NewPointBuilder(1, uniform)
	b.NewGroup()
	b.AddPosition(0, 0, 0)
	b.AddColor(0, 1, 0)
	b.AddPosition(1, 0, 0)
	b.EndGroup(1)
	m, err := b.Points()
	require.NoError(t, err)
	c, ok := m.Color().Uniform()
	assert.True(t, ok, "partial per-vertex colors fall back to uniform")
	assert.Equal(t, uniform, c)

	b = NewPointBuilder(1, uniform)
	b.NewGroup()
	b.AddPosition(0, 0, 0)
	b.AddColor(0, 1, 0)
	b.EndGroup(1)
	m, err = b.Points()
	require.NoError(t, err)
	v, ok := m.Color().PerVertex()
	assert.True(t, ok)
	assert.Equal(t, []float32{0, 1, 0}, v)
}

package mesh

import "github.com/lucasb-eyer/go-colorful"

// Coloring is the color of a record: either one uniform color or a flat
// per-vertex RGB buffer (3 floats per vertex). The zero value is unset.
type Coloring struct {
	uniform    colorful.Color
	hasUniform bool
	vertex     []float32
}

// UniformColoring returns a Coloring with a single color.
func UniformColoring(c colorful.Color) Coloring {
	return Coloring{uniform: c, hasUniform: true}
}

// VertexColoring returns a Coloring backed by a per-vertex buffer.
func VertexColoring(v []float32) Coloring {
	return Coloring{vertex: v}
}

func (c Coloring) IsSet() bool { return c.hasUniform || c.vertex != nil }

func (c Coloring) Uniform() (colorful.Color, bool) { return c.uniform, c.hasUniform }

func (c Coloring) PerVertex() ([]float32, bool) { return c.vertex, c.vertex != nil }

// At returns the color of vertex i. Out of range vertices of a per-vertex
// coloring and unset colorings yield black.
func (c Coloring) At(i int) colorful.Color {
	if c.vertex != nil {
		j := i * 3
		if i < 0 || j+2 >= len(c.vertex) {
			return colorful.Color{}
		}
		return colorful.Color{R: float64(c.vertex[j]), G: float64(c.vertex[j+1]), B: float64(c.vertex[j+2])}
	}
	return c.uniform
}

// ResolveColor picks the coloring of a build. The per-vertex buffer wins
// only when it covers exactly the positionLen accumulated position scalars;
// anything else falls back to the uniform color, which may itself be nil.
func ResolveColor(uniform *colorful.Color, perVertex []float32, positionLen int) Coloring {
	if len(perVertex) > 0 && len(perVertex) == positionLen {
		return VertexColoring(perVertex)
	}
	if uniform == nil {
		return Coloring{}
	}
	return UniformColoring(*uniform)
}

package mesh

import "github.com/lucasb-eyer/go-colorful"

// EdgeBuilder turns sampled poly-lines into independent segments. Within a
// group every AddPosition after the first emits the segment from the
// previous sample to the new one, so N samples give N-1 segments.
type EdgeBuilder struct {
	accumulator
	start   int
	prev    [3]float32
	hasPrev bool
	style   LineStyle
}

func NewEdgeBuilder(c colorful.Color) *EdgeBuilder {
	b := &EdgeBuilder{}
	b.SetColor(c)
	return b
}

// SetType sets the line style of the whole record.
func (b *EdgeBuilder) SetType(style LineStyle) {
	if b.usable("SetType") {
		b.style = style
	}
}

func (b *EdgeBuilder) NewGroup() {
	if b.beginGroup() {
		b.start = len(b.positions)
		b.hasPrev = false
	}
}

func (b *EdgeBuilder) EndGroup(shape ShapeID) {
	if b.requireGroup("EndGroup") {
		b.endGroup(b.start/3, (len(b.positions)-b.start)/3, shape)
		b.hasPrev = false
	}
}

func (b *EdgeBuilder) AddPosition(x, y, z float32) {
	if !b.requireGroup("AddPosition") {
		return
	}
	if b.hasPrev {
		b.positions = append(b.positions, b.prev[0], b.prev[1], b.prev[2], x, y, z)
	}
	b.prev = [3]float32{x, y, z}
	b.hasPrev = true
}

// Lines finishes the build.
func (b *EdgeBuilder) Lines() (*LineMesh, error) {
	bs, err := b.finish()
	if err != nil {
		return nil, err
	}
	return &LineMesh{base: bs, style: b.style}, nil
}

func (b *EdgeBuilder) Build() (Record, error) {
	m, err := b.Lines()
	if err != nil {
		return nil, err
	}
	return m, nil
}

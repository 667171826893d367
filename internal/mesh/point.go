package mesh

import "github.com/lucasb-eyer/go-colorful"

// PointBuilder builds a PointMesh, one vertex per AddPosition.
type PointBuilder struct {
	accumulator
	start int
	size  float32
}

func NewPointBuilder(size float32, c colorful.Color) *PointBuilder {
	b := &PointBuilder{size: size}
	b.SetColor(c)
	return b
}

func (b *PointBuilder) SetSize(size float32) {
	if b.usable("SetSize") {
		b.size = size
	}
}

func (b *PointBuilder) NewGroup() {
	if b.beginGroup() {
		b.start = len(b.positions)
	}
}

func (b *PointBuilder) EndGroup(shape ShapeID) {
	if b.requireGroup("EndGroup") {
		b.endGroup(b.start/3, (len(b.positions)-b.start)/3, shape)
	}
}

func (b *PointBuilder) AddPosition(x, y, z float32) {
	if b.requireGroup("AddPosition") {
		b.positions = append(b.positions, x, y, z)
	}
}

// Points finishes the build.
func (b *PointBuilder) Points() (*PointMesh, error) {
	bs, err := b.finish()
	if err != nil {
		return nil, err
	}
	return &PointMesh{base: bs, size: b.size}, nil
}

func (b *PointBuilder) Build() (Record, error) {
	m, err := b.Points()
	if err != nil {
		return nil, err
	}
	return m, nil
}

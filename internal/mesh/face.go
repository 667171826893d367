package mesh

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// FaceBuilder accumulates triangulated patches. Each group supplies its
// vertices (position, normal, uv) and triangles indexed from 0 relative to
// the group's first vertex; AddIndices rebases them onto the shared buffer.
type FaceBuilder struct {
	accumulator
	groupStart  int    // len(indices) at NewGroup
	indexOffset uint32 // vertex count at NewGroup
	normals     []float32
	uvs         []float32
	indices     []uint32
}

func NewFaceBuilder(c colorful.Color) *FaceBuilder {
	b := &FaceBuilder{}
	b.SetColor(c)
	return b
}

func (b *FaceBuilder) NewGroup() {
	if b.beginGroup() {
		b.groupStart = len(b.indices)
		b.indexOffset = uint32(len(b.positions) / 3)
	}
}

// EndGroup closes the group. It fails if the vertex attributes are out of
// step or if a triangle references a vertex outside the group.
func (b *FaceBuilder) EndGroup(shape ShapeID) {
	if !b.requireGroup("EndGroup") {
		return
	}
	nv := len(b.positions) / 3
	if len(b.normals) != nv*3 || len(b.uvs) != nv*2 {
		b.fail("EndGroup", fmt.Errorf("%w: positions=%d normals=%d uvs=%d",
			ErrAttributeMismatch, nv, len(b.normals)/3, len(b.uvs)/2))
		return
	}
	// a local index that wrapped past uint32 lands below the group's offset
	for _, idx := range b.indices[b.groupStart:] {
		if idx < b.indexOffset || int(idx) >= nv {
			b.fail("EndGroup", fmt.Errorf("%w: %d not in [%d, %d)", ErrIndexRange, idx, b.indexOffset, nv))
			return
		}
	}
	b.endGroup(b.groupStart, len(b.indices)-b.groupStart, shape)
}

func (b *FaceBuilder) AddPosition(x, y, z float32) {
	if b.requireGroup("AddPosition") {
		b.positions = append(b.positions, x, y, z)
	}
}

func (b *FaceBuilder) AddNormal(x, y, z float32) {
	if b.requireGroup("AddNormal") {
		b.normals = append(b.normals, x, y, z)
	}
}

func (b *FaceBuilder) AddUV(u, v float32) {
	if b.requireGroup("AddUV") {
		b.uvs = append(b.uvs, u, v)
	}
}

// AddIndices appends one triangle given in group-local vertex indices.
func (b *FaceBuilder) AddIndices(i1, i2, i3 uint32) {
	if b.requireGroup("AddIndices") {
		o := b.indexOffset
		b.indices = append(b.indices, o+i1, o+i2, o+i3)
	}
}

// Surface finishes the build.
func (b *FaceBuilder) Surface() (*SurfaceMesh, error) {
	bs, err := b.finish()
	if err != nil {
		return nil, err
	}
	m := &SurfaceMesh{base: bs, indices: b.indices, normals: b.normals, uvs: b.uvs}
	b.indices, b.normals, b.uvs = nil, nil, nil
	return m, nil
}

func (b *FaceBuilder) Build() (Record, error) {
	m, err := b.Surface()
	if err != nil {
		return nil, err
	}
	return m, nil
}

var (
	_ Builder = (*PointBuilder)(nil)
	_ Builder = (*EdgeBuilder)(nil)
	_ Builder = (*FaceBuilder)(nil)
)

package mesh

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Kind identifies the Record variant.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindSurface
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindSurface:
		return "surface"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Record is a finished mesh ready for upload. It is exactly one of
// *PointMesh, *LineMesh or *SurfaceMesh. Slices returned by a Record are
// shared with it and must not be modified.
type Record interface {
	Kind() Kind
	// Positions is a flat xyz buffer, 3 scalars per vertex.
	Positions() []float32
	Groups() GroupIndex
	Color() Coloring
	VertexCount() int

	record()
}

type base struct {
	positions []float32
	groups    GroupIndex
	color     Coloring
}

func (b *base) Positions() []float32 { return b.positions }
func (b *base) Groups() GroupIndex   { return b.groups }
func (b *base) Color() Coloring      { return b.color }
func (b *base) VertexCount() int     { return len(b.positions) / 3 }
func (b *base) record()              {}

// PointMesh is a point cloud rendered with a fixed point diameter.
type PointMesh struct {
	base
	size float32
}

func (m *PointMesh) Kind() Kind    { return KindPoint }
func (m *PointMesh) Size() float32 { return m.size }

// NewPointMesh returns a single point record without groups.
func NewPointMesh(p [3]float32, size float32, c colorful.Color) *PointMesh {
	return &PointMesh{
		base: base{positions: []float32{p[0], p[1], p[2]}, color: UniformColoring(c)},
		size: size,
	}
}

// LineMesh is a list of independent segments, 2 vertices each.
type LineMesh struct {
	base
	style LineStyle
}

func (m *LineMesh) Kind() Kind       { return KindLine }
func (m *LineMesh) Style() LineStyle { return m.style }

// SegmentCount returns the number of segments.
func (m *LineMesh) SegmentCount() int { return m.VertexCount() / 2 }

// NewLineMesh returns a single segment record without groups.
func NewLineMesh(start, end [3]float32, c colorful.Color, style LineStyle) *LineMesh {
	return &LineMesh{
		base: base{
			positions: []float32{start[0], start[1], start[2], end[0], end[1], end[2]},
			color:     UniformColoring(c),
		},
		style: style,
	}
}

// SurfaceMesh is an indexed triangle list with per-vertex normals and uvs.
type SurfaceMesh struct {
	base
	indices []uint32
	normals []float32
	uvs     []float32
}

func (m *SurfaceMesh) Kind() Kind { return KindSurface }

// Indices holds 3 vertex indices per triangle.
func (m *SurfaceMesh) Indices() []uint32 { return m.indices }

// Normals holds 3 scalars per vertex.
func (m *SurfaceMesh) Normals() []float32 { return m.normals }

// UVs holds 2 scalars per vertex.
func (m *SurfaceMesh) UVs() []float32 { return m.uvs }

func (m *SurfaceMesh) TriangleCount() int { return len(m.indices) / 3 }

// VertexRange returns the vertices covered by group g of r. For point and
// line records that is the group itself; for surface records it is the
// span of vertices the group's indices reference.
func VertexRange(r Record, g Group) (start, count int) {
	s, ok := r.(*SurfaceMesh)
	if !ok {
		return g.Start, g.Count
	}
	if g.Count == 0 || g.End() > len(s.indices) {
		return 0, 0
	}
	lo, hi := s.indices[g.Start], s.indices[g.Start]
	for _, i := range s.indices[g.Start:g.End()] {
		lo, hi = min(lo, i), max(hi, i)
	}
	return int(lo), int(hi-lo) + 1
}

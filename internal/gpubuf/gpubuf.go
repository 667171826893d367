// Package gpubuf describes how a mesh record is laid out for upload to a
// WebGPU style device: byte buffers, usages, vertex layouts and topology.
package gpubuf

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"cadview/internal/mesh"
)

// Vertex buffer slots. Each attribute lives in its own buffer so that the
// color buffer can be rewritten alone.
const (
	SlotPosition = iota
	SlotColor
	SlotNormal
	SlotUV
)

const (
	vec3Stride = 12
	vec2Stride = 8
)

// Buffer is the content and usage of one GPU buffer.
type Buffer struct {
	Label string
	Usage gputypes.BufferUsage
	Data  []byte
}

func (b Buffer) Size() uint64 { return uint64(len(b.Data)) }

// Upload is everything needed to create the buffers and the pipeline
// vertex state of one record.
type Upload struct {
	Primitive   gputypes.PrimitiveState
	Layouts     []gputypes.VertexBufferLayout
	Vertex      []Buffer // indexed by slot
	Index       *Buffer  // surfaces only
	IndexFormat gputypes.IndexFormat
	VertexCount uint32
	IndexCount  uint32

	// PointSize is the point diameter of point records.
	PointSize float32
	// Dashed is set for line records drawn dashed.
	Dashed bool
}

// Bytes returns the total size of all buffers.
func (u Upload) Bytes() uint64 {
	var n uint64
	for _, b := range u.Vertex {
		n += b.Size()
	}
	if u.Index != nil {
		n += u.Index.Size()
	}
	return n
}

// Plan lays rec out for upload. Colors are always expanded to one RGB
// triple per vertex so that highlights can patch them in place.
func Plan(rec mesh.Record) Upload {
	n := rec.VertexCount()
	u := Upload{
		Primitive: gputypes.PrimitiveState{CullMode: gputypes.CullModeNone},
		Vertex: []Buffer{
			{Label: "positions", Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst, Data: Float32Bytes(rec.Positions())},
			{Label: "colors", Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst, Data: Float32Bytes(expandColors(rec.Color(), n))},
		},
		Layouts: []gputypes.VertexBufferLayout{
			layout(vec3Stride, gputypes.VertexFormatFloat32x3, SlotPosition),
			layout(vec3Stride, gputypes.VertexFormatFloat32x3, SlotColor),
		},
		VertexCount: uint32(n),
	}
	switch r := rec.(type) {
	case *mesh.PointMesh:
		u.Primitive.Topology = gputypes.PrimitiveTopologyPointList
		u.PointSize = r.Size()
	case *mesh.LineMesh:
		u.Primitive.Topology = gputypes.PrimitiveTopologyLineList
		u.Dashed = r.Style() == mesh.Dash
	case *mesh.SurfaceMesh:
		u.Primitive.Topology = gputypes.PrimitiveTopologyTriangleList
		u.Vertex = append(u.Vertex,
			Buffer{Label: "normals", Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst, Data: Float32Bytes(r.Normals())},
			Buffer{Label: "uvs", Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst, Data: Float32Bytes(r.UVs())},
		)
		u.Layouts = append(u.Layouts,
			layout(vec3Stride, gputypes.VertexFormatFloat32x3, SlotNormal),
			layout(vec2Stride, gputypes.VertexFormatFloat32x2, SlotUV),
		)
		u.Index = &Buffer{Label: "indices", Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst, Data: Uint32Bytes(r.Indices())}
		u.IndexFormat = gputypes.IndexFormatUint32
		u.IndexCount = uint32(len(r.Indices()))
	}
	return u
}

func layout(stride uint64, f gputypes.VertexFormat, loc uint32) gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: stride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: f, Offset: 0, ShaderLocation: loc},
		},
	}
}

// ColorRange returns the byte range of group g in the color buffer of rec.
func ColorRange(rec mesh.Record, g mesh.Group) (offset, size uint64) {
	start, count := mesh.VertexRange(rec, g)
	return uint64(start) * vec3Stride, uint64(count) * vec3Stride
}

// ColorPatch returns the bytes to write at the offset of vertex start to
// replace count vertex colors taken from a flat RGB buffer.
func ColorPatch(colors []float32, start, count int) (offset uint64, data []byte) {
	return uint64(start) * vec3Stride, Float32Bytes(colors[start*3 : (start+count)*3])
}

func expandColors(c mesh.Coloring, n int) []float32 {
	if v, ok := c.PerVertex(); ok && len(v) == n*3 {
		return v
	}
	out := make([]float32, 0, n*3)
	for i := range n {
		col := c.At(i)
		out = append(out, float32(col.R), float32(col.G), float32(col.B))
	}
	return out
}

// Float32Bytes encodes v little endian.
func Float32Bytes(v []float32) []byte {
	b := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}

// Uint32Bytes encodes v little endian.
func Uint32Bytes(v []uint32) []byte {
	b := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[i*4:], x)
	}
	return b
}

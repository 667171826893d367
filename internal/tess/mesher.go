package tess

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"

	"cadview/internal/config"
	"cadview/internal/geom"
	"cadview/internal/logging"
	"cadview/internal/mesh"
)

// ShapeMeshData is the aggregated mesh of a set of shapes, one record per
// kind. A record is nil when no shape fed it.
type ShapeMeshData struct {
	Vertices *mesh.PointMesh
	Edges    *mesh.LineMesh
	Faces    *mesh.SurfaceMesh
}

// Records returns the non-nil records, points first.
func (d *ShapeMeshData) Records() []mesh.Record {
	var out []mesh.Record
	if d.Vertices != nil {
		out = append(out, d.Vertices)
	}
	if d.Edges != nil {
		out = append(out, d.Edges)
	}
	if d.Faces != nil {
		out = append(out, d.Faces)
	}
	return out
}

// Groups returns the groups of shape in every record it appears in.
func (d *ShapeMeshData) Groups(shape mesh.ShapeID) map[mesh.Kind][]mesh.Group {
	out := make(map[mesh.Kind][]mesh.Group)
	for _, r := range d.Records() {
		if g := r.Groups().Find(shape); len(g) > 0 {
			out[r.Kind()] = g
		}
	}
	return out
}

// Mesher feeds shapes through a kernel into the three builders.
type Mesher struct {
	Kernel Kernel
	Visual config.Visual
	// FaceEdges also draws the boundary rings of faces into the edge mesh.
	FaceEdges bool
}

func NewMesher(cfg config.Config) *Mesher {
	return &Mesher{
		Kernel:    Basic{CloseRings: cfg.Tessellation.CloseRings},
		Visual:    cfg.Visual,
		FaceEdges: cfg.Tessellation.FaceEdges,
	}
}

// Mesh builds the records for shapes. Every shape becomes one group in the
// record of its kind; face boundaries become one edge group per ring.
// Shapes the kernel cannot evaluate, or evaluates into an inconsistent
// patch, get an empty group and a warning.
// The three records are built concurrently.
func (m *Mesher) Mesh(ctx context.Context, shapes []geom.Shape) (*ShapeMeshData, error) {
	start := time.Now()
	var out ShapeMeshData
	var vertices, edges, faces []geom.Shape
	for _, s := range shapes {
		switch s.Kind {
		case geom.Vertex:
			vertices = append(vertices, s)
		case geom.Edge:
			edges = append(edges, s)
		case geom.Face:
			faces = append(faces, s)
		}
	}
	if m.FaceEdges {
		edges = append(edges, faces...)
	}

	g, ctx := errgroup.WithContext(ctx)
	if len(vertices) > 0 {
		g.Go(func() (err error) {
			out.Vertices, err = m.points(ctx, vertices)
			return err
		})
	}
	if len(edges) > 0 {
		g.Go(func() (err error) {
			out.Edges, err = m.lines(ctx, edges)
			return err
		})
	}
	if len(faces) > 0 {
		g.Go(func() (err error) {
			out.Faces, err = m.surfaces(ctx, faces)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logging.Logger().Debug("meshed shapes",
		"shapes", len(shapes), "vertices", len(vertices), "edges", len(edges),
		"faces", len(faces), "took", time.Since(start))
	return &out, nil
}

func (m *Mesher) points(ctx context.Context, shapes []geom.Shape) (*mesh.PointMesh, error) {
	def := m.Visual.VertexColor.Resolve()
	b := mesh.NewPointBuilder(m.Visual.VertexSize, def)
	perVertex := anyColored(shapes)
	for _, s := range shapes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.NewGroup()
		if p, err := m.Kernel.Vertex(s); err != nil {
			warn(s, err)
		} else {
			b.AddPosition(p[0], p[1], p[2])
			if perVertex {
				addColor(b, shapeColor(s, def))
			}
		}
		b.EndGroup(s.ID)
	}
	return b.Points()
}

func (m *Mesher) lines(ctx context.Context, shapes []geom.Shape) (*mesh.LineMesh, error) {
	def := m.Visual.EdgeColor.Resolve()
	b := mesh.NewEdgeBuilder(def)
	b.SetType(m.Visual.EdgeStyle)
	perVertex := anyColored(shapes)
	for _, s := range shapes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var rings [][][3]float32
		var err error
		if s.Kind == geom.Face {
			rings, err = m.Kernel.Boundaries(s)
		} else {
			var c [][3]float32
			c, err = m.Kernel.Curve(s)
			rings = [][][3]float32{c}
		}
		if err != nil {
			warn(s, err)
			b.NewGroup()
			b.EndGroup(s.ID)
			continue
		}
		col := shapeColor(s, def)
		for _, r := range rings {
			b.NewGroup()
			for i, p := range r {
				b.AddPosition(p[0], p[1], p[2])
				// every sample after the first closes a segment of two vertices
				if perVertex && i > 0 {
					addColor(b, col)
					addColor(b, col)
				}
			}
			b.EndGroup(s.ID)
		}
	}
	return b.Lines()
}

func (m *Mesher) surfaces(ctx context.Context, shapes []geom.Shape) (*mesh.SurfaceMesh, error) {
	def := m.Visual.FaceColor.Resolve()
	b := mesh.NewFaceBuilder(def)
	perVertex := anyColored(shapes)
	for _, s := range shapes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.NewGroup()
		p, err := m.Kernel.Surface(s)
		if err == nil {
			err = p.Check()
		}
		if err != nil {
			warn(s, err)
			b.EndGroup(s.ID)
			continue
		}
		col := shapeColor(s, def)
		for i, v := range p.Positions {
			b.AddPosition(v[0], v[1], v[2])
			n := p.Normals[i]
			b.AddNormal(n[0], n[1], n[2])
			uv := p.UVs[i]
			b.AddUV(uv[0], uv[1])
			if perVertex {
				addColor(b, col)
			}
		}
		for _, t := range p.Triangles {
			b.AddIndices(t[0], t[1], t[2])
		}
		b.EndGroup(s.ID)
	}
	return b.Surface()
}

func warn(s geom.Shape, err error) {
	logging.Logger().Warn("tessellation failed", "shape", s.Label(), "err", err)
}

func addColor(b mesh.Builder, c colorful.Color) {
	b.AddColor(float32(c.R), float32(c.G), float32(c.B))
}

// anyColored reports whether some shape carries its own color, which
// switches the whole record to per-vertex colors.
func anyColored(shapes []geom.Shape) bool {
	for _, s := range shapes {
		if _, ok := s.Props["color"]; ok {
			return true
		}
	}
	return false
}

// shapeColor returns the "color" property of s, or def if it is missing or
// does not parse.
func shapeColor(s geom.Shape, def colorful.Color) colorful.Color {
	v, ok := s.Props["color"]
	if !ok {
		return def
	}
	c, err := config.ParseColor(fmt.Sprint(v))
	if err != nil {
		logging.Logger().Warn("bad shape color", "shape", s.Label(), "err", err)
		return def
	}
	return c.Resolve()
}

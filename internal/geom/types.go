package geom

import (
	"fmt"
	"strings"

	"cadview/internal/mesh"
)

// Kind is the topological kind of a shape.
type Kind int

const (
	Vertex Kind = iota
	Edge
	Face
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Edge:
		return "edge"
	case Face:
		return "face"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the names returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertex", "point":
		return Vertex, nil
	case "edge", "line", "curve":
		return Edge, nil
	case "face", "surface", "polygon":
		return Face, nil
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

type BBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
	set              bool
}

// Extend grows the box to contain p.
func (b *BBox) Extend(p [3]float64) {
	if !b.set {
		*b = BBox{MinX: p[0], MinY: p[1], MinZ: p[2], MaxX: p[0], MaxY: p[1], MaxZ: p[2], set: true}
		return
	}
	b.MinX, b.MaxX = min(b.MinX, p[0]), max(b.MaxX, p[0])
	b.MinY, b.MaxY = min(b.MinY, p[1]), max(b.MaxY, p[1])
	b.MinZ, b.MaxZ = min(b.MinZ, p[2]), max(b.MaxZ, p[2])
}

func (b BBox) Empty() bool { return !b.set }

func (b BBox) Center() [3]float64 {
	return [3]float64{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2, (b.MinZ + b.MaxZ) / 2}
}

// Size returns the largest extent along any axis.
func (b BBox) Size() float64 {
	return max(b.MaxX-b.MinX, b.MaxY-b.MinY, b.MaxZ-b.MinZ)
}

// SurfaceData is a patch that arrives already tessellated: per-vertex
// positions, normals and uvs plus triangles indexed from 0.
type SurfaceData struct {
	Positions [][3]float64 `yaml:"positions"`
	Normals   [][3]float64 `yaml:"normals"`
	UVs       [][2]float64 `yaml:"uvs"`
	Triangles [][3]int     `yaml:"triangles"`
}

// Shape is one geometric entity of a model.
type Shape struct {
	ID   mesh.ShapeID
	Kind Kind
	Name string

	// Points is the single point of a vertex, the ordered samples of an
	// edge, or the open outer ring of a face.
	Points [][3]float64
	// Holes are the open inner rings of a face.
	Holes [][][3]float64
	// Triangles holds faces given as explicit triangles (WKT TIN).
	Triangles [][3][3]float64
	// Surface holds faces given as a pre-tessellated patch.
	Surface *SurfaceData
	// Closed marks an edge whose last sample connects back to the first.
	Closed bool

	Props map[string]any
}

// Label returns the name of the shape or a generated one.
func (s Shape) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%s#%d", s.Kind, s.ID)
}

func (s Shape) eachPoint(fn func(p [3]float64)) {
	for _, p := range s.Points {
		fn(p)
	}
	for _, h := range s.Holes {
		for _, p := range h {
			fn(p)
		}
	}
	for _, t := range s.Triangles {
		for _, p := range t {
			fn(p)
		}
	}
	if s.Surface != nil {
		for _, p := range s.Surface.Positions {
			fn(p)
		}
	}
}

// Data is the set of shapes loaded from one source.
type Data struct {
	Shapes []Shape
	BBox   BBox
}

// Add appends s, assigning the next shape ID, and grows the bbox.
func (d *Data) Add(s Shape) mesh.ShapeID {
	s.ID = mesh.ShapeID(len(d.Shapes) + 1)
	s.eachPoint(d.BBox.Extend)
	d.Shapes = append(d.Shapes, s)
	return s.ID
}

// Shape returns the shape with the given ID.
func (d Data) Shape(id mesh.ShapeID) (Shape, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(d.Shapes) || d.Shapes[i].ID != id {
		return Shape{}, false
	}
	return d.Shapes[i], true
}

// Counts returns the number of shapes per kind.
func (d Data) Counts() (vertices, edges, faces int) {
	for _, s := range d.Shapes {
		switch s.Kind {
		case Vertex:
			vertices++
		case Edge:
			edges++
		case Face:
			faces++
		}
	}
	return
}

func (d Data) Empty() bool { return len(d.Shapes) == 0 }

// openRing drops the closing point of a ring that repeats its start.
func openRing(r [][3]float64) [][3]float64 {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

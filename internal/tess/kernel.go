// Package tess turns shapes into builder calls. The Kernel interface is
// the boundary to whatever evaluates geometry; Basic is a small kernel for
// the shape kinds the loaders produce.
package tess

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"cadview/internal/geom"
)

var ErrKind = errors.New("tess: wrong shape kind")

// Patch is a tessellated surface: per-vertex attributes plus triangles
// indexed from 0.
type Patch struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Triangles [][3]uint32
}

// Check reports whether the attribute counts agree and every triangle
// references an existing vertex.
func (p Patch) Check() error {
	n := len(p.Positions)
	if len(p.Normals) != n || len(p.UVs) != n {
		return fmt.Errorf("tess: patch has %d positions, %d normals, %d uvs",
			n, len(p.Normals), len(p.UVs))
	}
	for _, t := range p.Triangles {
		for _, v := range t {
			if int(v) >= n {
				return fmt.Errorf("tess: patch index %d out of range", v)
			}
		}
	}
	return nil
}

// Kernel evaluates shapes into samples. Implementations must be safe for
// concurrent use; the mesher queries it from one goroutine per record kind.
type Kernel interface {
	// Vertex returns the position of a vertex shape.
	Vertex(s geom.Shape) ([3]float32, error)
	// Curve returns the ordered samples of an edge shape.
	Curve(s geom.Shape) ([][3]float32, error)
	// Surface tessellates a face shape.
	Surface(s geom.Shape) (Patch, error)
	// Boundaries returns the sampled boundary rings of a face shape.
	Boundaries(s geom.Shape) ([][][3]float32, error)
}

// Basic is the built-in kernel. Faces are taken from their surface patch,
// their explicit triangles, or by ear clipping their outer ring.
type Basic struct {
	// CloseRings repeats the first sample at the end of closed rings.
	CloseRings bool
}

func (Basic) Vertex(s geom.Shape) ([3]float32, error) {
	if s.Kind != geom.Vertex {
		return [3]float32{}, fmt.Errorf("%w: vertex wanted, got %s", ErrKind, s.Kind)
	}
	if len(s.Points) != 1 {
		return [3]float32{}, fmt.Errorf("tess: vertex %s has %d points", s.Label(), len(s.Points))
	}
	return to32(s.Points[0]), nil
}

func (k Basic) Curve(s geom.Shape) ([][3]float32, error) {
	if s.Kind != geom.Edge {
		return nil, fmt.Errorf("%w: edge wanted, got %s", ErrKind, s.Kind)
	}
	return k.ring(s.Points, s.Closed), nil
}

func (k Basic) Boundaries(s geom.Shape) ([][][3]float32, error) {
	if s.Kind != geom.Face {
		return nil, fmt.Errorf("%w: face wanted, got %s", ErrKind, s.Kind)
	}
	var out [][][3]float32
	if len(s.Points) > 0 {
		out = append(out, k.ring(s.Points, true))
		for _, h := range s.Holes {
			out = append(out, k.ring(h, true))
		}
	}
	for _, t := range s.Triangles {
		out = append(out, k.ring(t[:], true))
	}
	return out, nil
}

func (k Basic) ring(pts [][3]float64, closed bool) [][3]float32 {
	out := make([][3]float32, 0, len(pts)+1)
	for _, p := range pts {
		out = append(out, to32(p))
	}
	if closed && k.CloseRings && len(out) > 2 {
		out = append(out, out[0])
	}
	return out
}

func (Basic) Surface(s geom.Shape) (Patch, error) {
	if s.Kind != geom.Face {
		return Patch{}, fmt.Errorf("%w: face wanted, got %s", ErrKind, s.Kind)
	}
	switch {
	case s.Surface != nil:
		return surfacePatch(s.Surface)
	case len(s.Triangles) > 0:
		return trianglesPatch(s.Triangles), nil
	case len(s.Points) >= 3:
		return ringPatch(s.Points), nil
	}
	return Patch{}, fmt.Errorf("tess: face %s has no geometry", s.Label())
}

func surfacePatch(sd *geom.SurfaceData) (Patch, error) {
	n := len(sd.Positions)
	if len(sd.Normals) != n || len(sd.UVs) != n {
		return Patch{}, errors.New("tess: surface attribute counts differ")
	}
	p := Patch{
		Positions: make([][3]float32, n),
		Normals:   make([][3]float32, n),
		UVs:       make([][2]float32, n),
		Triangles: make([][3]uint32, len(sd.Triangles)),
	}
	for i := range sd.Positions {
		p.Positions[i] = to32(sd.Positions[i])
		p.Normals[i] = normalize(to32(sd.Normals[i]))
		p.UVs[i] = [2]float32{float32(sd.UVs[i][0]), float32(sd.UVs[i][1])}
	}
	for i, t := range sd.Triangles {
		for j, v := range t {
			if v < 0 || v >= n {
				return Patch{}, fmt.Errorf("tess: surface index %d out of range", v)
			}
			p.Triangles[i][j] = uint32(v)
		}
	}
	return p, nil
}

// trianglesPatch gives every triangle its own three vertices so that each
// gets a flat normal.
func trianglesPatch(tris [][3][3]float64) Patch {
	var p Patch
	var all [][3]float32
	for _, t := range tris {
		a, b, c := to32(t[0]), to32(t[1]), to32(t[2])
		n := normalize(cross(sub(b, a), sub(c, a)))
		base := uint32(len(p.Positions))
		p.Positions = append(p.Positions, a, b, c)
		p.Normals = append(p.Normals, n, n, n)
		p.Triangles = append(p.Triangles, [3]uint32{base, base + 1, base + 2})
		all = append(all, a, b, c)
	}
	p.UVs = planarUVs(all, newell(all))
	return p
}

// ringPatch ear-clips the outer ring of a planar face. Holes are not cut
// out; they only appear as boundary edges.
func ringPatch(ring [][3]float64) Patch {
	pts := make([][3]float32, len(ring))
	for i, r := range ring {
		pts[i] = to32(r)
	}
	n := newell(pts)
	uvs := planarUVs(pts, n)
	proj := project(pts, n)
	p := Patch{Positions: pts, UVs: uvs, Triangles: triangulate(proj)}
	nn := normalize(n)
	p.Normals = make([][3]float32, len(pts))
	for i := range p.Normals {
		p.Normals[i] = nn
	}
	return p
}

func to32(p [3]float64) [3]float32 {
	return [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
}

func sub(a, b [3]float32) [3]float32 { return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// newell returns the (unnormalised) polygon normal by Newell's method.
func newell(pts [][3]float32) [3]float32 {
	var n [3]float32
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	return n
}

// dropAxis returns the two axes kept when projecting along normal n.
// The pair keeps a counter-clockwise polygon counter-clockwise when
// viewed against n.
func dropAxis(n [3]float32) (u, v int) {
	ax, ay, az := math32.Abs(n[0]), math32.Abs(n[1]), math32.Abs(n[2])
	switch {
	case ax >= ay && ax >= az:
		if n[0] < 0 {
			return 2, 1
		}
		return 1, 2
	case ay >= az:
		if n[1] < 0 {
			return 0, 2
		}
		return 2, 0
	default:
		if n[2] < 0 {
			return 1, 0
		}
		return 0, 1
	}
}

func project(pts [][3]float32, n [3]float32) [][2]float32 {
	u, v := dropAxis(n)
	out := make([][2]float32, len(pts))
	for i, p := range pts {
		out[i] = [2]float32{p[u], p[v]}
	}
	return out
}

// planarUVs maps the projected points onto [0,1]x[0,1].
func planarUVs(pts [][3]float32, n [3]float32) [][2]float32 {
	proj := project(pts, n)
	if len(proj) == 0 {
		return nil
	}
	lo, hi := proj[0], proj[0]
	for _, p := range proj[1:] {
		lo = [2]float32{min(lo[0], p[0]), min(lo[1], p[1])}
		hi = [2]float32{max(hi[0], p[0]), max(hi[1], p[1])}
	}
	w, h := hi[0]-lo[0], hi[1]-lo[1]
	out := make([][2]float32, len(proj))
	for i, p := range proj {
		if w > 0 {
			out[i][0] = (p[0] - lo[0]) / w
		}
		if h > 0 {
			out[i][1] = (p[1] - lo[1]) / h
		}
	}
	return out
}

package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"cadview/internal/mesh"
)

// rotate applies the view rotation to a direction.
func (v view) rotate(n [3]float32) [3]float64 {
	x, y, z := float64(n[0]), float64(n[1]), float64(n[2])
	x, y = x*v.cosY-y*v.sinY, x*v.sinY+y*v.cosY
	y, z = y*v.cosP-z*v.sinP, y*v.sinP+z*v.cosP
	return [3]float64{x, y, z}
}

func vec3(buf []float32, i int) [3]float32 {
	return [3]float32{buf[i*3], buf[i*3+1], buf[i*3+2]}
}

// colorAt returns the displayed color of vertex i of rec, including
// hover and selection highlights.
func (m Model) colorAt(rec mesh.Record, i int) colorful.Color {
	if o := m.overlays.Of(rec); o != nil {
		return o.ColorAt(i)
	}
	return rec.Color().At(i)
}

// rasterize draws the visible records into a w x h cell braille buffer.
func (m Model) rasterize(w, h int) *brailleBuf {
	br := newBrailleBuf(w, h)
	if m.meshes == nil {
		return br
	}
	v := m.cam.view(m.data.BBox, w, h)
	if m.showFaces && m.meshes.Faces != nil {
		m.drawFaces(br, v, m.meshes.Faces)
	}
	if m.showEdges && m.meshes.Edges != nil {
		m.drawEdges(br, v, m.meshes.Edges)
	}
	if m.showVertices && m.meshes.Vertices != nil {
		m.drawVertices(br, v, m.meshes.Vertices)
	}
	return br
}

func (m Model) drawFaces(br *brailleBuf, v view, s *mesh.SurfaceMesh) {
	pos, nrm, idx := s.Positions(), s.Normals(), s.Indices()
	for _, g := range s.Groups() {
		for t := g.Start; t+2 < g.End(); t += 3 {
			var pts [3][2]int
			var depth float64
			for k := range 3 {
				x, y, d := v.project(vec3(pos, int(idx[t+k])))
				pts[k] = [2]int{x, y}
				depth += d / 3
			}
			// flat shading against the view direction
			n := v.rotate(vec3(nrm, int(idx[t])))
			shade := 0.4 + 0.6*math.Abs(n[2])
			c := m.colorAt(s, int(idx[t]))
			c = colorful.Color{R: c.R * shade, G: c.G * shade, B: c.B * shade}
			fillTriangle(br, pts, pen{owner: owner{mesh.KindSurface, g.Shape}, depth: depth, color: c})
		}
	}
}

func (m Model) drawEdges(br *brailleBuf, v view, l *mesh.LineMesh) {
	pos := l.Positions()
	for _, g := range l.Groups() {
		p := pen{owner: owner{mesh.KindLine, g.Shape}}
		for i := g.Start; i+1 < g.End(); i += 2 {
			x0, y0, d0 := v.project(vec3(pos, i))
			x1, y1, d1 := v.project(vec3(pos, i+1))
			p.color = m.colorAt(l, i)
			br.drawLineMicro(x0, y0, x1, y1, d0, d1, p)
		}
	}
}

func (m Model) drawVertices(br *brailleBuf, v view, pm *mesh.PointMesh) {
	pos := pm.Positions()
	// sizes of 4 and up draw a 2x2 dot
	r := 0
	if pm.Size() >= 4 {
		r = 1
	}
	for _, g := range pm.Groups() {
		for i := g.Start; i < g.End(); i++ {
			x, y, d := v.project(vec3(pos, i))
			p := pen{owner: owner{mesh.KindPoint, g.Shape}, depth: d, color: m.colorAt(pm, i)}
			for dy := 0; dy <= r; dy++ {
				for dx := 0; dx <= r; dx++ {
					br.setPixel(x+dx, y+dy, p)
				}
			}
		}
	}
}

// fillTriangle fills a triangle on the microgrid scanline by scanline,
// edges included.
func fillTriangle(br *brailleBuf, pts [3][2]int, p pen) {
	minY := min(pts[0][1], pts[1][1], pts[2][1])
	maxY := max(pts[0][1], pts[1][1], pts[2][1])
	minY, maxY = max(minY, 0), min(maxY, br.h*4-1)
	for yMic := minY; yMic <= maxY; yMic++ {
		var xs []int
		for i := range 3 {
			a, b := pts[i], pts[(i+1)%3]
			if a[1] == b[1] {
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic <= y1) || (yMic >= y1 && yMic <= y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(math.Round(float64(x0)+t*float64(x1-x0))))
			}
		}
		if len(xs) == 0 {
			continue
		}
		sort.Ints(xs)
		for xMic := max(0, xs[0]); xMic <= xs[len(xs)-1] && xMic < br.w*2; xMic++ {
			br.setPixel(xMic, yMic, p)
		}
	}
	for i := range 3 {
		a, b := pts[i], pts[(i+1)%3]
		br.drawLineMicro(a[0], a[1], b[0], b[1], p.depth, p.depth, p)
	}
}

func (m Model) renderViewport(w, h int) string {
	return strings.Join(m.rasterize(w, h).toLines(), "\n")
}

// pickAt returns the topmost shape drawn in the map cell (cx, cy).
func (m Model) pickAt(cx, cy int) (mesh.ShapeID, bool) {
	lay := m.layout()
	c, ok := m.rasterize(lay.mapW, lay.mapH).at(cx, cy)
	if !ok || !c.set {
		return 0, false
	}
	return c.owner.shape, true
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"cadview/internal/mesh"
)

// owner identifies what was drawn into a cell, for picking.
type owner struct {
	kind  mesh.Kind
	shape mesh.ShapeID
}

// rank orders the layers for picking and coloring: vertices sit on top of
// edges, which sit on top of faces.
func rank(k mesh.Kind) int {
	switch k {
	case mesh.KindPoint:
		return 2
	case mesh.KindLine:
		return 1
	}
	return 0
}

type cell struct {
	mask  uint8
	set   bool
	rank  int
	depth float64
	owner owner
	color colorful.Color
}

type brailleBuf struct {
	w, h int // in cells
	c    [][]cell
}

func newBrailleBuf(w, h int) *brailleBuf {
	c := make([][]cell, h)
	for i := range c {
		c[i] = make([]cell, w)
	}
	return &brailleBuf{w: w, h: h, c: c}
}

// pen is what setPixel draws with.
type pen struct {
	owner owner
	depth float64
	color colorful.Color
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell). The cell
// keeps the owner and color of the topmost pixel drawn into it.
func (b *brailleBuf) setPixel(mx, my int, p pen) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	c := &b.c[cy][cx]
	c.mask |= dotBits[rx][ry]
	r := rank(p.owner.kind)
	if !c.set || r > c.rank || (r == c.rank && p.depth >= c.depth) {
		c.set, c.rank, c.depth = true, r, p.depth
		c.owner, c.color = p.owner, p.color
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham. Depth is
// interpolated between the end points.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, d0, d1 float64, p pen) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := max(dx, -dy)
	i := 0
	err := dx + dy
	for {
		if steps > 0 {
			p.depth = d0 + (d1-d0)*float64(i)/float64(steps)
		} else {
			p.depth = max(d0, d1)
		}
		b.setPixel(x0, y0, p)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		i++
	}
}

// at returns the cell at cell coords.
func (b *brailleBuf) at(cx, cy int) (cell, bool) {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return cell{}, false
	}
	return b.c[cy][cx], true
}

// toLines renders the buffer, coloring runs of cells that share a color.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		var runColor string
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runColor == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			c := b.c[y][x]
			r, col := ' ', ""
			if c.mask != 0 {
				r = rune(0x2800 + int(c.mask))
				col = c.color.Clamped().Hex()
			}
			if col != runColor {
				flush()
				runColor = col
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

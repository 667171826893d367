package tess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triArea(pts [][2]float32, t [3]uint32) float32 {
	return orient(pts[t[0]], pts[t[1]], pts[t[2]]) / 2
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name string
		pts  [][2]float32
		tris int
	}{
		{"triangle", [][2]float32{{0, 0}, {1, 0}, {0, 1}}, 1},
		{"square", [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 2},
		{"clockwise square", [][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, 2},
		{"concave L", [][2]float32{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}, 4},
		{"too few", [][2]float32{{0, 0}, {1, 0}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := triangulate(tt.pts)
			require.Len(t, tris, tt.tris)
			if tt.tris == 0 {
				return
			}
			var sum float32
			for _, tr := range tris {
				a := triArea(tt.pts, tr)
				assert.Greater(t, a, float32(0), "triangle %v is not counter-clockwise", tr)
				sum += a
			}
			area := signedArea(tt.pts)
			if area < 0 {
				area = -area
			}
			assert.InDelta(t, area, sum, 1e-5)
		})
	}
}

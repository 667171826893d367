package tui

import (
	"math"

	"cadview/internal/geom"
)

// camera is an orthographic view onto the model. With yaw and pitch at
// zero it looks down the z axis, which shows 2D data like a map.
type camera struct {
	yaw, pitch float64 // radians
	zoom       float64
	offsetX    int // cells
	offsetY    int
}

func newCamera() camera { return camera{zoom: 1} }

// view fixes the camera onto a bbox and a micro-pixel canvas so that many
// points can be projected without recomputing the trig.
type view struct {
	center     [3]float64
	scale      float64 // micro-pixels per model unit
	cx, cy     float64
	sinY, cosY float64
	sinP, cosP float64
}

func (c camera) view(bb geom.BBox, w, h int) view {
	wMic, hMic := w*2, h*4
	size := bb.Size()
	if bb.Empty() || size <= 0 {
		size = 1
	}
	v := view{
		center: bb.Center(),
		scale:  float64(min(wMic, hMic)-1) / size * c.zoom,
		cx:     float64(wMic)/2 + float64(c.offsetX*2),
		cy:     float64(hMic)/2 + float64(c.offsetY*4),
	}
	v.sinY, v.cosY = math.Sincos(c.yaw)
	v.sinP, v.cosP = math.Sincos(c.pitch)
	return v
}

// project maps a model point to micro-pixel coordinates. depth grows
// towards the viewer.
func (v view) project(p [3]float32) (mx, my int, depth float64) {
	x := float64(p[0]) - v.center[0]
	y := float64(p[1]) - v.center[1]
	z := float64(p[2]) - v.center[2]
	x, y = x*v.cosY-y*v.sinY, x*v.sinY+y*v.cosY
	y, z = y*v.cosP-z*v.sinP, y*v.sinP+z*v.cosP
	mx = int(math.Round(v.cx + x*v.scale))
	my = int(math.Round(v.cy - y*v.scale))
	return mx, my, z
}

package tess

// triangulate ear-clips a simple polygon given in 2D and returns triangles
// as indices into pts, counter-clockwise. Degenerate leftovers are fanned.
func triangulate(pts [][2]float32) [][3]uint32 {
	n := len(pts)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if signedArea(pts) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}
	out := make([][3]uint32, 0, n-2)
	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			a := idx[(i+len(idx)-1)%len(idx)]
			b := idx[i]
			c := idx[(i+1)%len(idx)]
			if !isEar(pts, idx, a, b, c) {
				continue
			}
			out = append(out, [3]uint32{uint32(a), uint32(b), uint32(c)})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break
		}
	}
	for i := 1; i+1 < len(idx); i++ {
		out = append(out, [3]uint32{uint32(idx[0]), uint32(idx[i]), uint32(idx[i+1])})
	}
	return out
}

func signedArea(pts [][2]float32) float32 {
	var a float32
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p[0]*q[1] - q[0]*p[1]
	}
	return a / 2
}

func orient(a, b, c [2]float32) float32 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func isEar(pts [][2]float32, idx []int, a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	if orient(pa, pb, pc) <= 0 {
		return false
	}
	for _, i := range idx {
		if i == a || i == b || i == c {
			continue
		}
		p := pts[i]
		// points on the triangle's boundary block the ear too
		if orient(pa, pb, p) >= 0 && orient(pb, pc, p) >= 0 && orient(pc, pa, p) >= 0 {
			return false
		}
	}
	return true
}

package geom

import (
	"encoding/json"
	"errors"
	"os"
)

// LoadGeo reads a GeoJSON file.
func LoadGeo(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeo(b)
}

// ParseGeo converts GeoJSON into shapes: points become vertices, line
// strings become edges and polygons become faces. A third coordinate is
// used as z. Feature properties are kept on every shape of the feature and
// a "name" property names them.
func ParseGeo(data []byte) (Data, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Data{}, err
	}
	var d Data
	parsePoint := func(v any) (pt [3]float64, ok bool) {
		a, ok := v.([]any)
		if !ok || len(a) < 2 {
			return pt, false
		}
		for i := 0; i < len(a) && i < 3; i++ {
			f, ok := a[i].(float64)
			if !ok {
				return pt, false
			}
			pt[i] = f
		}
		return pt, true
	}
	parseArrayPoints := func(v any) (pts [][3]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				pts = append(pts, pt)
			}
		}
		return pts, true
	}
	parseMulti := func(v any) (m [][][3]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if ls, ok := parseArrayPoints(el); ok {
				m = append(m, ls)
			}
		}
		return m, true
	}

	var walkGeom func(g map[string]any, name string, props map[string]any)
	walkGeom = func(g map[string]any, name string, props map[string]any) {
		add := func(s Shape) {
			s.Name, s.Props = name, props
			d.Add(s)
		}
		addPoly := func(rings [][][3]float64) {
			if len(rings) == 0 || len(rings[0]) < 4 {
				return
			}
			var holes [][][3]float64
			for _, h := range rings[1:] {
				holes = append(holes, openRing(h))
			}
			add(Shape{Kind: Face, Points: openRing(rings[0]), Holes: holes})
		}
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if pt, ok := parsePoint(g["coordinates"]); ok {
				add(Shape{Kind: Vertex, Points: [][3]float64{pt}})
			}
		case "MultiPoint":
			if pts, ok := parseArrayPoints(g["coordinates"]); ok {
				for _, p := range pts {
					add(Shape{Kind: Vertex, Points: [][3]float64{p}})
				}
			}
		case "LineString":
			if ls, ok := parseArrayPoints(g["coordinates"]); ok && len(ls) >= 2 {
				add(Shape{Kind: Edge, Points: ls})
			}
		case "MultiLineString":
			if mls, ok := parseMulti(g["coordinates"]); ok {
				for _, ls := range mls {
					if len(ls) >= 2 {
						add(Shape{Kind: Edge, Points: ls})
					}
				}
			}
		case "Polygon":
			if poly, ok := parseMulti(g["coordinates"]); ok {
				addPoly(poly)
			}
		case "MultiPolygon":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if poly, ok := parseMulti(el); ok {
						addPoly(poly)
					}
				}
			}
		case "GeometryCollection":
			if gs, ok := g["geometries"].([]any); ok {
				for _, sub := range gs {
					if sm, ok := sub.(map[string]any); ok {
						walkGeom(sm, name, props)
					}
				}
			}
		}
	}
	walkFeature := func(f map[string]any) {
		props, _ := f["properties"].(map[string]any)
		name, _ := props["name"].(string)
		if g, ok := f["geometry"].(map[string]any); ok {
			walkGeom(g, name, props)
		}
	}

	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		walkFeature(raw)
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					walkFeature(fm)
				}
			}
		}
	default:
		if len(raw) > 0 {
			walkGeom(raw, "", nil)
		}
	}
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	return d, nil
}

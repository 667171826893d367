package geom

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseWKTData parses one WKT geometry per non-empty line.
// Supported: POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON,
// TRIANGLE and TIN, each with an optional Z (or Z-less 2D coordinates).
func ParseWKTData(wkt string) (Data, error) {
	var d Data
	sc := bufio.NewScanner(strings.NewReader(wkt))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		if err := parseWKTGeometry(&d, s); err != nil {
			return Data{}, fmt.Errorf("wkt line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return Data{}, err
	}
	if d.Empty() {
		return Data{}, errors.New("empty wkt")
	}
	return d, nil
}

// LoadWKT reads a .wkt file.
func LoadWKT(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseWKTData(string(b))
}

func parseWKTGeometry(d *Data, s string) error {
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return errors.New("missing coordinates")
	}
	tag := strings.Fields(strings.ToUpper(s[:i]))
	if len(tag) == 0 {
		return errors.New("missing geometry type")
	}
	body := s[i+1 : j]
	switch tag[0] {
	case "POINT":
		pts := parseTuples(body)
		if len(pts) != 1 {
			return errors.New("point: invalid")
		}
		d.Add(Shape{Kind: Vertex, Points: pts})
	case "MULTIPOINT":
		// both "MULTIPOINT (1 2, 3 4)" and "MULTIPOINT ((1 2), (3 4))"
		body = strings.NewReplacer("(", "", ")", "").Replace(body)
		pts := parseTuples(body)
		if len(pts) == 0 {
			return errors.New("multipoint: no coordinates")
		}
		for _, p := range pts {
			d.Add(Shape{Kind: Vertex, Points: [][3]float64{p}})
		}
	case "LINESTRING":
		ls := parseTuples(body)
		if len(ls) < 2 {
			return errors.New("linestring: fewer than 2 points")
		}
		d.Add(Shape{Kind: Edge, Points: ls})
	case "MULTILINESTRING":
		parts := splitGroups(body)
		if len(parts) == 0 {
			return errors.New("multilinestring: invalid")
		}
		for _, p := range parts {
			if ls := parseTuples(p); len(ls) >= 2 {
				d.Add(Shape{Kind: Edge, Points: ls})
			}
		}
	case "POLYGON":
		rings := parseRings(body)
		if len(rings) == 0 || len(rings[0]) < 3 {
			return errors.New("polygon: invalid outer ring")
		}
		d.Add(Shape{Kind: Face, Points: rings[0], Holes: rings[1:]})
	case "TRIANGLE":
		tri, err := parseTriangle(body)
		if err != nil {
			return err
		}
		d.Add(Shape{Kind: Face, Triangles: [][3][3]float64{tri}})
	case "TIN":
		var tris [][3][3]float64
		for _, p := range splitGroups(body) {
			tri, err := parseTriangle(p)
			if err != nil {
				return fmt.Errorf("tin: %w", err)
			}
			tris = append(tris, tri)
		}
		if len(tris) == 0 {
			return errors.New("tin: no triangles")
		}
		d.Add(Shape{Kind: Face, Triangles: tris})
	default:
		return fmt.Errorf("unsupported wkt type %s", tag[0])
	}
	return nil
}

func parseRings(body string) [][][3]float64 {
	var rings [][][3]float64
	for _, p := range splitGroups(body) {
		rings = append(rings, openRing(parseTuples(p)))
	}
	return rings
}

func parseTriangle(body string) ([3][3]float64, error) {
	rings := parseRings(body)
	if len(rings) != 1 || len(rings[0]) != 3 {
		return [3][3]float64{}, errors.New("triangle: need exactly 3 distinct points")
	}
	return [3][3]float64{rings[0][0], rings[0][1], rings[0][2]}, nil
}

// splitGroups returns the contents of the top-level parenthesised groups
// of s: "(a),(b (c))" gives ["a", "b (c)"].
func splitGroups(s string) []string {
	var out []string
	depth, start := 0, -1
	for i, r := range s {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
		}
	}
	return out
}

// parseTuples parses "x y [z], x y [z], ..." skipping malformed tuples.
func parseTuples(block string) [][3]float64 {
	var out [][3]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		var p [3]float64
		ok := true
		for k := 0; k < len(parts) && k < 3; k++ {
			v, err := strconv.ParseFloat(parts[k], 64)
			if err != nil {
				ok = false
				break
			}
			p[k] = v
		}
		if ok {
			out = append(out, p)
		}
	}
	return out
}

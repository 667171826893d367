package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

type kmlPlacemark struct {
	Name  string `xml:"name"`
	Point *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
	LineString *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"LineString"`
	Polygon *struct {
		Outer string   `xml:"outerBoundaryIs>LinearRing>coordinates"`
		Inner []string `xml:"innerBoundaryIs>LinearRing>coordinates"`
	} `xml:"Polygon"`
}

// LoadKML reads Placemarks (Point, LineString, Polygon) at any depth of a
// KML file.
func LoadKML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return parseKML(f)
}

func parseKML(r io.Reader) (Data, error) {
	var d Data
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Data{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Data{}, err
		}
		name := strings.TrimSpace(pm.Name)
		switch {
		case pm.Point != nil:
			for _, p := range parseKMLCoords(pm.Point.Coordinates) {
				d.Add(Shape{Kind: Vertex, Name: name, Points: [][3]float64{p}})
			}
		case pm.LineString != nil:
			if ls := parseKMLCoords(pm.LineString.Coordinates); len(ls) >= 2 {
				d.Add(Shape{Kind: Edge, Name: name, Points: ls})
			}
		case pm.Polygon != nil:
			outer := openRing(parseKMLCoords(pm.Polygon.Outer))
			if len(outer) < 3 {
				continue
			}
			var holes [][][3]float64
			for _, in := range pm.Polygon.Inner {
				holes = append(holes, openRing(parseKMLCoords(in)))
			}
			d.Add(Shape{Kind: Face, Name: name, Points: outer, Holes: holes})
		}
	}
	if d.Empty() {
		return Data{}, errors.New("kml: no placemarks found")
	}
	return d, nil
}

// parseKMLCoords parses whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) [][3]float64 {
	var out [][3]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		var p [3]float64
		ok := true
		for i := 0; i < len(vals) && i < 3; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(vals[i]), 64)
			if err != nil {
				ok = false
				break
			}
			p[i] = v
		}
		if ok {
			out = append(out, p)
		}
	}
	return out
}

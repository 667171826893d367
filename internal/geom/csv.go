package geom

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a CSV point list, one vertex per row.
// Column detection (case-insensitive): x|lon|lng|long|longitude,
// y|lat|latitude, optional z|alt|altitude|elevation and name.
// Every column of a row is kept in the shape's properties.
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return Data{}, err
	}
	if len(recs) == 0 {
		return Data{}, errors.New("empty csv")
	}
	header := recs[0]
	idxX, idxY, idxZ, idxName := -1, -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "lon", "lng", "long", "longitude":
			if idxX == -1 {
				idxX = i
			}
		case "y", "lat", "latitude":
			if idxY == -1 {
				idxY = i
			}
		case "z", "alt", "altitude", "elevation":
			if idxZ == -1 {
				idxZ = i
			}
		case "name":
			if idxName == -1 {
				idxName = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return Data{}, errors.New("csv: x/y columns not found")
	}
	var d Data
	for _, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		var z float64
		if idxZ >= 0 && idxZ < len(row) {
			z, _ = strconv.ParseFloat(strings.TrimSpace(row[idxZ]), 64)
		}
		props := make(map[string]any, len(header))
		for i, h := range header {
			if i < len(row) {
				props[h] = row[i]
			}
		}
		s := Shape{Kind: Vertex, Points: [][3]float64{{x, y, z}}, Props: props}
		if idxName >= 0 && idxName < len(row) {
			s.Name = row[idxName]
		}
		d.Add(s)
	}
	if d.Empty() {
		return Data{}, errors.New("csv: no valid points parsed")
	}
	return d, nil
}

package geom

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".wkt", ".geojson", ".json", ".csv", ".kml", ".yaml", ".yml"}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads path with the loader matching its extension.
func Load(path string) (Data, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wkt":
		return LoadWKT(path)
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".yaml", ".yml":
		return LoadScene(path)
	default:
		return Data{}, fmt.Errorf("unsupported file: %s", ext)
	}
}

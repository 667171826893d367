package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadview/internal/mesh"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestParseGeo(t *testing.T) {
	src := `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "well", "depth": 12},
     "geometry": {"type": "Point", "coordinates": [1, 2, 3]}},
    {"type": "Feature", "properties": {"name": "road"},
     "geometry": {"type": "MultiLineString", "coordinates": [[[0, 0], [1, 1]], [[2, 2], [3, 3]]]}},
    {"type": "Feature", "properties": null,
     "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [2, 0], [2, 2], [0, 2], [0, 0]]]}}
  ]
}`
	d, err := ParseGeo([]byte(src))
	require.NoError(t, err)
	v, e, f := d.Counts()
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, e)
	assert.Equal(t, 1, f)

	well := d.Shapes[0]
	assert.Equal(t, "well", well.Name)
	assert.Equal(t, [3]float64{1, 2, 3}, well.Points[0])
	assert.Equal(t, 12.0, well.Props["depth"])
	assert.Len(t, d.Shapes[3].Points, 4)
	assert.Equal(t, "face#4", d.Shapes[3].Label())
}

func TestParseGeoBareGeometry(t *testing.T) {
	d, err := ParseGeo([]byte(`{"type": "LineString", "coordinates": [[0, 0, 1], [1, 0, 1]]}`))
	require.NoError(t, err)
	assert.Equal(t, Edge, d.Shapes[0].Kind)

	_, err = ParseGeo([]byte(`{"type": "Feature", "geometry": null}`))
	assert.Error(t, err)
	_, err = ParseGeo([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	p := writeTemp(t, "pts.csv", "name,X,Y,elevation\na,1,2,3\nb,4,5,\nbad,x,1,1\n")
	d, err := LoadCSV(p)
	require.NoError(t, err)
	require.Len(t, d.Shapes, 2)
	assert.Equal(t, "a", d.Shapes[0].Name)
	assert.Equal(t, [3]float64{1, 2, 3}, d.Shapes[0].Points[0])
	assert.Equal(t, [3]float64{4, 5, 0}, d.Shapes[1].Points[0])
	assert.Equal(t, "b", d.Shapes[1].Props["name"])

	_, err = LoadCSV(writeTemp(t, "none.csv", "a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestLoadKML(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark><name>pin</name><Point><coordinates>1,2,3</coordinates></Point></Placemark>
      <Placemark><name>path</name><LineString><coordinates>0,0 1,1 2,0</coordinates></LineString></Placemark>
      <Placemark><name>lot</name><Polygon>
        <outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,4 0,0</coordinates></LinearRing></outerBoundaryIs>
        <innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,1</coordinates></LinearRing></innerBoundaryIs>
      </Polygon></Placemark>
    </Folder>
  </Document>
</kml>`
	d, err := parseKML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, d.Shapes, 3)
	assert.Equal(t, "pin", d.Shapes[0].Name)
	assert.Equal(t, [3]float64{1, 2, 3}, d.Shapes[0].Points[0])
	assert.Len(t, d.Shapes[1].Points, 3)
	assert.Len(t, d.Shapes[2].Points, 4)
	assert.Len(t, d.Shapes[2].Holes, 1)

	_, err = parseKML(strings.NewReader(`<kml></kml>`))
	assert.Error(t, err)
}

func TestParseScene(t *testing.T) {
	src := `
shapes:
  - name: origin
    kind: vertex
    points: [[0, 0, 0]]
  - name: rail
    kind: edge
    closed: true
    points: [[0, 0, 0], [1, 0, 0], [1, 1, 0]]
  - name: panel
    kind: face
    props: {material: steel}
    surface:
      positions: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
      normals: [[0, 0, 1], [0, 0, 1], [0, 0, 1]]
      uvs: [[0, 0], [1, 0], [0, 1]]
      triangles: [[0, 1, 2]]
`
	d, err := ParseScene([]byte(src))
	require.NoError(t, err)
	require.Len(t, d.Shapes, 3)
	assert.True(t, d.Shapes[1].Closed)
	panel, ok := d.Shape(3)
	require.True(t, ok)
	assert.Equal(t, "steel", panel.Props["material"])
	assert.Equal(t, [][3]int{{0, 1, 2}}, panel.Surface.Triangles)
	_, ok = d.Shape(mesh.ShapeID(4))
	assert.False(t, ok)
}

func TestParseSceneErrors(t *testing.T) {
	for name, src := range map[string]string{
		"bad kind":     "shapes:\n  - kind: blob\n    points: [[0,0,0]]\n",
		"vertex count": "shapes:\n  - kind: vertex\n    points: [[0,0,0],[1,1,1]]\n",
		"edge count":   "shapes:\n  - kind: edge\n    points: [[0,0,0]]\n",
		"face empty":   "shapes:\n  - kind: face\n",
		"surface attr": "shapes:\n  - kind: face\n    surface:\n      positions: [[0,0,0]]\n      normals: []\n      uvs: [[0,0]]\n",
		"surface idx":  "shapes:\n  - kind: face\n    surface:\n      positions: [[0,0,0]]\n      normals: [[0,0,1]]\n      uvs: [[0,0]]\n      triangles: [[0,0,1]]\n",
		"no shapes":    "shapes: []\n",
		"bad yaml":     "shapes: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScene([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadDispatch(t *testing.T) {
	assert.True(t, Supported("a/B.GeoJSON"))
	assert.False(t, Supported("a.shp"))
	_, err := Load("model.step")
	assert.Error(t, err)

	p := writeTemp(t, "s.yml", "shapes:\n  - kind: vertex\n    points: [[1,2,3]]\n")
	d, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d.BBox.MaxZ)
	assert.False(t, d.BBox.Empty())
}

func TestBBox(t *testing.T) {
	var b BBox
	assert.True(t, b.Empty())
	b.Extend([3]float64{1, -1, 0})
	b.Extend([3]float64{-3, 2, 5})
	assert.Equal(t, [3]float64{-1, 0.5, 2.5}, b.Center())
	assert.Equal(t, 5.0, b.Size())
}

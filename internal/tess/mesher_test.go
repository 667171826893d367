package tess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadview/internal/config"
	"cadview/internal/geom"
	"cadview/internal/mesh"
)

func testShapes() []geom.Shape {
	return []geom.Shape{
		{ID: 1, Kind: geom.Vertex, Points: [][3]float64{{0, 0, 0}}},
		{ID: 2, Kind: geom.Edge, Points: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}},
		{ID: 3, Kind: geom.Face, Points: square(0)},
	}
}

func TestMesherGroups(t *testing.T) {
	m := NewMesher(config.Default())
	data, err := m.Mesh(context.Background(), testShapes())
	require.NoError(t, err)
	require.Len(t, data.Records(), 3)

	assert.Equal(t, mesh.GroupIndex{{Start: 0, Count: 1, Shape: 1}}, data.Vertices.Groups())
	assert.Equal(t, mesh.GroupIndex{
		{Start: 0, Count: 4, Shape: 2},
		{Start: 4, Count: 8, Shape: 3},
	}, data.Edges.Groups())
	assert.Equal(t, mesh.GroupIndex{{Start: 0, Count: 6, Shape: 3}}, data.Faces.Groups())

	assert.Equal(t, float32(5), data.Vertices.Size())
	assert.True(t, data.Faces.Color().IsSet())

	g := data.Groups(3)
	assert.Len(t, g, 2)
	assert.Contains(t, g, mesh.KindLine)
	assert.Contains(t, g, mesh.KindSurface)
}

func TestMesherWithoutFaceEdges(t *testing.T) {
	cfg := config.Default()
	cfg.Tessellation.FaceEdges = false
	data, err := NewMesher(cfg).Mesh(context.Background(), testShapes()[2:])
	require.NoError(t, err)
	assert.Nil(t, data.Edges)
	assert.Nil(t, data.Vertices)
	assert.Len(t, data.Records(), 1)
}

func TestMesherKernelFailureKeepsGroup(t *testing.T) {
	shapes := []geom.Shape{
		{ID: 1, Kind: geom.Vertex},
		{ID: 2, Kind: geom.Vertex, Points: [][3]float64{{1, 1, 1}}},
	}
	data, err := NewMesher(config.Default()).Mesh(context.Background(), shapes)
	require.NoError(t, err)
	assert.Equal(t, mesh.GroupIndex{
		{Start: 0, Count: 0, Shape: 1},
		{Start: 0, Count: 1, Shape: 2},
	}, data.Vertices.Groups())
}

func TestMesherPerVertexColor(t *testing.T) {
	shapes := testShapes()
	shapes[1].Props = map[string]any{"color": "#ff0000"}
	data, err := NewMesher(config.Default()).Mesh(context.Background(), shapes)
	require.NoError(t, err)

	cols, ok := data.Edges.Color().PerVertex()
	require.True(t, ok)
	assert.Len(t, cols, len(data.Edges.Positions()))
	assert.Equal(t, []float32{1, 0, 0}, cols[:3])

	_, ok = data.Vertices.Color().Uniform()
	assert.True(t, ok)
}

func TestMesherCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMesher(config.Default()).Mesh(ctx, testShapes())
	assert.ErrorIs(t, err, context.Canceled)
}

// lopsided returns surface patches whose attributes are out of step.
type lopsided struct{ Basic }

func (lopsided) Surface(geom.Shape) (Patch, error) {
	return Patch{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   [][3]float32{{0, 0, 1}},
		UVs:       [][2]float32{{0, 0}},
		Triangles: [][3]uint32{{0, 1, 2}},
	}, nil
}

func TestMesherRejectsInconsistentPatch(t *testing.T) {
	m := NewMesher(config.Default())
	m.Kernel = lopsided{}
	data, err := m.Mesh(context.Background(), testShapes()[2:])
	require.NoError(t, err)
	assert.Equal(t, mesh.GroupIndex{{Start: 0, Count: 0, Shape: 3}}, data.Faces.Groups())
	assert.Empty(t, data.Faces.Indices())
}

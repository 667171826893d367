package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadview/internal/mesh"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	p := writeFile(t, `
[visual]
edge_color = "#ff0000"
edge_style = "dash"
face_color = "steelblue"
vertex_size = 8

[tessellation]
face_edges = false
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", cfg.Visual.EdgeColor.String())
	assert.Equal(t, mesh.Dash, cfg.Visual.EdgeStyle)
	assert.Equal(t, "#4682b4", cfg.Visual.FaceColor.String())
	assert.False(t, cfg.Visual.FaceColor.IsRandom())
	assert.Equal(t, float32(8), cfg.Visual.VertexSize)
	assert.False(t, cfg.Tessellation.FaceEdges)
	// untouched keys keep their defaults
	assert.True(t, cfg.Tessellation.CloseRings)
	assert.Equal(t, Default().Visual.SelectedColor, cfg.Visual.SelectedColor)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "[visual]\nbogus = 1\n",
		"bad color":    "[visual]\nedge_color = \"not-a-color\"\n",
		"bad style":    "[visual]\nedge_style = \"wavy\"\n",
		"bad size":     "[visual]\nvertex_size = 0\n",
		"syntax error": "[visual\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadDefaultMissingFile(t *testing.T) {
	t.Setenv(EnvPath, filepath.Join(t.TempDir(), "missing.toml"))
	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Visual.EdgeColor = Fixed(colorful.Color{R: 0, G: 0, B: 1})
	require.NoError(t, Save(cfg, p))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", got.Visual.EdgeColor.String())
	assert.True(t, got.Visual.FaceColor.IsRandom())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Red")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", c.String())

	c, err = ParseColor("#0f0")
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", c.String())

	c, err = ParseColor("random")
	require.NoError(t, err)
	assert.True(t, c.IsRandom())

	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestPathExpandsHome(t *testing.T) {
	t.Setenv(EnvPath, "")
	p, err := Path()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p))
	assert.Equal(t, "config.toml", filepath.Base(p))
}

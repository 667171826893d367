// Package config loads the cadview settings from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"cadview/internal/logging"
	"cadview/internal/mesh"
)

// EnvPath overrides the config file location.
const EnvPath = "CADVIEW_CONFIG"

const defaultPath = "~/.config/cadview/config.toml"

// Visual holds the default look of built meshes and of the selection
// states drawn over them.
type Visual struct {
	EdgeColor      Color          `toml:"edge_color"`
	EdgeStyle      mesh.LineStyle `toml:"edge_style"`
	FaceColor      Color          `toml:"face_color"`
	VertexColor    Color          `toml:"vertex_color"`
	VertexSize     float32        `toml:"vertex_size"`
	HighlightColor Color          `toml:"highlight_color"`
	SelectedColor  Color          `toml:"selected_color"`
}

// Tessellation controls how the basic kernel samples shapes.
type Tessellation struct {
	// FaceEdges adds the boundary rings of faces to the edge mesh.
	FaceEdges bool `toml:"face_edges"`
	// CloseRings repeats the first sample at the end of polygon rings.
	CloseRings bool `toml:"close_rings"`
}

type Config struct {
	Visual       Visual       `toml:"visual"`
	Tessellation Tessellation `toml:"tessellation"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Visual: Visual{
			EdgeColor:      Fixed(colorful.Color{R: 0.75, G: 0.75, B: 0.75}),
			EdgeStyle:      mesh.Solid,
			FaceColor:      Random(),
			VertexColor:    Fixed(colorful.Color{R: 1, G: 0.84, B: 0}),
			VertexSize:     5,
			HighlightColor: Fixed(colorful.Color{R: 1, G: 0.65, B: 0}),
			SelectedColor:  Fixed(colorful.Color{R: 0.49, G: 0.23, B: 0.93}),
		},
		Tessellation: Tessellation{
			FaceEdges:  true,
			CloseRings: true,
		},
	}
}

// Path returns the config file location: $CADVIEW_CONFIG if set,
// otherwise ~/.config/cadview/config.toml.
func Path() (string, error) {
	p := os.Getenv(EnvPath)
	if p == "" {
		p = defaultPath
	}
	return homedir.Expand(p)
}

// Load reads path on top of the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Default(), fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Visual.VertexSize <= 0 {
		return Default(), fmt.Errorf("config %s: vertex_size must be positive", path)
	}
	return cfg, nil
}

// LoadDefault loads the config from Path. A missing file yields the
// defaults without error.
func LoadDefault() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	cfg, err := Load(p)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Logger().Debug("no config file, using defaults", "path", p)
		return Default(), nil
	}
	if err == nil {
		logging.Logger().Info("config loaded", "path", p)
	}
	return cfg, err
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(cfg Config, path string) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

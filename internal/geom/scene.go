package geom

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sceneFile is the YAML scene layout:
//
//	shapes:
//	  - name: rail
//	    kind: edge
//	    points: [[0, 0, 0], [1, 0, 0]]
//	  - name: panel
//	    kind: face
//	    surface:
//	      positions: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
//	      normals:   [[0, 0, 1], [0, 0, 1], [0, 0, 1]]
//	      uvs:       [[0, 0], [1, 0], [0, 1]]
//	      triangles: [[0, 1, 2]]
type sceneFile struct {
	Shapes []sceneShape `yaml:"shapes"`
}

type sceneShape struct {
	Name      string          `yaml:"name"`
	Kind      string          `yaml:"kind"`
	Points    [][3]float64    `yaml:"points"`
	Holes     [][][3]float64  `yaml:"holes"`
	Triangles [][3][3]float64 `yaml:"triangles"`
	Closed    bool            `yaml:"closed"`
	Surface   *SurfaceData    `yaml:"surface"`
	Props     map[string]any  `yaml:"props"`
}

// LoadScene reads a YAML scene file.
func LoadScene(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseScene(b)
}

// ParseScene decodes a YAML scene. Shapes are validated for their kind:
// vertices need one point, edges two or more, and faces a ring of three or
// more points, explicit triangles, or a surface patch.
func ParseScene(b []byte) (Data, error) {
	var sf sceneFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return Data{}, fmt.Errorf("scene: %w", err)
	}
	var d Data
	for i, ss := range sf.Shapes {
		k, err := ParseKind(ss.Kind)
		if err != nil {
			return Data{}, fmt.Errorf("scene shape %d: %w", i, err)
		}
		s := Shape{
			Kind:      k,
			Name:      ss.Name,
			Points:    ss.Points,
			Holes:     ss.Holes,
			Triangles: ss.Triangles,
			Closed:    ss.Closed,
			Surface:   ss.Surface,
			Props:     ss.Props,
		}
		if err := validateShape(s); err != nil {
			return Data{}, fmt.Errorf("scene shape %d (%s): %w", i, ss.Name, err)
		}
		d.Add(s)
	}
	if d.Empty() {
		return Data{}, errors.New("scene: no shapes")
	}
	return d, nil
}

func validateShape(s Shape) error {
	switch s.Kind {
	case Vertex:
		if len(s.Points) != 1 {
			return errors.New("vertex needs exactly one point")
		}
	case Edge:
		if len(s.Points) < 2 {
			return errors.New("edge needs at least two points")
		}
	case Face:
		if sd := s.Surface; sd != nil {
			n := len(sd.Positions)
			if len(sd.Normals) != n || len(sd.UVs) != n {
				return fmt.Errorf("surface has %d positions, %d normals, %d uvs", n, len(sd.Normals), len(sd.UVs))
			}
			for _, t := range sd.Triangles {
				for _, i := range t {
					if i < 0 || i >= n {
						return fmt.Errorf("surface triangle index %d out of range", i)
					}
				}
			}
			return nil
		}
		if len(s.Triangles) == 0 && len(openRing(s.Points)) < 3 {
			return errors.New("face needs a ring, triangles or a surface")
		}
	}
	return nil
}

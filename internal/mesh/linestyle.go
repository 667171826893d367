package mesh

import "fmt"

// LineStyle is the render style of a line record.
type LineStyle int

const (
	Solid LineStyle = iota
	Dash
)

func (s LineStyle) String() string {
	switch s {
	case Solid:
		return "solid"
	case Dash:
		return "dash"
	}
	return fmt.Sprintf("LineStyle(%d)", int(s))
}

func (s LineStyle) MarshalText() ([]byte, error) {
	if s != Solid && s != Dash {
		return nil, fmt.Errorf("mesh: invalid line style %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *LineStyle) UnmarshalText(b []byte) error {
	switch string(b) {
	case "solid", "":
		*s = Solid
	case "dash", "dashed":
		*s = Dash
	default:
		return fmt.Errorf("mesh: unknown line style %q", string(b))
	}
	return nil
}

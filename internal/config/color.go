package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a configured color: a hex string, a CSS color name, or
// "random" for a fresh random color on every Resolve.
type Color struct {
	c      colorful.Color
	random bool
}

// Fixed returns a non-random Color.
func Fixed(c colorful.Color) Color { return Color{c: c} }

// Random returns a Color that resolves to a new random color each time.
func Random() Color { return Color{random: true} }

func (c Color) IsRandom() bool { return c.random }

// Resolve returns the concrete color.
func (c Color) Resolve() colorful.Color {
	if c.random {
		return colorful.FastHappyColor()
	}
	return c.c
}

// ParseColor parses "#rrggbb", "#rgb", a CSS color name or "random".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "random" {
		return Random(), nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("config: color %q: %w", s, err)
		}
		return Fixed(c), nil
	}
	if rgba, ok := colornames.Map[s]; ok {
		c, _ := colorful.MakeColor(rgba)
		return Fixed(c), nil
	}
	return Color{}, fmt.Errorf("config: unknown color %q", s)
}

func (c Color) String() string {
	if c.random {
		return "random"
	}
	return c.c.Hex()
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

package tui

import (
	"fmt"
	"math"
	"strings"

	"cadview/internal/mesh"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// rotStep is the camera rotation per key press.
const rotStep = math.Pi / 12

func degrees(r float64) float64 { return r * 180 / math.Pi }

// formatGroups renders groups as "start+count" pairs.
func formatGroups(gs []mesh.Group) string {
	parts := make([]string, 0, len(gs))
	for _, g := range gs {
		parts = append(parts, fmt.Sprintf("%d+%d", g.Start, g.Count))
	}
	return strings.Join(parts, " ")
}

package tui

import (
	"cadview/internal/gpubuf"
	"cadview/internal/logging"
	"cadview/internal/mesh"
	"cadview/internal/selection"
)

// setHover moves the hover highlight to shape id; 0 clears it.
func (m *Model) setHover(id mesh.ShapeID) {
	if id == m.hovered {
		return
	}
	if m.hovered != 0 {
		m.overlays.RemoveState(m.hovered, selection.Hover)
	}
	if id != 0 {
		m.overlays.AddState(id, selection.Hover)
	}
	m.hovered = id
	m.flushOverlays()
}

// flushOverlays collects the recolored ranges as the color buffer patches
// a GPU renderer would upload.
func (m *Model) flushOverlays() {
	for _, o := range m.overlays {
		var bytes, patches int
		for _, r := range o.Flush() {
			_, data := gpubuf.ColorPatch(o.Colors(), r.Start, r.Count)
			bytes += len(data)
			patches++
		}
		if patches > 0 {
			logging.Logger().Debug("color patches", "record", o.Record().Kind(), "patches", patches, "bytes", bytes)
		}
	}
}

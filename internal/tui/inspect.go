package tui

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"cadview/internal/gpubuf"
	"cadview/internal/mesh"
)

// inspectTarget is the hovered shape, else the most recently selected one.
func (m Model) inspectTarget() (mesh.ShapeID, bool) {
	if m.hovered != 0 {
		return m.hovered, true
	}
	if ids := m.sel.Selected(); len(ids) > 0 {
		return ids[len(ids)-1], true
	}
	return 0, false
}

// inspect describes shape id: its source, groups and the byte ranges of
// its colors in the upload buffers.
func (m Model) inspect(id mesh.ShapeID) string {
	s, ok := m.data.Shape(id)
	if !ok {
		return "no shape"
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	meta := []string{
		fmt.Sprintf("shape: %s (#%d, %s)", s.Label(), s.ID, s.Kind),
		fmt.Sprintf("source: %s", name),
		fmt.Sprintf("selected: %v", m.sel.IsSelected(id)),
	}
	if m.meshes != nil {
		for _, rec := range m.meshes.Records() {
			gs := rec.Groups().Find(id)
			if len(gs) == 0 {
				continue
			}
			var spans []string
			for _, g := range gs {
				off, size := gpubuf.ColorRange(rec, g)
				spans = append(spans, fmt.Sprintf("%d+%d @%d:%d", g.Start, g.Count, off, size))
			}
			meta = append(meta, fmt.Sprintf("%s: %s", rec.Kind(), strings.Join(spans, " ")))
		}
		var total uint64
		for _, rec := range m.meshes.Records() {
			total += gpubuf.Plan(rec).Bytes()
		}
		meta = append(meta, fmt.Sprintf("upload: %d bytes", total))
	}
	for _, k := range slices.Sorted(maps.Keys(s.Props)) {
		meta = append(meta, fmt.Sprintf("%s: %v", k, s.Props[k]))
	}
	return strings.Join(meta, "\n")
}

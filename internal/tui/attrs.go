package tui

import (
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"

	"cadview/internal/mesh"
)

// refreshAttrs rebuilds the groups table: one row per shape with its group
// ranges in each record, followed by the union of the shape properties.
func (m *Model) refreshAttrs() {
	if m.data.Empty() {
		m.showAttrs = false
		m.status = "no shapes loaded"
		return
	}
	var keys []string
	seen := map[string]bool{}
	for _, s := range m.data.Shapes {
		for k := range s.Props {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "name", Width: 14},
		{Title: "kind", Width: 6},
		{Title: "points", Width: 8},
		{Title: "lines", Width: 12},
		{Title: "faces", Width: 10},
	}
	const maxColW = 24
	for _, k := range keys {
		cols = append(cols, table.Column{Title: k, Width: min(len(k)+2, maxColW)})
	}

	rows := make([]table.Row, 0, len(m.data.Shapes))
	m.tblIDs = m.tblIDs[:0]
	for _, s := range m.data.Shapes {
		groups := map[mesh.Kind][]mesh.Group{}
		if m.meshes != nil {
			groups = m.meshes.Groups(s.ID)
		}
		row := table.Row{
			fmt.Sprintf("%d", s.ID),
			s.Label(),
			s.Kind.String(),
			formatGroups(groups[mesh.KindPoint]),
			formatGroups(groups[mesh.KindLine]),
			formatGroups(groups[mesh.KindSurface]),
		}
		for _, k := range keys {
			v, ok := s.Props[k]
			if !ok || v == nil {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprint(v))
		}
		rows = append(rows, row)
		m.tblIDs = append(m.tblIDs, s.ID)
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

// tableShape returns the shape of the highlighted table row.
func (m Model) tableShape() (mesh.ShapeID, bool) {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.tblIDs) {
		return 0, false
	}
	return m.tblIDs[i], true
}

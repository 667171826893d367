package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cadview/internal/geom"
	"cadview/internal/logging"
	"cadview/internal/selection"
	"cadview/internal/tess"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// meshedMsg carries the result of a background mesh build. Results of
// superseded builds are dropped by comparing gen.
type meshedMsg struct {
	gen    int
	meshes *tess.ShapeMeshData
	err    error
}

// loadPath loads a supported file, starts meshing it and watches it for
// changes.
func (m *Model) loadPath(p string) tea.Cmd {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	m.selPath = p
	d, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		logging.Logger().Warn("load failed", "path", p, "err", err)
		return nil
	}
	return tea.Batch(m.setData(d, "loaded: "+filepath.Base(p)), m.watchPath(p))
}

// reload loads the current file again keeping the camera.
func (m *Model) reload() tea.Cmd {
	cam := m.cam
	cmd := m.loadPath(m.selPath)
	m.cam = cam
	return cmd
}

// setData replaces the current shapes and returns the command meshing them.
func (m *Model) setData(d geom.Data, what string) tea.Cmd {
	m.data = d
	m.meshes, m.overlays, m.hovered = nil, nil, 0
	m.sel = &selection.Selection{}
	m.cam = newCamera()
	m.showVertices, m.showEdges, m.showFaces = true, true, true
	m.inspectPopup = ""
	v, e, f := d.Counts()
	m.status = what + fmt.Sprintf("  counts: vertices=%d edges=%d faces=%d", v, e, f)
	if m.showAttrs {
		m.refreshAttrs()
	}
	m.meshGen++
	return m.meshCmd()
}

func (m Model) meshCmd() tea.Cmd {
	gen, shapes, mesher := m.meshGen, m.data.Shapes, m.mesher
	return func() tea.Msg {
		d, err := mesher.Mesh(context.Background(), shapes)
		return meshedMsg{gen: gen, meshes: d, err: err}
	}
}

// setMeshes installs finished meshes and the highlight overlays on them.
func (m *Model) setMeshes(d *tess.ShapeMeshData) {
	m.meshes = d
	m.overlays = selection.NewOverlays(d.Records(), selection.PaletteFrom(m.cfg.Visual))
	m.overlays.Track(m.sel)
	for _, id := range m.sel.Selected() {
		m.overlays.AddState(id, selection.Selected)
	}
	m.flushOverlays()
}

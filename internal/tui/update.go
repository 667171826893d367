package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cadview/internal/geom"
	"cadview/internal/logging"
	"cadview/internal/mesh"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case meshedMsg:
		if msg.gen != m.meshGen {
			return m, nil
		}
		if msg.err != nil {
			m.status = "mesh error: " + msg.err.Error()
			logging.Logger().Error("mesh failed", "err", msg.err)
			return m, nil
		}
		m.setMeshes(msg.meshes)
		if m.showAttrs {
			m.refreshAttrs()
		}
	case fileChangedMsg:
		next := waitForChange(m.watcher)
		if m.selPath == "" || filepath.Clean(msg.path) != m.selPath {
			return m, next
		}
		logging.Logger().Info("file changed, reloading", "path", msg.path)
		return m, tea.Batch(m.reload(), next)
	case watchErrMsg:
		m.status = "watch error: " + msg.err.Error()
		return m, waitForChange(m.watcher)
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showAttrs {
			switch msg.String() {
			case "a", "esc":
				m.showAttrs = false
				return m, nil
			case "enter":
				if id, ok := m.tableShape(); ok {
					m.sel.Select([]mesh.ShapeID{id}, false)
					m.flushOverlays()
					m.status = fmt.Sprintf("selected #%d", id)
				}
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showVertices = !m.showVertices
			m.status = fmt.Sprintf("vertices: %v", m.showVertices)
		case "2":
			m.showEdges = !m.showEdges
			m.status = fmt.Sprintf("edges: %v", m.showEdges)
		case "3":
			m.showFaces = !m.showFaces
			m.status = fmt.Sprintf("faces: %v", m.showFaces)
		case "+", "=":
			if m.cam.zoom < 64 {
				m.cam.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.cam.zoom)
			}
		case "-", "_":
			if m.cam.zoom > 0.05 {
				m.cam.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.cam.zoom)
			}
		case "[", "]":
			if msg.String() == "[" {
				m.cam.yaw -= rotStep
			} else {
				m.cam.yaw += rotStep
			}
			m.status = fmt.Sprintf("yaw: %.0f°", degrees(m.cam.yaw))
		case "{", "}":
			if msg.String() == "{" {
				m.cam.pitch -= rotStep
			} else {
				m.cam.pitch += rotStep
			}
			m.status = fmt.Sprintf("pitch: %.0f°", degrees(m.cam.pitch))
		case "r":
			m.cam = newCamera()
			m.status = "view reset"
		case "c":
			m.sel.Clear()
			m.flushOverlays()
			m.status = "selection cleared"
		case "esc":
			m.inspectPopup = ""
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = true
			m.refreshAttrs()
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				break
			}
			if id, ok := m.inspectTarget(); ok {
				m.inspectPopup = m.inspect(id)
				m.status = "inspect popup"
			} else {
				m.inspectPopup = "nothing hovered or selected"
				m.status = m.inspectPopup
			}
		case "l":
			// toggle all layers
			all := m.showVertices && m.showEdges && m.showFaces
			m.showVertices = !all
			m.showEdges = !all
			m.showFaces = !all
			m.status = fmt.Sprintf("layers: vertices=%v edges=%v faces=%v", m.showVertices, m.showEdges, m.showFaces)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					return m, m.loadPath(it.path)
				}
			}
		case "up":
			m.cam.offsetY -= 1
		case "down":
			m.cam.offsetY += 1
		case "left":
			m.cam.offsetX -= 2
		case "right":
			m.cam.offsetX += 2
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKTData(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		m.selPath = ""
		return m, m.setData(d, "rendered WKT")
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// updateMouse tracks hover over the map area and picks shapes on click.
func (m *Model) updateMouse(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	inside := cx >= 0 && cx < lay.mapW && cy >= 0 && cy < lay.mapH
	if !inside || m.pasteMode || m.showAttrs {
		m.hovering = false
		if m.overlays != nil {
			m.setHover(0)
		}
		return
	}
	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.cam.zoom < 64 {
			m.cam.zoom *= 1.1
		}
		return
	case tea.MouseButtonWheelDown:
		if m.cam.zoom > 0.05 {
			m.cam.zoom /= 1.1
		}
		return
	}
	if m.overlays == nil {
		return
	}
	id, hit := m.pickAt(cx, cy)
	m.setHover(id)
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	switch {
	case hit:
		m.sel.Select([]mesh.ShapeID{id}, msg.Shift || msg.Ctrl)
		m.status = fmt.Sprintf("selected: %d", m.sel.Len())
	case !msg.Shift:
		m.sel.Clear()
		m.status = "selection cleared"
	}
	m.flushOverlays()
}

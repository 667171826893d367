package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var lay layout
	lay.contentH = max(4, m.height-headerHeight-footerHeight)
	lay.contentW = max(10, m.width)
	if m.showSidebar {
		lay.sidebarW = sidebarWidth
		lay.mapX = sidebarWidth + 1
	}
	lay.mapY = headerHeight
	lay.mapW = max(10, lay.contentW-lay.sidebarW-1)
	lay.mapH = lay.contentH
	return lay
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()
	contentWidth, contentHeight := lay.contentW, lay.contentH
	mapWidth, mapHeight := lay.mapW, lay.mapH

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, contentHeight-2)
	}

	// Header
	header := m.theme.title.Render(" cadview ─ terminal CAD shape viewer ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	if m.showAttrs {
		// Render groups table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentWidth-6)
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		attrsBox := m.theme.box.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		var canvas string
		switch {
		case m.pasteMode:
			m.ta.SetWidth(mapWidth)
			m.ta.SetHeight(min(mapHeight, 12))
			canvas = m.ta.View()
		case m.meshes == nil && !m.data.Empty():
			canvas = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, m.theme.dim.Render("meshing..."))
		default:
			canvas = m.renderViewport(mapWidth, mapHeight)
		}
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(canvas)
	}

	// Build inspect popup box (center-left overlay, not in map column)
	popup := ""
	if m.inspectPopup != "" && !m.showAttrs {
		maxPopupW := max(20, min(48, contentWidth/2))
		box := m.theme.box.MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(contentWidth, lipgloss.Height(box), lipgloss.Left, lipgloss.Center, box)
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := m.theme.dim.Render(" " + m.status + " ")
	hover := ""
	if m.hovering {
		hover = fmt.Sprintf("  cell=%d,%d", m.hoverCellX, m.hoverCellY)
		if s, ok := m.data.Shape(m.hovered); ok && m.hovered != 0 {
			hover = fmt.Sprintf("  %s %s", s.Kind, s.Label()) + hover
		}
		hover = m.theme.hover.Render(hover + "  ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(hover))
	right := lipgloss.Place(spacerW+lipgloss.Width(hover), 1, lipgloss.Right, lipgloss.Center, hover)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	// Compose UI with popup overlay between header and body
	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return m.theme.app.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"[] yaw",
		"{} pitch",
		"r reset",
		"click select",
		"c clear",
		"Tab files",
		"p paste",
		"a groups",
		"i inspect",
		"1/2/3 layers",
		"h help",
		"q quit",
	}
	return m.theme.dim.Render("  " + strings.Join(keys, "  "))
}

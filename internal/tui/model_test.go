package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadview/internal/config"
	"cadview/internal/geom"
	"cadview/internal/mesh"
	"cadview/internal/selection"
)

// loaded returns a sized model with wkt meshed and installed.
func loaded(t *testing.T, wkt string) Model {
	t.Helper()
	m := New(config.Default())
	tm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = tm.(Model)

	d, err := geom.ParseWKTData(wkt)
	require.NoError(t, err)
	cmd := m.setData(d, "test")
	require.NotNil(t, cmd)
	tm, _ = m.Update(cmd())
	m = tm.(Model)
	require.NotNil(t, m.meshes)
	return m
}

const square = "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))"

func TestMeshedMessage(t *testing.T) {
	m := loaded(t, square)
	assert.NotNil(t, m.meshes.Faces)
	assert.NotNil(t, m.meshes.Edges)
	assert.Len(t, m.overlays, 2)

	// results of an older build are dropped
	stale := meshedMsg{gen: m.meshGen - 1}
	tm, _ := m.Update(stale)
	assert.Same(t, m.meshes, tm.(Model).meshes)
}

func TestClickSelectsShape(t *testing.T) {
	m := loaded(t, square)
	lay := m.layout()
	click := tea.MouseMsg{
		X:      lay.mapX + lay.mapW/2,
		Y:      lay.mapY + lay.mapH/2,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	tm, _ := m.Update(click)
	m = tm.(Model)

	assert.True(t, m.sel.IsSelected(1))
	assert.Equal(t, mesh.ShapeID(1), m.hovered)
	o := m.overlays.Of(m.meshes.Faces)
	require.NotNil(t, o)
	assert.Equal(t, selection.Hover|selection.Selected, o.State(1))
	assert.Empty(t, o.Dirty(), "patches are flushed")

	// click on empty space clears
	tm, _ = m.Update(tea.MouseMsg{X: lay.mapX, Y: lay.mapY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tm.(Model)
	assert.Zero(t, m.sel.Len())
	assert.Zero(t, m.hovered)
}

func TestKeys(t *testing.T) {
	m := loaded(t, square)
	press := func(k string) {
		tm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		m = tm.(Model)
	}
	press("3")
	assert.False(t, m.showFaces)
	press("]")
	assert.InDelta(t, rotStep, m.cam.yaw, 1e-9)
	press("r")
	assert.Zero(t, m.cam.yaw)
	press("a")
	assert.True(t, m.showAttrs)
	assert.Equal(t, []mesh.ShapeID{1}, m.tblIDs)

	tm, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = tm.(Model)
	assert.True(t, m.sel.IsSelected(1))
	press("a")
	assert.False(t, m.showAttrs)

	press("i")
	assert.Contains(t, m.inspectPopup, "surface: 0+6")
	press("c")
	assert.Zero(t, m.sel.Len())
}

func TestPaste(t *testing.T) {
	m := New(config.Default())
	m.pasteMode = true
	m.ta.Focus()
	m.ta.SetValue("LINESTRING Z (0 0 0, 1 1 1)")
	tm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = tm.(Model)
	assert.False(t, m.pasteMode)
	require.NotNil(t, cmd)
	assert.Len(t, m.data.Shapes, 1)

	tm, _ = m.Update(cmd())
	m = tm.(Model)
	require.NotNil(t, m.meshes.Edges)
	assert.Equal(t, mesh.GroupIndex{{Start: 0, Count: 2, Shape: 1}}, m.meshes.Edges.Groups())
}

func TestView(t *testing.T) {
	m := loaded(t, square)
	out := m.View()
	assert.Contains(t, out, "cadview")
	assert.Empty(t, Model{}.View())
}

package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"cadview/internal/config"
	"cadview/internal/geom"
	"cadview/internal/mesh"
	"cadview/internal/selection"
	"cadview/internal/tess"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	cam camera

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// reload on change
	watcher  *fsnotify.Watcher
	watchDir string

	cfg    config.Config
	theme  theme
	mesher *tess.Mesher

	// Data
	data     geom.Data
	meshes   *tess.ShapeMeshData
	meshGen  int
	sel      *selection.Selection
	overlays selection.Overlays

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showVertices bool
	showEdges    bool
	showFaces    bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hovered    mesh.ShapeID

	// groups table
	showAttrs bool
	tbl       table.Model
	tblIDs    []mesh.ShapeID
}

func New(cfg config.Config) Model {
	m := Model{
		showSidebar:  false,
		helpVisible:  true,
		cam:          newCamera(),
		status:       "cadview ready",
		cfg:          cfg,
		theme:        newTheme(cfg.Visual),
		mesher:       tess.NewMesher(cfg),
		sel:          &selection.Selection{},
		showVertices: true,
		showEdges:    true,
		showFaces:    true,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, TIN, ... with optional Z). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if !m.data.Empty() {
		cmds = append(cmds, m.meshCmd())
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

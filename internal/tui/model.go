package tui

import (
	"log/slog"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"missionmap/internal/draw"
	"missionmap/internal/export"
	"missionmap/internal/geom"
	"missionmap/internal/mission"
)

// Options wires the model to its collaborators.
type Options struct {
	Map      *draw.Map
	Ctl      *mission.Controller
	Exporter export.Exporter
	Layers   []geom.Layer
	Dir      string // sidebar directory; defaults to the working directory
	Logger   *slog.Logger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// WKT paste mode
	pasteMode bool
	ta        textarea.Model

	popup string

	// File explorer
	cwd   string
	l     list.Model
	items []list.Item

	// Mission
	mp       *draw.Map
	ctl      *mission.Controller
	exporter export.Exporter
	log      *slog.Logger

	// reference layers
	layers     []geom.Layer
	showLayers bool

	// crosshair cell within the map area
	cursorX int
	cursorY int

	// mission table
	tbl  table.Model
	rows int // waypoint rows at the top of the table
}

func New(o Options) Model {
	m := Model{
		helpVisible: true,
		status:      "missionmap ready",
		mp:          o.Map,
		ctl:         o.Ctl,
		exporter:    o.Exporter,
		log:         o.Logger,
		layers:      o.Layers,
		showLayers:  true,
		cwd:         o.Dir,
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Layers"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, MULTI*, GEOMETRYCOLLECTION). Press Enter to add it as a layer; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// mission table setup
	m.tbl = table.New(table.WithColumns(missionColumns()), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	m.refreshTable()
	m.resize()
	m.centerCursor()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// layout is the screen geometry shared by View, Update and mouse hit-testing.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

func (m Model) layout() layout {
	var lo layout
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	lo.contentW = max(10, m.width)
	lo.mapW = lo.contentW
	if m.showSidebar {
		lo.mapX = sidebarWidth + 1
		lo.mapW = lo.contentW - sidebarWidth - 1
	}
	lo.mapW = max(10, lo.mapW)
	lo.mapH = lo.contentH
	lo.mapY = headerHeight
	return lo
}

// resize propagates the current layout to the viewport, sidebar and crosshair.
func (m *Model) resize() {
	lo := m.layout()
	m.mp.Resize(lo.mapW, lo.mapH)
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	}
	m.cursorX = clamp(m.cursorX, 0, lo.mapW-1)
	m.cursorY = clamp(m.cursorY, 0, lo.mapH-1)
}

// centerCursor puts the crosshair on the view center.
func (m *Model) centerCursor() {
	lo := m.layout()
	m.cursorX, m.cursorY = lo.mapW/2, lo.mapH/2
}

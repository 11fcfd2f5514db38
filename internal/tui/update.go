package tui

import (
	"errors"
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"missionmap/internal/draw"
	"missionmap/internal/export"
	"missionmap/internal/geom"
	"missionmap/internal/mission"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if first {
			m.centerCursor()
		}
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		return m.pasteKey(msg)
	}
	if m.popup != "" {
		m.popup = ""
		if msg.String() == "esc" {
			return m, nil
		}
	}
	switch m.ctl.State() {
	case mission.Instructions:
		return m.instructionsKey(msg)
	case mission.Editing:
		return m.missionKey(msg)
	}
	return m.mapKey(msg)
}

func (m Model) instructionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "s":
		if err := m.ctl.StartMission(); err != nil {
			m.fail("start mission", err)
			break
		}
		m.status = "route: space or click adds a point, enter completes"
	case "esc", "x":
		if err := m.ctl.Dismiss(); err != nil {
			m.fail("dismiss", err)
			break
		}
		m.status = "press n to plan a mission"
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

func (m Model) missionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	menu, menuOpen := m.ctl.MenuIndex()
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "esc", "x":
		if menuOpen && key == "esc" {
			m.ctl.CloseMenu()
			m.refreshTable()
			break
		}
		if err := m.ctl.Close(); err != nil {
			m.fail("close", err)
			break
		}
		m.status = "mission closed: draw a new route"
	case "g":
		if err := m.ctl.Regenerate(); err != nil {
			m.fail("generate data", err)
			break
		}
		m.status = "generate data: draw a new route"
	case "m":
		if i, ok := m.selectedWaypoint(); ok {
			m.ctl.ToggleMenu(i)
			m.refreshTable()
		}
	case "enter":
		if menuOpen {
			m.insertPolygon(menu)
			break
		}
		if i, ok := m.selectedWaypoint(); ok {
			m.ctl.ToggleMenu(i)
			m.refreshTable()
		}
	case "p":
		if !menuOpen {
			m.status = "open the action menu with m first"
			break
		}
		m.insertPolygon(menu)
	case "e":
		m.exportMission()
	case "y":
		if err := export.Copy(m.ctl.Route()); err != nil {
			m.fail("copy", err)
			break
		}
		m.status = "mission WKT copied to clipboard"
	case "h":
		m.helpVisible = !m.helpVisible
	case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) mapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.showSidebar {
		switch key {
		case "up", "down", "k", "j", "pgup", "pgdown", "/":
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		case "enter":
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
			return m, nil
		case "r":
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.importPath(it.path)
			}
			return m, nil
		}
	}
	switch key {
	case "q":
		return m, tea.Quit
	case "up":
		m.moveCursor(0, -1)
	case "down":
		m.moveCursor(0, 1)
	case "left":
		m.moveCursor(-1, 0)
	case "right":
		m.moveCursor(1, 0)
	case "+", "=":
		m.zoom(1)
	case "-", "_":
		m.zoom(-1)
	case "f":
		m.fitAll()
	case " ", "space":
		m.addVertex()
	case "backspace":
		if err := m.mp.UndoVertex(); err != nil {
			m.fail("undo", err)
			break
		}
		m.captureStatus()
	case "enter":
		m.finish()
	case "esc":
		if _, armed := m.ctl.Capturing(); armed {
			if err := m.ctl.CancelCapture(); err != nil {
				m.fail("cancel", err)
				break
			}
			m.refreshTable()
			m.status = "drawing cancelled"
			break
		}
		m.showSidebar = false
		m.resize()
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.resize()
	case "n":
		if err := m.ctl.Reopen(); err != nil {
			m.fail("instructions", err)
		}
	case "l":
		m.showLayers = !m.showLayers
		m.status = fmt.Sprintf("layers: %v (%d loaded)", m.showLayers, len(m.layers))
	case "i":
		if s, ok := m.inspectNearest(); ok {
			m.popup = s
			m.status = "inspect popup"
		} else {
			m.status = "no waypoint to inspect"
		}
	case "w":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

func (m Model) pasteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		l, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		l.Name = "pasted WKT"
		m.addLayer(l)
		m.showLayers = true
		if !l.Empty() {
			m.mp.Fit(l.Bound)
		}
		pts, ls, polys := l.Counts()
		m.status = fmt.Sprintf("rendered WKT  counts: pts=%d ls=%d poly=%d", pts, ls, polys)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ctl.State() != mission.Idle || m.pasteMode {
		return m, nil
	}
	lo := m.layout()
	cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
	if cx < 0 || cx >= lo.mapW || cy < 0 || cy >= lo.mapH {
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	m.cursorX, m.cursorY = cx, cy
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		m.addVertex()
	case tea.MouseButtonRight:
		m.finish()
	case tea.MouseButtonWheelUp:
		m.zoom(1)
	case tea.MouseButtonWheelDown:
		m.zoom(-1)
	}
	return m, nil
}

// moveCursor steps the crosshair one cell, panning when it would leave the map.
func (m *Model) moveCursor(dx, dy int) {
	lo := m.layout()
	x, y := m.cursorX+dx, m.cursorY+dy
	px, py := 0, 0
	if x < 0 || x >= lo.mapW {
		px = dx
	}
	if y < 0 || y >= lo.mapH {
		py = dy
	}
	if px != 0 || py != 0 {
		m.mp.Pan(px, py)
	}
	m.cursorX = clamp(x, 0, lo.mapW-1)
	m.cursorY = clamp(y, 0, lo.mapH-1)
}

func (m *Model) zoom(step float64) {
	m.mp.SetZoom(m.mp.Zoom() + step)
	m.status = fmt.Sprintf("zoom: %.0f", m.mp.Zoom())
}

func (m *Model) fitRoute() {
	if b, ok := m.ctl.Route().Bound(); ok {
		m.mp.Fit(b)
	}
}

// fitAll frames the route and every visible layer.
func (m *Model) fitAll() {
	b, ok := m.ctl.Route().Bound()
	if m.showLayers {
		for _, l := range m.layers {
			if l.Empty() {
				continue
			}
			if !ok {
				b, ok = l.Bound, true
				continue
			}
			b = b.Union(l.Bound)
		}
	}
	if !ok {
		m.status = "nothing to fit"
		return
	}
	m.mp.Fit(b)
	m.status = fmt.Sprintf("fit: zoom %.0f", m.mp.Zoom())
}

func (m *Model) addVertex() {
	if err := m.mp.AddVertex(m.mp.CellToProjected(m.cursorX, m.cursorY)); err != nil {
		if errors.Is(err, draw.ErrNoSession) {
			m.status = "nothing to draw: press n to plan a mission"
			return
		}
		m.fail("add vertex", err)
		return
	}
	m.captureStatus()
}

// finish completes the armed capture; the controller moves to the mission table.
func (m *Model) finish() {
	s := m.mp.Active()
	if s == nil {
		m.status = "nothing to finish"
		return
	}
	kind := s.Kind()
	if err := m.mp.Finish(); err != nil {
		m.fail("finish", err)
		return
	}
	m.refreshTable()
	route := m.ctl.Route()
	if kind == draw.Polygon {
		m.status = fmt.Sprintf("polygon %d inserted: %d waypoints", len(route.Regions()), route.Len())
		return
	}
	m.status = fmt.Sprintf("route: %d waypoints, %.2f km", route.Len(), route.TotalKm())
}

func (m *Model) insertPolygon(i int) {
	if err := m.ctl.InsertPolygon(i); err != nil {
		m.fail("insert polygon", err)
		return
	}
	m.status = fmt.Sprintf("polygon before WP %02d: space or click adds a vertex, enter completes", i+1)
}

func (m *Model) exportMission() {
	path, err := m.exporter.Write(m.ctl.Route())
	if err != nil {
		m.fail("export", err)
		return
	}
	m.status = "exported: " + path
	m.log.Info("mission exported", "path", path, "format", m.exporter.Format)
}

func (m *Model) captureStatus() {
	if s := m.mp.Active(); s != nil {
		m.status = fmt.Sprintf("%s: %d vertices", s.Kind(), s.Len())
	}
}

// fail reports err in the status line and the log.
func (m *Model) fail(op string, err error) {
	m.status = op + " error: " + err.Error()
	m.log.Warn(op+" failed", "err", err)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"missionmap/internal/mission"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header
	title := titleStyle.Render(" missionmap ─ mission planner ")
	state := dimStyle.Render(fmt.Sprintf(" %s ", m.ctl.State()))
	if kind, ok := m.ctl.Capturing(); ok {
		state = captureStyle.Render(fmt.Sprintf(" drawing %s ", kind))
	}
	gap := max(0, lo.contentW-lipgloss.Width(title)-lipgloss.Width(state))
	header := title + strings.Repeat(" ", gap) + state

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	// Map area: modals replace the canvas while open
	var mapView string
	switch {
	case m.ctl.State() == mission.Instructions:
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, m.instructionsView(lo.mapW))
	case m.ctl.State() == mission.Editing:
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, m.missionView(lo.mapW, lo.mapH))
	case m.pasteMode:
		m.ta.SetWidth(lo.mapW)
		m.ta.SetHeight(min(lo.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.ta.View())
	case m.popup != "":
		box := boxStyle.MaxWidth(min(48, lo.mapW)).Render(m.popup)
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Left, lipgloss.Top, box)
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	status := dimStyle.Render(" " + m.status + " ")
	if strings.Contains(m.status, " error: ") {
		status = errorStyle.Render(" " + m.status + " ")
	}
	// crosshair coords at bottom-right
	p := m.cursorGeo()
	coords := dimStyle.Render(fmt.Sprintf("  lat=%.5f lon=%.5f z=%.0f  ", p.Lat(), p.Lon(), m.mp.Zoom()))
	spacerW := max(0, lo.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	footer := lipgloss.JoinVertical(lipgloss.Left,
		status+strings.Repeat(" ", spacerW)+coords,
		m.renderHelp(),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

func (m Model) instructionsView(maxW int) string {
	text := lipgloss.NewStyle().Width(min(56, max(20, maxW-8))).Render(
		"Move the crosshair with the arrow keys or the mouse. " +
			"Press space or click to add route points, then press enter to complete the route. " +
			"Polygons can be inserted before any waypoint from the mission table.")
	buttons := buttonStyle.Render("Start Mission") + dimStyle.Render(" enter    [×] esc")
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Mission Creation"),
		"",
		text,
		"",
		buttons,
	))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	var keys []string
	switch {
	case m.ctl.State() != mission.Idle:
		keys = []string{"h help", "q quit"}
	case m.showSidebar:
		keys = []string{"↑↓ select", "Enter layer", "r route", "/ filter", "Tab close", "q quit"}
	default:
		keys = []string{
			"↑↓←→ move",
			"Space point",
			"Enter finish",
			"Bksp undo",
			"Esc cancel",
			"+/- zoom",
			"f fit",
			"Tab files",
			"w paste",
			"i inspect",
			"l layers",
			"n new",
			"h help",
			"q quit",
		}
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

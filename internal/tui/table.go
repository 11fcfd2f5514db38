package tui

import (
	"fmt"
	"strings"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"missionmap/internal/mission"
)

const (
	actionsClosed = "⋮"
	actionsOpen   = "⋮ Insert Polygon"
)

func missionColumns() []table.Column {
	return []table.Column{
		{Title: "WP", Width: 4},
		{Title: "Coordinates", Width: 24},
		{Title: "Distance (km)", Width: 14},
		{Title: "Actions", Width: 18},
	}
}

func legKm(l mission.Leg) string {
	if !l.OK {
		return "--"
	}
	return fmt.Sprintf("%.2f", l.Km)
}

// missionRows lists one row per waypoint, then a separator and one row per
// polygon region. menu is the row whose action menu is open, or -1.
func missionRows(r *mission.Route, menu int) []table.Row {
	wps := r.Waypoints()
	legs := r.SegmentDistances()
	rows := make([]table.Row, 0, len(wps)+len(r.Regions())+1)
	for i, p := range wps {
		action := actionsClosed
		if i == menu {
			action = actionsOpen
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%02d", i+1),
			fmt.Sprintf("%.6f, %.6f", p.Lat(), p.Lon()),
			legKm(legs[i]),
			action,
		})
	}
	regions := r.Regions()
	if len(regions) == 0 {
		return rows
	}
	rows = append(rows, table.Row{"", "Polygon Coordinates", "", ""})
	for i, reg := range regions {
		rows = append(rows, table.Row{
			fmt.Sprintf("%02d", i+1),
			fmt.Sprintf("Polygon %d", i+1),
			fmt.Sprintf("%d pts", len(reg.Vertices)),
			regionAnchor(reg),
		})
	}
	return rows
}

// refreshTable rebuilds the mission table from the route, keeping the cursor
// on a valid row.
func (m *Model) refreshTable() {
	menu, ok := m.ctl.MenuIndex()
	if !ok {
		menu = -1
	}
	rows := missionRows(m.ctl.Route(), menu)
	m.rows = m.ctl.Route().Len()
	cur := m.tbl.Cursor()
	m.tbl.SetRows(rows)
	if len(rows) > 0 {
		m.tbl.SetCursor(clamp(cur, 0, len(rows)-1))
	}
}

// selectedWaypoint returns the waypoint under the table cursor; separator and
// region rows have none.
func (m Model) selectedWaypoint() (int, bool) {
	i := m.tbl.Cursor()
	return i, i >= 0 && i < m.rows
}

// missionView renders the mission modal.
func (m Model) missionView(maxW, maxH int) string {
	colW := 0
	for _, c := range m.tbl.Columns() {
		colW += c.Width + 2
	}
	m.tbl.SetWidth(min(colW, maxW-6))
	m.tbl.SetHeight(clamp(len(m.tbl.Rows())+1, 3, max(3, maxH-10)))

	route := m.ctl.Route()
	total := fmt.Sprintf("Total: %.2f km over %d waypoints", route.TotalKm(), route.Len())
	if n := len(route.Regions()); n > 0 {
		total += fmt.Sprintf(", %d polygons", n)
	}
	keys := []string{"↑↓ select", "m actions", "p insert polygon", "g generate data", "e export", "y copy", "esc close"}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Mission")+"  "+dimStyle.Render("[×]"),
		"",
		m.tbl.View(),
		"",
		total,
		dimStyle.Render(strings.Join(keys, "  ")),
	)
	return modalStyle.MaxWidth(maxW).Render(body)
}

func regionAnchor(reg mission.Region) string {
	if reg.Detached {
		return "earlier route"
	}
	return fmt.Sprintf("%s WP %02d", reg.Position, reg.Anchor+1)
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"missionmap/internal/geom"
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
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
}

// addLayer shows l under the mission, replacing a layer of the same name.
func (m *Model) addLayer(l geom.Layer) {
	for i := range m.layers {
		if m.layers[i].Name == l.Name {
			m.layers[i] = l
			return
		}
	}
	m.layers = append(m.layers, l)
}

// loadPath loads a reference layer and fits the view to it.
func (m *Model) loadPath(p string) {
	l, err := geom.Load(p)
	if err != nil {
		m.fail("load", err)
		return
	}
	if l.Empty() {
		m.status = "no geometry in " + filepath.Base(p)
		return
	}
	m.addLayer(l)
	m.showLayers = true
	m.mp.Fit(l.Bound)
	pts, ls, polys := l.Counts()
	m.status = "loaded: " + l.Name + fmt.Sprintf("  counts: pts=%d ls=%d poly=%d", pts, ls, polys)
	m.log.Info("layer loaded", "path", p, "points", pts, "lines", ls, "polygons", polys)
}

// importPath replaces the mission route with the first line (or the points)
// of a file and opens the mission table.
func (m *Model) importPath(p string) {
	l, err := geom.Load(p)
	if err != nil {
		m.fail("import", err)
		return
	}
	coords, ok := l.Route()
	if !ok {
		m.status = "no route in " + filepath.Base(p)
		return
	}
	m.ctl.Load(coords)
	m.fitRoute()
	m.refreshTable()
	m.status = fmt.Sprintf("imported %d waypoints from %s", len(coords), l.Name)
	m.log.Info("route imported", "path", p, "waypoints", len(coords))
}

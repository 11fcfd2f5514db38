package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/spf13/pflag"

	"missionmap/internal/config"
	"missionmap/internal/draw"
	"missionmap/internal/export"
	"missionmap/internal/geom"
	"missionmap/internal/logging"
	"missionmap/internal/mission"
	"missionmap/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource it opens, so its deferred closes execute before
// main exits on error.
func run(args []string) error {
	fs := pflag.NewFlagSet("missionmap", pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: missionmap [flags] [layer files...]\n")
		fs.PrintDefaults()
	}
	config.Flags(fs)
	_ = fs.Parse(args)

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, closer, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()

	mp, err := draw.NewMap(draw.Options{
		Center: orb.Point{cfg.Map.CenterLon, cfg.Map.CenterLat},
		Zoom:   cfg.Map.Zoom,
		Logger: logger.With("component", "map"),
	})
	if err != nil {
		return fmt.Errorf("map: %w", err)
	}
	defer mp.Close()

	var layers []geom.Layer
	for _, p := range cfg.Layers {
		l, err := geom.Load(p)
		if err != nil {
			logger.Warn("skipping layer", "path", p, "err", err)
			continue
		}
		layers = append(layers, l)
	}

	ctl := mission.NewController(mission.NewRoute(), mp, logger.With("component", "mission"))
	m := tui.New(tui.Options{
		Map: mp,
		Ctl: ctl,
		Exporter: export.Exporter{
			Dir:    cfg.Export.Dir,
			Format: cfg.Export.Format,
		},
		Layers: layers,
		Logger: logger.With("component", "tui"),
	})
	logger.Info("starting", "center_lon", cfg.Map.CenterLon, "center_lat", cfg.Map.CenterLat, "zoom", cfg.Map.Zoom, "layers", len(layers))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Error("program exited", "err", err)
		return err
	}
	return nil
}

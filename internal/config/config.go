package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"missionmap/internal/export"
)

// Config holds all application configuration.
type Config struct {
	Map    MapConfig    `mapstructure:"map"`
	Log    LogConfig    `mapstructure:"log"`
	Export ExportConfig `mapstructure:"export"`
	Layers []string     `mapstructure:"layers"`
}

type MapConfig struct {
	CenterLon float64 `mapstructure:"center_lon"`
	CenterLat float64 `mapstructure:"center_lat"`
	Zoom      float64 `mapstructure:"zoom"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

// Flags registers the command-line flags Load understands.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.Float64("center-lon", 0, "initial map center longitude")
	fs.Float64("center-lat", 0, "initial map center latitude")
	fs.Float64("zoom", 0, "initial zoom level (0-22)")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.String("log-file", "", "log file path")
	fs.String("export-dir", "", "directory for mission exports")
	fs.String("export-format", "", "geojson, kml, polyline or wkt")
}

// Load reads defaults, an optional config file, MISSIONMAP_* environment
// variables and flags, in increasing precedence. Positional arguments are
// appended to the reference layers.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("map.center_lon", 72.868679)
	v.SetDefault("map.center_lat", 19.054180)
	v.SetDefault("map.zoom", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "missionmap.log")
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.format", "geojson")
	v.SetDefault("layers", []string{})

	if fs != nil {
		for key, flag := range map[string]string{
			"map.center_lon": "center-lon",
			"map.center_lat": "center-lat",
			"map.zoom":       "zoom",
			"log.level":      "log-level",
			"log.file":       "log-file",
			"export.dir":     "export-dir",
			"export.format":  "export-format",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	v.SetConfigName("missionmap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if fs != nil {
		if path, _ := fs.GetString("config"); path != "" {
			v.SetConfigFile(path)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: MISSIONMAP_MAP_ZOOM → map.zoom
	v.SetEnvPrefix("MISSIONMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if fs != nil {
		cfg.Layers = append(cfg.Layers, fs.Args()...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	var errs []string

	if c.Map.CenterLon < -180 || c.Map.CenterLon > 180 {
		errs = append(errs, fmt.Sprintf("map.center_lon must be -180..180, got %g", c.Map.CenterLon))
	}
	if c.Map.CenterLat < -85.05112878 || c.Map.CenterLat > 85.05112878 {
		errs = append(errs, fmt.Sprintf("map.center_lat must be within Web Mercator limits, got %g", c.Map.CenterLat))
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 22 {
		errs = append(errs, fmt.Sprintf("map.zoom must be 0-22, got %g", c.Map.Zoom))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	if !validFormat(c.Export.Format) {
		errs = append(errs, fmt.Sprintf("export.format must be one of %s, got %q", strings.Join(export.Formats, ", "), c.Export.Format))
	}
	if c.Export.Dir == "" {
		errs = append(errs, "export.dir is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validFormat(f string) bool {
	for _, known := range export.Formats {
		if strings.EqualFold(f, known) {
			return true
		}
	}
	return false
}

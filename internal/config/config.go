package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/mapdeck/internal/geo"
)

// Marker is a titled point drawn on the map.
type Marker struct {
	Title    string
	Snippet  string
	Position geo.LatLng
}

// Config captures everything mapdeck reads from config.toml and the environment.
type Config struct {
	Path string

	TileURL         string
	Center          geo.LatLng
	Zoom            float64
	Markers         []Marker
	GPSDAddress     string
	RequestTimeout    time.Duration
	GPSPollInterval time.Duration
	LocationSource  string
	StaticLocation  geo.LatLng
	GoogleAPIKey    string
	LogFile         string
}

const (
	defaultConfigPath      = "~/.config/mapdeck/config.toml"
	defaultLogFile         = "~/.local/state/mapdeck/mapdeck.log"
	defaultTileURL         = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultGPSDAddress     = "127.0.0.1:2947"
	defaultLocationSource  = "gpsd"
	defaultRequestTimeout    = 2 * time.Second
	defaultGPSPollInterval = 5 * time.Second
	defaultZoom            = 11
)

var defaultMarker = Marker{
	Title:    "Marker 1",
	Snippet:  "don't click this",
	Position: geo.LatLng{Lat: 1.35, Lng: 103.87},
}

type rawMarker struct {
	Title   string  `toml:"title"`
	Snippet string  `toml:"snippet"`
	Lat     float64 `toml:"lat"`
	Lng     float64 `toml:"lng"`
}

type rawConfig struct {
	LogFile string `toml:"log_file"`
	Map     struct {
		TileURL   string   `toml:"tile_url"`
		CenterLat *float64 `toml:"center_lat"`
		CenterLng *float64 `toml:"center_lng"`
		Zoom      *float64 `toml:"zoom"`
	} `toml:"map"`
	GPS struct {
		Address      string `toml:"address"`
		RequestTimeout string `toml:"request_timeout"`
		PollInterval string `toml:"poll_interval"`
	} `toml:"gps"`
	Location struct {
		Source       string   `toml:"source"`
		StaticLat    *float64 `toml:"static_lat"`
		StaticLng    *float64 `toml:"static_lng"`
		GoogleAPIKey string   `toml:"google_api_key"`
	} `toml:"location"`
	Markers []rawMarker `toml:"markers"`
}

// envOverrides are applied on top of the file when set.
type envOverrides struct {
	TileURL        string `env:"MAPDECK_TILE_URL"`
	GPSDAddress    string `env:"MAPDECK_GPSD_ADDRESS"`
	LocationSource string `env:"MAPDECK_LOCATION_SOURCE"`
	GoogleAPIKey   string `env:"MAPDECK_GOOGLE_API_KEY"`
	LogFile        string `env:"MAPDECK_LOG_FILE"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		TileURL:         defaultTileURL,
		Center:          defaultMarker.Position,
		Zoom:            defaultZoom,
		Markers:         []Marker{defaultMarker},
		GPSDAddress:     defaultGPSDAddress,
		RequestTimeout:    defaultRequestTimeout,
		GPSPollInterval: defaultGPSPollInterval,
		LocationSource:  defaultLocationSource,
		StaticLocation:  defaultMarker.Position,
		LogFile:         mustExpand(defaultLogFile),
	}
}

// Load reads the config file, falling back to defaults when missing, then
// applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		var raw rawConfig
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := cfg.apply(raw); err != nil {
			return Config{}, err
		}
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyEnv(overrides)

	return cfg, nil
}

func (c *Config) apply(raw rawConfig) error {
	if v := strings.TrimSpace(raw.Map.TileURL); v != "" {
		c.TileURL = v
	}
	if raw.Map.CenterLat != nil && raw.Map.CenterLng != nil {
		c.Center = geo.LatLng{Lat: *raw.Map.CenterLat, Lng: *raw.Map.CenterLng}
		if !c.Center.Valid() {
			return fmt.Errorf("map center %v out of range", c.Center)
		}
	}
	if raw.Map.Zoom != nil {
		c.Zoom = geo.ClampZoom(*raw.Map.Zoom)
	}

	if v := strings.TrimSpace(raw.GPS.Address); v != "" {
		c.GPSDAddress = v
	}
	if d, err := parseDuration("gps.request_timeout", raw.GPS.RequestTimeout); err != nil {
		return err
	} else if d > 0 {
		c.RequestTimeout = d
	}
	if d, err := parseDuration("gps.poll_interval", raw.GPS.PollInterval); err != nil {
		return err
	} else if d > 0 {
		c.GPSPollInterval = d
	}

	if v := strings.TrimSpace(raw.Location.Source); v != "" {
		c.LocationSource = strings.ToLower(v)
	}
	if raw.Location.StaticLat != nil && raw.Location.StaticLng != nil {
		c.StaticLocation = geo.LatLng{Lat: *raw.Location.StaticLat, Lng: *raw.Location.StaticLng}
	}
	c.GoogleAPIKey = strings.TrimSpace(raw.Location.GoogleAPIKey)

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}

	if len(raw.Markers) > 0 {
		markers := make([]Marker, 0, len(raw.Markers))
		for i, m := range raw.Markers {
			pos := geo.LatLng{Lat: m.Lat, Lng: m.Lng}
			if !pos.Valid() {
				return fmt.Errorf("marker %d: position %v out of range", i+1, pos)
			}
			title := strings.TrimSpace(m.Title)
			if title == "" {
				title = fmt.Sprintf("Marker %d", i+1)
			}
			markers = append(markers, Marker{Title: title, Snippet: strings.TrimSpace(m.Snippet), Position: pos})
		}
		c.Markers = markers
	}
	return nil
}

func (c *Config) applyEnv(o envOverrides) {
	if v := strings.TrimSpace(o.TileURL); v != "" {
		c.TileURL = v
	}
	if v := strings.TrimSpace(o.GPSDAddress); v != "" {
		c.GPSDAddress = v
	}
	if v := strings.TrimSpace(o.LocationSource); v != "" {
		c.LocationSource = strings.ToLower(v)
	}
	if v := strings.TrimSpace(o.GoogleAPIKey); v != "" {
		c.GoogleAPIKey = v
	}
	if v := strings.TrimSpace(o.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
}

func parseDuration(field, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

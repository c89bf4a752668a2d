package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/five82/mapdeck/internal/config"
	"github.com/five82/mapdeck/internal/device"
	"github.com/five82/mapdeck/internal/lifecycle"
	"github.com/five82/mapdeck/internal/location"
	"github.com/five82/mapdeck/internal/logtail"
	"github.com/five82/mapdeck/internal/prefs"
	"github.com/five82/mapdeck/internal/state"
	"github.com/five82/mapdeck/internal/ui"
)

// Options configure the mapdeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/mapdeck/prefs.toml
	Verbose    bool
}

// ErrNoFix is returned by Locate when the source has no position.
var ErrNoFix = errors.New("no location fix available")

// Run boots the mapdeck TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	slog.SetDefault(newLogger(logFile, opts.Verbose))
	slog.Info("mapdeck starting", "config", cfg.Path, "source", cfg.LocationSource, "tiles", cfg.TileURL)

	source, err := newSource(cfg)
	if err != nil {
		return fmt.Errorf("init location source: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	store := state.NewStore()
	if kind, ok := state.ParseMapKind(userPrefs.MapKind); ok {
		store.Dispatch(state.SetMapKind{Kind: kind})
	}

	hooks := &lifecycle.Hooks{}
	inbox := ui.NewInbox()
	checker := newChecker(cfg)
	perms := device.NewPermissions(opts.PrefsPath)
	registerHooks(hooks, store, inbox, checker, perms)
	defer hooks.Stop()

	err = ui.Run(ui.Options{
		Context:     ctx,
		Store:       store,
		Hooks:       hooks,
		Inbox:       inbox,
		Checker:     checker,
		Permissions: perms,
		Source:      source,
		Center:      cfg.Center,
		Zoom:        cfg.Zoom,
		Markers:     uiMarkers(cfg.Markers),
		GPSInterval: cfg.GPSPollInterval,
		GPSAddress:  cfg.GPSDAddress,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
		ConfigPath:  cfg.Path,
	})
	slog.Info("mapdeck stopped", "error", err)
	return err
}

// Check runs the availability and GPS checks once and prints the result
// together with the stored location consent. resetConsent forgets the
// stored answer first.
func Check(ctx context.Context, opts Options, w io.Writer, resetConsent bool) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	perms := device.NewPermissions(opts.PrefsPath)
	if resetConsent {
		if err := perms.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(w, "location consent reset")
	}

	checker := newChecker(cfg)
	service := "available"
	if err := checker.Service.Available(ctx); err != nil {
		service = "unavailable (" + err.Error() + ")"
	}
	gps := "disabled"
	if checker.GPS.Enabled(ctx) {
		gps = "enabled"
	}
	consent := "undecided"
	if status, ok := perms.Evaluate(); ok {
		consent = status.String()
	}

	fmt.Fprintf(w, "config:     %s\n", cfg.Path)
	fmt.Fprintf(w, "map tiles:  %s\n", service)
	fmt.Fprintf(w, "gps:        %s (%s)\n", gps, cfg.GPSDAddress)
	fmt.Fprintf(w, "consent:    %s\n", consent)
	fmt.Fprintf(w, "source:     %s\n", cfg.LocationSource)
	return nil
}

// Locate asks the configured location source for one fix and prints it.
func Locate(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	source, err := newSource(cfg)
	if err != nil {
		return fmt.Errorf("init location source: %w", err)
	}

	fix, err := source.LastKnown(ctx)
	if err != nil {
		return fmt.Errorf("locate: %w", err)
	}
	if fix == nil {
		return ErrNoFix
	}

	fmt.Fprintf(w, "%.6f, %.6f", fix.Position.Lat, fix.Position.Lng)
	if fix.Accuracy > 0 {
		fmt.Fprintf(w, " ±%.0fm", fix.Accuracy)
	}
	fmt.Fprintf(w, " via %s at %s\n", fix.Source, fix.Time.Format(time.RFC3339))
	return nil
}

// Logs prints the last lines of the session log at or above level.
func Logs(opts Options, w io.Writer, lines int, level string) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	var minLevel slog.Level
	if err := minLevel.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(level)))); err != nil {
		return fmt.Errorf("parse level %q: %w", level, err)
	}

	tail, err := logtail.Read(cfg.LogFile, lines)
	if err != nil {
		return err
	}
	for _, line := range logtail.FormatLines(logtail.Filter(tail, minLevel)) {
		fmt.Fprintln(w, line)
	}
	return nil
}

func newChecker(cfg config.Config) *device.Checker {
	return &device.Checker{
		Service: device.NewTileServer(cfg.TileURL, cfg.RequestTimeout),
		GPS:     device.NewGPSDialer(cfg.GPSDAddress, cfg.RequestTimeout),
	}
}

func newSource(cfg config.Config) (location.Source, error) {
	return location.New(cfg.LocationSource, location.Options{
		GPSDAddress:  cfg.GPSDAddress,
		GoogleAPIKey: cfg.GoogleAPIKey,
		Static:       cfg.StaticLocation,
	})
}

func uiMarkers(in []config.Marker) []ui.Marker {
	out := make([]ui.Marker, 0, len(in))
	for _, m := range in {
		out = append(out, ui.Marker{Title: m.Title, Snippet: m.Snippet, Position: m.Position})
	}
	return out
}

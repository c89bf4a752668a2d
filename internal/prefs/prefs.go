// Package prefs handles mapdeck user preferences persistence.
// Preferences are stored in ~/.config/mapdeck/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Consent records the user's answers to the location permission prompt.
type Consent struct {
	Granted  bool `toml:"granted"`
	Denials  int  `toml:"denials"`
	NeverAsk bool `toml:"never_ask"`
}

// Decided reports whether the user has answered the prompt at least once.
func (c Consent) Decided() bool {
	return c.Granted || c.NeverAsk || c.Denials > 0
}

// Prefs holds user preferences for mapdeck.
type Prefs struct {
	Theme   string  `toml:"theme"`
	MapKind string  `toml:"map_kind"`
	Consent Consent `toml:"consent"`
}

const (
	defaultPrefsPath = "~/.config/mapdeck/prefs.toml"
	defaultTheme     = "Nightfox"
	defaultMapKind   = "normal"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, MapKind: defaultMapKind}
}

// ErrCorrupt marks a prefs file that exists but cannot be read or decoded.
var ErrCorrupt = errors.New("prefs file unreadable")

// writeMu serializes every write to a prefs file in this process.
var writeMu sync.Mutex

// Load reads preferences from the given path, falling back to defaults if
// the file is missing or unreadable.
func Load(path string) (Prefs, error) {
	p, err := Read(path)
	if err != nil {
		return Defaults(), nil // Graceful degradation
	}
	return p, nil
}

// Read is the strict form of Load. A missing file yields defaults; a file
// that exists but does not decode yields an error wrapping ErrCorrupt.
func Read(path string) (Prefs, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Defaults(), fmt.Errorf("resolve path: %w", err)
	}

	prefs := Defaults()

	file, err := os.Open(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Defaults(), fmt.Errorf("%w: %s: %w", ErrCorrupt, resolved, err)
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	prefs.MapKind = strings.ToLower(strings.TrimSpace(prefs.MapKind))
	if prefs.MapKind == "" {
		prefs.MapKind = defaultMapKind
	}
	if prefs.Consent.Denials < 0 {
		prefs.Consent.Denials = 0
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
// The file is replaced by rename, so readers never see it half written.
func Save(path string, p Prefs) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	return save(path, p)
}

func save(path string, p Prefs) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Update loads the stored preferences, applies fn and saves the result. It
// never overwrites a file that does not decode.
func Update(path string, fn func(*Prefs)) (Prefs, error) {
	writeMu.Lock()
	defer writeMu.Unlock()

	p, err := Read(path)
	if err != nil {
		return p, err
	}
	fn(&p)
	if err := save(path, p); err != nil {
		return p, err
	}
	return p, nil
}

// ResolvePath expands path, or the default location when path is blank, to
// an absolute file name.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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

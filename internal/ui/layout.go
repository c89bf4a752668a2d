package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80
)

// Rows reserved around the map canvas.
const (
	headerRows = 1
	footerRows = 1
)

// Timing constants.
const (
	// NoticeDuration is how long a transient notice stays visible.
	NoticeDuration = 3 * time.Second

	// FrameInterval paces camera animation redraws.
	FrameInterval = 33 * time.Millisecond

	// DefaultGPSInterval is the default GPS re-check interval.
	DefaultGPSInterval = 5 * time.Second

	// CheckTimeout bounds one round of availability and permission checks.
	CheckTimeout = 10 * time.Second
)

// Zoom change per key press.
const zoomStep = 1.0

// PrefsNotSavedNotice is shown when prefs.toml exists but does not decode.
const PrefsNotSavedNotice = "preferences not saved: prefs.toml has errors"

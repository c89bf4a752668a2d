package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mapdeck/internal/state"
)

// renderHeader renders the status bar.
func (m Model) renderHeader(s state.MapState) string {
	styles := m.theme.Styles()
	b := newBar(m.theme.Bar)
	compact := m.width < LayoutCompactWidth

	b.add(styles.Title, "mapdeck")

	if s.APIUnavailable {
		b.add(styles.Alert, "● MAP OFFLINE")
	}

	switch {
	case !m.gpsKnown:
		b.add(styles.Dim, "● GPS …")
	case s.GPSEnabled:
		b.add(styles.OK, "● GPS")
	default:
		b.add(styles.Alert, "● GPS OFF")
	}

	permStyle, permText := styles.Dim, "pending"
	if s.PermissionReported {
		permText = strings.ReplaceAll(s.Permission.String(), "_", " ")
		switch s.Permission {
		case state.PermanentDenied:
			permStyle = styles.Alert
		case state.ShouldShowRationale:
			permStyle = styles.Warn
		default:
			permStyle = styles.OK
		}
	}
	b.label(styles.Dim, "Location:", " ", permStyle, permText)

	if !s.APIUnavailable {
		pos := m.camera.Position()
		b.add(styles.Accent, pickerOptions[pickerIndexFor(s.Properties.Kind)].label).
			add(styles.Text, pos.Target.String()).
			add(styles.Dim, fmt.Sprintf("z%.1f", pos.Zoom))
		if !compact && m.lastFix != nil && s.Properties.MyLocationEnabled {
			fix := fmt.Sprintf("fix %s", m.lastFix.Source)
			if m.lastFix.Accuracy > 0 {
				fix += fmt.Sprintf(" ±%.0fm", m.lastFix.Accuracy)
			}
			b.add(styles.Faint, fix)
		}
	}

	if s.CanFocusLocation() {
		b.add(styles.Warn, "locating…")
	}

	return b.line(m.width)
}

// renderFooter renders the key hints, or the current notice.
func (m Model) renderFooter(s state.MapState) string {
	styles := m.theme.Styles()
	b := newBar(m.theme.Bar)

	if m.notices.text != "" {
		return b.add(styles.Warn.Bold(true), "!").add(styles.Warn, m.notices.text).line(m.width)
	}

	if !s.APIUnavailable {
		for _, h := range []struct{ key, desc string }{
			{"l", "My location"},
			{"s", "Style"},
			{"m", "Markers"},
			{"arrows", "Pan"},
			{"+/-", "Zoom"},
		} {
			b.label(styles.Accent, h.key, ":", styles.Dim, h.desc)
		}
	}
	b.label(styles.Accent, "?", ":", styles.Dim, "Help").
		label(styles.Accent, "q", ":", styles.Dim, "Quit").
		label(styles.Accent, "T", ":", styles.Faint, m.theme.Name)

	return b.line(m.width)
}

// renderBanner replaces the map when the backend is unusable.
func (m Model) renderBanner(rows int) string {
	banner := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Alert)).
		Foreground(lipgloss.Color(m.theme.Alert)).
		Bold(true).
		Padding(1, 3).
		Render(BannerText)
	return lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, banner)
}

// BannerText is shown instead of the map when the backend is unusable.
const BannerText = "You can't make map requests"

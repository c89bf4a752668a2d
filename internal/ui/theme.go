package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mapdeck/internal/state"
)

// Theme is a named palette for the map screen.
type Theme struct {
	Name string

	// Chrome
	Background    string // behind overlays, and the map when no kind is set
	Bar           string // header and footer
	Panel         string // style picker
	Highlight     string // picker cursor
	HighlightText string

	// Text
	Text   string
	Dim    string
	Faint  string
	Accent string
	OK     string
	Warn   string
	Alert  string

	// Map
	Grid     string // tile boundaries
	Marker   string // configured markers
	Location string // my-location dot
	Ground   map[state.MapKind]string
}

// Styles holds the lipgloss styles derived from a Theme. Text styles carry
// no background; the bar and overlay renderers add it.
type Styles struct {
	Title    lipgloss.Style
	Text     lipgloss.Style
	Dim      lipgloss.Style
	Faint    lipgloss.Style
	Accent   lipgloss.Style
	OK       lipgloss.Style
	Warn     lipgloss.Style
	Alert    lipgloss.Style
	Selected lipgloss.Style

	ground     map[state.MapKind]string
	grid       string
	background string
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return Styles{
		Title:  fg(t.Warn).Bold(true),
		Text:   fg(t.Text),
		Dim:    fg(t.Dim),
		Faint:  fg(t.Faint),
		Accent: fg(t.Accent),
		OK:     fg(t.OK).Bold(true),
		Warn:   fg(t.Warn),
		Alert:  fg(t.Alert).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Highlight)).
			Foreground(lipgloss.Color(t.HighlightText)),

		ground:     t.Ground,
		grid:       t.Grid,
		background: t.Background,
	}
}

// MapStyle returns the canvas style for a map kind. KindNone draws on the
// plain background.
func (s Styles) MapStyle(kind state.MapKind) lipgloss.Style {
	color := s.ground[kind]
	if color == "" {
		color = s.background
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.grid)).
		Background(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, Nightfox when unknown.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns the theme cycle order.
func ThemeNames() []string {
	return themeOrder
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name:          "Nightfox",
		Background:    "#131a24",
		Bar:           "#192330",
		Panel:         "#212e3f",
		Highlight:     "#2b3b51",
		HighlightText: "#cdcecf",

		Text:   "#cdcecf",
		Dim:    "#738091",
		Faint:  "#71839b",
		Accent: "#719cd6",
		OK:     "#81b29a",
		Warn:   "#dbc074",
		Alert:  "#c94f6d",

		Grid:     "#39506d",
		Marker:   "#c94f6d",
		Location: "#63cdcf",
		Ground: map[state.MapKind]string{
			state.KindNormal:    "#192330",
			state.KindSatellite: "#1d2b22",
			state.KindTerrain:   "#2a2a22",
			state.KindHybrid:    "#1d2b22",
		},
	}
}

// https://github.com/rebelot/kanagawa.nvim
func kanagawaTheme() Theme {
	return Theme{
		Name:          "Kanagawa",
		Background:    "#16161D",
		Bar:           "#1F1F28",
		Panel:         "#2A2A37",
		Highlight:     "#2D4F67",
		HighlightText: "#DCD7BA",

		Text:   "#DCD7BA",
		Dim:    "#C8C093",
		Faint:  "#727169",
		Accent: "#7E9CD8",
		OK:     "#98BB6C",
		Warn:   "#E6C384",
		Alert:  "#E46876",

		Grid:     "#54546D",
		Marker:   "#E46876",
		Location: "#7FB4CA",
		Ground: map[state.MapKind]string{
			state.KindNormal:    "#1F1F28",
			state.KindSatellite: "#1e2620",
			state.KindTerrain:   "#2b2620",
			state.KindHybrid:    "#1e2620",
		},
	}
}

// Tailwind slate and sky.
func slateTheme() Theme {
	return Theme{
		Name:          "Slate",
		Background:    "#020617",
		Bar:           "#0f172a",
		Panel:         "#1e293b",
		Highlight:     "#0284c7",
		HighlightText: "#f8fafc",

		Text:   "#f1f5f9",
		Dim:    "#94a3b8",
		Faint:  "#64748b",
		Accent: "#38bdf8",
		OK:     "#22c55e",
		Warn:   "#f59e0b",
		Alert:  "#ef4444",

		Grid:     "#334155",
		Marker:   "#ef4444",
		Location: "#06b6d4",
		Ground: map[state.MapKind]string{
			state.KindNormal:    "#0f172a",
			state.KindSatellite: "#14261c",
			state.KindTerrain:   "#292417",
			state.KindHybrid:    "#14261c",
		},
	}
}

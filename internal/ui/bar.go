package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// bar assembles one line of the header, footer or picker. Every span and
// gap is painted with the bar color, since a reset between two separately
// rendered spans would otherwise show the terminal background.
type bar struct {
	bg    lipgloss.Color
	spans []string
}

func newBar(color string) *bar {
	return &bar{bg: lipgloss.Color(color)}
}

// text renders s in style on the bar color without adding a span.
func (b *bar) text(style lipgloss.Style, s string) string {
	if s == "" {
		return ""
	}
	return style.Background(b.bg).Render(s)
}

// add appends one span.
func (b *bar) add(style lipgloss.Style, s string) *bar {
	b.spans = append(b.spans, b.text(style, s))
	return b
}

// label appends "name<sep>value" as a single span.
func (b *bar) label(nameStyle lipgloss.Style, name, sep string, valueStyle lipgloss.Style, value string) *bar {
	b.spans = append(b.spans, b.text(nameStyle, name)+b.gap(sep)+b.text(valueStyle, value))
	return b
}

func (b *bar) gap(s string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(s)
}

// line joins the spans two cells apart and pads them to width.
func (b *bar) line(width int) string {
	return b.fill(strings.Join(b.spans, b.gap("  ")), width)
}

// fill pads an already rendered line to width on the bar color, with one
// cell of margin on each side. Content wider than the line is cut.
func (b *bar) fill(content string, width int) string {
	if width > 2 && ansi.StringWidth(content) > width-2 {
		content = ansi.Truncate(content, width-2, "…")
	}
	return lipgloss.NewStyle().Background(b.bg).Padding(0, 1).Width(max(width, 1)).Render(content)
}

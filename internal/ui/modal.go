package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// overlay centers a bordered box over the whole terminal.
func (m Model) overlay(content string, width int, border string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(min(width, max(m.width-4, 10))).
		Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// modalBox renders a titled box with a body and a button row.
func (m Model) modalBox(title, body string, buttons []button, border string) string {
	styles := m.theme.Styles()
	content := styles.Text.Bold(true).Render(title) + "\n\n" +
		styles.Text.Render(body) + "\n\n" +
		m.renderButtons(buttons)
	return m.overlay(content, 52, border)
}

type button struct {
	key   string
	label string
}

func (m Model) renderButtons(buttons []button) string {
	styles := m.theme.Styles()
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		parts = append(parts, styles.Accent.Render("["+b.key+"]")+" "+styles.Dim.Render(b.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWith(parts, "   ")...)
}

func joinWith(parts []string, sep string) []string {
	if len(parts) == 0 {
		return nil
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

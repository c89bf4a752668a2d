package ui

import (
	"strings"

	"github.com/five82/mapdeck/internal/state"
)

const pickerRowWidth = 16

type pickerOption struct {
	label string
	kind  state.MapKind
}

// pickerOptions are the map types offered by the style picker.
var pickerOptions = []pickerOption{
	{label: "Default", kind: state.KindNormal},
	{label: "Terrain", kind: state.KindTerrain},
	{label: "Satellite", kind: state.KindHybrid},
}

func pickerIndexFor(kind state.MapKind) int {
	for i, opt := range pickerOptions {
		if opt.kind == kind {
			return i
		}
	}
	return 0
}

// pickerRows is how many rows the picker panel takes.
func pickerRows() int {
	return len(pickerOptions) + 1
}

func (m Model) renderPicker(current state.MapKind) string {
	styles := m.theme.Styles()
	b := newBar(m.theme.Panel)

	lines := make([]string, 0, pickerRows())
	lines = append(lines, b.fill(
		b.text(styles.Accent.Bold(true), "Map style")+b.gap("  ")+
			b.text(styles.Faint, "↑/↓ choose  enter apply  esc close"), m.width))
	for i, opt := range pickerOptions {
		bullet := "  "
		if opt.kind == current {
			bullet = "● "
		}
		if i == m.pickerIndex {
			lines = append(lines, b.fill(styles.Selected.Width(pickerRowWidth).Render("> "+bullet+opt.label), m.width))
			continue
		}
		lines = append(lines, b.fill(b.text(styles.Text.Width(pickerRowWidth), "  "+bullet+opt.label), m.width))
	}
	return strings.Join(lines, "\n")
}

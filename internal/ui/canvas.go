package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mapdeck/internal/geo"
	"github.com/five82/mapdeck/internal/state"
)

// Marker is a titled point drawn on the canvas.
type Marker struct {
	Title    string
	Snippet  string
	Position geo.LatLng
}

type cellRole int

const (
	roleGround cellRole = iota
	roleTexture
	roleGrid
	roleMarker
	roleLabel
	roleLocation
	roleCrosshair
)

type cell struct {
	r    rune
	role cellRole
}

// scene is everything the canvas draws besides the state itself.
type scene struct {
	viewport geo.Viewport
	markers  []Marker
	location *geo.LatLng
}

// layoutCanvas computes the glyph grid for s. It has no side effects.
func layoutCanvas(s state.MapState, sc scene) [][]cell {
	vp := sc.viewport
	if vp.Cols <= 0 || vp.Rows <= 0 {
		return nil
	}
	kind := s.Properties.Kind
	cw, ch := vp.CellWidth, vp.CellHeight
	if cw <= 0 {
		cw = geo.DefaultCellWidth
	}
	if ch <= 0 {
		ch = geo.DefaultCellHeight
	}
	cx, cy := geo.World(vp.Center, vp.Zoom)
	baseX := math.Floor(cx / cw)
	baseY := math.Floor(cy / ch)

	grid := make([][]cell, vp.Rows)
	for row := range grid {
		line := make([]cell, vp.Cols)
		for col := range line {
			line[col] = cell{r: ' ', role: roleGround}
			wx := int64(baseX) + int64(col-vp.Cols/2)
			wy := int64(baseY) + int64(row-vp.Rows/2)
			if r, ok := texture(kind, wx, wy, int(math.Round(vp.Zoom))); ok {
				line[col] = cell{r: r, role: roleTexture}
			}
			if showsGrid(kind) {
				v, h := vp.TileEdges(col, row)
				switch {
				case v && h:
					line[col] = cell{r: '┼', role: roleGrid}
				case v:
					line[col] = cell{r: '│', role: roleGrid}
				case h:
					line[col] = cell{r: '─', role: roleGrid}
				}
			}
		}
		grid[row] = line
	}

	midCol, midRow := vp.Cols/2, vp.Rows/2
	grid[midRow][midCol] = cell{r: '+', role: roleCrosshair}

	for _, mk := range sc.markers {
		col, row, ok := vp.Cell(mk.Position)
		if !ok {
			continue
		}
		grid[row][col] = cell{r: '▼', role: roleMarker}
		label := []rune(" " + mk.Title)
		for i, r := range label {
			c := col + 1 + i
			if c >= vp.Cols {
				break
			}
			grid[row][c] = cell{r: r, role: roleLabel}
		}
	}

	if sc.location != nil && s.Properties.MyLocationEnabled {
		if col, row, ok := vp.Cell(*sc.location); ok {
			grid[row][col] = cell{r: '◉', role: roleLocation}
		}
	}
	return grid
}

func showsGrid(kind state.MapKind) bool {
	return kind == state.KindNormal || kind == state.KindTerrain || kind == state.KindHybrid
}

// texture returns a stable glyph for a world cell so the pattern stays
// put while panning.
func texture(kind state.MapKind, wx, wy int64, zoom int) (rune, bool) {
	h := mix(wx, wy, zoom)
	switch kind {
	case state.KindSatellite, state.KindHybrid:
		return []rune("░░▒▒▓ ")[h%6], true
	case state.KindTerrain:
		if h%5 == 0 {
			return []rune(".:'")[h%3], true
		}
	}
	return 0, false
}

func mix(x, y int64, z int) uint64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F ^ uint64(z)*0x165667B19E3779F9
	h ^= h >> 29
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 32
	return h
}

// renderCanvas paints the glyph grid with the theme.
func (m Model) renderCanvas(s state.MapState, sc scene) string {
	grid := layoutCanvas(s, sc)
	if grid == nil {
		return ""
	}
	styles := m.theme.Styles()
	base := styles.MapStyle(s.Properties.Kind)
	roleStyles := map[cellRole]lipgloss.Style{
		roleGround:    base,
		roleTexture:   base.Foreground(lipgloss.Color(m.theme.Faint)),
		roleGrid:      base,
		roleMarker:    base.Foreground(lipgloss.Color(m.theme.Marker)).Bold(true),
		roleLabel:     base.Foreground(lipgloss.Color(m.theme.Text)),
		roleLocation:  base.Foreground(lipgloss.Color(m.theme.Location)).Bold(true),
		roleCrosshair: base.Foreground(lipgloss.Color(m.theme.Accent)),
	}

	lines := make([]string, len(grid))
	var run strings.Builder
	for i, row := range grid {
		var line strings.Builder
		current := row[0].role
		for _, c := range row {
			if c.role != current {
				line.WriteString(roleStyles[current].Render(run.String()))
				run.Reset()
				current = c.role
			}
			run.WriteRune(c.r)
		}
		line.WriteString(roleStyles[current].Render(run.String()))
		run.Reset()
		lines[i] = line.String()
	}
	return strings.Join(lines, "\n")
}

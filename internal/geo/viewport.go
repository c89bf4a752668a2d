package geo

import "math"

// Default terminal cell footprint in world pixels. Cells are roughly twice
// as tall as wide, so a row covers twice the pixels of a column.
const (
	DefaultCellWidth  = 16.0
	DefaultCellHeight = 32.0
)

// Viewport maps a camera onto a grid of terminal cells.
type Viewport struct {
	Center LatLng
	Zoom   float64
	Cols   int
	Rows   int

	CellWidth  float64 // world pixels per column
	CellHeight float64 // world pixels per row
}

// NewViewport returns a viewport with the default cell footprint.
func NewViewport(center LatLng, zoom float64, cols, rows int) Viewport {
	return Viewport{
		Center:     center,
		Zoom:       zoom,
		Cols:       cols,
		Rows:       rows,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
	}
}

func (v Viewport) cellSize() (float64, float64) {
	w, h := v.CellWidth, v.CellHeight
	if w <= 0 {
		w = DefaultCellWidth
	}
	if h <= 0 {
		h = DefaultCellHeight
	}
	return w, h
}

// Cell returns the column and row of ll. ok is false when ll falls outside
// the grid.
func (v Viewport) Cell(ll LatLng) (col, row int, ok bool) {
	cw, ch := v.cellSize()
	cx, cy := World(v.Center, v.Zoom)
	px, py := World(ll, v.Zoom)
	col = v.Cols/2 + int(math.Floor((px-cx)/cw+0.5))
	row = v.Rows/2 + int(math.Floor((py-cy)/ch+0.5))
	ok = col >= 0 && col < v.Cols && row >= 0 && row < v.Rows
	return col, row, ok
}

// At returns the geographic point under the given cell.
func (v Viewport) At(col, row int) LatLng {
	cw, ch := v.cellSize()
	cx, cy := World(v.Center, v.Zoom)
	x := cx + float64(col-v.Cols/2)*cw
	y := cy + float64(row-v.Rows/2)*ch
	return FromWorld(x, y, v.Zoom)
}

// Pan returns the center after moving by the given number of cells.
func (v Viewport) Pan(dCols, dRows int) LatLng {
	return v.At(v.Cols/2+dCols, v.Rows/2+dRows)
}

// TileEdges reports whether a cell contains a vertical or horizontal tile
// boundary at the nearest integer zoom.
func (v Viewport) TileEdges(col, row int) (vertical, horizontal bool) {
	cw, ch := v.cellSize()
	cx, cy := World(v.Center, v.Zoom)
	scale := math.Pow(2, v.Zoom-math.Round(v.Zoom))
	tile := TileSize * scale

	x0 := cx + (float64(col-v.Cols/2)-0.5)*cw
	y0 := cy + (float64(row-v.Rows/2)-0.5)*ch
	vertical = math.Floor((x0+cw)/tile) != math.Floor(x0/tile)
	horizontal = math.Floor((y0+ch)/tile) != math.Floor(y0/tile)
	return vertical, horizontal
}

// Package grid places fixed-size character cells on screen.
package grid

// GetGridCoords converts a row-major cell index into column and row.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Layout is a grid of CellW x CellH pixel cells whose top-left cell starts
// at (OriginX, OriginY).
type Layout struct {
	OriginX, OriginY int
	CellW, CellH     int
}

// At returns the pixel position of the cell at col, row.
func (l Layout) At(col, row int) (px, py int) {
	return l.OriginX + col*l.CellW, l.OriginY + row*l.CellH
}

// Cell returns the pixel position of the index-th cell when rows hold cols
// cells each.
func (l Layout) Cell(index, cols int) (px, py int) {
	return l.At(GetGridCoords(index, cols))
}

// Rows is the number of whole rows that fit in height pixels below the
// origin.
func (l Layout) Rows(height int) int {
	if l.CellH <= 0 || height <= l.OriginY {
		return 0
	}
	return (height - l.OriginY) / l.CellH
}

// Cols is the number of whole cells that fit in width pixels right of the
// origin.
func (l Layout) Cols(width int) int {
	if l.CellW <= 0 || width <= l.OriginX {
		return 0
	}
	return (width - l.OriginX) / l.CellW
}

// Package grid maps drawing-space points to human-readable yard cell
// labels and slot addresses.
package grid

import (
	"fmt"
	"math"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
)

// DefaultCellSize is the cell edge length in drawing units.
const DefaultCellSize = 20.0

// maxColumn is the highest column index representable by a single
// letter. Columns beyond Z clamp to Z instead of overflowing to
// multi-letter labels; yards wide enough to hit this limit keep the
// clamp as documented behavior.
const maxColumn = 25

// Model divides a drawing-space bounding rectangle into labeled cells.
type Model struct {
	bounds   geo.Rect
	cellSize float64
}

// NewModel creates a grid model over the given bounds.
func NewModel(bounds geo.Rect, cellSize float64) (*Model, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("grid: cell size must be positive, got %g", cellSize)
	}
	if bounds.IsEmpty() {
		return nil, fmt.Errorf("grid: degenerate bounds %+v", bounds)
	}
	return &Model{bounds: bounds, cellSize: cellSize}, nil
}

// Bounds returns the rectangle the grid covers.
func (m *Model) Bounds() geo.Rect {
	return m.bounds
}

// CellSize returns the cell edge length in drawing units.
func (m *Model) CellSize() float64 {
	return m.cellSize
}

// Columns returns the number of grid columns.
func (m *Model) Columns() int {
	return int(math.Ceil(m.bounds.Width() / m.cellSize))
}

// Rows returns the number of grid rows.
func (m *Model) Rows() int {
	return int(math.Ceil(m.bounds.Height() / m.cellSize))
}

// CellIndex returns the zero-based (column, row) cell of a drawing
// point. Row 0 is the top row (highest Y). This is the single source
// of cell arithmetic: hover labels and the diagnostic overlay both go
// through it so they agree on cell boundaries.
func (m *Model) CellIndex(p geo.Point2D) (col, row int) {
	col = int(math.Floor((p.X - m.bounds.Min.X) / m.cellSize))
	if col < 0 {
		col = 0
	}
	if col > maxColumn {
		col = maxColumn
	}
	row = int(math.Floor((m.bounds.Max.Y - p.Y) / m.cellSize))
	if row < 0 {
		row = 0
	}
	return col, row
}

// CellLabel returns the label of the cell containing a drawing point,
// e.g. "A1" for the top-left cell.
func (m *Model) CellLabel(p geo.Point2D) string {
	col, row := m.CellIndex(p)
	return fmt.Sprintf("%c%d", ColumnLetter(col), row+1)
}

// CellCenter returns the drawing-space center of the cell at
// (col, row).
func (m *Model) CellCenter(col, row int) geo.Point2D {
	return geo.Pt(
		m.bounds.Min.X+(float64(col)+0.5)*m.cellSize,
		m.bounds.Max.Y-(float64(row)+0.5)*m.cellSize,
	)
}

// ColumnLetter maps a zero-based column index to its letter, clamping
// to the A-Z range.
func ColumnLetter(col int) byte {
	if col < 0 {
		col = 0
	}
	if col > maxColumn {
		col = maxColumn
	}
	return byte('A' + col)
}

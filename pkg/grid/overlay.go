package grid

import (
	"fmt"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
)

// Line is a scene-space grid line segment.
type Line struct {
	From geo.Point3D `json:"from"`
	To   geo.Point3D `json:"to"`
}

// Label is a diagnostic cell label anchored at the cell center in
// scene space.
type Label struct {
	Text string      `json:"text"`
	At   geo.Point3D `json:"at"`
}

// Overlay is the diagnostic grid geometry for a yard session.
type Overlay struct {
	Vertical   []Line  `json:"vertical"`
	Horizontal []Line  `json:"horizontal"`
	Labels     []Label `json:"labels"`
}

// GenerateOverlay builds grid line geometry and cell labels for the
// model. It holds no state; regenerate whenever the coordinate system
// or cell size changes. Labels reuse Model.CellLabel so the overlay
// and hover labels can never disagree on cell boundaries.
func GenerateOverlay(tr *transform.Transformer, m *Model) (*Overlay, error) {
	cols := m.Columns()
	rows := m.Rows()
	bounds := m.Bounds()
	cell := m.CellSize()

	ov := &Overlay{}

	for c := 0; c <= cols; c++ {
		x := bounds.Min.X + float64(c)*cell
		from, err := tr.ToScene(geo.Pt(x, bounds.Min.Y))
		if err != nil {
			return nil, fmt.Errorf("grid overlay: %w", err)
		}
		to, err := tr.ToScene(geo.Pt(x, bounds.Max.Y))
		if err != nil {
			return nil, fmt.Errorf("grid overlay: %w", err)
		}
		ov.Vertical = append(ov.Vertical, Line{From: from, To: to})
	}

	for r := 0; r <= rows; r++ {
		y := bounds.Max.Y - float64(r)*cell
		from, err := tr.ToScene(geo.Pt(bounds.Min.X, y))
		if err != nil {
			return nil, fmt.Errorf("grid overlay: %w", err)
		}
		to, err := tr.ToScene(geo.Pt(bounds.Max.X, y))
		if err != nil {
			return nil, fmt.Errorf("grid overlay: %w", err)
		}
		ov.Horizontal = append(ov.Horizontal, Line{From: from, To: to})
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols && c <= maxColumn; c++ {
			center := m.CellCenter(c, r)
			at, err := tr.ToScene(center)
			if err != nil {
				return nil, fmt.Errorf("grid overlay: %w", err)
			}
			ov.Labels = append(ov.Labels, Label{Text: m.CellLabel(center), At: at})
		}
	}

	return ov, nil
}

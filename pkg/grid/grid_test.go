package grid

import (
	"errors"
	"testing"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/transform"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(geo.NewRect(geo.Pt(0, 0), geo.Pt(100, 100)), 20)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestGridDimensions(t *testing.T) {
	m := testModel(t)
	if m.Columns() != 5 || m.Rows() != 5 {
		t.Errorf("expected 5x5 grid, got %dx%d", m.Columns(), m.Rows())
	}

	// Non-divisible bounds round up.
	m2, err := NewModel(geo.NewRect(geo.Pt(0, 0), geo.Pt(101, 39)), 20)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if m2.Columns() != 6 || m2.Rows() != 2 {
		t.Errorf("expected 6x2 grid, got %dx%d", m2.Columns(), m2.Rows())
	}
}

func TestCellLabelScenario(t *testing.T) {
	m := testModel(t)
	if got := m.CellLabel(geo.Pt(5, 95)); got != "A1" {
		t.Errorf("CellLabel(5,95) = %q, want A1", got)
	}
	if got := m.CellLabel(geo.Pt(95, 5)); got != "E5" {
		t.Errorf("CellLabel(95,5) = %q, want E5", got)
	}
}

func TestCellLabelStability(t *testing.T) {
	m := testModel(t)
	// Two points in the same cell share a label.
	if m.CellLabel(geo.Pt(1, 99)) != m.CellLabel(geo.Pt(19, 81)) {
		t.Error("points in same cell yielded different labels")
	}
	// Points across a column boundary differ by one column step.
	left := m.CellLabel(geo.Pt(19.9, 90))
	right := m.CellLabel(geo.Pt(20.1, 90))
	if left != "A1" || right != "B1" {
		t.Errorf("expected A1/B1 across column boundary, got %s/%s", left, right)
	}
	// Points across a row boundary differ by one row step.
	upper := m.CellLabel(geo.Pt(10, 80.1))
	lower := m.CellLabel(geo.Pt(10, 79.9))
	if upper != "A1" || lower != "A2" {
		t.Errorf("expected A1/A2 across row boundary, got %s/%s", upper, lower)
	}
}

func TestColumnLetterClamps(t *testing.T) {
	if ColumnLetter(0) != 'A' || ColumnLetter(25) != 'Z' {
		t.Error("letter range should span A-Z")
	}
	if ColumnLetter(26) != 'Z' || ColumnLetter(300) != 'Z' {
		t.Error("columns beyond 25 should clamp to Z, not overflow")
	}
	if ColumnLetter(-1) != 'A' {
		t.Error("negative columns should clamp to A")
	}
}

func TestCellIndexClampsOutOfBounds(t *testing.T) {
	m := testModel(t)
	col, row := m.CellIndex(geo.Pt(-50, 150))
	if col != 0 || row != 0 {
		t.Errorf("points above-left should clamp to (0,0), got (%d,%d)", col, row)
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	positions := []Position{
		{Zone: "A", Row: 3, Bay: 12, Tier: 2},
		{Zone: "B", Row: 1, Bay: 1, Tier: 0},
		{Zone: "KZ", Row: 99, Bay: 7, Tier: 5},
	}
	for _, want := range positions {
		s := FormatCoordinate(want)
		got, err := ParseCoordinate(s)
		if err != nil {
			t.Errorf("ParseCoordinate(%q): %v", s, err)
			continue
		}
		want.Coordinate = s
		if got != want {
			t.Errorf("round trip of %q: got %+v, want %+v", s, got, want)
		}
	}
}

func TestFormatZeroPads(t *testing.T) {
	p := Position{Zone: "A", Row: 3, Bay: 12, Tier: 2}
	if got := FormatCoordinate(p); got != "A-03-12-2" {
		t.Errorf("FormatCoordinate = %q, want A-03-12-2", got)
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	p, err := ParseCoordinate("a-03-12-2")
	if err != nil {
		t.Fatalf("ParseCoordinate: %v", err)
	}
	if p.Zone != "A" {
		t.Errorf("zone should be uppercased, got %q", p.Zone)
	}
}

func TestParseMalformed(t *testing.T) {
	bad := []string{
		"",
		"garbage",
		"A-03-12",
		"A-03-12-2-9",
		"1-03-12-2",
		"A-x-12-2",
		"A-03-x-2",
		"A-03-12-x",
		"A-00-12-2",
		"A--12-2",
	}
	for _, s := range bad {
		_, err := ParseCoordinate(s)
		if err == nil {
			t.Errorf("ParseCoordinate(%q) should fail", s)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseCoordinate(%q) returned %T, want *ParseError", s, err)
		}
	}
}

func TestOverlayMatchesModel(t *testing.T) {
	m := testModel(t)
	tr := transform.NewTransformer()
	cs, err := transform.NewCoordinateSystemScale(m.Bounds(), 1)
	if err != nil {
		t.Fatalf("coordinate system: %v", err)
	}
	tr.Set(cs)

	ov, err := GenerateOverlay(tr, m)
	if err != nil {
		t.Fatalf("GenerateOverlay: %v", err)
	}
	if len(ov.Vertical) != m.Columns()+1 {
		t.Errorf("expected %d vertical lines, got %d", m.Columns()+1, len(ov.Vertical))
	}
	if len(ov.Horizontal) != m.Rows()+1 {
		t.Errorf("expected %d horizontal lines, got %d", m.Rows()+1, len(ov.Horizontal))
	}
	if len(ov.Labels) != m.Columns()*m.Rows() {
		t.Errorf("expected %d labels, got %d", m.Columns()*m.Rows(), len(ov.Labels))
	}
	if ov.Labels[0].Text != "A1" {
		t.Errorf("first label should be A1, got %q", ov.Labels[0].Text)
	}
}

func TestOverlayNotReady(t *testing.T) {
	m := testModel(t)
	if _, err := GenerateOverlay(transform.NewTransformer(), m); !errors.Is(err, transform.ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}

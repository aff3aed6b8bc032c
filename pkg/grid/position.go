package grid

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Position is an addressable yard storage slot: zone, row, bay and
// vertical tier, plus an optional sub-slot for twin-twenty splits.
// Coordinate holds the canonical string encoding of the other fields.
type Position struct {
	Zone       string `json:"zone"`
	Row        int    `json:"row"`
	Bay        int    `json:"bay"`
	Tier       int    `json:"tier"`
	SubSlot    int    `json:"sub_slot,omitempty"`
	Coordinate string `json:"coordinate"`
}

// ParseError reports a malformed coordinate string. It is returned as
// a value, never panicked, so per-frame callers stay alive.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("grid: cannot parse coordinate %q: %s", e.Input, e.Reason)
}

// NewPosition builds a position with its canonical coordinate string.
func NewPosition(zone string, row, bay, tier int) (Position, error) {
	p := Position{Zone: strings.ToUpper(zone), Row: row, Bay: bay, Tier: tier}
	if err := p.validate(); err != nil {
		return Position{}, err
	}
	p.Coordinate = FormatCoordinate(p)
	return p, nil
}

func (p Position) validate() error {
	if p.Zone == "" {
		return &ParseError{Input: p.Coordinate, Reason: "empty zone"}
	}
	for _, r := range p.Zone {
		if !unicode.IsLetter(r) {
			return &ParseError{Input: p.Coordinate, Reason: "zone must be letters"}
		}
	}
	if p.Row < 1 {
		return &ParseError{Input: p.Coordinate, Reason: "row must be >= 1"}
	}
	if p.Bay < 1 {
		return &ParseError{Input: p.Coordinate, Reason: "bay must be >= 1"}
	}
	if p.Tier < 0 {
		return &ParseError{Input: p.Coordinate, Reason: "tier must be >= 0"}
	}
	return nil
}

// FormatCoordinate renders the canonical zero-padded form, e.g.
// "A-03-12-2". The sub-slot is not part of the coordinate string.
func FormatCoordinate(p Position) string {
	return fmt.Sprintf("%s-%02d-%02d-%d", strings.ToUpper(p.Zone), p.Row, p.Bay, p.Tier)
}

// ParseCoordinate parses a "Zone-Row-Bay-Tier" coordinate string,
// case-insensitively. Malformed input yields a *ParseError; partial
// strings never panic. ParseCoordinate is a strict inverse of
// FormatCoordinate for all valid positions.
func ParseCoordinate(s string) (Position, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Position{}, &ParseError{Input: s, Reason: "empty string"}
	}
	parts := strings.Split(trimmed, "-")
	if len(parts) != 4 {
		return Position{}, &ParseError{Input: s, Reason: fmt.Sprintf("expected 4 segments, got %d", len(parts))}
	}

	zone := strings.ToUpper(parts[0])
	if zone == "" {
		return Position{}, &ParseError{Input: s, Reason: "empty zone"}
	}
	for _, r := range zone {
		if !unicode.IsLetter(r) {
			return Position{}, &ParseError{Input: s, Reason: "zone must be letters"}
		}
	}

	row, err := parseSegment(s, "row", parts[1])
	if err != nil {
		return Position{}, err
	}
	bay, err := parseSegment(s, "bay", parts[2])
	if err != nil {
		return Position{}, err
	}
	tier, err := parseSegment(s, "tier", parts[3])
	if err != nil {
		return Position{}, err
	}

	p := Position{Zone: zone, Row: row, Bay: bay, Tier: tier}
	if err := p.validate(); err != nil {
		return Position{}, err
	}
	p.Coordinate = FormatCoordinate(p)
	return p, nil
}

func parseSegment(input, name, seg string) (int, error) {
	if seg == "" {
		return 0, &ParseError{Input: input, Reason: "empty " + name}
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, &ParseError{Input: input, Reason: name + " is not a number"}
	}
	if n < 0 {
		return 0, &ParseError{Input: input, Reason: name + " is negative"}
	}
	return n, nil
}

package picking

import "sort"

// Session holds the transient hover and selection state of one yard
// session. Create one per session and pass it explicitly; there is no
// package-level state to bleed between sessions.
type Session struct {
	hovered  *Candidate
	selected map[string]struct{}
}

// NewSession creates an empty picking session.
func NewSession() *Session {
	return &Session{selected: make(map[string]struct{})}
}

// Hovered returns the currently hovered candidate, or nil.
func (s *Session) Hovered() *Candidate {
	return s.hovered
}

// Hover records the latest query result and returns the hover
// transition it caused. Re-hovering the same entity is idempotent:
// both returns are nil and no notification should fire. A transition
// fires only when the hovered category/id changes, including the
// transition to nothing hovered.
func (s *Session) Hover(hit *Candidate) (entered, exited *Candidate) {
	if sameEntity(s.hovered, hit) {
		return nil, nil
	}
	exited = s.hovered
	if hit != nil {
		c := *hit
		s.hovered = &c
		entered = s.hovered
	} else {
		s.hovered = nil
	}
	return entered, exited
}

func sameEntity(a, b *Candidate) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Category == b.Category && a.EntityID == b.EntityID
}

// Click applies selection semantics for a pointer click. Without the
// additive modifier the selection becomes {hit} or is cleared on empty
// space; with the modifier the hit toggles membership and empty space
// leaves the set alone.
func (s *Session) Click(hit *Candidate, additive bool) {
	if hit == nil {
		if !additive {
			s.selected = make(map[string]struct{})
		}
		return
	}
	if !additive {
		s.selected = map[string]struct{}{hit.EntityID: {}}
		return
	}
	if _, ok := s.selected[hit.EntityID]; ok {
		delete(s.selected, hit.EntityID)
	} else {
		s.selected[hit.EntityID] = struct{}{}
	}
}

// IsSelected reports whether the entity id is in the selection set.
func (s *Session) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Selected returns the selection set as a sorted id list.
func (s *Session) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ClearSelection empties the selection set.
func (s *Session) ClearSelection() {
	s.selected = make(map[string]struct{})
}

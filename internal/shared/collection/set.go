package collection

// Set keeps entries in insertion order, unique by key. It is not safe for
// concurrent use; Manager guards it.
type Set[E any] struct {
	key   func(E) string
	items []E
}

// NewSet builds an empty set keyed by key.
func NewSet[E any](key func(E) string) *Set[E] {
	return &Set[E]{key: key}
}

// Index returns the position of id, or -1.
func (s *Set[E]) Index(id string) int {
	for i, item := range s.items {
		if s.key(item) == id {
			return i
		}
	}
	return -1
}

// Get returns the entry stored under id.
func (s *Set[E]) Get(id string) (E, bool) {
	if idx := s.Index(id); idx >= 0 {
		return s.items[idx], true
	}
	var zero E
	return zero, false
}

// Has reports whether id is present.
func (s *Set[E]) Has(id string) bool {
	return s.Index(id) >= 0
}

// Append adds e at the end. It returns false when the key is already present.
func (s *Set[E]) Append(e E) bool {
	if s.Has(s.key(e)) {
		return false
	}
	s.items = append(s.items, e)
	return true
}

// Replace swaps the entry with the same key in place, keeping its position.
func (s *Set[E]) Replace(e E) bool {
	idx := s.Index(s.key(e))
	if idx < 0 {
		return false
	}
	s.items[idx] = e
	return true
}

// Remove deletes id, preserving the order of the remaining entries.
func (s *Set[E]) Remove(id string) bool {
	idx := s.Index(id)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return true
}

// Clear drops every entry.
func (s *Set[E]) Clear() {
	s.items = nil
}

func (s *Set[E]) Len() int { return len(s.items) }

// Items returns a copy of the entries in order. Never nil.
func (s *Set[E]) Items() []E {
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// Reset replaces the contents with items. Entries with an empty key or a key
// already seen are skipped (first occurrence wins); the skip count is returned.
func (s *Set[E]) Reset(items []E) int {
	s.items = make([]E, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	skipped := 0
	for _, item := range items {
		id := s.key(item)
		if id == "" {
			skipped++
			continue
		}
		if _, dup := seen[id]; dup {
			skipped++
			continue
		}
		seen[id] = struct{}{}
		s.items = append(s.items, item)
	}
	return skipped
}

// Package linkstate tracks which external features are already linked.
package linkstate

// Set is a membership set of external feature identifiers, such as OSM node
// ids or registry address ids.
type Set[K comparable] struct {
	members map[K]struct{}
}

// NewSet builds a set from ids.
func NewSet[K comparable](ids ...K) *Set[K] {
	s := &Set[K]{members: make(map[K]struct{}, len(ids))}
	for _, id := range ids {
		s.members[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s *Set[K]) Add(id K) {
	if s.members == nil {
		s.members = make(map[K]struct{})
	}
	s.members[id] = struct{}{}
}

// Contains reports whether id is in the set.
func (s *Set[K]) Contains(id K) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[id]
	return ok
}

// Any reports whether at least one of ids is in the set.
func (s *Set[K]) Any(ids []K) bool {
	for _, id := range ids {
		if s.Contains(id) {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s *Set[K]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

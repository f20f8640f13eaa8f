package auto

import "golang.org/x/exp/slices"

// StateSet is a non-empty set of state ids, used as a constructor
// parameter's target. It is optimized for the overwhelmingly common case of
// a single id (every parameter starts life pointing at one freshly built
// state): that case stores inline with no heap allocation; sets with more
// than one member (built up during biunification, before reduction) fall
// back to a sorted slice.
//
// After Automaton.Reduce, every StateSet in the result is a singleton
// (invariant I5); callers assert this via IsReduced/UnwrapReduced.
type StateSet struct {
	one   StateId
	multi []StateId // nil for the singleton case; sorted, deduplicated, len>=2 otherwise
}

// NewStateSet creates a singleton set.
func NewStateSet(id StateId) StateSet {
	return StateSet{one: id}
}

// Len returns the number of members.
func (s StateSet) Len() int {
	if s.multi == nil {
		return 1
	}
	return len(s.multi)
}

// Ids returns the members in ascending order. The caller must not mutate
// the returned slice.
func (s StateSet) Ids() []StateId {
	if s.multi == nil {
		return []StateId{s.one}
	}
	return s.multi
}

// IsReduced reports whether the set is a singleton.
func (s StateSet) IsReduced() bool {
	return s.multi == nil
}

// UnwrapReduced returns the sole member. Panics if the set has more than
// one member; callers must only use it on a reduced automaton (I5).
func (s StateSet) UnwrapReduced() StateId {
	if s.multi != nil {
		panic("auto: StateSet.UnwrapReduced called on a non-singleton set")
	}
	return s.one
}

// Contains reports whether id is a member.
func (s StateSet) Contains(id StateId) bool {
	if s.multi == nil {
		return s.one == id
	}
	_, found := slices.BinarySearch(s.multi, id)
	return found
}

// Insert adds id to the set in place.
func (s *StateSet) Insert(id StateId) {
	if s.multi == nil {
		if s.one == id {
			return
		}
		if id < s.one {
			s.multi = []StateId{id, s.one}
		} else {
			s.multi = []StateId{s.one, id}
		}
		return
	}
	i, found := slices.BinarySearch(s.multi, id)
	if found {
		return
	}
	s.multi = slices.Insert(s.multi, i, id)
}

// MergeStateSets returns the union of a and b, without mutating either: a
// value copy of a StateSet still shares a's multi backing array, so Insert
// must clone before writing or it would corrupt every StateSet aliasing
// that array (a itself, and any clone of it).
func MergeStateSets(a, b StateSet) StateSet {
	out := a
	if out.multi != nil {
		out.multi = slices.Clone(out.multi)
	}
	for _, id := range b.Ids() {
		out.Insert(id)
	}
	return out
}

// ShiftStateSet rebases every member of s by offset.
func ShiftStateSet(s StateSet, offset uint32) StateSet {
	ids := s.Ids()
	out := NewStateSet(ids[0].Shift(offset))
	for _, id := range ids[1:] {
		out.Insert(id.Shift(offset))
	}
	return out
}

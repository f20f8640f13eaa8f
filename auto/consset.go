package auto

import "github.com/andrewhickman/mlsub"

type consEntry[C Constructor[C]] struct {
	comp Component
	cons C
}

// ConstructorSet maps constructor Component to constructor, at most one
// entry per component (invariant I2). Entries are kept sorted by Component
// so that iteration, intersection and merge-join are deterministic.
type ConstructorSet[C Constructor[C]] struct {
	entries []consEntry[C]
}

func (s *ConstructorSet[C]) search(comp Component) (int, bool) {
	lo, hi := 0, len(s.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		c := s.entries[mid].comp
		switch {
		case c.Less(comp):
			lo = mid + 1
		case comp.Less(c):
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

// Add joins c into any existing entry sharing its component (using pol),
// or inserts it as a new entry.
func (s *ConstructorSet[C]) Add(pol mlsub.Polarity, c C) {
	comp := c.Component()
	i, found := s.search(comp)
	if found {
		s.entries[i].cons = s.entries[i].cons.Join(c, pol)
		return
	}
	s.entries = append(s.entries, consEntry[C]{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = consEntry[C]{comp: comp, cons: c}
}

// Merge folds Add(pol, ·) over every entry of other.
func (s *ConstructorSet[C]) Merge(other *ConstructorSet[C], pol mlsub.Polarity) {
	for _, e := range other.entries {
		s.Add(pol, e.cons)
	}
}

// Get returns the constructor for comp, if any.
func (s *ConstructorSet[C]) Get(comp Component) (C, bool) {
	i, found := s.search(comp)
	if !found {
		var zero C
		return zero, false
	}
	return s.entries[i].cons, true
}

// Len returns the number of distinct components held.
func (s *ConstructorSet[C]) Len() int {
	return len(s.entries)
}

// Iter returns the held constructors in component order. The caller must
// not mutate the returned slice.
func (s *ConstructorSet[C]) Iter() []C {
	out := make([]C, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.cons
	}
	return out
}

// ConsPair is one matched pair produced by Intersection: two constructors
// sharing a component.
type ConsPair[C Constructor[C]] struct {
	Left, Right C
}

// Intersection merge-joins self and other by component key, yielding one
// pair per component present in both.
func (s *ConstructorSet[C]) Intersection(other *ConstructorSet[C]) []ConsPair[C] {
	var out []ConsPair[C]
	i, j := 0, 0
	for i < len(s.entries) && j < len(other.entries) {
		a, b := s.entries[i], other.entries[j]
		switch {
		case a.comp.Less(b.comp):
			i++
		case b.comp.Less(a.comp):
			j++
		default:
			out = append(out, ConsPair[C]{Left: a.cons, Right: b.cons})
			i++
			j++
		}
	}
	return out
}

// Clone returns a shallow copy; the underlying constructors are expected to
// be plain values, so this is also a value copy of each entry.
func (s *ConstructorSet[C]) Clone() *ConstructorSet[C] {
	out := &ConstructorSet[C]{entries: make([]consEntry[C], len(s.entries))}
	copy(out.entries, s.entries)
	return out
}

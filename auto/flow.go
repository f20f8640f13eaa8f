package auto

import (
	"github.com/andrewhickman/mlsub"
	"golang.org/x/exp/slices"
)

// Pair is a symmetric edge between a positive and a negative state,
// representing one type variable's use/definition flow.
type Pair struct {
	Pos StateId
	Neg StateId
}

// PairFromPol builds a Pair from a (state, pol) and its flow partner,
// placing each on the correct side regardless of which one pol names.
func PairFromPol(pol mlsub.Polarity, self, other StateId) Pair {
	if pol == mlsub.Pos {
		return Pair{Pos: self, Neg: other}
	}
	return Pair{Pos: other, Neg: self}
}

// Get returns the member of the pair at polarity pol.
func (p Pair) Get(pol mlsub.Polarity) StateId {
	if pol == mlsub.Pos {
		return p.Pos
	}
	return p.Neg
}

// FlowSet is the set of state ids flowing into one state, always of the
// opposite polarity (invariant I3).
type FlowSet struct {
	ids []StateId
}

// Len returns the number of flow neighbors.
func (f *FlowSet) Len() int {
	return len(f.ids)
}

// Ids returns the flow neighbors in ascending order. The caller must not
// mutate the returned slice.
func (f *FlowSet) Ids() []StateId {
	return f.ids
}

// Has reports whether id is a flow neighbor.
func (f *FlowSet) Has(id StateId) bool {
	_, found := slices.BinarySearch(f.ids, id)
	return found
}

// Add inserts id as a flow neighbor. Reports whether it was newly added.
func (f *FlowSet) Add(id StateId) bool {
	i, found := slices.BinarySearch(f.ids, id)
	if found {
		return false
	}
	f.ids = slices.Insert(f.ids, i, id)
	return true
}

// Remove deletes id as a flow neighbor. Reports whether it was present.
func (f *FlowSet) Remove(id StateId) bool {
	i, found := slices.BinarySearch(f.ids, id)
	if !found {
		return false
	}
	f.ids = slices.Delete(f.ids, i, i+1)
	return true
}

// Clone returns a copy of f.
func (f *FlowSet) Clone() *FlowSet {
	return &FlowSet{ids: slices.Clone(f.ids)}
}

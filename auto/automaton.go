package auto

import "github.com/andrewhickman/mlsub"

// Automaton owns a growing arena of states, the flow relation between them,
// and the biunification cache. States are created monotonically and never
// deleted; flow edges may be added and (briefly, during Admissible) removed.
type Automaton[C Constructor[C]] struct {
	states []State[C]
	cache  map[cacheKey]cacheEntry[C]
}

// New creates an empty automaton.
func New[C Constructor[C]]() *Automaton[C] {
	return &Automaton[C]{cache: make(map[cacheKey]cacheEntry[C])}
}

// Len returns the number of states.
func (a *Automaton[C]) Len() int {
	return len(a.states)
}

// Add pushes a fresh, empty state at polarity pol and returns its id.
func (a *Automaton[C]) Add(pol mlsub.Polarity) StateId {
	a.states = append(a.states, newState[C](pol))
	return StateId(len(a.states) - 1)
}

// Index returns a pointer to the state for id.
func (a *Automaton[C]) Index(id StateId) *State[C] {
	return &a.states[id]
}

// IndexMut2 returns disjoint mutable pointers to the states for i and j.
// Panics if i == j: callers must special-case that (Merge does).
func (a *Automaton[C]) IndexMut2(i, j StateId) (*State[C], *State[C]) {
	if i == j {
		panic("auto: IndexMut2 called with identical ids")
	}
	if i < j {
		lo, hi := a.states[:j], a.states[j:]
		return &lo[i], &hi[0]
	}
	lo, hi := a.states[:i], a.states[i:]
	return &hi[0], &lo[j]
}

// Enumerate calls f for every state id currently in the automaton, in
// ascending order.
func (a *Automaton[C]) Enumerate(f func(StateId, *State[C])) {
	for i := range a.states {
		f(StateId(i), &a.states[i])
	}
}

// Merge merges source into target at polarity pol: a no-op when target ==
// source, otherwise joins constructor sets and unions flow sets. Merge does
// not touch transitions explicitly -- they live inside constructor
// parameters, which ConstructorSet.Merge already handles via Constructor.Join.
func (a *Automaton[C]) Merge(pol mlsub.Polarity, target, source StateId) {
	if target == source {
		return
	}
	t, s := a.IndexMut2(target, source)
	t.Cons.Merge(&s.Cons, pol)
	neighbors := append([]StateId(nil), s.Flow.Ids()...)
	for _, nb := range neighbors {
		a.AddFlow(PairFromPol(pol, target, nb))
	}
}

// AddFlow inserts pair into both endpoints' flow sets.
func (a *Automaton[C]) AddFlow(pair Pair) {
	if pair.Pos == pair.Neg {
		return
	}
	pos, neg := a.IndexMut2(pair.Pos, pair.Neg)
	pos.Flow.Add(pair.Neg)
	neg.Flow.Add(pair.Pos)
}

// RemoveFlow deletes pair from both endpoints' flow sets.
func (a *Automaton[C]) RemoveFlow(pair Pair) {
	if pair.Pos == pair.Neg {
		return
	}
	pos, neg := a.IndexMut2(pair.Pos, pair.Neg)
	pos.Flow.Remove(pair.Neg)
	neg.Flow.Remove(pair.Pos)
}

// HasFlow reports whether pair is currently present.
func (a *Automaton[C]) HasFlow(pair Pair) bool {
	if pair.Pos == pair.Neg {
		return false
	}
	return a.Index(pair.Pos).Flow.Has(pair.Neg)
}

// MergeFlowFrom copies every flow neighbor that source currently has onto
// target's flow set (without touching either state's constructor set), at
// target's own polarity. Used by the polar builder to connect a fresh
// occurrence of a type variable to the variable's shared flow hub.
func (a *Automaton[C]) MergeFlowFrom(target, source StateId) {
	if target == source {
		return
	}
	pol := a.Index(target).Polarity()
	neighbors := append([]StateId(nil), a.Index(source).Flow.Ids()...)
	for _, nb := range neighbors {
		a.AddFlow(PairFromPol(pol, target, nb))
	}
}

// Append concatenates other's states onto a, shifting every interior id in
// other's constructors and flow sets by a's prior length. Returns the range
// of new ids, indexed the same way as other's original ids plus the
// returned range's From.
func (a *Automaton[C]) Append(other *Automaton[C]) StateRange {
	offset := uint32(len(a.states))
	start := StateId(offset)
	for _, st := range other.states {
		shifted := newState[C](st.pol)
		for _, c := range st.Cons.Iter() {
			params := c.Params()
			shiftedParams := make([]Param, len(params))
			for i, p := range params {
				shiftedParams[i] = Param{Label: p.Label, States: ShiftStateSet(p.States, offset)}
			}
			shifted.Cons.Add(st.pol, c.WithParams(shiftedParams))
		}
		for _, nb := range st.Flow.Ids() {
			shifted.Flow.Add(nb.Shift(offset))
		}
		a.states = append(a.states, shifted)
	}
	return StateRange{From: start, To: StateId(len(a.states))}
}

// CloneStates reduces the subgraph reachable from roots into a fresh
// automaton, then appends that reduced copy into a, returning the shifted
// new root ids (same order as roots). Used to instantiate a type scheme:
// the scheme's states are reduced once (removing aliasing back into the
// defining automaton) and then grafted on as fresh states.
func (a *Automaton[C]) CloneStates(nfa *Automaton[C], roots []Root) []StateId {
	reduced := New[C]()
	reducedRoots := reduced.Reduce(nfa, roots)
	shifted := a.Append(reduced)
	out := make([]StateId, len(reducedRoots))
	for i, r := range reducedRoots {
		out[i] = StateId(uint32(r) + uint32(shifted.From))
	}
	return out
}

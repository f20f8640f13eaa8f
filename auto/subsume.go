package auto

import "github.com/andrewhickman/mlsub"

// Subsume decides structural inclusion x ⊆ y between two states of the
// same polarity in an already-reduced automaton (I5): every constructor on
// x must have a component-matching, LessEq-satisfying counterpart on y, and
// recursively so for every shared label's (singleton, post-reduction)
// parameter state. It does not consider flow; see SubsumeWithFlow.
func (a *Automaton[C]) Subsume(x, y StateId) bool {
	return a.subsume(x, y, make(map[[2]StateId]bool))
}

func (a *Automaton[C]) subsume(x, y StateId, seen map[[2]StateId]bool) bool {
	key := [2]StateId{x, y}
	if seen[key] {
		return true
	}
	seen[key] = true

	xs, ys := a.Index(x), a.Index(y)
	for _, cl := range xs.Cons.Iter() {
		cr, ok := ys.Cons.Get(cl.Component())
		if !ok || !cl.LessEq(cr) {
			return false
		}
		rParams := make(map[mlsub.Label]StateSet, len(cr.Params()))
		for _, p := range cr.Params() {
			rParams[p.Label] = p.States
		}
		for _, lp := range cl.Params() {
			rp, ok := rParams[lp.Label]
			if !ok {
				continue
			}
			if !a.subsume(lp.States.UnwrapReduced(), rp.UnwrapReduced(), seen) {
				return false
			}
		}
	}
	return true
}

// SubsumeWithFlow additionally requires every flow neighbor of x to have a
// subsuming counterpart among y's flow neighbors. This resolves the source's
// open question about whether flow participates in subsumption by exposing
// both entry points: callers whose type-scheme semantics track variable
// identity through flow should use this one instead of Subsume.
func (a *Automaton[C]) SubsumeWithFlow(x, y StateId) bool {
	if !a.Subsume(x, y) {
		return false
	}
	for _, xn := range a.Index(x).Flow.Ids() {
		ok := false
		for _, yn := range a.Index(y).Flow.Ids() {
			if a.Subsume(xn, yn) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// snapshot is a deep copy of everything Admissible might mutate while
// hypothesizing a flow edge.
type snapshot[C Constructor[C]] struct {
	states []State[C]
	cache  map[cacheKey]cacheEntry[C]
}

func (a *Automaton[C]) snapshot() snapshot[C] {
	states := make([]State[C], len(a.states))
	for i, s := range a.states {
		states[i] = State[C]{pol: s.pol, Cons: *s.Cons.Clone(), Flow: *s.Flow.Clone()}
	}
	cache := make(map[cacheKey]cacheEntry[C], len(a.cache))
	for k, v := range a.cache {
		cache[k] = v
	}
	return snapshot[C]{states: states, cache: cache}
}

func (a *Automaton[C]) restore(s snapshot[C]) {
	a.states = s.states
	a.cache = s.cache
}

func (a *Automaton[C]) rootConstraints() []Pair {
	var roots []Pair
	for k, e := range a.cache {
		if e.isRoot {
			roots = append(roots, Pair{Pos: k.p, Neg: k.n})
		}
	}
	return roots
}

// Admissible hypothetically adds pair to the flow set, then re-checks every
// root constraint previously submitted to BiunifyAll (the cache's recorded
// roots, including any that failed) from scratch. If the closure still
// discharges every one of
// them, the edge is accepted and kept; otherwise the automaton is rolled
// back to its state before the hypothesis and the edge is rejected.
//
// The source leaves this unimplemented; this is the natural reading of the
// "hypothesize, test, roll back" framing the specification states.
func (a *Automaton[C]) Admissible(pair Pair) bool {
	if a.HasFlow(pair) {
		return true
	}
	before := a.snapshot()
	a.AddFlow(pair)
	roots := a.rootConstraints()
	a.cache = make(map[cacheKey]cacheEntry[C]) // force a full re-derivation, not a cache-hit no-op
	if err := a.BiunifyAll(roots); err != nil {
		a.restore(before)
		return false
	}
	return true
}

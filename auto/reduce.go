package auto

import (
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/andrewhickman/mlsub"
)

// reduceWork is one pending DFA state: the canonicalized set of NFA ids it
// summarizes, not yet expanded into its own constructor set.
type reduceWork struct {
	dfa    StateId
	nfaIds []StateId
	pol    mlsub.Polarity
}

func workComparator(a, b any) int {
	wa, wb := a.(*reduceWork), b.(*reduceWork)
	return utils.UInt32Comparator(uint32(wa.dfa), uint32(wb.dfa))
}

// canonicalKey sorts ids ascending and content-hashes them into a stable
// map key, exactly as the teacher's earley.hash() hashes an (Item, state)
// pair for its backlink map.
func canonicalKey(ids []StateId) (string, []StateId) {
	sorted := make([]StateId, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	sorted = dedupSorted(sorted)
	raw := make([]uint32, len(sorted))
	for i, id := range sorted {
		raw[i] = uint32(id)
	}
	key, err := structhash.Hash(struct{ Ids []uint32 }{Ids: raw}, 1)
	if err != nil { // no reason for this to happen, but the API demands it
		panic(err)
	}
	return key, sorted
}

func dedupSorted(ids []StateId) []StateId {
	if len(ids) < 2 {
		return ids
	}
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// Reduce determinizes the subgraph of nfa reachable from roots, via
// powerset construction over the constructor lattice, writing the result
// into a (normally a freshly created empty automaton). It returns the new
// root ids in a's arena, in the same order as roots. Every StateSet
// parameter of the resulting states is a singleton (I5).
func (a *Automaton[C]) Reduce(nfa *Automaton[C], roots []Root) []StateId {
	tracer().Infof("reduce: %d root(s)", len(roots))

	ns2d := make(map[string]StateId) // canonical NFA-id-set -> DFA id
	d2ns := make(map[StateId][]StateId) // DFA id -> the NFA ids it summarizes
	n2ds := make(map[StateId][]StateId) // NFA id -> every DFA id summarizing it

	worklist := treeset.NewWith(workComparator)

	register := func(ids []StateId, pol mlsub.Polarity) StateId {
		key, sorted := canonicalKey(ids)
		if d, ok := ns2d[key]; ok {
			return d
		}
		d := a.Add(pol)
		ns2d[key] = d
		d2ns[d] = sorted
		for _, n := range sorted {
			n2ds[n] = append(n2ds[n], d)
		}
		worklist.Add(&reduceWork{dfa: d, nfaIds: sorted, pol: pol})
		return d
	}

	rootIds := make([]StateId, len(roots))
	for i, r := range roots {
		rootIds[i] = register([]StateId{r.Id}, r.Pol)
	}

	for worklist.Size() > 0 {
		it := worklist.Values()[0].(*reduceWork)
		worklist.Remove(it)

		var merged ConstructorSet[C]
		for _, n := range it.nfaIds {
			merged.Merge(&nfa.Index(n).Cons, it.pol)
		}

		var rebuilt ConstructorSet[C]
		for _, c := range merged.Iter() {
			params := c.Params()
			newParams := make([]Param, len(params))
			for i, p := range params {
				childPol := it.pol.Mul(p.Label.Polarity())
				b := register(p.States.Ids(), childPol)
				newParams[i] = Param{Label: p.Label, States: NewStateSet(b)}
			}
			rebuilt.Add(it.pol, c.WithParams(newParams))
		}
		a.Index(it.dfa).Cons = rebuilt
	}

	// Rewrite flow: a DFA state's flow neighbors are the union, over every
	// NFA id it summarizes, of that NFA id's original flow neighbors
	// mapped forward through n2ds. Both endpoints of every NFA flow edge
	// appear in some DFA state's summary, so symmetry (I3) survives.
	for d, ns := range d2ns {
		var flow FlowSet
		for _, n := range ns {
			for _, f := range nfa.Index(n).Flow.Ids() {
				for _, df := range n2ds[f] {
					flow.Add(df)
				}
			}
		}
		a.Index(d).Flow = flow
	}

	if Debug {
		a.checkReduced(rootIds)
	}
	tracer().Infof("reduce: produced %d state(s)", len(d2ns))
	return rootIds
}

// checkReduced walks every reachable state from roots and asserts I3/I5.
func (a *Automaton[C]) checkReduced(roots []StateId) {
	seen := make(map[StateId]bool)
	var stack []StateId
	stack = append(stack, roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		st := a.Index(id)
		for _, c := range st.Cons.Iter() {
			for _, p := range c.Params() {
				debugAssert(p.States.IsReduced(), "constructor parameter not reduced at state %v", id)
				stack = append(stack, p.States.Ids()...)
			}
		}
		for _, nb := range st.Flow.Ids() {
			debugAssert(a.Index(nb).Flow.Has(id), "flow asymmetry between %v and %v", id, nb)
			debugAssert(a.Index(nb).Polarity() != st.Polarity(), "flow edge between same-polarity states %v and %v", id, nb)
		}
	}
}

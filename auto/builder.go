package auto

import (
	"github.com/andrewhickman/mlsub"
	"github.com/andrewhickman/mlsub/polar"
)

// Builder lowers polar.Ty terms into states of a single Automaton,
// threading the de Bruijn environment for Recursive/BoundVar and a
// per-surface-variable flow hub for UnboundVar. A Builder may lower several
// terms into the same Automaton across its lifetime (e.g. a positive and a
// negative side of one constraint); Build does not reset anything between
// calls, so repeated uses of the same surface variable continue to share
// one hub.
type Builder[C Constructor[C], V comparable] struct {
	a    *Automaton[C]
	vars map[V]Pair
}

// NewBuilder starts a build session targeting a.
func NewBuilder[C Constructor[C], V comparable](a *Automaton[C]) *Builder[C, V] {
	return &Builder[C, V]{a: a, vars: make(map[V]Pair)}
}

// Build lowers term at polarity pol into a's states and returns the entry
// state id.
func (b *Builder[C, V]) Build(pol mlsub.Polarity, term *polar.Ty[Shape[C, V], V]) StateId {
	at := b.a.Add(pol)
	tracer().Debugf("build %s at %s -> %s", term.Kind(), pol, at)
	b.buildInto(at, pol, term, nil)
	return at
}

// buildInto builds term at polarity pol directly into the already-allocated
// state at, given the de Bruijn environment recs (index 0 = innermost
// enclosing Recursive binder). This is the "eager" path: callers reach it
// only for positions where the target state already exists and a bare
// BoundVar would be a guard violation (the top of a Recursive body, an Add
// operand, and the term's own entry point).
func (b *Builder[C, V]) buildInto(at StateId, pol mlsub.Polarity, term *polar.Ty[Shape[C, V], V], recs []StateId) {
	switch term.Kind() {
	case polar.Zero:
		// at stays empty; its polarity absorbs (bottom at Pos, top at Neg).

	case polar.Add:
		l, r := term.Operands()
		lid := b.buildFresh(pol, l, recs)
		rid := b.buildFresh(pol, r, recs)
		b.a.Merge(pol, at, lid)
		b.a.Merge(pol, at, rid)

	case polar.Recursive:
		newRecs := make([]StateId, 0, len(recs)+1)
		newRecs = append(newRecs, at)
		newRecs = append(newRecs, recs...)
		exprId := b.buildFresh(pol, term.Body(), newRecs)
		b.a.Merge(pol, at, exprId)

	case polar.BoundVar:
		panic("auto: unguarded BoundVar -- a Recursive body or Add operand must not be a bare bound variable")

	case polar.UnboundVar:
		pair := b.varPair(term.Var())
		hub := pair.Get(pol)
		b.a.MergeFlowFrom(at, hub)

	case polar.Constructed:
		shape := term.Constructor()
		cons := shape.Lower(func(lbl mlsub.Label, child *polar.Ty[Shape[C, V], V]) StateId {
			childPol := pol.Mul(lbl.Polarity())
			return b.buildParam(childPol, child, recs)
		})
		b.a.Index(at).Cons.Add(pol, cons)

	default:
		panic("auto: unknown polar.Ty kind")
	}
}

// buildFresh allocates a new state at polarity pol and builds term into it
// eagerly. Used for Add operands and a Recursive's body: both must be
// distinct states from their parent so merging preserves the invariant
// that a child's transitions appear only once.
func (b *Builder[C, V]) buildFresh(pol mlsub.Polarity, term *polar.Ty[Shape[C, V], V], recs []StateId) StateId {
	id := b.a.Add(pol)
	b.buildInto(id, pol, term, recs)
	return id
}

// buildParam resolves a constructor's labeled parameter term. This is the
// "deferred" path: unlike buildInto/buildFresh, a bare BoundVar here is
// valid and resolves directly to the enclosing binder's state, without
// allocating a new one.
func (b *Builder[C, V]) buildParam(pol mlsub.Polarity, term *polar.Ty[Shape[C, V], V], recs []StateId) StateId {
	if term.Kind() == polar.BoundVar {
		k := term.Index()
		if k < 0 || k >= len(recs) {
			panic("auto: BoundVar index out of range of enclosing Recursive binders")
		}
		return recs[k]
	}
	return b.buildFresh(pol, term, recs)
}

// varPair returns the flow hub (neg, pos) for surface variable v, creating
// it (and connecting its two sides with a flow edge) on first use.
func (b *Builder[C, V]) varPair(v V) Pair {
	if p, ok := b.vars[v]; ok {
		return p
	}
	neg := b.a.Add(mlsub.Neg)
	pos := b.a.Add(mlsub.Pos)
	pair := Pair{Pos: pos, Neg: neg}
	b.a.AddFlow(pair)
	b.vars[v] = pair
	return pair
}

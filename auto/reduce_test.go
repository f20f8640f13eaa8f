package auto_test

import (
	"testing"

	"github.com/andrewhickman/mlsub"
	"github.com/andrewhickman/mlsub/auto"
	"github.com/andrewhickman/mlsub/examples/mlty"
)

func TestReduceProducesSingletonParameters(t *testing.T) {
	nfa := auto.New[mlty.Cons]()
	b := auto.NewBuilder[mlty.Cons, mlty.Var](nfa)
	// Build the same Fun twice and union them via Add, so the NFA's Fun
	// parameters point at genuinely non-singleton StateSets pre-reduction.
	term := mlty.AddTy(mlty.FunTy(mlty.BoolTy(), mlty.BoolTy()), mlty.FunTy(mlty.BoolTy(), mlty.BoolTy()))
	root := b.Build(mlsub.Pos, term)

	dfa := auto.New[mlty.Cons]()
	newRoots := dfa.Reduce(nfa, []auto.Root{{Id: root, Pol: mlsub.Pos}})
	if len(newRoots) != 1 {
		t.Fatalf("Reduce: got %d roots, want 1", len(newRoots))
	}
	fun, ok := dfa.Index(newRoots[0]).Cons.Get(mlty.FunComponent)
	if !ok {
		t.Fatalf("Reduce: Fun constructor missing from reduced root")
	}
	for _, p := range fun.Params() {
		if !p.States.IsReduced() {
			t.Fatalf("Reduce: parameter %v not reduced to a singleton", p.Label)
		}
	}
}

func TestReduceIsIdempotent(t *testing.T) {
	nfa := auto.New[mlty.Cons]()
	b := auto.NewBuilder[mlty.Cons, mlty.Var](nfa)
	term := mlty.FunTy(mlty.BoolTy(), mlty.RecordTy(map[string]*mlty.Ty{"x": mlty.BoolTy()}))
	root := b.Build(mlsub.Pos, term)

	once := auto.New[mlty.Cons]()
	onceRoots := once.Reduce(nfa, []auto.Root{{Id: root, Pol: mlsub.Pos}})

	twice := auto.New[mlty.Cons]()
	twiceRoots := twice.Reduce(once, []auto.Root{{Id: onceRoots[0], Pol: mlsub.Pos}})

	if once.Len() != twice.Len() {
		t.Fatalf("Reduce: not idempotent on state count, got %d then %d", once.Len(), twice.Len())
	}
}

func TestReduceIsDeterministicWithSharedVariable(t *testing.T) {
	nfa := auto.New[mlty.Cons]()
	b := auto.NewBuilder[mlty.Cons, mlty.Var](nfa)
	// Fun('a, 'a): the dom and rng parameters both flow through the same
	// surface variable's hub, so after Merge during biunify-free building
	// they still reference two distinct (flow-linked) NFA states; Reduce's
	// subset construction collapses two DFA roots only when they summarize
	// an identical *set* of NFA ids, which a shared variable does not by
	// itself guarantee. This test instead checks the documented, narrower
	// guarantee: each root reduces to exactly one DFA state deterministically
	// across repeated Reduce calls on the same input.
	term := mlty.FunTy(mlty.VarTy("a"), mlty.VarTy("a"))
	root := b.Build(mlsub.Pos, term)

	first := auto.New[mlty.Cons]()
	firstRoots := first.Reduce(nfa, []auto.Root{{Id: root, Pol: mlsub.Pos}})
	second := auto.New[mlty.Cons]()
	secondRoots := second.Reduce(nfa, []auto.Root{{Id: root, Pol: mlsub.Pos}})
	if first.Len() != second.Len() || len(firstRoots) != len(secondRoots) {
		t.Fatalf("Reduce: not deterministic across repeated calls on the same NFA")
	}
}

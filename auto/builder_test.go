package auto_test

import (
	"testing"

	"github.com/andrewhickman/mlsub"
	"github.com/andrewhickman/mlsub/auto"
	"github.com/andrewhickman/mlsub/examples/mlty"
)

func TestBuilderBool(t *testing.T) {
	a := auto.New[mlty.Cons]()
	b := auto.NewBuilder[mlty.Cons, mlty.Var](a)
	id := b.Build(mlsub.Pos, mlty.BoolTy())
	if _, ok := a.Index(id).Cons.Get(mlty.BoolComponent); !ok {
		t.Fatalf("Build(Bool): Bool constructor missing at entry state")
	}
}

func TestBuilderFunDomRngPolarityFlips(t *testing.T) {
	a := auto.New[mlty.Cons]()
	b := auto.NewBuilder[mlty.Cons, mlty.Var](a)
	term := mlty.FunTy(mlty.BoolTy(), mlty.BoolTy())
	id := b.Build(mlsub.Pos, term)

	fun, ok := a.Index(id).Cons.Get(mlty.FunComponent)
	if !ok {
		t.Fatalf("Build(Fun): Fun constructor missing")
	}
	for _, p := range fun.Params() {
		child := p.States.UnwrapReduced()
		wantPol := mlsub.Pos.Mul(p.Label.Polarity())
		if a.Index(child).Polarity() != wantPol {
			t.Fatalf("Build(Fun): label %v child has polarity %v, want %v", p.Label, a.Index(child).Polarity(), wantPol)
		}
	}
}

func TestBuilderUnboundVarSharesHub(t *testing.T) {
	a := auto.New[mlty.Cons]()
	b := auto.NewBuilder[mlty.Cons, mlty.Var](a)
	// Fun('a, 'a): both occurrences of 'a must end up flow-connected through
	// one shared hub.
	v := mlty.VarTy("a")
	term := mlty.FunTy(v, v)
	id := b.Build(mlsub.Pos, term)

	fun, _ := a.Index(id).Cons.Get(mlty.FunComponent)
	var domId, rngId auto.StateId
	for _, p := range fun.Params() {
		if p.Label == mlty.DomLabel {
			domId = p.States.UnwrapReduced()
		} else {
			rngId = p.States.UnwrapReduced()
		}
	}
	if !a.Index(domId).Flow.Has(rngId) {
		t.Fatalf("Build: dom and rng occurrences of the same variable are not flow-connected")
	}
}

func TestBuilderRecursive(t *testing.T) {
	a := auto.New[mlty.Cons]()
	b := auto.NewBuilder[mlty.Cons, mlty.Var](a)
	// rec x. Fun(x, Bool): the bound occurrence must resolve to the
	// Recursive node's own entry state, not allocate a fresh one.
	term := mlty.RecTy(mlty.FunTy(mlty.BoundTy(0), mlty.BoolTy()))
	id := b.Build(mlsub.Pos, term)

	fun, ok := a.Index(id).Cons.Get(mlty.FunComponent)
	if !ok {
		t.Fatalf("Build(rec): Fun constructor missing at entry state")
	}
	for _, p := range fun.Params() {
		if p.Label == mlty.DomLabel && p.States.UnwrapReduced() != id {
			t.Fatalf("Build(rec): bound occurrence resolved to %v, want entry state %v", p.States.UnwrapReduced(), id)
		}
	}
}

func TestBuilderBareBoundVarPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Build: expected a guard-violation panic for a bare BoundVar")
		}
	}()
	a := auto.New[mlty.Cons]()
	b := auto.NewBuilder[mlty.Cons, mlty.Var](a)
	b.Build(mlsub.Pos, mlty.BoundTy(0))
}

func TestBuilderAddMergesBothOperands(t *testing.T) {
	a := auto.New[mlty.Cons]()
	b := auto.NewBuilder[mlty.Cons, mlty.Var](a)
	term := mlty.AddTy(mlty.BoolTy(), mlty.FunTy(mlty.BoolTy(), mlty.BoolTy()))
	id := b.Build(mlsub.Pos, term)
	if a.Index(id).Cons.Len() != 2 {
		t.Fatalf("Build(Add): got %d components at entry state, want 2 (Bool and Fun)", a.Index(id).Cons.Len())
	}
}

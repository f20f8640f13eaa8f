package auto

import (
	"github.com/andrewhickman/mlsub"
	"github.com/andrewhickman/mlsub/polar"
)

// Param is one labeled parameter of a resident (automaton-side) constructor:
// a label and the state-set it currently points at. After reduction every
// Param.States is a singleton (invariant I5).
type Param struct {
	Label  mlsub.Label
	States StateSet
}

// Constructor is the host-supplied lattice element a state's
// ConstructorSet holds: Bool, Fun(dom, rng), Record{f1..fn}, and so on. C is
// the resident form, whose parameters are StateSet; see Shape for the
// pre-automaton form the polar builder consumes.
//
// Implementations should be small, copyable values (structs holding
// StateSets and plain host data), since ConstructorSet clones them freely
// during merge and reduction.
type Constructor[C any] interface {
	// Component returns this constructor's kind key.
	Component() Component

	// Join merges other (same Component) into a fresh value at polarity
	// pol: positive join intersects/unions per the host's lattice (e.g.
	// Record-positive-join intersects field sets), negative meet is the
	// dual. Function-like constructors union their parameter state sets in
	// place rather than picking one side.
	Join(other C, pol mlsub.Polarity) C

	// Params enumerates this constructor's labeled parameters in a stable,
	// label-sorted order.
	Params() []Param

	// WithParams rebuilds a constructor of the same kind and host payload,
	// but with every parameter's state-set replaced by the corresponding
	// entry of params (same order as Params returned them). Used by reduce
	// to rewrite a constructor's parameters to the singleton DFA states.
	WithParams(params []Param) C

	// LessEq is the constructor lattice's partial order. Implementations
	// must return false whenever other has a different Component; this
	// makes a full state1.cons × state2.cons cross-product check (as the
	// biunifier performs) correctly reject shape mismatches.
	LessEq(other C) bool
}

// Shape is the pre-automaton form of a constructor: the same lattice
// element as Constructor, but with every labeled parameter still an unbuilt
// polar.Ty term rather than a StateSet. A front-end builds Shape values
// into polar.Ty[Shape[C, V], V] terms; the polar builder lowers each
// Constructed node by calling Lower, which in turn lowers every parameter
// term into a state id at the polarity the label demands.
//
// This mirrors the source's Build<C, V> trait: the host supplies one
// implementation per surface-syntax constructor family, bridging the
// builder's generic term walk to the concrete resident Constructor C.
type Shape[C any, V comparable] interface {
	// Lower rebuilds the shape into a resident constructor C. build must be
	// called once per labeled parameter (in Params order for the
	// corresponding resident type), returning the StateId the child term
	// was lowered into; Lower passes each child term to build together with
	// its label, and build derives the child's polarity from that label, so
	// Lower itself never deals with polarity.
	Lower(build func(lbl mlsub.Label, child *polar.Ty[Shape[C, V], V]) StateId) C
}

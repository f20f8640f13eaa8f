/*
Package mlsub is a core type-inference engine for an ML-style language with
structural subtyping, following Dolan's Algebraic Subtyping ("MLsub").
Polymorphic types are represented as finite-state automata over a
polarity-annotated constructor lattice. Package structure is as follows:

■ polar: Package polar defines the polar-term AST that a front-end builds and
hands to the automaton's builder.

■ auto: Package auto owns the automaton: states, constructor sets, flow sets,
the polar builder, the NFA→DFA reducer, the biunifier and subsumption checks.

■ examples/mlty: Package mlty is a worked constructor lattice (Bool, Fun,
Record) used by the core's own tests and by cmd/mlsubrepl.

■ cmd/mlsubrepl: a REPL for experimenting with polar types against the core.

The base package contains types shared across every other package: the
polarity sign algebra and the Label contract a host's type-parameter tags
must satisfy.
*/
package mlsub

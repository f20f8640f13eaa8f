package auto

import (
	"fmt"

	"github.com/andrewhickman/mlsub"
)

// cacheKey is a pending or discharged biunification constraint t+(p) <= t-(n).
type cacheKey struct {
	p, n StateId
}

// cacheEntry records why (p, n) was pushed: either it was one of the
// original constraints (Root), or it was required by a parameter descent
// out of an enclosing constraint (RequiredBy). The cache doubles as the
// parent-pointer chain used to reconstruct an Error's trace.
type cacheEntry[C Constructor[C]] struct {
	isRoot bool
	parent cacheKey
	label  mlsub.Label
	posCon C
	negCon C
}

// TraceStep is one label descent on the path from the root constraint that
// failed down to the leaf shape conflict.
type TraceStep[C Constructor[C]] struct {
	Label  mlsub.Label
	PosCon C
	NegCon C
}

// Error is returned by Biunify/BiunifyAll when a shape check fails: some
// constructor flowing into a positive state is not <= some constructor
// flowing into the corresponding negative state.
type Error[C Constructor[C]] struct {
	Pos, Neg   StateId
	ConPos     C
	ConNeg     C
	Stack      []TraceStep[C]
}

func (e *Error[C]) Error() string {
	return fmt.Sprintf("mlsub: %v does not flow into %v", e.ConPos, e.ConNeg)
}

// Biunify solves the single constraint t+(p) <= t-(n).
func (a *Automaton[C]) Biunify(p, n StateId) error {
	return a.BiunifyAll([]Pair{{Pos: p, Neg: n}})
}

// BiunifyAll solves a batch of constraints t+(p) <= t-(n), mutating the
// automaton in place by extending flow and joining/meeting constructors.
// Either every constraint is discharged and nil is returned, or the first
// encountered shape conflict is returned as an *Error with its derivation
// trace.
func (a *Automaton[C]) BiunifyAll(constraints []Pair) error {
	var stack []cacheKey
	for _, c := range constraints {
		key := cacheKey{p: c.Pos, n: c.Neg}
		if _, exists := a.cache[key]; !exists {
			a.cache[key] = cacheEntry[C]{isRoot: true}
			stack = append(stack, key)
		}
	}

	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p, n := key.p, key.n

		debugAssert(a.Index(p).Polarity() == mlsub.Pos, "biunify: %v is not a positive state", p)
		debugAssert(a.Index(n).Polarity() == mlsub.Neg, "biunify: %v is not a negative state", n)

		pCons := a.Index(p).Cons.Iter()
		nCons := a.Index(n).Cons.Iter()
		for _, cp := range pCons {
			for _, cn := range nCons {
				if !cp.LessEq(cn) {
					tracer().Errorf("biunify: shape conflict %v <= %v", cp, cn)
					return a.buildError(key, cp, cn)
				}
			}
		}

		for _, q := range append([]StateId(nil), a.Index(n).Flow.Ids()...) {
			a.Merge(mlsub.Pos, q, p)
		}
		for _, q := range append([]StateId(nil), a.Index(p).Flow.Ids()...) {
			a.Merge(mlsub.Neg, q, n)
		}

		pConsAfter := a.Index(p).Cons.Clone()
		nConsAfter := a.Index(n).Cons.Clone()
		for _, pair := range pConsAfter.Intersection(nConsAfter) {
			cp, cn := pair.Left, pair.Right
			nParams := make(map[mlsub.Label]StateSet, len(cn.Params()))
			for _, param := range cn.Params() {
				nParams[param.Label] = param.States
			}
			for _, pparam := range cp.Params() {
				nStates, ok := nParams[pparam.Label]
				if !ok {
					continue
				}
				ps, ns := mlsub.Flip(pparam.Label.Polarity(), pparam.States, nStates)
				for _, jp := range ps.Ids() {
					for _, jn := range ns.Ids() {
						childKey := cacheKey{p: jp, n: jn}
						if _, exists := a.cache[childKey]; exists {
							continue
						}
						a.cache[childKey] = cacheEntry[C]{
							parent: key,
							label:  pparam.Label,
							posCon: cp,
							negCon: cn,
						}
						stack = append(stack, childKey)
					}
				}
			}
		}
	}
	return nil
}

// buildError walks cache parent pointers from leaf back to root, producing
// the derivation trace in root-to-leaf order.
func (a *Automaton[C]) buildError(leaf cacheKey, cp, cn C) *Error[C] {
	var steps []TraceStep[C]
	key := leaf
	for {
		entry, ok := a.cache[key]
		if !ok || entry.isRoot {
			break
		}
		steps = append(steps, TraceStep[C]{Label: entry.label, PosCon: entry.posCon, NegCon: entry.negCon})
		key = entry.parent
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return &Error[C]{Pos: leaf.p, Neg: leaf.n, ConPos: cp, ConNeg: cn, Stack: steps}
}

// Package reference is a slow, structural biunification oracle operating
// directly on polar terms, with no automaton involved at all. It exists
// only as a second, independently-derived implementation that property-
// style tests can check the automaton-based mlsub/auto package against:
// ported from original_source/src/biunify/reference.rs, the original
// crate's own test oracle for exactly this purpose.
package reference

import (
	"github.com/andrewhickman/mlsub"
	"github.com/andrewhickman/mlsub/examples/mlty"
	"github.com/andrewhickman/mlsub/internal/surface"
	"github.com/andrewhickman/mlsub/polar"
)

// Constraint is a pending t+(Lhs) <= t-(Rhs) obligation.
type Constraint struct {
	Lhs, Rhs *mlty.Ty
}

func (c Constraint) key() string {
	return surface.PrintTerm(c.Lhs) + " <: " + surface.PrintTerm(c.Rhs)
}

func (c Constraint) bisubst(sub Bisubst) Constraint {
	return Constraint{Lhs: sub.Apply(c.Lhs, mlsub.Pos), Rhs: sub.Apply(c.Rhs, mlsub.Neg)}
}

func asConstructed(t *mlty.Ty) *mlty.Constructed {
	c, _ := t.Constructor().(*mlty.Constructed)
	return c
}

// subi decomposes one non-atomic constraint into zero or more simpler
// constraints, or reports that the shapes can never agree.
func subi(con Constraint) ([]Constraint, bool) {
	lk, rk := con.Lhs.Kind(), con.Rhs.Kind()
	switch {
	case lk == polar.Constructed && rk == polar.Constructed:
		lc, rc := asConstructed(con.Lhs), asConstructed(con.Rhs)
		if lc.ShapeKind() != rc.ShapeKind() {
			return nil, false
		}
		switch lc.ShapeKind() {
		case mlty.BoolShape:
			return nil, true
		case mlty.FunShape:
			return []Constraint{
				{Lhs: rc.Dom(), Rhs: lc.Dom()},
				{Lhs: lc.Rng(), Rhs: rc.Rng()},
			}, true
		default: // RecordShape
			lf, rf := lc.Fields(), rc.Fields()
			for name := range rf {
				if _, ok := lf[name]; !ok {
					return nil, false
				}
			}
			var out []Constraint
			for name, rt := range rf {
				out = append(out, Constraint{Lhs: lf[name], Rhs: rt})
			}
			return out, true
		}
	case lk == polar.Recursive:
		return []Constraint{{Lhs: subst(con.Lhs.Body(), 0, con.Lhs), Rhs: con.Rhs}}, true
	case rk == polar.Recursive:
		return []Constraint{{Lhs: con.Lhs, Rhs: subst(con.Rhs.Body(), 0, con.Rhs)}}, true
	case lk == polar.Add:
		a, b := con.Lhs.Operands()
		return []Constraint{{Lhs: a, Rhs: con.Rhs}, {Lhs: b, Rhs: con.Rhs}}, true
	case rk == polar.Add:
		a, b := con.Rhs.Operands()
		return []Constraint{{Lhs: con.Lhs, Rhs: a}, {Lhs: con.Lhs, Rhs: b}}, true
	case lk == polar.Zero:
		return nil, true
	case rk == polar.Zero:
		return nil, true
	default:
		return nil, false
	}
}

// atomic handles the base case: one side a bare surface variable. It
// returns a bisubstitution that, going forward, stands in for that
// variable with the fixpoint of everything it was ever constrained against.
func atomic(con Constraint) (Bisubst, bool) {
	lhsVar := con.Lhs.Kind() == polar.UnboundVar
	rhsVar := con.Rhs.Kind() == polar.UnboundVar
	rhsOk := con.Rhs.Kind() == polar.Constructed || rhsVar
	lhsOk := con.Lhs.Kind() == polar.Constructed

	switch {
	case lhsVar && rhsOk:
		v := con.Lhs.Var()
		body := bisubstTy(con.Rhs, mlsub.Neg, varKey{mlsub.Neg, v}, mlty.BoundTy(0))
		return unitBisubst(v, mlsub.Neg, Fixpoint(mlty.AddTy(mlty.VarTy(v), body))), true
	case lhsOk && rhsVar:
		v := con.Rhs.Var()
		body := bisubstTy(con.Lhs, mlsub.Pos, varKey{mlsub.Pos, v}, mlty.BoundTy(0))
		return unitBisubst(v, mlsub.Pos, Fixpoint(mlty.AddTy(mlty.VarTy(v), body))), true
	default:
		return Bisubst{}, false
	}
}

func subst(ty *mlty.Ty, v int, sub *mlty.Ty) *mlty.Ty {
	switch ty.Kind() {
	case polar.Add:
		l, r := ty.Operands()
		return mlty.AddTy(subst(l, v, sub), subst(r, v, sub))
	case polar.Recursive:
		return mlty.RecTy(subst(ty.Body(), v+1, sub))
	case polar.BoundVar:
		if ty.Index() == v {
			return sub
		}
		return ty
	case polar.Constructed:
		c := asConstructed(ty)
		switch c.ShapeKind() {
		case mlty.FunShape:
			return mlty.FunTy(subst(c.Dom(), v, sub), subst(c.Rng(), v, sub))
		case mlty.RecordShape:
			fields := make(map[string]*mlty.Ty, len(c.Fields()))
			for name, ft := range c.Fields() {
				fields[name] = subst(ft, v, sub)
			}
			return mlty.RecordTy(fields)
		default:
			return ty
		}
	default:
		return ty
	}
}

// Biunify solves a single constraint against the reference algorithm.
func Biunify(lhs, rhs *mlty.Ty) (Bisubst, bool) {
	return BiunifyAll([]Constraint{{Lhs: lhs, Rhs: rhs}})
}

// BiunifyAll is the worklist closure: pop a constraint, discharge it via
// atomic or split it via subi, until the stack is empty or a shape
// conflict is found.
func BiunifyAll(cons []Constraint) (Bisubst, bool) {
	var hyp []Constraint
	seen := map[string]bool{}
	var result Bisubst
	stack := append([]Constraint(nil), cons...)

	for len(stack) > 0 {
		con := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[con.key()] {
			continue
		}
		if sub, ok := atomic(con); ok {
			hyp = append(hyp, con)
			for i, c := range stack {
				stack[i] = c.bisubst(sub)
			}
			for i, c := range hyp {
				hyp[i] = c.bisubst(sub)
			}
			seen = make(map[string]bool, len(hyp))
			for _, c := range hyp {
				seen[c.key()] = true
			}
			result.MulAssign(sub)
			continue
		}
		if rest, ok := subi(con); ok {
			hyp = append(hyp, con)
			seen[con.key()] = true
			stack = append(stack, rest...)
			continue
		}
		return Bisubst{}, false
	}
	return result, true
}

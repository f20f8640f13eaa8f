package reference

import (
	"github.com/andrewhickman/mlsub"
	"github.com/andrewhickman/mlsub/examples/mlty"
	"github.com/andrewhickman/mlsub/polar"
)

// varKey is a polarity-qualified surface variable: the same name can be
// substituted for independently on its positive and negative occurrences.
type varKey struct {
	pol mlsub.Polarity
	v   mlty.Var
}

type bisubstEntry struct {
	key varKey
	ty  *mlty.Ty
}

// Bisubst is a composable bisubstitution: a sequence of (polarized
// variable -> term) replacements, applied left to right. Only atomic's
// base case ever produces one; the production biunifier never substitutes,
// it extends flow instead (see mlsub/auto's UnboundVar handling).
type Bisubst struct {
	subs []bisubstEntry
}

func unitBisubst(v mlty.Var, pol mlsub.Polarity, ty *mlty.Ty) Bisubst {
	return Bisubst{subs: []bisubstEntry{{key: varKey{pol, v}, ty: ty}}}
}

// Apply substitutes every entry into ty in turn, interpreting ty at pol.
func (b Bisubst) Apply(ty *mlty.Ty, pol mlsub.Polarity) *mlty.Ty {
	for _, e := range b.subs {
		ty = bisubstTy(ty, pol, e.key, e.ty)
	}
	return ty
}

// MulAssign composes other after b, in place.
func (b *Bisubst) MulAssign(other Bisubst) {
	b.subs = append(b.subs, other.subs...)
}

// bisubstTy replaces every occurrence of target (a variable at a specific
// polarity) inside ty with sub, flipping polarity through Fun's
// contravariant domain and shifting sub's de Bruijn indices across every
// Recursive binder it is carried under.
func bisubstTy(ty *mlty.Ty, pol mlsub.Polarity, target varKey, sub *mlty.Ty) *mlty.Ty {
	switch ty.Kind() {
	case polar.Add:
		l, r := ty.Operands()
		return mlty.AddTy(bisubstTy(l, pol, target, sub), bisubstTy(r, pol, target, sub))
	case polar.Recursive:
		return mlty.RecTy(bisubstTy(ty.Body(), pol, target, shift(sub, 1)))
	case polar.UnboundVar:
		if pol == target.pol && ty.Var() == target.v {
			return sub
		}
		return ty
	case polar.Constructed:
		c := asConstructed(ty)
		switch c.ShapeKind() {
		case mlty.FunShape:
			return mlty.FunTy(bisubstTy(c.Dom(), pol.Neg(), target, sub), bisubstTy(c.Rng(), pol, target, sub))
		case mlty.RecordShape:
			fields := make(map[string]*mlty.Ty, len(c.Fields()))
			for name, ft := range c.Fields() {
				fields[name] = bisubstTy(ft, pol, target, sub)
			}
			return mlty.RecordTy(fields)
		default:
			return ty
		}
	default:
		return ty
	}
}

func shift(ty *mlty.Ty, n int) *mlty.Ty {
	switch ty.Kind() {
	case polar.BoundVar:
		return mlty.BoundTy(ty.Index() + n)
	case polar.Add:
		l, r := ty.Operands()
		return mlty.AddTy(shift(l, n), shift(r, n))
	case polar.Recursive:
		return mlty.RecTy(shift(ty.Body(), n))
	case polar.Constructed:
		c := asConstructed(ty)
		switch c.ShapeKind() {
		case mlty.FunShape:
			return mlty.FunTy(shift(c.Dom(), n), shift(c.Rng(), n))
		case mlty.RecordShape:
			fields := make(map[string]*mlty.Ty, len(c.Fields()))
			for name, ft := range c.Fields() {
				fields[name] = shift(ft, n)
			}
			return mlty.RecordTy(fields)
		default:
			return ty
		}
	default:
		return ty
	}
}

// split partitions ty's Add-tree into the part that is exactly the bound
// variable var (atZero) and everything else (rest); used by Fixpoint to
// strip a bare self-reference out of a recursive bound before re-wrapping
// the remainder as its own fixpoint.
func split(ty *mlty.Ty, v int) (atZero, rest *mlty.Ty) {
	switch ty.Kind() {
	case polar.BoundVar:
		if ty.Index() == v {
			return ty, mlty.ZeroTy()
		}
		return mlty.ZeroTy(), ty
	case polar.Zero:
		return mlty.ZeroTy(), mlty.ZeroTy()
	case polar.Add:
		l, r := ty.Operands()
		la, lg := split(l, v)
		ra, rg := split(r, v)
		return mlty.AddTy(la, ra), mlty.AddTy(lg, rg)
	case polar.Recursive:
		ta, tg := split(ty.Body(), v+1)
		return ta, subst(tg, v+1, ty)
	default: // UnboundVar, Constructed
		return mlty.ZeroTy(), ty
	}
}

// Fixpoint builds rec x. ty[x/self], the recursive type whose body is ty
// with its own bare self-reference folded into a fresh binder -- used by
// atomic to turn "v <: everything v was ever constrained against" into a
// single closed substitute for v.
func Fixpoint(ty *mlty.Ty) *mlty.Ty {
	_, rest := split(ty, 0)
	return mlty.RecTy(rest)
}

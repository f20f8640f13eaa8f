package surface

import (
	"fmt"

	"github.com/andrewhickman/mlsub/examples/mlty"
	"github.com/andrewhickman/mlsub/polar"
)

// Surface grammar:
//
//	Ty      := Primary ("+" Primary)*
//	Primary := "Zero" | "Bool"
//	         | "Fun" "(" Ty "," Ty ")"
//	         | "Record" "{" (ident ":" Ty ("," ident ":" Ty)* ","?)? "}"
//	         | "rec" ident "." Ty
//	         | "'" ident
//	         | ident
//	         | "(" Ty ")"
//
// "rec x. ..." binds x by name within its body; every bare ident that
// matches an enclosing rec's name resolves to the corresponding de Bruijn
// BoundVar. A bare ident that matches no enclosing binder is a parse error
// -- surface type variables must be written quoted ('a), matching the
// builder's guard that a bare BoundVar outside a Constructed's parameter
// position is a precondition violation, not a value the front-end should
// ever construct by accident.
type parser struct {
	toks     []*Token
	pos      int
	recNames []string // innermost binder first
}

// ParseTy parses a single surface type term.
func ParseTy(input string) (*mlty.Ty, error) {
	toks, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	ty, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokEOF {
		return nil, fmt.Errorf("mlsubrepl: unexpected trailing input %q", p.peek().Text)
	}
	return ty, nil
}

func (p *parser) peek() *Token {
	return p.toks[p.pos]
}

func (p *parser) advance() *Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k TokKind, what string) (*Token, error) {
	if p.peek().Kind != k {
		return nil, fmt.Errorf("mlsubrepl: expected %s, found %q", what, p.peek().Text)
	}
	return p.advance(), nil
}

func (p *parser) parseAdd() (*mlty.Ty, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokPlus {
		p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = mlty.AddTy(left, right)
	}
	return left, nil
}

func (p *parser) parsePrimary() (*mlty.Ty, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokZero:
		p.advance()
		return mlty.ZeroTy(), nil
	case TokBool:
		p.advance()
		return mlty.BoolTy(), nil
	case TokFun:
		p.advance()
		if _, err := p.expect(TokLParen, "'('"); err != nil {
			return nil, err
		}
		dom, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokComma, "','"); err != nil {
			return nil, err
		}
		rng, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		return mlty.FunTy(dom, rng), nil
	case TokRecord:
		p.advance()
		if _, err := p.expect(TokLBrace, "'{'"); err != nil {
			return nil, err
		}
		fields := map[string]*mlty.Ty{}
		for p.peek().Kind != TokRBrace {
			name, err := p.expect(TokIdent, "field name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokColon, "':'"); err != nil {
				return nil, err
			}
			ty, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			fields[name.Text] = ty
			if p.peek().Kind == TokComma {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(TokRBrace, "'}'"); err != nil {
			return nil, err
		}
		return mlty.RecordTy(fields), nil
	case TokRec:
		p.advance()
		name, err := p.expect(TokIdent, "binder name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokDot, "'.'"); err != nil {
			return nil, err
		}
		p.recNames = append([]string{name.Text}, p.recNames...)
		body, err := p.parseAdd()
		p.recNames = p.recNames[1:]
		if err != nil {
			return nil, err
		}
		rec := mlty.RecTy(body)
		if err := checkGuarded(rec); err != nil {
			return nil, err
		}
		return rec, nil
	case TokVar:
		p.advance()
		return mlty.VarTy(mlty.Var(tok.Text[1:])), nil
	case TokIdent:
		p.advance()
		for i, name := range p.recNames {
			if name == tok.Text {
				return mlty.BoundTy(i), nil
			}
		}
		return nil, fmt.Errorf("mlsubrepl: %q is not bound by an enclosing rec (surface variables must be quoted, e.g. '%s)", tok.Text, tok.Text)
	case TokLParen:
		p.advance()
		ty, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		return ty, nil
	default:
		return nil, fmt.Errorf("mlsubrepl: unexpected token %q", tok.Text)
	}
}

// checkGuarded rejects a rec whose body reaches a bare bound variable
// anywhere auto.Builder's eager path (buildInto/buildFresh) would see it
// directly -- a Recursive body, an Add operand, or a Constructed parameter
// that isn't itself the literal bound variable. auto.Builder panics on such
// terms by design (an unguarded BoundVar is a precondition violation, not a
// value to recover from); this is the front-end's half of that contract, so
// "rec x. x" is a parse error here instead of a crash at build time.
func checkGuarded(t *mlty.Ty) error {
	switch t.Kind() {
	case polar.Zero, polar.UnboundVar:
		return nil
	case polar.Add:
		l, r := t.Operands()
		if err := checkGuarded(l); err != nil {
			return err
		}
		return checkGuarded(r)
	case polar.Recursive:
		return checkGuarded(t.Body())
	case polar.BoundVar:
		return fmt.Errorf("mlsubrepl: rec body refers directly to its own binder; use it only as a Fun or Record parameter (e.g. not \"rec x. x\")")
	case polar.Constructed:
		return checkGuardedConstructor(t)
	default:
		return nil
	}
}

// checkGuardedParam checks a Constructed's immediate parameter, which
// auto.Builder resolves via buildParam: a literal bound variable there is
// safe (it resolves directly to the enclosing rec's state), but anything
// else -- including a bound variable wrapped in Add or another rec -- falls
// through to the same eager path checkGuarded guards.
func checkGuardedParam(t *mlty.Ty) error {
	if t.Kind() == polar.BoundVar {
		return nil
	}
	return checkGuarded(t)
}

func checkGuardedConstructor(t *mlty.Ty) error {
	c, ok := t.Constructor().(*mlty.Constructed)
	if !ok {
		return nil
	}
	switch c.ShapeKind() {
	case mlty.FunShape:
		if err := checkGuardedParam(c.Dom()); err != nil {
			return err
		}
		return checkGuardedParam(c.Rng())
	case mlty.RecordShape:
		for _, field := range c.Fields() {
			if err := checkGuardedParam(field); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

package surface

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/andrewhickman/mlsub"
	"github.com/andrewhickman/mlsub/auto"
	"github.com/andrewhickman/mlsub/examples/mlty"
)

// Session holds one automaton shared across a run of REPL input: every
// built term lives in the same arena so that "a <: b" lines can reuse
// states across commands and Reduce/Admissible act on everything built
// so far, not just the last line.
type Session struct {
	automaton *auto.Automaton[mlty.Cons]
	builder   *auto.Builder[mlty.Cons, mlty.Var]
	roots     []auto.Pair
}

// NewSession creates an empty automaton and its builder.
func NewSession() *Session {
	a := auto.New[mlty.Cons]()
	return &Session{
		automaton: a,
		builder:   auto.NewBuilder[mlty.Cons, mlty.Var](a),
	}
}

// Eval interprets one line of REPL input. quit reports whether the REPL
// loop should stop (the ":quit"/":q" command).
func (s *Session) Eval(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	switch {
	case line == ":quit" || line == ":q":
		return true, nil
	case line == ":reduce":
		s.reduce()
		return false, nil
	case line == ":show":
		s.show()
		return false, nil
	case strings.HasPrefix(line, "<:"):
		return false, fmt.Errorf("mlsubrepl: missing left-hand side before '<:'")
	default:
		return false, s.evalConstraint(line)
	}
}

// evalConstraint parses "Lhs <: Rhs", builds Lhs positively and Rhs
// negatively in the shared automaton, and biunifies them, printing "ok" on
// success and returning the biunification error otherwise.
func (s *Session) evalConstraint(line string) error {
	lhs, rhs, ok := strings.Cut(line, "<:")
	if !ok {
		return fmt.Errorf("mlsubrepl: expected \"Type <: Type\", \":reduce\" or \":show\"")
	}
	lty, err := ParseTy(lhs)
	if err != nil {
		return err
	}
	rty, err := ParseTy(rhs)
	if err != nil {
		return err
	}
	p := s.builder.Build(mlsub.Pos, lty)
	n := s.builder.Build(mlsub.Neg, rty)
	s.roots = append(s.roots, auto.Pair{Pos: p, Neg: n})
	if err := s.automaton.Biunify(p, n); err != nil {
		return err
	}
	pterm.Success.Printfln("ok: %s <: %s", PrintTerm(lty), PrintTerm(rty))
	return nil
}

func (s *Session) reduce() {
	roots := make([]auto.Root, 0, len(s.roots)*2)
	for _, pair := range s.roots {
		roots = append(roots, auto.Root{Id: pair.Pos, Pol: mlsub.Pos}, auto.Root{Id: pair.Neg, Pol: mlsub.Neg})
	}
	reduced := auto.New[mlty.Cons]()
	newIds := reduced.Reduce(s.automaton, roots)
	newRoots := make([]auto.Pair, len(s.roots))
	for i := range s.roots {
		newRoots[i] = auto.Pair{Pos: newIds[2*i], Neg: newIds[2*i+1]}
	}
	s.automaton = reduced
	s.builder = auto.NewBuilder[mlty.Cons, mlty.Var](reduced)
	s.roots = newRoots
	pterm.Info.Printfln("reduced to %d states", s.automaton.Len())
}

func (s *Session) show() {
	for i := 0; i < s.automaton.Len(); i++ {
		pterm.Println(PrintState(s.automaton, auto.StateId(i)))
	}
}

// Run starts an interactive read-eval-print loop over stdin.
func Run() error {
	pterm.Info.Prefix = pterm.Prefix{Text: "mlsub", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: "error", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}

	rl, err := readline.New("mlsub> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("type checks as \"T <: T\", or :reduce / :show / :quit")
	sess := NewSession()
	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		quit, err := sess.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			return nil
		}
	}
}

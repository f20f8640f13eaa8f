package surface

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrewhickman/mlsub"
	"github.com/andrewhickman/mlsub/auto"
	"github.com/andrewhickman/mlsub/examples/mlty"
	"github.com/andrewhickman/mlsub/polar"
)

// PrintTerm renders a surface term back to the concrete syntax ParseTy
// accepts, naming each Recursive binder by its nesting depth (mu0 for the
// outermost binder, mu1 for the next one in, and so on) -- PrintTerm never
// sees the original source name, only the de Bruijn structure built from it.
func PrintTerm(t *mlty.Ty) string {
	return printTerm(t, nil)
}

func printTerm(t *mlty.Ty, names []string) string {
	switch t.Kind() {
	case polar.Zero:
		return "Zero"
	case polar.Add:
		l, r := t.Operands()
		return printTerm(l, names) + " + " + printTerm(r, names)
	case polar.Recursive:
		name := fmt.Sprintf("mu%d", len(names))
		body := t.Body()
		return fmt.Sprintf("rec %s. %s", name, printTerm(body, append([]string{name}, names...)))
	case polar.BoundVar:
		i := t.Index()
		if i < len(names) {
			return names[i]
		}
		return fmt.Sprintf("<unbound:%d>", i)
	case polar.UnboundVar:
		return "'" + string(t.Var())
	case polar.Constructed:
		return printConstructed(t, names)
	default:
		return "<?>"
	}
}

// printConstructed drives Lower with a callback that records each labeled
// child's rendered text instead of allocating automaton states, then
// reassembles the surface text from the recorded pieces. This keeps the
// printer independent of mlty's unexported Constructed fields. Records are
// told apart by ShapeKind, so an empty record, or one whose fields are named
// dom and rng, still prints as a Record.
func printConstructed(t *mlty.Ty, names []string) string {
	parts := map[string]string{}
	var order []string
	rec := t.Constructor()
	_ = rec.Lower(func(lbl mlsub.Label, child *mlty.Ty) auto.StateId {
		key := lbl.String()
		parts[key] = printTerm(child, names)
		order = append(order, key)
		return 0
	})
	isRecord := false
	if c, ok := rec.(*mlty.Constructed); ok {
		isRecord = c.ShapeKind() == mlty.RecordShape
	}
	switch {
	case !isRecord && len(order) == 0:
		return "Bool"
	case !isRecord && containsAll(order, "dom", "rng"):
		return fmt.Sprintf("Fun(%s, %s)", parts["dom"], parts["rng"])
	default:
		sort.Strings(order)
		fields := make([]string, len(order))
		for i, name := range order {
			fields[i] = fmt.Sprintf("%s: %s", name, parts[name])
		}
		return "Record{" + strings.Join(fields, ", ") + "}"
	}
}

func containsAll(xs []string, want ...string) bool {
	set := make(map[string]bool, len(xs))
	for _, x := range xs {
		set[x] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

// PrintState renders a single automaton state's constructor set and flow
// neighbors, for REPL inspection after Build/Reduce.
func PrintState(a *auto.Automaton[mlty.Cons], id auto.StateId) string {
	s := a.Index(id)
	var cons []string
	for _, c := range s.Cons.Iter() {
		cons = append(cons, c.String())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s): pol=%s", id, strings.Join(cons, " & "), s.Polarity())
	if flow := s.Flow.Ids(); len(flow) > 0 {
		strs := make([]string, len(flow))
		for i, f := range flow {
			strs[i] = f.String()
		}
		fmt.Fprintf(&b, " flow={%s}", strings.Join(strs, ", "))
	}
	return b.String()
}

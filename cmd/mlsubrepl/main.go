// Command mlsubrepl is an interactive sandbox for the mlsub biunification
// engine: build terms from the small surface syntax documented in
// parser.go, check subtyping constraints against them, and inspect the
// resulting automaton.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/andrewhickman/mlsub/internal/surface"
)

var traceLevelFlag string

func main() {
	root := &cobra.Command{
		Use:   "mlsubrepl",
		Short: "An interactive sandbox for the mlsub biunification engine",
		PersistentPreRun: func(*cobra.Command, []string) {
			gtrace.SyntaxTracer = gologadapter.New()
			level := tracing.TraceLevelFromString(traceLevelFlag)
			tracing.Select("mlsub.auto").SetTraceLevel(level)
			tracing.Select("mlsubrepl.lexer").SetTraceLevel(level)
		},
	}
	root.PersistentFlags().StringVar(&traceLevelFlag, "trace", "Error", "trace level [Debug|Info|Error]")

	root.AddCommand(replCmd(), checkCmd(), reduceCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive read-eval-print loop",
		RunE: func(*cobra.Command, []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("mlsubrepl: repl requires an interactive terminal; use 'check' or 'reduce' for piped input")
			}
			return surface.Run()
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [constraint...]",
		Short: `check one or more "Lhs <: Rhs" constraints, one shared automaton across all of them`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := surface.NewSession()
			lines := args
			if len(lines) == 0 {
				var err error
				lines, err = readLines(os.Stdin)
				if err != nil {
					return err
				}
			}
			failed := 0
			for _, line := range lines {
				if _, err := sess.Eval(line); err != nil {
					fmt.Fprintln(os.Stderr, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("mlsubrepl: %d constraint(s) failed", failed)
			}
			return nil
		},
	}
}

func reduceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reduce [file]",
		Short: "build and biunify every constraint in a file, reduce the automaton, and print its states",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lines []string
			var err error
			if len(args) == 1 {
				f, openErr := os.Open(args[0])
				if openErr != nil {
					return openErr
				}
				defer f.Close()
				lines, err = readLines(f)
			} else {
				lines, err = readLines(os.Stdin)
			}
			if err != nil {
				return err
			}
			sess := surface.NewSession()
			for _, line := range lines {
				if _, err := sess.Eval(line); err != nil {
					return err
				}
			}
			_, err = sess.Eval(":reduce")
			if err != nil {
				return err
			}
			_, err = sess.Eval(":show")
			return err
		},
	}
}

func readLines(f *os.File) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

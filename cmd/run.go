package cmd

import (
	"fmt"
	"os"

	"github.com/kschem/scm/lisp"
	"github.com/kschem/scm/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression string
	runPrint      bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate a program non-interactively against a fresh global environment",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := sourceText(args)
		if err != nil {
			return err
		}
		return runText(text, runPrint)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runExpression, "expression", "e", "", "evaluate this expression instead of reading a file")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false, "print the value of every top-level form; without it no values are printed, only display output")
	rootCmd.AddCommand(runCmd)
}

func sourceText(args []string) ([]byte, error) {
	if runExpression != "" {
		return []byte(runExpression), nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("run: expected a file argument or -e")
	}
	return os.ReadFile(args[0])
}

// runText reads, parses and evaluates every top-level form in text
// against one fresh global environment, same failure-recovery discipline
// as the REPL: a failed form is reported and evaluation resumes with the
// next one.
func runText(text []byte, print bool) error {
	forms, err := parser.ReadAll(text)
	if err != nil {
		return err
	}
	env := lisp.Empty()
	for _, s := range forms {
		expr, err := parser.Parse(s, env)
		if err != nil {
			reportError(err)
			continue
		}
		val, err := lisp.EvalTopLevel(expr, &env)
		if err != nil {
			reportError(err)
			continue
		}
		if val.Type == lisp.TTerminate {
			return nil
		}
		if print {
			fmt.Println(val.String())
		}
	}
	return nil
}

// reportError prints a RuntimeError the same way the REPL does: the
// failure's own message, then the literal "RuntimeError" line.
func reportError(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	fmt.Fprintln(os.Stderr, "RuntimeError")
}

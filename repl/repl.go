// Package repl implements the read-eval-print driver: the external
// collaborator that loops over standard input, prompts, and formats
// errors.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kschem/scm/lisp"
	"github.com/kschem/scm/parser"
)

// Run runs the interactive loop against a fresh global environment,
// prompting with prompt before each read.
func Run(prompt string) error {
	env := lisp.Empty()

	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt))

	var buf []byte
	for {
		line, rerr := rl.ReadSlice()
		if rerr == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if rerr != nil {
			err = rerr
			break
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		forms, perr := parser.ReadAll(line)
		if perr == io.ErrUnexpectedEOF {
			// Unbalanced parens: keep buffering until the form closes.
			buf = line
			rl.SetPrompt(contPrompt)
			continue
		}
		if perr != nil {
			reportError(perr)
			continue
		}
		if evalForms(forms, &env) {
			return nil
		}
	}
	if err != io.EOF {
		return err
	}
	return nil
}

// evalForms parses and evaluates each syntax tree read from one line, in
// order, applying the value-vs-void printing policy. It reports whether a
// Terminate value was produced, which ends the loop.
func evalForms(forms []*lisp.Syntax, env **lisp.Env) bool {
	for _, s := range forms {
		expr, err := parser.Parse(s, *env)
		if err != nil {
			reportError(err)
			continue
		}
		val, err := lisp.EvalTopLevel(expr, env)
		if err != nil {
			reportError(err)
			continue
		}
		if val.Type == lisp.TTerminate {
			return true
		}
		printValue(val, expr)
	}
	return false
}

// printValue implements the REPL's printing policy: Void prints nothing
// unless the top-level expression is syntactically an explicit void
// invocation; a display invocation suppresses the extra line since
// display already wrote its own output; everything else prints its
// textual form.
func printValue(val *lisp.Value, expr *lisp.Expr) {
	if val.Type == lisp.TVoid {
		if isExplicitVoidCall(expr) {
			fmt.Println(val.String())
		}
		return
	}
	if isDisplayCall(expr) {
		return
	}
	fmt.Println(val.String())
}

// isExplicitVoidCall recognizes a `(void ...)` invocation recursively
// through the tail of begin, both branches of if, and every clause tail
// of cond.
func isExplicitVoidCall(expr *lisp.Expr) bool {
	switch expr.Kind {
	case lisp.EVoidLit, lisp.EMakeVoid:
		return true
	case lisp.EBegin:
		return len(expr.Exprs) > 0 && isExplicitVoidCall(expr.Exprs[len(expr.Exprs)-1])
	case lisp.EIf:
		return isExplicitVoidCall(expr.Then) || isExplicitVoidCall(expr.Else)
	case lisp.ECond:
		for _, c := range expr.Clauses {
			if len(c.Body) > 0 && isExplicitVoidCall(c.Body[len(c.Body)-1]) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// isDisplayCall recognizes a `(display ...)` invocation through the same
// tail positions as isExplicitVoidCall.
func isDisplayCall(expr *lisp.Expr) bool {
	switch expr.Kind {
	case lisp.EDisplay:
		return true
	case lisp.EBegin:
		return len(expr.Exprs) > 0 && isDisplayCall(expr.Exprs[len(expr.Exprs)-1])
	case lisp.EIf:
		return isDisplayCall(expr.Then) || isDisplayCall(expr.Else)
	case lisp.ECond:
		for _, c := range expr.Clauses {
			if len(c.Body) > 0 && isDisplayCall(c.Body[len(c.Body)-1]) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// reportError prints a RuntimeError for a terminal session: the
// failure's own message, then the literal "RuntimeError" line.
func reportError(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	fmt.Fprintln(os.Stderr, "RuntimeError")
}

// Package schemetest provides a small table-driven harness for exercising
// sequences of top-level forms against the interpreter.
package schemetest

import (
	"bytes"
	"testing"

	"github.com/kschem/scm/lisp"
	"github.com/kschem/scm/parser"
)

// TestSequence is a sequence of expressions evaluated in order against one
// shared environment. Result is the expected textual form of the value, or
// the literal string "RuntimeError" to assert that the expression fails.
// Output, if non-empty, is the text the step is expected to have written
// via display.
type TestSequence []struct {
	Expr   string
	Result string
	Output string
}

// TestSuite is a set of named TestSequences, each run against its own
// fresh environment.
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests against an isolated
// environment.
func RunTestSuite(t *testing.T, tests TestSuite) {
	savedStdout := lisp.Stdout
	defer func() { lisp.Stdout = savedStdout }()

	for i, test := range tests {
		env := lisp.Empty()
		for j, step := range test.TestSequence {
			var out bytes.Buffer
			lisp.Stdout = &out

			forms, err := parser.ReadAll([]byte(step.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: read error: %v", i, test.Name, j, err)
				continue
			}
			if len(forms) != 1 {
				t.Errorf("test %d %q: expr %d: expected one expression, got %d", i, test.Name, j, len(forms))
				continue
			}
			expr, err := parser.Parse(forms[0], env)
			if err != nil {
				if step.Result == "RuntimeError" {
					continue
				}
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			val, err := lisp.EvalTopLevel(expr, &env)
			if err != nil {
				if step.Result == "RuntimeError" {
					continue
				}
				t.Errorf("test %d %q: expr %d: eval error: %v", i, test.Name, j, err)
				continue
			}
			if step.Result == "RuntimeError" {
				t.Errorf("test %d %q: expr %d: expected a RuntimeError, got %s", i, test.Name, j, val.String())
				continue
			}
			if result := val.String(); result != step.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, step.Result, result)
			}
			if step.Output != "" && out.String() != step.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, step.Output, out.String())
			}
		}
	}
}

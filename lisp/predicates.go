package lisp

import (
	"fmt"
	"io"
	"os"
)

// Type predicates and the logical/display primitives. Most are trivial
// type-tag comparisons; display is the one with a side effect.

func primNot(v *Value) (*Value, error) {
	return Boolean(!v.IsTruthy()), nil
}

func primIsBoolean(v *Value) (*Value, error) { return Boolean(v.Type == TBoolean), nil }
func primIsFixnum(v *Value) (*Value, error)  { return Boolean(v.Type == TInteger), nil }
func primIsProcedure(v *Value) (*Value, error) {
	return Boolean(v.Type == TProcedure), nil
}
func primIsSymbol(v *Value) (*Value, error) { return Boolean(v.Type == TSymbol), nil }
func primIsString(v *Value) (*Value, error) { return Boolean(v.Type == TString), nil }

// Stdout is the writer display writes to. It is a package variable rather
// than a parameter threaded through Eval so that the evaluator's signature
// stays (Expr, Env) -> (Value, error); tests redirect it to a buffer.
var Stdout io.Writer = os.Stdout

// primDisplay writes v without quoting strings: a String value's raw text,
// every other value's canonical textual form. Always returns Void.
func primDisplay(v *Value) (*Value, error) {
	if v.Type == TString {
		fmt.Fprint(Stdout, v.Text)
	} else {
		fmt.Fprint(Stdout, v.String())
	}
	return Void(), nil
}

// Package lisp implements the value universe, the lexical environment, the
// expression tree, and the evaluator for the scm language core.
package lisp

import (
	"bytes"
	"fmt"
)

// Type is the tag of a runtime Value.
type Type uint8

// Possible Value Type values.
const (
	TInvalid Type = iota
	TInteger
	TRational
	TBoolean
	TSymbol
	TString
	TNull
	TPair
	TProcedure
	TVoid
	TTerminate
)

var typeStrings = []string{
	TInvalid:   "invalid",
	TInteger:   "integer",
	TRational:  "rational",
	TBoolean:   "boolean",
	TSymbol:    "symbol",
	TString:    "string",
	TNull:      "null",
	TPair:      "pair",
	TProcedure: "procedure",
	TVoid:      "void",
	TTerminate: "terminate",
}

func (t Type) String() string {
	if int(t) >= len(typeStrings) {
		return typeStrings[TInvalid]
	}
	return typeStrings[t]
}

// Value is a tagged runtime value. Pairs carry their car/cdr as *Value
// fields so that set-car!/set-cdr! can mutate shared and cyclic structure in
// place; every other variant is immutable once constructed.
type Value struct {
	Type Type

	Int int64 // TInteger

	Num int64 // TRational numerator
	Den int64 // TRational denominator, always > 0, reduced

	Bool bool // TBoolean

	Sym string // TSymbol

	Text string // TString

	Car *Value // TPair
	Cdr *Value // TPair

	Params   []string // TProcedure parameter names
	Variadic bool      // TProcedure: last Params name collects surplus args
	Body     *Expr     // TProcedure body
	Env      *Env      // TProcedure captured lexical environment
}

// Shared immutable singletons. Booleans, Null, Void and Terminate carry no
// per-instance state so one allocation each is enough.
var (
	trueVal      = &Value{Type: TBoolean, Bool: true}
	falseVal     = &Value{Type: TBoolean, Bool: false}
	nullVal      = &Value{Type: TNull}
	voidVal      = &Value{Type: TVoid}
	terminateVal = &Value{Type: TTerminate}
)

// Integer returns a Value representing the integer n.
func Integer(n int64) *Value {
	return &Value{Type: TInteger, Int: n}
}

// Rational returns a Value representing num/den, normalized to lowest terms
// with a positive denominator. When the reduced denominator is 1 the result
// is an Integer Value instead, so 4/2 and 2 compare and print identically.
func Rational(num, den int64) (*Value, error) {
	n, d, err := normalizeRational(num, den)
	if err != nil {
		return nil, err
	}
	if d == 1 {
		return Integer(n), nil
	}
	return &Value{Type: TRational, Num: n, Den: d}, nil
}

// Boolean returns the shared Value for b.
func Boolean(b bool) *Value {
	if b {
		return trueVal
	}
	return falseVal
}

// Symbol returns a Value representing the symbol named s.
func Symbol(s string) *Value {
	return &Value{Type: TSymbol, Sym: s}
}

// String returns a Value representing the string text.
func String(text string) *Value {
	return &Value{Type: TString, Text: text}
}

// Null returns the shared empty-list Value.
func Null() *Value {
	return nullVal
}

// Void returns the shared void Value.
func Void() *Value {
	return voidVal
}

// Terminate returns the shared REPL-termination sentinel.
func Terminate() *Value {
	return terminateVal
}

// Cons returns a new mutable pair (car . cdr).
func Cons(car, cdr *Value) *Value {
	return &Value{Type: TPair, Car: car, Cdr: cdr}
}

// Procedure returns a new closure value capturing env.
func Procedure(params []string, variadic bool, body *Expr, env *Env) *Value {
	return &Value{
		Type:     TProcedure,
		Params:   params,
		Variadic: variadic,
		Body:     body,
		Env:      env,
	}
}

// IsTruthy reports whether v is truthy: everything except #f.
func (v *Value) IsTruthy() bool {
	return !(v.Type == TBoolean && !v.Bool)
}

// IsNumeric reports whether v is an Integer or a Rational.
func (v *Value) IsNumeric() bool {
	return v.Type == TInteger || v.Type == TRational
}

// String renders v in its canonical textual form.
func (v *Value) String() string {
	var buf bytes.Buffer
	v.write(&buf)
	return buf.String()
}

func (v *Value) write(buf *bytes.Buffer) {
	switch v.Type {
	case TInteger:
		fmt.Fprintf(buf, "%d", v.Int)
	case TRational:
		fmt.Fprintf(buf, "%d/%d", v.Num, v.Den)
	case TBoolean:
		if v.Bool {
			buf.WriteString("#t")
		} else {
			buf.WriteString("#f")
		}
	case TSymbol:
		buf.WriteString(v.Sym)
	case TString:
		buf.WriteByte('"')
		buf.WriteString(v.Text)
		buf.WriteByte('"')
	case TNull:
		buf.WriteString("()")
	case TPair:
		buf.WriteByte('(')
		v.Car.write(buf)
		v.Cdr.writeTail(buf)
	case TProcedure:
		buf.WriteString("#<procedure>")
	case TVoid:
		buf.WriteString("#<void>")
	case TTerminate:
		buf.WriteString("#<terminate>")
	default:
		fmt.Fprintf(buf, "#<invalid:%d>", v.Type)
	}
}

// writeTail renders the tail of a pair chain: " e2 e3 ... eN)" for a proper
// list, " e2 ... . eN)" for an improper one.
func (v *Value) writeTail(buf *bytes.Buffer) {
	switch v.Type {
	case TNull:
		buf.WriteByte(')')
	case TPair:
		buf.WriteByte(' ')
		v.Car.write(buf)
		v.Cdr.writeTail(buf)
	default:
		buf.WriteString(" . ")
		v.write(buf)
		buf.WriteByte(')')
	}
}

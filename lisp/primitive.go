package lisp

import "fmt"

// PrimitiveArity classifies how many operands a primitive's parse-time
// variant fixes: fixed-arity primitives are checked at parse time,
// variadic ones are checked at evaluation time.
type PrimitiveArity uint8

// Primitive arity classes.
const (
	ArityUnary PrimitiveArity = iota
	ArityBinary
	ArityVariadic
	// ArityNullary covers exit, which the design notes single out as
	// taking no operands and evaluating directly to Terminate.
	ArityNullary
)

// PrimitiveInfo names the Expr variant and arity class a primitive name
// parses to.
type PrimitiveInfo struct {
	Kind  ExprKind
	Arity PrimitiveArity
}

// Primitives is the table of every primitive name, consulted both by the
// parser (to recognize a head symbol as a primitive rather than a free
// variable, and to enforce fixed operand counts) and by the evaluator (to
// synthesize a first-class procedure wrapping a primitive name referenced
// in value position). "void" with zero operands and "exit" are handled
// outside this table as literal forms; see parser.go and DESIGN.md.
var Primitives = map[string]PrimitiveInfo{
	"car":        {ECar, ArityUnary},
	"cdr":        {ECdr, ArityUnary},
	"not":        {ENot, ArityUnary},
	"boolean?":   {EIsBoolean, ArityUnary},
	"fixnum?":    {EIsFixnum, ArityUnary},
	"null?":      {EIsNull, ArityUnary},
	"pair?":      {EIsPair, ArityUnary},
	"procedure?": {EIsProcedure, ArityUnary},
	"symbol?":    {EIsSymbol, ArityUnary},
	"string?":    {EIsString, ArityUnary},
	"list?":      {EIsList, ArityUnary},
	"display":    {EDisplay, ArityUnary},

	"modulo":   {EModulo, ArityBinary},
	"expt":     {EExpt, ArityBinary},
	"cons":     {ECons, ArityBinary},
	"eq?":      {EIsEq, ArityBinary},
	"set-car!": {ESetCar, ArityBinary},
	"set-cdr!": {ESetCdr, ArityBinary},

	"+":    {EPlus, ArityVariadic},
	"-":    {EMinus, ArityVariadic},
	"*":    {EMul, ArityVariadic},
	"/":    {EDiv, ArityVariadic},
	"<":    {ELess, ArityVariadic},
	"<=":   {ELessEq, ArityVariadic},
	"=":    {EEqual, ArityVariadic},
	">=":   {EGreaterEq, ArityVariadic},
	">":    {EGreater, ArityVariadic},
	"list": {EListCtor, ArityVariadic},
	"void": {EMakeVoid, ArityVariadic},

	"exit": {EExitLit, ArityNullary},
}

// primitiveParamNames returns n distinct synthetic parameter names used to
// build the parameter list of a synthesized primitive-as-value procedure.
// They cannot collide with user bindings because a synthesized procedure
// captures the empty environment.
func primitiveParamNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%%%d", i+1)
	}
	return names
}

// SynthesizePrimitive builds the procedure value that a bare reference to
// primitive name (in a Var position that the environment does not bind)
// evaluates to. The body is the primitive's Expr variant applied to fresh
// parameter references, so ordinary Apply evaluation handles the call
// without the evaluator needing a separate code path for primitives used
// as values.
func SynthesizePrimitive(name string) (*Value, error) {
	info, ok := Primitives[name]
	if !ok {
		return nil, Errorf(CategoryUnknownPrimitive, "unknown primitive: %s", name)
	}
	switch info.Arity {
	case ArityNullary:
		return Procedure(nil, false, &Expr{Kind: info.Kind}, Empty()), nil
	case ArityUnary:
		params := primitiveParamNames(1)
		body := &Expr{Kind: info.Kind, Rand: &Expr{Kind: EVar, Str: params[0]}}
		return Procedure(params, false, body, Empty()), nil
	case ArityBinary:
		params := primitiveParamNames(2)
		body := &Expr{
			Kind:  info.Kind,
			Rand1: &Expr{Kind: EVar, Str: params[0]},
			Rand2: &Expr{Kind: EVar, Str: params[1]},
		}
		return Procedure(params, false, body, Empty()), nil
	default: // ArityVariadic: collect every argument into one rest parameter.
		return synthesizeVariadic(info.Kind, []string{"%rest"}), nil
	}
}

// synthesizeVariadic builds a variadic primitive-as-value procedure. The
// synthesized body is the variadic primitive applied to the elements of
// the single collected rest-list parameter, spread via EApplyRest so the
// evaluator can turn a runtime list value back into an operand sequence.
func synthesizeVariadic(kind ExprKind, params []string) *Value {
	body := &Expr{Kind: EApplyRest, RestKind: kind, Rand: &Expr{Kind: EVar, Str: params[0]}}
	return Procedure(params, true, body, Empty())
}

package parser

import (
	"github.com/kschem/scm/lisp"
)

// Parse converts one syntax tree into an expression tree, resolving
// whether a list's head position is a reserved form, a known primitive,
// or a free application. env is consulted read-only to detect shadowing:
// a name currently bound — by a real top-level define or by a
// parameter/binding introduced earlier in this same parse — always wins
// over a reserved or primitive reading of that name.
func Parse(s *lisp.Syntax, env *lisp.Env) (*lisp.Expr, error) {
	if s.Kind != lisp.SList {
		return parseAtom(s)
	}
	if len(s.Elems) == 0 {
		return &lisp.Expr{Kind: lisp.EQuote, Quoted: lisp.NewList(nil)}, nil
	}
	head, tail := s.Elems[0], s.Elems[1:]
	if head.Kind != lisp.SSymbol {
		return parseApply(head, tail, env)
	}
	op := head.Sym
	if lisp.IsBound(op, env) {
		return parseApply(head, tail, env)
	}
	if expr, ok, err := parseReserved(op, tail, env); ok || err != nil {
		return expr, err
	}
	if expr, ok, err := parsePrimitive(op, tail, env); ok || err != nil {
		return expr, err
	}
	return parseApply(head, tail, env)
}

func parseAtom(s *lisp.Syntax) (*lisp.Expr, error) {
	switch s.Kind {
	case lisp.SInteger:
		return &lisp.Expr{Kind: lisp.EFixnum, Int: s.Int}, nil
	case lisp.SRational:
		return &lisp.Expr{Kind: lisp.ERationalLit, Num: s.Num, Den: s.Den}, nil
	case lisp.SString:
		return &lisp.Expr{Kind: lisp.EStringLit, Str: s.Text}, nil
	case lisp.SBoolean:
		if s.Bool {
			return &lisp.Expr{Kind: lisp.ETrue}, nil
		}
		return &lisp.Expr{Kind: lisp.EFalse}, nil
	case lisp.SSymbol:
		return &lisp.Expr{Kind: lisp.EVar, Str: s.Sym}, nil
	default:
		return nil, lisp.Errorf(lisp.CategoryMalformedForm, "malformed form")
	}
}

func parseApply(head *lisp.Syntax, tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, error) {
	rator, err := Parse(head, env)
	if err != nil {
		return nil, err
	}
	rands, err := parseAll(tail, env)
	if err != nil {
		return nil, err
	}
	return &lisp.Expr{Kind: lisp.EApply, Rator: rator, Rands: rands}, nil
}

func parseAll(elems []*lisp.Syntax, env *lisp.Env) ([]*lisp.Expr, error) {
	out := make([]*lisp.Expr, len(elems))
	for i, e := range elems {
		x, err := Parse(e, env)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// parseReserved constructs a reserved-form Expr when op names one (spec
// §4.2 rule 3b). The bool result is false when op is not a reserved form,
// signalling the caller to try the primitive table next.
func parseReserved(op string, tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	switch op {
	case "if":
		return parseIf(tail, env)
	case "begin":
		return parseBegin(tail, env)
	case "quote":
		return parseQuote(tail)
	case "define":
		return parseDefine(tail, env)
	case "set!":
		return parseSet(tail, env)
	case "lambda":
		return parseLambda(tail, env)
	case "let":
		return parseLet(tail, env)
	case "letrec":
		return parseLetrec(tail, env)
	case "cond":
		return parseCond(tail, env)
	case "and":
		exprs, err := parseAll(tail, env)
		if err != nil {
			return nil, true, err
		}
		return &lisp.Expr{Kind: lisp.EAnd, Exprs: exprs}, true, nil
	case "or":
		exprs, err := parseAll(tail, env)
		if err != nil {
			return nil, true, err
		}
		return &lisp.Expr{Kind: lisp.EOr, Exprs: exprs}, true, nil
	default:
		return nil, false, nil
	}
}

func parseIf(tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	if len(tail) != 3 {
		return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "if: expected 3 operands, got %d", len(tail))
	}
	cond, err := Parse(tail[0], env)
	if err != nil {
		return nil, true, err
	}
	then, err := Parse(tail[1], env)
	if err != nil {
		return nil, true, err
	}
	els, err := Parse(tail[2], env)
	if err != nil {
		return nil, true, err
	}
	return &lisp.Expr{Kind: lisp.EIf, Cond: cond, Then: then, Else: els}, true, nil
}

func parseBegin(tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	exprs, err := parseAll(tail, env)
	if err != nil {
		return nil, true, err
	}
	return &lisp.Expr{Kind: lisp.EBegin, Exprs: exprs}, true, nil
}

func parseQuote(tail []*lisp.Syntax) (*lisp.Expr, bool, error) {
	if len(tail) != 1 {
		return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "quote: expected 1 operand, got %d", len(tail))
	}
	return &lisp.Expr{Kind: lisp.EQuote, Quoted: tail[0]}, true, nil
}

// parseDefine handles both `(define name expr)` and the function-sugar
// shape `(define (name p1 ... pN) body...)`, which desugars to a lambda.
func parseDefine(tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	if len(tail) < 2 {
		return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "define: malformed form")
	}
	target := tail[0]
	switch target.Kind {
	case lisp.SSymbol:
		if len(tail) != 2 {
			return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "define: expected 2 operands, got %d", len(tail))
		}
		bodyEnv := lisp.Extend(target.Sym, lisp.Void(), env)
		rhs, err := Parse(tail[1], bodyEnv)
		if err != nil {
			return nil, true, err
		}
		return &lisp.Expr{Kind: lisp.EDefine, Str: target.Sym, Body: rhs}, true, nil
	case lisp.SList:
		if len(target.Elems) == 0 || target.Elems[0].Kind != lisp.SSymbol {
			return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "define: malformed function header")
		}
		name := target.Elems[0].Sym
		bodyEnv := lisp.Extend(name, lisp.Void(), env)
		lambdaExpr, err := buildLambda(target.Elems[1:], tail[1:], bodyEnv)
		if err != nil {
			return nil, true, err
		}
		return &lisp.Expr{Kind: lisp.EDefine, Str: name, Body: lambdaExpr}, true, nil
	default:
		return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "define: malformed form")
	}
}

func parseSet(tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	if len(tail) != 2 || tail[0].Kind != lisp.SSymbol {
		return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "set!: malformed form")
	}
	rhs, err := Parse(tail[1], env)
	if err != nil {
		return nil, true, err
	}
	return &lisp.Expr{Kind: lisp.ESet, Str: tail[0].Sym, Body: rhs}, true, nil
}

func parseLambda(tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	if len(tail) < 1 || tail[0].Kind != lisp.SList {
		return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "lambda: malformed parameter list")
	}
	expr, err := buildLambda(tail[0].Elems, tail[1:], env)
	return expr, true, err
}

// buildLambda is shared by `lambda` and the `define` function-sugar form.
func buildLambda(paramsSyntax, bodyForms []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, error) {
	params, variadic, err := parseParamList(paramsSyntax)
	if err != nil {
		return nil, err
	}
	paramEnv := env
	for _, p := range params {
		paramEnv = lisp.Extend(p, lisp.Void(), paramEnv)
	}
	body, err := buildBody(bodyForms, paramEnv)
	if err != nil {
		return nil, err
	}
	return &lisp.Expr{Kind: lisp.ELambda, Params: params, Variadic: variadic, Body: body}, nil
}

// parseParamList recognizes the trailing "..." marker that makes a
// procedure variadic.
func parseParamList(elems []*lisp.Syntax) ([]string, bool, error) {
	var params []string
	variadic := false
	for i, e := range elems {
		if e.Kind != lisp.SSymbol {
			return nil, false, lisp.Errorf(lisp.CategoryMalformedForm, "lambda: malformed parameter list")
		}
		if e.Sym == "..." {
			if i != len(elems)-1 || len(params) == 0 {
				return nil, false, lisp.Errorf(lisp.CategoryMalformedForm, "lambda: \"...\" must follow at least one parameter, as the last element")
			}
			variadic = true
			continue
		}
		params = append(params, e.Sym)
	}
	return params, variadic, nil
}

// buildBody collapses a sequence of body forms into a single expression:
// the sole form itself if there is exactly one, otherwise a Begin of all
// of them.
func buildBody(forms []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, error) {
	if len(forms) == 0 {
		return nil, lisp.Errorf(lisp.CategoryMalformedForm, "expected at least one body form")
	}
	if len(forms) == 1 {
		return Parse(forms[0], env)
	}
	exprs, err := parseAll(forms, env)
	if err != nil {
		return nil, err
	}
	return &lisp.Expr{Kind: lisp.EBegin, Exprs: exprs}, nil
}

func parseLet(tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	if len(tail) < 1 || tail[0].Kind != lisp.SList {
		return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "let: malformed bindings")
	}
	bindings, err := parseBindingPairs(tail[0].Elems, env)
	if err != nil {
		return nil, true, err
	}
	bodyEnv := env
	for _, b := range bindings {
		bodyEnv = lisp.Extend(b.Name, lisp.Void(), bodyEnv)
	}
	body, err := buildBody(tail[1:], bodyEnv)
	if err != nil {
		return nil, true, err
	}
	return &lisp.Expr{Kind: lisp.ELet, Bindings: bindings, Body: body}, true, nil
}

// parseBindingPairs parses `((name expr) ...)`, resolving each expr
// against rhsEnv: the enclosing environment for `let`, the fully-extended
// environment for `letrec`.
func parseBindingPairs(elems []*lisp.Syntax, rhsEnv *lisp.Env) ([]lisp.Binding, error) {
	bindings := make([]lisp.Binding, len(elems))
	for i, e := range elems {
		if e.Kind != lisp.SList || len(e.Elems) != 2 || e.Elems[0].Kind != lisp.SSymbol {
			return nil, lisp.Errorf(lisp.CategoryMalformedForm, "malformed binding")
		}
		rhs, err := Parse(e.Elems[1], rhsEnv)
		if err != nil {
			return nil, err
		}
		bindings[i] = lisp.Binding{Name: e.Elems[0].Sym, Expr: rhs}
	}
	return bindings, nil
}

func parseLetrec(tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	if len(tail) < 1 || tail[0].Kind != lisp.SList {
		return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "letrec: malformed bindings")
	}
	elems := tail[0].Elems
	extended := env
	for _, e := range elems {
		if e.Kind != lisp.SList || len(e.Elems) != 2 || e.Elems[0].Kind != lisp.SSymbol {
			return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "letrec: malformed binding")
		}
		extended = lisp.Extend(e.Elems[0].Sym, lisp.Void(), extended)
	}
	bindings, err := parseBindingPairs(elems, extended)
	if err != nil {
		return nil, true, err
	}
	body, err := buildBody(tail[1:], extended)
	if err != nil {
		return nil, true, err
	}
	return &lisp.Expr{Kind: lisp.ELetrec, Bindings: bindings, Body: body}, true, nil
}

// parseCond parses clauses whose first element is the test expression
// (or the literal symbol `else`, permitted at most once, as the last
// clause) and whose remaining elements form the clause body.
func parseCond(tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	clauses := make([]lisp.CondClause, 0, len(tail))
	for i, c := range tail {
		if c.Kind != lisp.SList || len(c.Elems) == 0 {
			return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "cond: malformed clause")
		}
		head := c.Elems[0]
		isElse := head.IsSymbolNamed("else")
		if isElse && i != len(tail)-1 {
			return nil, true, lisp.Errorf(lisp.CategoryMalformedForm, "cond: else must appear once, as the last clause")
		}
		var testExpr *lisp.Expr
		if !isElse {
			t, err := Parse(head, env)
			if err != nil {
				return nil, true, err
			}
			testExpr = t
		}
		body, err := parseAll(c.Elems[1:], env)
		if err != nil {
			return nil, true, err
		}
		clauses = append(clauses, lisp.CondClause{Test: testExpr, ElseOK: isElse, Body: body})
	}
	return &lisp.Expr{Kind: lisp.ECond, Clauses: clauses}, true, nil
}

// parsePrimitive constructs a primitive-operator Expr variant when op
// names a primitive. "exit" and the zero-operand form of "void" are
// handled here as fixed nullary literals rather than through the generic
// Primitives table; see DESIGN.md.
func parsePrimitive(op string, tail []*lisp.Syntax, env *lisp.Env) (*lisp.Expr, bool, error) {
	if op == "exit" {
		if len(tail) != 0 {
			return nil, true, lisp.Errorf(lisp.CategoryArityError, "exit: expected 0 operands, got %d", len(tail))
		}
		return &lisp.Expr{Kind: lisp.EExitLit}, true, nil
	}
	if op == "void" && len(tail) == 0 {
		return &lisp.Expr{Kind: lisp.EVoidLit}, true, nil
	}
	info, ok := lisp.Primitives[op]
	if !ok {
		return nil, false, nil
	}
	switch info.Arity {
	case lisp.ArityUnary:
		if len(tail) != 1 {
			return nil, true, lisp.Errorf(lisp.CategoryArityError, "%s: expected 1 operand, got %d", op, len(tail))
		}
		rand, err := Parse(tail[0], env)
		if err != nil {
			return nil, true, err
		}
		return &lisp.Expr{Kind: info.Kind, Rand: rand}, true, nil
	case lisp.ArityBinary:
		if len(tail) != 2 {
			return nil, true, lisp.Errorf(lisp.CategoryArityError, "%s: expected 2 operands, got %d", op, len(tail))
		}
		r1, err := Parse(tail[0], env)
		if err != nil {
			return nil, true, err
		}
		r2, err := Parse(tail[1], env)
		if err != nil {
			return nil, true, err
		}
		return &lisp.Expr{Kind: info.Kind, Rand1: r1, Rand2: r2}, true, nil
	default: // variadic: operand count is checked at evaluation time
		exprs, err := parseAll(tail, env)
		if err != nil {
			return nil, true, err
		}
		return &lisp.Expr{Kind: info.Kind, Exprs: exprs}, true, nil
	}
}

package lisp

import "fmt"

// Eval walks expr against env and returns the value it denotes. It never
// recovers from a panic and never retains partial
// state beyond what Define/Set!/set-car!/set-cdr! explicitly commit before
// a failure; the caller (Begin, Apply, the REPL) is the one who decides
// whether to keep going.
func Eval(expr *Expr, env *Env) (*Value, error) {
	switch expr.Kind {
	case EFixnum:
		return Integer(expr.Int), nil
	case ERationalLit:
		return Rational(expr.Num, expr.Den)
	case EStringLit:
		return String(expr.Str), nil
	case ETrue:
		return Boolean(true), nil
	case EFalse:
		return Boolean(false), nil
	case EVoidLit:
		return Void(), nil
	case EExitLit:
		return Terminate(), nil
	case EVar:
		return evalVar(expr.Str, env)
	case EQuote:
		return quoteToValue(expr.Quoted)
	case EIf:
		return evalIf(expr, env)
	case ECond:
		return evalCond(expr, env)
	case EBegin:
		return evalBegin(expr.Exprs, env)
	case EAnd:
		return evalAnd(expr.Exprs, env)
	case EOr:
		return evalOr(expr.Exprs, env)
	case ELambda:
		return Procedure(expr.Params, expr.Variadic, expr.Body, env), nil
	case EApply:
		return evalApply(expr, env)
	case EDefine:
		val, _, err := evalDefine(expr, env)
		return val, err
	case ESet:
		return evalSet(expr, env)
	case ELet:
		return evalLet(expr, env)
	case ELetrec:
		return evalLetrec(expr, env)
	case EApplyRest:
		return evalApplyRest(expr, env)
	default:
		return evalPrimitiveExpr(expr, env)
	}
}

// evalVar resolves a variable reference: a real binding wins; failing
// that, a known primitive name is synthesized into a first-class procedure
// on demand; failing that, the name is simply unbound.
func evalVar(name string, env *Env) (*Value, error) {
	if v, ok := Find(name, env); ok {
		return v, nil
	}
	if _, ok := Primitives[name]; ok {
		return SynthesizePrimitive(name)
	}
	return nil, Errorf(CategoryUnboundVariable, "unbound variable: %s", name)
}

// quoteToValue recursively converts a raw syntax tree into a value.
func quoteToValue(s *Syntax) (*Value, error) {
	switch s.Kind {
	case SInteger:
		return Integer(s.Int), nil
	case SRational:
		return Rational(s.Num, s.Den)
	case SString:
		return String(s.Text), nil
	case SBoolean:
		return Boolean(s.Bool), nil
	case SSymbol:
		return Symbol(s.Sym), nil
	case SList:
		return quoteList(s.Elems)
	default:
		return nil, Errorf(CategoryMalformedQuote, "malformed quote")
	}
}

// quoteList handles the dotted-pair form `(a . b)`: a list whose
// second-to-last element is the symbol `.`. Exactly one `.` is permitted
// and it must sit second-to-last, or the quote is malformed.
func quoteList(elems []*Syntax) (*Value, error) {
	dot := -1
	for i, e := range elems {
		if e.IsSymbolNamed(".") {
			if dot != -1 {
				return nil, Errorf(CategoryMalformedQuote, "malformed quote: more than one '.'")
			}
			dot = i
		}
	}
	if dot == -1 {
		return quotePrefix(elems, Null())
	}
	if dot == 0 || dot != len(elems)-2 {
		return nil, Errorf(CategoryMalformedQuote, "malformed quote: '.' must be second-to-last")
	}
	tail, err := quoteToValue(elems[dot+1])
	if err != nil {
		return nil, err
	}
	return quotePrefix(elems[:dot], tail)
}

// quotePrefix right-folds elems onto tail, converting each element to a
// value.
func quotePrefix(elems []*Syntax, tail *Value) (*Value, error) {
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		v, err := quoteToValue(elems[i])
		if err != nil {
			return nil, err
		}
		result = Cons(v, result)
	}
	return result, nil
}

func evalIf(expr *Expr, env *Env) (*Value, error) {
	test, err := Eval(expr.Cond, env)
	if err != nil {
		return nil, err
	}
	if test.IsTruthy() {
		return Eval(expr.Then, env)
	}
	return Eval(expr.Else, env)
}

func evalCond(expr *Expr, env *Env) (*Value, error) {
	for _, clause := range expr.Clauses {
		test := trueVal
		if !clause.ElseOK {
			v, err := Eval(clause.Test, env)
			if err != nil {
				return nil, err
			}
			test = v
		}
		if !test.IsTruthy() {
			continue
		}
		if len(clause.Body) == 0 {
			return test, nil
		}
		return evalBegin(clause.Body, env)
	}
	return Void(), nil
}

// evalBegin evaluates a sequence in order, returning the last value (Void
// for an empty sequence). A maximal leading run of Define forms is
// hoisted letrec-style — every name gets its frame extended up front, so
// mutually recursive internal defines can see each other's frames before
// any right-hand side runs — then each right-hand side is evaluated and
// back-patched in, the same discipline as letrec.
func evalBegin(exprs []*Expr, env *Env) (*Value, error) {
	if len(exprs) == 0 {
		return Void(), nil
	}
	cur := env
	i := 0
	for i < len(exprs) && exprs[i].Kind == EDefine {
		i++
	}
	leading, rest := exprs[:i], exprs[i:]
	for _, d := range leading {
		cur = Extend(d.Str, Void(), cur)
	}
	for _, d := range leading {
		val, err := Eval(d.Body, cur)
		if err != nil {
			return nil, err
		}
		Modify(d.Str, val, cur)
	}
	if len(rest) == 0 {
		return Void(), nil
	}
	var result *Value
	var err error
	for _, e := range rest {
		if e.Kind == EDefine {
			var newEnv *Env
			result, newEnv, err = evalDefine(e, cur)
			if err != nil {
				return nil, err
			}
			cur = newEnv
			continue
		}
		result, err = Eval(e, cur)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func evalAnd(exprs []*Expr, env *Env) (*Value, error) {
	if len(exprs) == 0 {
		return Boolean(true), nil
	}
	var result *Value
	for _, e := range exprs {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		if !v.IsTruthy() {
			return Boolean(false), nil
		}
		result = v
	}
	return result, nil
}

func evalOr(exprs []*Expr, env *Env) (*Value, error) {
	if len(exprs) == 0 {
		return Boolean(false), nil
	}
	for _, e := range exprs {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		if v.IsTruthy() {
			return v, nil
		}
	}
	return Boolean(false), nil
}

// evalDefine implements an extend-then-modify discipline: a fresh frame is
// established before the right-hand side is evaluated, so a recursive
// lambda can see its own name, and the frame is patched with the result
// afterward. It returns the extended environment
// so callers that thread scope across a sequence (evalBegin, the REPL top
// level) can keep using it for what follows.
func evalDefine(expr *Expr, env *Env) (*Value, *Env, error) {
	newEnv := Extend(expr.Str, Void(), env)
	val, err := Eval(expr.Body, newEnv)
	if err != nil {
		return nil, env, err
	}
	Modify(expr.Str, val, newEnv)
	return Void(), newEnv, nil
}

func evalSet(expr *Expr, env *Env) (*Value, error) {
	if !IsBound(expr.Str, env) {
		return nil, Errorf(CategoryUnboundVariable, "set!: unbound variable: %s", expr.Str)
	}
	val, err := Eval(expr.Body, env)
	if err != nil {
		return nil, err
	}
	Modify(expr.Str, val, env)
	return Void(), nil
}

// evalLet evaluates every binding's right-hand side in the enclosing
// environment, then extends with all of them simultaneously before
// evaluating the body.
func evalLet(expr *Expr, env *Env) (*Value, error) {
	values := make([]*Value, len(expr.Bindings))
	for i, b := range expr.Bindings {
		v, err := Eval(b.Expr, env)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	child := env
	for i, b := range expr.Bindings {
		child = Extend(b.Name, values[i], child)
	}
	return Eval(expr.Body, child)
}

// evalLetrec first extends the environment with every name bound to an
// unset slot, then evaluates each right-hand side in that extended
// environment and back-patches it via Modify.
func evalLetrec(expr *Expr, env *Env) (*Value, error) {
	child := env
	for _, b := range expr.Bindings {
		child = Extend(b.Name, Void(), child)
	}
	for _, b := range expr.Bindings {
		v, err := Eval(b.Expr, child)
		if err != nil {
			return nil, err
		}
		Modify(b.Name, v, child)
	}
	return Eval(expr.Body, child)
}

func evalApply(expr *Expr, env *Env) (*Value, error) {
	rator, err := Eval(expr.Rator, env)
	if err != nil {
		return nil, err
	}
	args := make([]*Value, len(expr.Rands))
	for i, r := range expr.Rands {
		v, err := Eval(r, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return applyProcedure(rator, args)
}

// applyProcedure binds args against proc's parameter list and evaluates
// its body in the extended captured environment.
func applyProcedure(proc *Value, args []*Value) (*Value, error) {
	if proc.Type != TProcedure {
		return nil, Errorf(CategoryNonProcedure, "attempt to apply a non-procedure: %s", proc.Type)
	}
	params := proc.Params
	if proc.Variadic {
		k := len(params) - 1
		if len(args) < k {
			return nil, Errorf(CategoryArityError, "procedure: expected at least %d arguments, got %d", k, len(args))
		}
		callEnv := proc.Env
		for i := 0; i < k; i++ {
			callEnv = Extend(params[i], args[i], callEnv)
		}
		rest, err := primList(args[k:])
		if err != nil {
			return nil, err
		}
		callEnv = Extend(params[k], rest, callEnv)
		return Eval(proc.Body, callEnv)
	}
	if len(args) != len(params) {
		return nil, Errorf(CategoryArityError, "procedure: expected %d arguments, got %d", len(params), len(args))
	}
	callEnv := proc.Env
	for i, p := range params {
		callEnv = Extend(p, args[i], callEnv)
	}
	return Eval(proc.Body, callEnv)
}

// evalApplyRest is the body of a synthesized variadic primitive-as-value
// procedure: it evaluates the single collected rest-list parameter back
// into an operand slice and dispatches RestKind over it.
func evalApplyRest(expr *Expr, env *Env) (*Value, error) {
	listVal, err := Eval(expr.Rand, env)
	if err != nil {
		return nil, err
	}
	args, err := listToSlice(listVal)
	if err != nil {
		return nil, err
	}
	return evalVariadicPrimitive(expr.RestKind, args)
}

// evalPrimitiveExpr dispatches one of the fixed primitive-operator Expr
// variants, evaluating operands left-to-right before calling the matching
// function in arith.go, listops.go or predicates.go.
func evalPrimitiveExpr(expr *Expr, env *Env) (*Value, error) {
	switch expr.Kind {
	case ECar, ECdr, ENot, EIsBoolean, EIsFixnum, EIsNull, EIsPair, EIsProcedure, EIsSymbol, EIsString, EIsList, EDisplay:
		v, err := Eval(expr.Rand, env)
		if err != nil {
			return nil, err
		}
		return evalUnaryPrimitive(expr.Kind, v)
	case EModulo, EExpt, ECons, EIsEq, ESetCar, ESetCdr:
		a, err := Eval(expr.Rand1, env)
		if err != nil {
			return nil, err
		}
		b, err := Eval(expr.Rand2, env)
		if err != nil {
			return nil, err
		}
		return evalBinaryPrimitive(expr.Kind, a, b)
	case EPlus, EMinus, EMul, EDiv, ELess, ELessEq, EEqual, EGreaterEq, EGreater, EListCtor, EMakeVoid:
		args := make([]*Value, len(expr.Exprs))
		for i, e := range expr.Exprs {
			v, err := Eval(e, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return evalVariadicPrimitive(expr.Kind, args)
	default:
		return nil, fmt.Errorf("internal error: unhandled expression kind %d", expr.Kind)
	}
}

func evalUnaryPrimitive(kind ExprKind, v *Value) (*Value, error) {
	switch kind {
	case ECar:
		return primCar(v)
	case ECdr:
		return primCdr(v)
	case ENot:
		return primNot(v)
	case EIsBoolean:
		return primIsBoolean(v)
	case EIsFixnum:
		return primIsFixnum(v)
	case EIsNull:
		return primIsNull(v)
	case EIsPair:
		return primIsPair(v)
	case EIsProcedure:
		return primIsProcedure(v)
	case EIsSymbol:
		return primIsSymbol(v)
	case EIsString:
		return primIsString(v)
	case EIsList:
		return primIsList(v)
	case EDisplay:
		return primDisplay(v)
	default:
		return nil, fmt.Errorf("internal error: not a unary primitive: %d", kind)
	}
}

func evalBinaryPrimitive(kind ExprKind, a, b *Value) (*Value, error) {
	switch kind {
	case EModulo:
		return primModulo(a, b)
	case EExpt:
		return primExpt(a, b)
	case ECons:
		return primCons(a, b)
	case EIsEq:
		return primEq(a, b)
	case ESetCar:
		return primSetCar(a, b)
	case ESetCdr:
		return primSetCdr(a, b)
	default:
		return nil, fmt.Errorf("internal error: not a binary primitive: %d", kind)
	}
}

func evalVariadicPrimitive(kind ExprKind, args []*Value) (*Value, error) {
	switch kind {
	case EPlus:
		return primPlus(args)
	case EMinus:
		return primMinus(args)
	case EMul:
		return primMul(args)
	case EDiv:
		return primDiv(args)
	case ELess:
		return primLess(args)
	case ELessEq:
		return primLessEq(args)
	case EEqual:
		return primNumEqual(args)
	case EGreaterEq:
		return primGreaterEq(args)
	case EGreater:
		return primGreater(args)
	case EListCtor:
		return primList(args)
	case EMakeVoid:
		return Void(), nil
	default:
		return nil, fmt.Errorf("internal error: not a variadic primitive: %d", kind)
	}
}

// EvalTopLevel evaluates one top-level form against *env. Every form
// leaves *env untouched except Define, which grows it in place so that
// later top-level forms in the same REPL session see the new binding.
func EvalTopLevel(expr *Expr, env **Env) (*Value, error) {
	if expr.Kind == EDefine {
		val, newEnv, err := evalDefine(expr, *env)
		if err != nil {
			return nil, err
		}
		*env = newEnv
		return val, nil
	}
	return Eval(expr, *env)
}

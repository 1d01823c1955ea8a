package lisp

// List/pair primitives.

func primCons(car, cdr *Value) (*Value, error) {
	return Cons(car, cdr), nil
}

func primCar(v *Value) (*Value, error) {
	if v.Type != TPair {
		return nil, Errorf(CategoryTypeError, "car: expected a pair, got %s", v.Type)
	}
	return v.Car, nil
}

func primCdr(v *Value) (*Value, error) {
	if v.Type != TPair {
		return nil, Errorf(CategoryTypeError, "cdr: expected a pair, got %s", v.Type)
	}
	return v.Cdr, nil
}

func primSetCar(pair, val *Value) (*Value, error) {
	if pair.Type != TPair {
		return nil, Errorf(CategoryTypeError, "set-car!: expected a pair, got %s", pair.Type)
	}
	pair.Car = val
	return Void(), nil
}

func primSetCdr(pair, val *Value) (*Value, error) {
	if pair.Type != TPair {
		return nil, Errorf(CategoryTypeError, "set-cdr!: expected a pair, got %s", pair.Type)
	}
	pair.Cdr = val
	return Void(), nil
}

// primList right-folds args into a proper list terminated by Null.
func primList(args []*Value) (*Value, error) {
	result := Null()
	for i := len(args) - 1; i >= 0; i-- {
		result = Cons(args[i], result)
	}
	return result, nil
}

func primIsPair(v *Value) (*Value, error) {
	return Boolean(v.Type == TPair), nil
}

func primIsNull(v *Value) (*Value, error) {
	return Boolean(v.Type == TNull), nil
}

// primIsList walks v with Floyd's two-pointer algorithm so a cyclic chain
// terminates and reports false rather than looping forever.
func primIsList(v *Value) (*Value, error) {
	slow, fast := v, v
	for {
		if fast.Type == TNull {
			return Boolean(true), nil
		}
		if fast.Type != TPair {
			return Boolean(false), nil
		}
		fast = fast.Cdr
		if fast.Type == TNull {
			return Boolean(true), nil
		}
		if fast.Type != TPair {
			return Boolean(false), nil
		}
		fast = fast.Cdr
		slow = slow.Cdr
		if fast == slow {
			return Boolean(false), nil
		}
	}
}

// primEq implements eq?: structural equality for integers, booleans,
// symbols, null and void; identity (pointer equality) otherwise, notably
// for rationals, pairs, strings and procedures.
func primEq(a, b *Value) (*Value, error) {
	if a.Type != b.Type {
		return Boolean(false), nil
	}
	switch a.Type {
	case TInteger:
		return Boolean(a.Int == b.Int), nil
	case TBoolean:
		return Boolean(a.Bool == b.Bool), nil
	case TSymbol:
		return Boolean(a.Sym == b.Sym), nil
	case TNull, TVoid:
		return Boolean(true), nil
	default:
		return Boolean(a == b), nil
	}
}

// listToSlice converts a proper-list Value into its elements. It is used
// to spread the single rest-parameter a synthesized variadic primitive
// procedure collects its arguments into.
func listToSlice(v *Value) ([]*Value, error) {
	var out []*Value
	for v.Type == TPair {
		out = append(out, v.Car)
		v = v.Cdr
	}
	if v.Type != TNull {
		return nil, Errorf(CategoryTypeError, "expected a proper list")
	}
	return out, nil
}

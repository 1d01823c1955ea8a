package lisp

import "testing"

func TestPrimIsListCyclic(t *testing.T) {
	a := Cons(Integer(1), Null())
	b := Cons(Integer(2), a)
	a.Cdr = b // a -> b -> a, a cycle

	v, err := primIsList(b)
	if err != nil {
		t.Fatal(err)
	}
	if v.Bool {
		t.Errorf("a cyclic chain should not be list?")
	}
}

func TestPrimIsListProper(t *testing.T) {
	lst, _ := primList([]*Value{Integer(1), Integer(2), Integer(3)})
	v, err := primIsList(lst)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool {
		t.Errorf("a proper list should be list?")
	}
}

func TestPrimIsListImproper(t *testing.T) {
	v, err := primIsList(Cons(Integer(1), Integer(2)))
	if err != nil {
		t.Fatal(err)
	}
	if v.Bool {
		t.Errorf("a dotted pair should not be list?")
	}
}

func TestPrimCarTypeError(t *testing.T) {
	if _, err := primCar(Integer(5)); err == nil {
		t.Fatal("expected a type error for (car 5)")
	}
}

func TestPrimSetCarMutatesInPlace(t *testing.T) {
	pair := Cons(Integer(1), Integer(2))
	if _, err := primSetCar(pair, Integer(9)); err != nil {
		t.Fatal(err)
	}
	if pair.Car.Int != 9 {
		t.Errorf("set-car! did not mutate, got %d", pair.Car.Int)
	}
}

func TestPrimEqStructuralForAtoms(t *testing.T) {
	v, _ := primEq(Integer(3), Integer(3))
	if !v.Bool {
		t.Errorf("eq? on equal integers should be true")
	}
}

func TestPrimEqIdentityForPairs(t *testing.T) {
	p1 := Cons(Integer(1), Integer(2))
	p2 := Cons(Integer(1), Integer(2))
	v, _ := primEq(p1, p2)
	if v.Bool {
		t.Errorf("eq? on structurally-equal but distinct pairs should be false")
	}
	v2, _ := primEq(p1, p1)
	if !v2.Bool {
		t.Errorf("eq? on the same pair should be true")
	}
}

func TestListToSliceRejectsImproperList(t *testing.T) {
	if _, err := listToSlice(Cons(Integer(1), Integer(2))); err == nil {
		t.Fatal("expected an error converting an improper list")
	}
}

package lisp

import "testing"

func TestMulOverflows(t *testing.T) {
	if _, ok := mulOverflows(3, 4); !ok {
		t.Errorf("3*4 should not overflow")
	}
	if _, ok := mulOverflows(0, 1<<62); !ok {
		t.Errorf("anything times 0 should not overflow")
	}
	if _, ok := mulOverflows(1<<40, 1<<40); ok {
		t.Errorf("2^40 * 2^40 should overflow an int64")
	}
}

func TestPrimExptBasic(t *testing.T) {
	v, err := primExpt(Integer(2), Integer(10))
	if err != nil {
		t.Fatal(err)
	}
	if v.Int != 1024 {
		t.Errorf("2^10 = %d, want 1024", v.Int)
	}
}

func TestPrimExptZeroExponent(t *testing.T) {
	v, err := primExpt(Integer(5), Integer(0))
	if err != nil {
		t.Fatal(err)
	}
	if v.Int != 1 {
		t.Errorf("5^0 = %d, want 1", v.Int)
	}
}

func TestPrimExptRejectsZeroToTheZero(t *testing.T) {
	if _, err := primExpt(Integer(0), Integer(0)); err == nil {
		t.Fatal("expected an error for 0^0")
	}
}

func TestPrimExptRejectsNegativeExponent(t *testing.T) {
	if _, err := primExpt(Integer(2), Integer(-1)); err == nil {
		t.Fatal("expected an error for a negative exponent")
	}
}

func TestPrimExptOverflow(t *testing.T) {
	if _, err := primExpt(Integer(2), Integer(63)); err == nil {
		t.Fatal("expected an overflow error for 2^63")
	}
}

func TestPrimModuloByZero(t *testing.T) {
	if _, err := primModulo(Integer(5), Integer(0)); err == nil {
		t.Fatal("expected a division-by-zero error")
	}
}

func TestChainCompareRequiresTwoArgs(t *testing.T) {
	if _, err := primLess([]*Value{Integer(1)}); err == nil {
		t.Fatal("expected an arity error for a single argument")
	}
}

func TestPrimDivByZero(t *testing.T) {
	if _, err := primDiv([]*Value{Integer(1), Integer(0)}); err == nil {
		t.Fatal("expected a division-by-zero error")
	}
}

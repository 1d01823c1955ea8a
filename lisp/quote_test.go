package lisp

import "testing"

func sym(name string) *Syntax { return NewSymbol(name) }
func num(n int64) *Syntax     { return NewInteger(n) }

func TestQuoteToValueDottedPair(t *testing.T) {
	s := NewList([]*Syntax{num(1), sym("."), num(2)})
	v, err := quoteToValue(s)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "(1 . 2)" {
		t.Errorf("got %s, want (1 . 2)", v.String())
	}
}

func TestQuoteToValueProperList(t *testing.T) {
	s := NewList([]*Syntax{num(1), num(2), num(3)})
	v, err := quoteToValue(s)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "(1 2 3)" {
		t.Errorf("got %s, want (1 2 3)", v.String())
	}
}

func TestQuoteToValueRejectsMultipleDots(t *testing.T) {
	s := NewList([]*Syntax{num(1), sym("."), num(2), sym("."), num(3)})
	if _, err := quoteToValue(s); err == nil {
		t.Fatal("expected a malformed-quote error for more than one '.'")
	}
}

func TestQuoteToValueRejectsMisplacedDot(t *testing.T) {
	s := NewList([]*Syntax{sym("."), num(1), num(2)})
	if _, err := quoteToValue(s); err == nil {
		t.Fatal("expected a malformed-quote error for a leading '.'")
	}
}

func TestQuoteToValueEmptyList(t *testing.T) {
	s := NewList(nil)
	v, err := quoteToValue(s)
	if err != nil {
		t.Fatal(err)
	}
	if v.Type != TNull {
		t.Errorf("got %s, want null", v.String())
	}
}

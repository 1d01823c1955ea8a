package lisp

import "testing"

func TestExtendShadowsWithoutMutating(t *testing.T) {
	base := Extend("x", Integer(1), Empty())
	shadowed := Extend("x", Integer(2), base)

	if v, _ := Find("x", shadowed); v.Int != 2 {
		t.Errorf("inner frame should win, got %d", v.Int)
	}
	if v, _ := Find("x", base); v.Int != 1 {
		t.Errorf("Extend must not mutate the base chain, got %d", v.Int)
	}
}

func TestFindUnbound(t *testing.T) {
	if _, ok := Find("nope", Empty()); ok {
		t.Errorf("expected nope to be unbound in the empty environment")
	}
}

func TestModifyUpdatesInnermostFrame(t *testing.T) {
	outer := Extend("x", Integer(1), Empty())
	inner := Extend("x", Integer(2), outer)

	Modify("x", Integer(9), inner)

	if v, _ := Find("x", inner); v.Int != 9 {
		t.Errorf("Modify should update the innermost x, got %d", v.Int)
	}
	if v, _ := Find("x", outer); v.Int != 1 {
		t.Errorf("Modify must not reach past the innermost matching frame, got %d", v.Int)
	}
}

func TestModifyOnUnboundNameIsNoOp(t *testing.T) {
	env := Extend("x", Integer(1), Empty())
	Modify("y", Integer(5), env)
	if _, ok := Find("y", env); ok {
		t.Errorf("Modify must not create a binding that Extend never established")
	}
}

func TestIsBound(t *testing.T) {
	env := Extend("x", Integer(1), Empty())
	if !IsBound("x", env) {
		t.Errorf("x should be bound")
	}
	if IsBound("y", env) {
		t.Errorf("y should not be bound")
	}
}

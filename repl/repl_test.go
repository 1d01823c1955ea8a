package repl

import (
	"testing"

	"github.com/kschem/scm/lisp"
	"github.com/kschem/scm/parser"
)

func parseExpr(t *testing.T, src string) *lisp.Expr {
	t.Helper()
	forms, err := parser.ReadAll([]byte(src))
	if err != nil {
		t.Fatalf("ReadAll(%q): %v", src, err)
	}
	if len(forms) != 1 {
		t.Fatalf("ReadAll(%q): expected one form, got %d", src, len(forms))
	}
	expr, err := parser.Parse(forms[0], lisp.Empty())
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return expr
}

func TestIsExplicitVoidCallDirect(t *testing.T) {
	if !isExplicitVoidCall(parseExpr(t, "(void)")) {
		t.Errorf("(void) should be recognized as an explicit void call")
	}
	if !isExplicitVoidCall(parseExpr(t, "(void 1 2)")) {
		t.Errorf("(void 1 2) should be recognized as an explicit void call")
	}
}

func TestIsExplicitVoidCallThroughBeginTail(t *testing.T) {
	if !isExplicitVoidCall(parseExpr(t, "(begin 1 (void))")) {
		t.Errorf("a trailing (void) inside begin should be recognized")
	}
	if isExplicitVoidCall(parseExpr(t, "(begin (void) 1)")) {
		t.Errorf("a non-trailing (void) inside begin should not be recognized")
	}
}

func TestIsExplicitVoidCallThroughIfBranches(t *testing.T) {
	if !isExplicitVoidCall(parseExpr(t, "(if #t (void) 1)")) {
		t.Errorf("an if-then tail of (void) should be recognized")
	}
	if !isExplicitVoidCall(parseExpr(t, "(if #t 1 (void))")) {
		t.Errorf("an if-else tail of (void) should be recognized")
	}
}

func TestIsExplicitVoidCallFalseForOrdinaryValue(t *testing.T) {
	if isExplicitVoidCall(parseExpr(t, "(+ 1 2)")) {
		t.Errorf("an ordinary expression should not be an explicit void call")
	}
}

func TestIsDisplayCallDirect(t *testing.T) {
	if !isDisplayCall(parseExpr(t, `(display "x")`)) {
		t.Errorf("(display \"x\") should be recognized as a display call")
	}
}

func TestIsDisplayCallThroughCondTail(t *testing.T) {
	expr := parseExpr(t, `(cond (#t (display "x")) (else 1))`)
	if !isDisplayCall(expr) {
		t.Errorf("a cond clause tail of (display ...) should be recognized")
	}
}

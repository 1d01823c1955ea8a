package lisp_test

import (
	"testing"

	"github.com/kschem/scm/schemetest"
)

// TestEndToEndScenarios exercises the concrete end-to-end scenarios a
// reader would expect an implementation of this language to satisfy:
// arithmetic, exact rationals, recursion through define, mutual recursion
// through letrec, mutation via set-car!, and shadowing of a primitive
// name by a user binding.
func TestEndToEndScenarios(t *testing.T) {
	tests := schemetest.TestSuite{
		{"arithmetic", schemetest.TestSequence{
			{Expr: `(+ 1 2 3)`, Result: "6"},
			{Expr: `(+)`, Result: "0"},
			{Expr: `(*)`, Result: "1"},
			{Expr: `(- 5)`, Result: "-5"},
			{Expr: `(- 5 2 1)`, Result: "2"},
			{Expr: `(/ 2)`, Result: "1/2"},
		}},
		{"rationals", schemetest.TestSequence{
			{Expr: `(/ 1 2)`, Result: "1/2"},
			{Expr: `(+ 1/2 1/3)`, Result: "5/6"},
			{Expr: `(* 6 1/2)`, Result: "3"},
			{Expr: `(- 1/2 1/2)`, Result: "0"},
		}},
		{"factorial", schemetest.TestSequence{
			{Expr: `(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))`, Result: "#<void>"},
			{Expr: `(fact 5)`, Result: "120"},
		}},
		{"mutual-recursion-letrec", schemetest.TestSequence{
			{
				Expr: `(letrec ((even? (lambda (n) (if (= n 0) #t (odd? (- n 1)))))
				          (odd? (lambda (n) (if (= n 0) #f (even? (- n 1))))))
				         (even? 10))`,
				Result: "#t",
			},
		}},
		{"mutate-pair", schemetest.TestSequence{
			{Expr: `(define p (cons 1 2))`, Result: "#<void>"},
			{Expr: `(set-car! p 9)`, Result: "#<void>"},
			{Expr: `p`, Result: "(9 . 2)"},
		}},
		{"shadow-primitive", schemetest.TestSequence{
			{Expr: `(define + (lambda (a b) (cons a b)))`, Result: "#<void>"},
			{Expr: `(+ 1 2)`, Result: "(1 . 2)"},
		}},
		{"runtime-error", schemetest.TestSequence{
			{Expr: `(car '())`, Result: "RuntimeError"},
		}},
		{"cond", schemetest.TestSequence{
			{Expr: `(cond (#f 1) (#f 2) (else 3))`, Result: "3"},
			{Expr: `(cond (#f 1))`, Result: "#<void>"},
			{Expr: `(cond (5))`, Result: "5"},
		}},
		{"and-or", schemetest.TestSequence{
			{Expr: `(and)`, Result: "#t"},
			{Expr: `(and 1 2 #f 3)`, Result: "#f"},
			{Expr: `(and 1 2 3)`, Result: "3"},
			{Expr: `(or)`, Result: "#f"},
			{Expr: `(or #f #f 5)`, Result: "5"},
		}},
		{"let-vs-letrec-scope", schemetest.TestSequence{
			{Expr: `(let ((x 1) (y 2)) (+ x y))`, Result: "3"},
			{Expr: `(define x 10)`, Result: "#<void>"},
			{Expr: `(let ((x 1) (y x)) y)`, Result: "10"}, // let binds y against the OUTER x
		}},
		{"variadic-lambda", schemetest.TestSequence{
			{Expr: `(define (collect args ...) args)`, Result: "#<void>"},
			{Expr: `(collect 1 2 3)`, Result: "(1 2 3)"},
			{Expr: `(collect)`, Result: "()"},
		}},
		{"primitive-as-value", schemetest.TestSequence{
			{Expr: `(define add +)`, Result: "#<void>"},
			{Expr: `(add 1 2 3)`, Result: "6"},
		}},
		{"quote", schemetest.TestSequence{
			{Expr: `(quote (1 2 3))`, Result: "(1 2 3)"},
			{Expr: `(quote (1 . 2))`, Result: "(1 . 2)"},
			{Expr: `(quote ())`, Result: "()"},
			{Expr: `(quote a)`, Result: "a"},
			{Expr: `'(a b c)`, Result: "(a b c)"},
		}},
		{"display", schemetest.TestSequence{
			{Expr: `(display "hi")`, Result: "#<void>", Output: "hi"},
			{Expr: `(display 42)`, Result: "#<void>", Output: "42"},
		}},
		{"list-predicates", schemetest.TestSequence{
			{Expr: `(pair? (cons 1 2))`, Result: "#t"},
			{Expr: `(null? '())`, Result: "#t"},
			{Expr: `(list? (list 1 2 3))`, Result: "#t"},
			{Expr: `(list? (cons 1 2))`, Result: "#f"},
			{Expr: `(eq? 1 1)`, Result: "#t"},
			{Expr: `(eq? "a" "a")`, Result: "#f"},
		}},
	}
	schemetest.RunTestSuite(t, tests)
}

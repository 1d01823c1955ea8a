/*
Package parser turns program text into expression trees the evaluator can
walk, in two steps: reading (this file) recognizes concrete syntax — S-
expressions, numbers, strings, symbols — into the language-neutral syntax
tree defined by the lisp package; parsing (parser.go) resolves that tree
against an environment into expression-tree nodes.

	expr    := '(' <expr>* ')' | <quote> | <atom>
	quote   := '\'' <expr>
	atom    := <number> | <string> | <boolean> | <symbol>
	number  := /[+-]?[0-9]+/ ('/' /[0-9]+/)?
	string  := '"' <strcontent> '"'
	boolean := '#t' | '#f'
	symbol  := (<letter> | /[_+\-*\/=<>!&~%?.]/) (<letter> | <digit> | /[_+\-*\/=<>!&~%?.]/)*
*/
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kschem/scm/lisp"
	parsec "github.com/prataprc/goparsec"
)

type readNodeType uint

const (
	nodeInvalid readNodeType = iota
	nodeTerm
	nodeList
	nodeQuote
)

var readNodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeList:    "LIST",
	nodeQuote:   "QUOTE",
}

func (t readNodeType) String() string {
	if int(t) >= len(readNodeTypeStrings) {
		return "INVALID"
	}
	return readNodeTypeStrings[t]
}

// ReadAll reads every top-level syntax tree out of text. It is the sole
// external collaborator the evaluator core assumes delivers well-formed
// nodes.
func ReadAll(text []byte) ([]*lisp.Syntax, error) {
	s := parsec.NewScanner(text)
	read := newReadParser()
	var out []*lisp.Syntax
	root, rest := read(s)
	for root != nil {
		if sx := getSyntax(root); sx != nil {
			out = append(out, sx)
		}
		root, rest = read(rest)
	}
	if !rest.Endof() {
		return out, io.ErrUnexpectedEOF
	}
	return out, nil
}

func newReadParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	quoteAtom := parsec.Atom("'", "QUOTEATOM")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	number := parsec.Token(`[+-]?[0-9]+(/[0-9]+)?`, "NUMBER")
	boolean := parsec.Token(`#t|#f`, "BOOLEAN")
	symbol := parsec.Token(`(?:\pL|[_+\-*/=<>!&~%?.])(?:\pL|[0-9]|[_+\-*/=<>!&~%?.])*`, "SYMBOL")
	term := parsec.OrdChoice(readAST(nodeTerm),
		parsec.String(),
		number,
		boolean,
		symbol, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(readAST(nodeList), openP, exprList, closeP)
	quote := parsec.And(readAST(nodeQuote), quoteAtom, &expr)
	expr = parsec.OrdChoice(nil, comment, term, list, quote)
	return expr
}

func readAST(t readNodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return buildSyntax(t, cleanNodes(nodes))
	}
}

func buildSyntax(t readNodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	switch t {
	case nodeTerm:
		return termToSyntax(nodes[0])
	case nodeList:
		var elems []*lisp.Syntax
		for _, n := range nodes {
			if sx, ok := n.(*lisp.Syntax); ok {
				elems = append(elems, sx)
			}
		}
		return lisp.NewList(elems)
	case nodeQuote:
		// nodes[0] is the quote-atom terminal; the quoted form follows it.
		for _, n := range nodes {
			if quoted, ok := n.(*lisp.Syntax); ok {
				return lisp.NewList([]*lisp.Syntax{lisp.NewSymbol("quote"), quoted})
			}
		}
		return nil
	default:
		panic(fmt.Sprintf("parser: unknown read node type: %s (%d)", t, t))
	}
}

func termToSyntax(node parsec.ParsecNode) *lisp.Syntax {
	switch term := node.(type) {
	case string:
		return lisp.NewString(unquoteString(term))
	case *parsec.Terminal:
		switch term.Name {
		case "NUMBER":
			return numberToSyntax(term.Value)
		case "BOOLEAN":
			return lisp.NewBoolean(term.Value == "#t")
		case "SYMBOL":
			return lisp.NewSymbol(term.Value)
		}
	}
	return nil
}

func numberToSyntax(text string) *lisp.Syntax {
	if i := strings.IndexByte(text, '/'); i >= 0 {
		num, errNum := strconv.ParseInt(text[:i], 10, 64)
		den, errDen := strconv.ParseInt(text[i+1:], 10, 64)
		if errNum != nil || errDen != nil {
			return lisp.NewSymbol(text)
		}
		return lisp.NewRational(num, den)
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return lisp.NewSymbol(text)
	}
	return lisp.NewInteger(n)
}

// cleanNodes flattens the slices-of-nodes Kleene and And produce. It keeps
// every entry, terminals and comments included; callers pick out the
// *lisp.Syntax values they need.
func cleanNodes(nodes []parsec.ParsecNode) []parsec.ParsecNode {
	var out []parsec.ParsecNode
	for _, n := range nodes {
		switch v := n.(type) {
		case []parsec.ParsecNode:
			out = append(out, cleanNodes(v)...)
		default:
			out = append(out, v)
		}
	}
	return out
}

// getSyntax extracts the *lisp.Syntax a top-level read produced, or nil if
// the line held only whitespace or a comment.
func getSyntax(root parsec.ParsecNode) *lisp.Syntax {
	nodes := cleanNodes([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		return nil
	}
	sx, _ := nodes[0].(*lisp.Syntax)
	return sx
}

func unquoteString(s string) string {
	return s[1 : len(s)-1]
}

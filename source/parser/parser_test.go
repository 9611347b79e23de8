package parser_test

import (
	"errors"
	"testing"

	"github.com/tim-hardcastle/lair/source/ast"
	"github.com/tim-hardcastle/lair/source/err"
	"github.com/tim-hardcastle/lair/source/lexer"
	"github.com/tim-hardcastle/lair/source/parser"
	"github.com/tim-hardcastle/lair/source/test_helper"
	"github.com/tim-hardcastle/lair/source/token"
)

func TestParser(t *testing.T) {
	tests := []test_helper.TestItem{
		{``, ``},
		{`print 1`, "(print 1)\n"},
		{`print + 1 2`, "(print (+ 1 2))\n"},
		{`print "hi"`, "(print \"hi\")\n"},
		{`concat "a" "b"`, "(concat \"a\" \"b\")\n"},
		{`print + 1 * 2 3`, "(print (+ 1 (* 2 3)))\n"},
		{`42`, "42\n"},
		{"print 1\nprint 2\n", "(print 1)\n(print 2)\n"},
		{"five\n    return 5\nprint five\n", "def five :\n    return 5\n(print (five))\n"},
		{"double x\n    print x\n    return x\n", "def double x :\n    (print x)\n    return x\n"},
		{"outer\n    inner\n        return 1\n    print 2\nprint 3\n",
			"def outer :\n    def inner :\n        return 1\n    (print 2)\n(print 3)\n"},
	}
	test_helper.RunTest(t, tests, testParserOutput)
}

func TestParserErrors(t *testing.T) {
	tests := []test_helper.TestItem{
		{"a\n    b\n  c\n", "parse/dedent"},
		{"\"hello\"\n    print 1\n", "parse/indent"},
		{"return 5\n    print 1\n", "parse/indent"},
		{"f 1\n    return 2\n", "parse/def/args"},
		{"f\n    return\n", "parse/return"},
		{`1 2`, "parse/line"},
		{`print return`, "parse/line"},
		{"return 1 2", "parse/line"},
		{"return 1 print 2\n", "parse/line"},
		{"f\n    return 1 print 9\nprint f\n", "parse/line"},
	}
	test_helper.RunTest(t, tests, testParserOutput)
}

func TestDefinitionLinks(t *testing.T) {
	f, e := parseString("double x y\n    print x\n    return y\n")
	if e != nil {
		t.Fatal(e)
	}
	def := f.Root
	if f.Node(def).Kind() != token.Function {
		t.Fatalf("Root is %v, wanted a function", f.Node(def).Kind())
	}
	params, body := f.Parameters(def)
	if len(params) != 2 || f.Node(params[1]).Atom.String() != "y" {
		t.Fatalf("Wanted parameters x y, got %v", params)
	}
	if body != f.Node(def).Children {
		t.Fatalf("The Next chain doesn't reach the first statement of the body")
	}
	body = f.Node(body).Sibling
	if f.Node(body).Kind() != token.Return || f.Node(body).Sibling != ast.None {
		t.Fatalf("Wanted the return as the last statement of the body")
	}
	if f.Node(def).Sibling != ast.None {
		t.Fatalf("Definition has a sibling")
	}
}

func TestParseConsumesStream(t *testing.T) {
	ts, _ := lexer.Tokenize([]byte("print 1\nprint 2\n"))
	if _, e := parser.Parse(ts); e != nil {
		t.Fatal(e)
	}
	if !ts.Empty() {
		t.Fatalf("Wanted the stream to be used up, %d tokens left", ts.Len())
	}
	ts, _ = lexer.Tokenize([]byte("1 2\nprint 3\n"))
	if _, e := parser.Parse(ts); e == nil {
		t.Fatalf("Wanted an error")
	}
	if ts.Peek() == nil || ts.Peek().Kind != token.Dedent {
		t.Fatalf("Wanted the stream to stop after the bad token")
	}
}

// Streams the lexer never produces.
func TestMalformedStreams(t *testing.T) {
	tests := []struct {
		toks []*token.Token
		id   string
	}{
		{[]*token.Token{
			{Kind: token.FunctionArg, Literal: "x", Line: 1},
			{Kind: token.Dedent, Line: 1},
			{Kind: token.Eof, Line: 1},
		}, "parse/start"},
		{[]*token.Token{
			{Kind: token.Function, Literal: "f", Line: 1},
			{Kind: token.Dedent, Line: 1},
			{Kind: token.Eof, Line: 1},
		}, "parse/def/empty"},
		{[]*token.Token{
			{Kind: token.Function, Literal: "f", Line: 1},
			{Kind: token.Dedent, Line: 1},
		}, "parse/def/empty"},
		{[]*token.Token{
			{Kind: token.Eof, Line: 1},
			{Kind: token.Atom, Literal: "print", Line: 2},
		}, "parse/eof"},
	}
	for i, test := range tests {
		ts := token.NewStream()
		for _, tok := range test.toks {
			ts.Append(tok)
		}
		_, e := parser.Parse(ts)
		if err.Id(e) != test.id {
			t.Fatalf("tests[%d] - Wanted : %s | Got : %v", i, test.id, e)
		}
		if !errors.Is(e, err.ErrParse) {
			t.Fatalf("tests[%d] - Wanted a parse error", i)
		}
	}
}

func TestStreamWithoutEof(t *testing.T) {
	ts := token.NewStream()
	ts.Append(&token.Token{Kind: token.Atom, Literal: "print", Line: 1})
	ts.Append(&token.Token{Kind: token.Number, Literal: "1", Line: 1})
	f, e := parser.Parse(ts)
	if e != nil {
		t.Fatal(e)
	}
	if got := f.String(); got != "(print 1)\n" {
		t.Fatalf("Wanted : (print 1) | Got : %s", got)
	}
}

func parseString(s string) (*ast.Forest, error) {
	ts, e := lexer.Tokenize([]byte(s))
	if e != nil {
		return nil, e
	}
	return parser.Parse(ts)
}

func testParserOutput(s string) (string, error) {
	f, e := parseString(s)
	if e != nil {
		return "", e
	}
	return f.String(), nil
}

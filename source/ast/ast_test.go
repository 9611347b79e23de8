package ast

import (
	"testing"

	"github.com/tim-hardcastle/lair/source/token"
	"github.com/tim-hardcastle/lair/source/values"
)

// Builds 'print + 1 2' by hand.
func printSum(f *Forest) Handle {
	call := f.Add(values.Str(token.Call, "print"), 1)
	callee := f.Add(values.Str(token.Atom, "print"), 1)
	inner := f.Add(values.Str(token.Call, "+"), 1)
	plus := f.Add(values.Str(token.Operator, "+"), 1)
	one := f.Add(values.Int(token.Number, 1), 1)
	two := f.Add(values.Int(token.Number, 2), 1)
	f.SetNext(call, callee)
	f.SetNext(callee, inner)
	f.SetNext(inner, plus)
	f.SetNext(plus, one)
	f.SetNext(one, two)
	return call
}

func TestArena(t *testing.T) {
	f := NewForest()
	if f.Root != None || len(f.TopLevel()) != 0 {
		t.Fatalf("New forest isn't empty")
	}
	h := f.Add(values.Int(token.Number, 5), 3)
	n := f.Node(h)
	if n.Children != None || n.Sibling != None || n.Next != None || n.Line != 3 || n.Kind() != token.Number {
		t.Fatalf("New node badly initialized: %+v", n)
	}
	if !f.Valid(h) || f.Valid(h+1) || f.Valid(None) {
		t.Fatalf("Valid is wrong")
	}
}

func TestSettingLinksDoesNotAffectEarlierCopies(t *testing.T) {
	f := NewForest()
	a := f.Add(values.Str(token.Atom, "a"), 1)
	b := f.Add(values.Str(token.Atom, "b"), 1)
	snapshot := *f
	f.SetNext(a, b)
	if snapshot.Node(a).Next != None {
		t.Fatalf("Snapshot of the forest was mutated")
	}
	if f.Node(a).Next != b {
		t.Fatalf("Link not set")
	}
}

func TestArgumentsStopAtNestedCall(t *testing.T) {
	f := NewForest()
	call := printSum(f)
	args := f.Arguments(call)
	if len(args) != 1 || f.Node(args[0]).Kind() != token.Call {
		t.Fatalf("Wanted one nested call as argument, got %v", args)
	}
	inner := f.Arguments(args[0])
	if len(inner) != 2 || f.Node(inner[1]).Atom.String() != "2" {
		t.Fatalf("Wanted the two numbers as arguments of +, got %v", inner)
	}
}

func TestString(t *testing.T) {
	f := NewForest()
	def := f.Add(values.Str(token.Function, "f"), 1)
	param := f.Add(values.Str(token.FunctionArg, "x"), 1)
	ret := f.Add(values.Str(token.Return, "return"), 2)
	five := f.Add(values.Str(token.String, "five"), 2)
	f.SetNext(def, param)
	f.SetNext(param, ret)
	f.SetChildren(def, ret)
	f.SetNext(ret, five)
	call := printSum(f)
	f.Root = def
	f.SetSibling(def, call)
	want := "def f x :\n    return \"five\"\n(print (+ 1 2))\n"
	if got := f.String(); got != want {
		t.Fatalf("Wanted : %q | Got : %q", want, got)
	}
	params, body := f.Parameters(def)
	if len(params) != 1 || body != ret {
		t.Fatalf("Parameters didn't find the body")
	}
}

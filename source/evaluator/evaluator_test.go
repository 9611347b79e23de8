package evaluator_test

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/tim-hardcastle/lair/source/ast"
	"github.com/tim-hardcastle/lair/source/err"
	"github.com/tim-hardcastle/lair/source/evaluator"
	"github.com/tim-hardcastle/lair/source/lexer"
	"github.com/tim-hardcastle/lair/source/parser"
	"github.com/tim-hardcastle/lair/source/settings"
	"github.com/tim-hardcastle/lair/source/test_helper"
	"github.com/tim-hardcastle/lair/source/token"
	"github.com/tim-hardcastle/lair/source/values"
)

func TestEvaluator(t *testing.T) {
	tests := []test_helper.TestItem{
		{`print 1`, "1\n"},
		{"print 1\nprint 2\nprint \"three\"\n", "1\n2\nthree\n"},
		{`print + 1 2`, "3\n"},
		{`print * 2 - 5 1`, "8\n"},
		{`print concat "a" "b"`, "ab\n"},
		{"five\n    return 5\nprint five\n", "5\n"},
		{"greet\n    print \"hi\"\n    return 1\n    print \"no\"\nprint greet\n", "hi\n1\n"},
		{"last\n    + 1 2\nprint last\n", "3\n"},
		{`42`, ""},
		{`"hello"`, ""},
		{"five\n    return 5\n", ""},
	}
	test_helper.RunTest(t, tests, runWith(allBuiltins()))
}

func TestEvaluatorErrors(t *testing.T) {
	tests := []test_helper.TestItem{
		{`foo 1`, "eval/undefined"},
		{`print 1 2`, "eval/arity"},
		{`print print`, "eval/arity"},
		{"five\n    return 5\nprint five 1\n", "eval/arity"},
		{`print + 1 "a"`, "eval/type"},
		{`print concat "a" 1`, "eval/type"},
		{`print + 9223372036854775807 1`, "eval/overflow"},
		{`print * 4611686018427387904 2`, "eval/overflow"},
		{`print - 0 + 1 9223372036854775807`, "eval/overflow"},
		{"double x\n    return x\nprint double 2\n", "eval/unsupported/args"},
		{"f\n    return + 1 2\nprint f\n", "eval/unsupported/return"},
		{"outer\n    inner\n        return 1\n    return 2\nprint outer\n", "eval/unsupported/nested"},
	}
	test_helper.RunTest(t, tests, runWith(allBuiltins()))
}

func TestPrintOneScenario(t *testing.T) {
	ts, e := lexer.Tokenize([]byte("print 1"))
	if e != nil {
		t.Fatal(e)
	}
	wantKinds := []token.Kind{token.Atom, token.Number, token.Dedent, token.Eof}
	if !slices.Equal(ts.Kinds(), wantKinds) {
		t.Fatalf("Wanted : %v | Got : %v", wantKinds, ts.Kinds())
	}
	f, e := parser.Parse(ts)
	if e != nil {
		t.Fatal(e)
	}
	if len(f.TopLevel()) != 1 || f.Node(f.Root).Kind() != token.Call {
		t.Fatalf("Wanted a single top-level call")
	}
	args := f.Arguments(f.Root)
	if len(args) != 1 || f.Node(args[0]).Atom != values.Int(token.Number, 1) {
		t.Fatalf("Wanted the call chained to the number 1")
	}
	env := evaluator.NewEnvironment(nil, settings.NativeFirst)
	var got []values.Value
	env.RegisterNative("print", 1, func(env *evaluator.Environment, args []values.Value) (values.Value, error) {
		got = append(got, args...)
		return args[0], nil
	})
	if e := evaluator.Run(f, env); e != nil {
		t.Fatal(e)
	}
	if len(got) != 1 || got[0].String() != "1" {
		t.Fatalf("Wanted print to be called once with 1, got %v", got)
	}
	out := &bytes.Buffer{}
	if _, e := runSource("print 1", settings.DefaultConfig(), out); e != nil || out.String() != "1\n" {
		t.Fatalf("Wanted : 1 | Got : %q, %v", out.String(), e)
	}
}

func TestCallsHappenInSourceOrder(t *testing.T) {
	env, calls := recordingEnvironment()
	if e := runIn("a 1\nb 2\na 3\n", env); e != nil {
		t.Fatal(e)
	}
	want := []string{"a 1", "b 2", "a 3"}
	if !slices.Equal(*calls, want) {
		t.Fatalf("Wanted : %v | Got : %v", want, *calls)
	}
}

func TestDefinitionIsOnlyEvaluatedWhenCalled(t *testing.T) {
	env, calls := recordingEnvironment()
	if e := runIn("f\n    tick\na 1\n", env); e != nil {
		t.Fatal(e)
	}
	if !slices.Equal(*calls, []string{"a 1"}) {
		t.Fatalf("Body was evaluated at definition time: %v", *calls)
	}
	if _, ok := env.LookupUserFunction("f"); !ok {
		t.Fatalf("f wasn't registered")
	}
	if e := runIn("a 2\nf\nb 3\n", env); e != nil {
		t.Fatal(e)
	}
	want := []string{"a 1", "a 2", "tick", "b 3"}
	if !slices.Equal(*calls, want) {
		t.Fatalf("Wanted : %v | Got : %v", want, *calls)
	}
}

func TestUndefinedLeavesNoState(t *testing.T) {
	env, calls := recordingEnvironment()
	natives := env.NativeNames()
	e := runIn("foo tick\n", env)
	if !errors.Is(e, err.ErrUndefined) {
		t.Fatalf("Wanted an undefined function error, got %v", e)
	}
	if len(*calls) != 0 {
		t.Fatalf("Arguments were evaluated: %v", *calls)
	}
	if len(env.UserNames()) != 0 || !slices.Equal(env.NativeNames(), natives) {
		t.Fatalf("The environment changed")
	}
}

func TestRegisterNativeTwice(t *testing.T) {
	env := evaluator.NewEnvironment(nil, settings.NativeFirst)
	first, e := env.RegisterNative("f", 1, nil)
	if e != nil {
		t.Fatal(e)
	}
	second, e := env.RegisterNative("f", 2, nil)
	if second != nil || !errors.Is(e, err.ErrDuplicate) || err.Id(e) != "env/dup" {
		t.Fatalf("Wanted env/dup, got %v", e)
	}
	if got, _ := env.LookupNative("f"); got != first || got.Arity != 1 {
		t.Fatalf("First registration was changed")
	}
}

func TestCollisionPolicies(t *testing.T) {
	src := "concat\n    return \"mine\"\nprint concat\n"
	tests := []struct {
		policy settings.CollisionPolicy
		want   string
	}{
		{settings.NativeFirst, "eval/arity"},
		{settings.UserFirst, "mine\n"},
		{settings.Reject, "env/collision"},
	}
	for _, test := range tests {
		cfg := allBuiltins()
		cfg.Collision = test.policy
		test_helper.RunTest(t, []test_helper.TestItem{{src, test.want}}, runWith(cfg))
	}
}

func TestEvaluateAtoms(t *testing.T) {
	env, _ := recordingEnvironment()
	f := ast.NewForest()
	named := f.Add(values.Str(token.Atom, "tick"), 1)
	plain := f.Add(values.Str(token.Atom, "x"), 1)
	if _, e := evaluator.Evaluate(f, named, env); err.Id(e) != "eval/unsupported/atom" || !errors.Is(e, err.ErrNotSupported) {
		t.Fatalf("Wanted eval/unsupported/atom, got %v", e)
	}
	v, e := evaluator.Evaluate(f, plain, env)
	if e != nil || v != values.Str(token.Atom, "x") {
		t.Fatalf("Wanted the atom back, got %v, %v", v, e)
	}
	before := f.String()
	evaluator.Evaluate(f, named, env)
	if f.String() != before {
		t.Fatalf("Evaluation changed the forest")
	}
}

func TestStandardEnvironment(t *testing.T) {
	env, e := evaluator.StandardEnvironment(settings.DefaultConfig(), nil)
	if e != nil {
		t.Fatal(e)
	}
	if !slices.Equal(env.NativeNames(), []string{"+", "print"}) {
		t.Fatalf("Wanted + and print, got %v", env.NativeNames())
	}
	if plus, _ := env.LookupNative("+"); plus.Arity != 2 {
		t.Fatalf("+ should have arity 2")
	}
	cfg := settings.DefaultConfig()
	cfg.Builtins = []string{"print", "print"}
	if _, e := evaluator.StandardEnvironment(cfg, nil); err.Id(e) != "env/dup" {
		t.Fatalf("Wanted env/dup, got %v", e)
	}
}

// Every call to a recording builtin appends its name and argument to the list.
func recordingEnvironment() (*evaluator.Environment, *[]string) {
	calls := &[]string{}
	env := evaluator.NewEnvironment(&bytes.Buffer{}, settings.NativeFirst)
	for _, name := range []string{"a", "b"} {
		env.RegisterNative(name, 1, func(env *evaluator.Environment, args []values.Value) (values.Value, error) {
			*calls = append(*calls, name+" "+args[0].String())
			return args[0], nil
		})
	}
	env.RegisterNative("tick", 0, func(env *evaluator.Environment, args []values.Value) (values.Value, error) {
		*calls = append(*calls, "tick")
		return values.Int(token.Number, 0), nil
	})
	return env, calls
}

func allBuiltins() settings.Config {
	cfg := settings.DefaultConfig()
	cfg.Builtins = slices.Clone(settings.KnownBuiltins)
	return cfg
}

func runIn(src string, env *evaluator.Environment) error {
	ts, e := lexer.Tokenize([]byte(src))
	if e != nil {
		return e
	}
	f, e := parser.Parse(ts)
	if e != nil {
		return e
	}
	return evaluator.Run(f, env)
}

func runSource(src string, cfg settings.Config, out *bytes.Buffer) (string, error) {
	env, e := evaluator.StandardEnvironment(cfg, out)
	if e != nil {
		return "", e
	}
	if e := runIn(src, env); e != nil {
		return "", e
	}
	return out.String(), nil
}

func runWith(cfg settings.Config) func(string) (string, error) {
	return func(src string) (string, error) {
		return runSource(src, cfg, &bytes.Buffer{})
	}
}

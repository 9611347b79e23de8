package evaluator

import (
	"fmt"
	"math"

	"github.com/tim-hardcastle/lair/source/err"
	"github.com/tim-hardcastle/lair/source/token"
	"github.com/tim-hardcastle/lair/source/values"
)

// Builtins are the native functions a config can switch on.
var Builtins = map[string]*Function{
	"+":      {Name: "+", Arity: 2, Fn: arithmetic("+", add)},
	"-":      {Name: "-", Arity: 2, Fn: arithmetic("-", subtract)},
	"*":      {Name: "*", Arity: 2, Fn: arithmetic("*", multiply)},
	"concat": {Name: "concat", Arity: 2, Fn: concat},
	"print":  {Name: "print", Arity: 1, Fn: printValue},
}

// Each operation reports false if the result doesn't fit in an int.
func add(a, b int) (int, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subtract(a, b int) (int, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func multiply(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	return c, c/b == a && !(a == -1 && b == math.MinInt) && !(b == -1 && a == math.MinInt)
}

func arithmetic(name string, op func(a, b int) (int, bool)) NativeFunc {
	return func(env *Environment, args []values.Value) (values.Value, error) {
		a, ok := args[0].(values.Integer)
		if !ok {
			return nil, err.CreateErr("eval/type", nil, name, describe(args[0]))
		}
		b, ok := args[1].(values.Integer)
		if !ok {
			return nil, err.CreateErr("eval/type", nil, name, describe(args[1]))
		}
		result, ok := op(a.N, b.N)
		if !ok {
			return nil, err.CreateErr("eval/overflow", nil, name, a.N, b.N)
		}
		return values.Int(token.Number, result), nil
	}
}

func concat(env *Environment, args []values.Value) (values.Value, error) {
	a, ok := args[0].(values.Text)
	if !ok {
		return nil, err.CreateErr("eval/type", nil, "concat", describe(args[0]))
	}
	b, ok := args[1].(values.Text)
	if !ok {
		return nil, err.CreateErr("eval/type", nil, "concat", describe(args[1]))
	}
	return values.Str(token.String, a.S+b.S), nil
}

// printValue writes its argument and a newline, and returns the argument.
func printValue(env *Environment, args []values.Value) (values.Value, error) {
	if _, e := fmt.Fprintln(env.Out, args[0].String()); e != nil {
		return nil, e
	}
	return args[0], nil
}

func describe(v values.Value) string {
	switch v.(type) {
	case values.Integer:
		return "the integer " + v.String()
	case values.Text:
		return "the string " + values.Literal(values.Retag(v, token.String))
	}
	return "nothing"
}

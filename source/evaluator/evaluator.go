package evaluator

// This is a tree-walking evaluator over the forest made by the parser. It only reads the forest.

import (
	"errors"

	"github.com/tim-hardcastle/lair/source/ast"
	"github.com/tim-hardcastle/lair/source/err"
	"github.com/tim-hardcastle/lair/source/token"
	"github.com/tim-hardcastle/lair/source/values"
)

// Run evaluates a program. Top-level calls are evaluated in order for their effects, definitions
// are registered without evaluating their bodies, and anything else at the top level does nothing.
func Run(f *ast.Forest, env *Environment) error {
	for _, h := range f.TopLevel() {
		n := f.Node(h)
		switch n.Kind() {
		case token.Call:
			if _, e := Evaluate(f, h, env); e != nil {
				return e
			}
		case token.Function:
			if e := env.RegisterUserFunction(n.Atom.String(), f, h); e != nil {
				return e
			}
			env.log.WithField("line", n.Line).Debugf("defined %s", n.Atom.String())
		default:
			env.log.WithField("line", n.Line).Debugf("top-level %s has no effect", f.Expression(h))
		}
	}
	return nil
}

func Evaluate(f *ast.Forest, h ast.Handle, env *Environment) (values.Value, error) {
	n := f.Node(h)
	switch n.Kind() {

	case token.Call:
		return evalCall(f, h, env)

	case token.Atom:
		name := n.Atom.String()
		if native, user := env.Resolve(name); native != nil || user != nil {
			return nil, err.CreateErrAt("eval/unsupported/atom", n.Line, -1, name)
		}
		return n.Atom, nil

	case token.Return:
		if n.Next == ast.None {
			return nil, err.CreateErrAt("parse/return", n.Line, -1)
		}
		next := f.Node(n.Next)
		if next.Kind() == token.Call {
			return nil, err.CreateErrAt("eval/unsupported/return", n.Line, -1)
		}
		return next.Atom, nil

	case token.Function:
		return nil, err.CreateErrAt("eval/unsupported/nested", n.Line, -1, n.Atom.String())
	}

	return n.Atom, nil
}

func evalCall(f *ast.Forest, h ast.Handle, env *Environment) (values.Value, error) {
	n := f.Node(h)
	name := f.Node(f.Callee(h)).Atom.String()
	args := f.Arguments(h)
	native, user := env.Resolve(name)
	switch {

	case native != nil:
		if len(args) != native.Arity {
			return nil, err.CreateErrAt("eval/arity", n.Line, -1, name, native.Arity, len(args))
		}
		vals := make([]values.Value, 0, len(args))
		for _, arg := range args {
			v, e := Evaluate(f, arg, env)
			if e != nil {
				return nil, e
			}
			vals = append(vals, v)
		}
		env.log.WithField("line", n.Line).Debugf("calling builtin %s", name)
		result, e := native.Fn(env, vals)
		if e != nil {
			return nil, atLine(e, n.Line)
		}
		return result, nil

	case user != nil:
		env.log.WithField("line", n.Line).Debugf("calling %s", name)
		return callUserFunction(user, len(args), n.Line, env)
	}

	return nil, err.CreateErrAt("eval/undefined", n.Line, -1, name)
}

// callUserFunction runs the body of a script function. A return statement ends the body; otherwise
// the value of the last statement is the result.
func callUserFunction(uf *UserFunction, argCount, line int, env *Environment) (values.Value, error) {
	params, body := uf.Forest.Parameters(uf.Node)
	if len(params) > 0 {
		return nil, err.CreateErrAt("eval/unsupported/args", line, -1, uf.Name)
	}
	if argCount > 0 {
		return nil, err.CreateErrAt("eval/arity", line, -1, uf.Name, 0, argCount)
	}
	var result values.Value
	for _, statement := range uf.Forest.Siblings(body) {
		v, e := Evaluate(uf.Forest, statement, env)
		if e != nil {
			return nil, e
		}
		if uf.Forest.Node(statement).Kind() == token.Return {
			return v, nil
		}
		result = v
	}
	return result, nil
}

// Errors from builtins don't know where they happened.
func atLine(e error, line int) error {
	var lairErr *err.Error
	if errors.As(e, &lairErr) && lairErr.Line == 0 {
		lairErr.Line = line
	}
	return e
}

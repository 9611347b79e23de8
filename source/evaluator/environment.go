package evaluator

import (
	"io"
	"os"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"src.elv.sh/pkg/persistent/hash"
	"src.elv.sh/pkg/persistent/hashmap"

	"github.com/tim-hardcastle/lair/source/ast"
	"github.com/tim-hardcastle/lair/source/err"
	"github.com/tim-hardcastle/lair/source/settings"
	"github.com/tim-hardcastle/lair/source/values"
)

// NativeFunc is the Go side of a builtin. It is only called with as many arguments as the arity
// the builtin was registered with.
type NativeFunc func(env *Environment, args []values.Value) (values.Value, error)

// Function describes a builtin.
type Function struct {
	Name  string
	Arity int
	Fn    NativeFunc
}

// UserFunction is a function defined in a script: the forest it was parsed into and the handle of
// its Function node.
type UserFunction struct {
	Name   string
	Forest *ast.Forest
	Node   ast.Handle
}

// Environment holds the two function tables for one run or one REPL session. The tables are
// persistent maps, so a copy of an Environment keeps the bindings it had when it was copied.
type Environment struct {
	natives hashmap.Map // string -> *Function
	users   hashmap.Map // string -> *UserFunction
	Policy  settings.CollisionPolicy
	Out     io.Writer
	RunId   string
	log     *logrus.Entry
}

func equalNames(a, b any) bool {
	return a == b
}

func hashName(k any) uint32 {
	return hash.String(k.(string))
}

func NewEnvironment(out io.Writer, policy settings.CollisionPolicy) *Environment {
	if out == nil {
		out = os.Stdout
	}
	if policy == "" {
		policy = settings.NativeFirst
	}
	env := &Environment{
		natives: hashmap.New(equalNames, hashName),
		users:   hashmap.New(equalNames, hashName),
		Policy:  policy,
		Out:     out,
	}
	env.NewRun()
	return env
}

// StandardEnvironment makes an environment with the builtins named in the config.
func StandardEnvironment(cfg settings.Config, out io.Writer) (*Environment, error) {
	env := NewEnvironment(out, cfg.Collision)
	for _, name := range cfg.Builtins {
		b, ok := Builtins[name]
		if !ok {
			return nil, err.CreateErr("eval/undefined", nil, name)
		}
		if _, e := env.RegisterNative(name, b.Arity, b.Fn); e != nil {
			return nil, e
		}
	}
	return env, nil
}

// NewRun gives the environment a fresh run id, which appears in everything it logs.
func (env *Environment) NewRun() string {
	env.RunId = uuid.NewString()
	env.log = settings.Stage("eval").WithField("run", env.RunId)
	return env.RunId
}

// RegisterNative binds a builtin. A name can only be registered once; the first binding survives a
// second attempt.
func (env *Environment) RegisterNative(name string, arity int, fn NativeFunc) (*Function, error) {
	if _, ok := env.natives.Index(name); ok {
		return nil, err.CreateErr("env/dup", nil, name)
	}
	f := &Function{Name: name, Arity: arity, Fn: fn}
	env.natives = env.natives.Assoc(name, f)
	return f, nil
}

// RegisterUserFunction binds or rebinds a script function. Under the reject policy a name already
// taken by a builtin is an error.
func (env *Environment) RegisterUserFunction(name string, forest *ast.Forest, node ast.Handle) error {
	if env.Policy == settings.Reject {
		if _, ok := env.natives.Index(name); ok {
			return err.CreateErrAt("env/collision", forest.Node(node).Line, -1, name)
		}
	}
	env.users = env.users.Assoc(name, &UserFunction{Name: name, Forest: forest, Node: node})
	return nil
}

func (env *Environment) LookupNative(name string) (*Function, bool) {
	f, ok := env.natives.Index(name)
	if !ok {
		return nil, false
	}
	return f.(*Function), true
}

func (env *Environment) LookupUserFunction(name string) (*UserFunction, bool) {
	f, ok := env.users.Index(name)
	if !ok {
		return nil, false
	}
	return f.(*UserFunction), true
}

// Resolve finds what a call to the name refers to. At most one of the results is non-nil.
func (env *Environment) Resolve(name string) (*Function, *UserFunction) {
	native, isNative := env.LookupNative(name)
	user, isUser := env.LookupUserFunction(name)
	if env.Policy == settings.UserFirst && isUser {
		return nil, user
	}
	if isNative {
		return native, nil
	}
	return nil, user
}

// NativeNames returns the names of the builtins, sorted.
func (env *Environment) NativeNames() []string {
	return sortedKeys(env.natives)
}

// UserNames returns the names of the script functions, sorted.
func (env *Environment) UserNames() []string {
	return sortedKeys(env.users)
}

func sortedKeys(m hashmap.Map) []string {
	result := make([]string, 0, m.Len())
	for it := m.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		result = append(result, k.(string))
	}
	slices.Sort(result)
	return result
}

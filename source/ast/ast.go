package ast

import (
	"strings"

	"src.elv.sh/pkg/persistent/vector"

	"github.com/tim-hardcastle/lair/source/token"
	"github.com/tim-hardcastle/lair/source/values"
)

// Handle addresses a node in a Forest.
type Handle int

const None Handle = -1

// Node is one element of the syntax forest. Every node takes part in two structures at once: the
// tree made by Children and Sibling, which records nesting, and the chain made by Next, which
// records the order of the parts of a single statement.
type Node struct {
	Atom     values.Value
	Line     int
	Children Handle
	Sibling  Handle
	Next     Handle
}

func (n Node) Kind() token.Kind {
	return n.Atom.Kind()
}

// Forest is an arena of nodes. The nodes live in a persistent vector, so a Forest handed to the
// evaluator is never changed by anything the parser does afterwards.
type Forest struct {
	nodes vector.Vector
	Root  Handle // The first top-level statement, or None for an empty program.
}

func NewForest() *Forest {
	return &Forest{nodes: vector.Empty, Root: None}
}

func (f *Forest) Add(atom values.Value, line int) Handle {
	f.nodes = f.nodes.Conj(Node{Atom: atom, Line: line, Children: None, Sibling: None, Next: None})
	return Handle(f.nodes.Len() - 1)
}

func (f *Forest) Node(h Handle) Node {
	if !f.Valid(h) {
		panic("ast: node handle out of range")
	}
	n, _ := f.nodes.Index(int(h))
	return n.(Node)
}

func (f *Forest) Valid(h Handle) bool {
	return h >= 0 && int(h) < f.nodes.Len()
}

func (f *Forest) Len() int {
	return f.nodes.Len()
}

func (f *Forest) update(h Handle, change func(*Node)) {
	n := f.Node(h)
	change(&n)
	f.nodes = f.nodes.Assoc(int(h), n)
}

func (f *Forest) SetChildren(h, child Handle) {
	f.update(h, func(n *Node) { n.Children = child })
}

func (f *Forest) SetSibling(h, sibling Handle) {
	f.update(h, func(n *Node) { n.Sibling = sibling })
}

func (f *Forest) SetNext(h, next Handle) {
	f.update(h, func(n *Node) { n.Next = next })
}

// Siblings returns the chain of statements starting at h.
func (f *Forest) Siblings(h Handle) []Handle {
	result := []Handle{}
	for ; h != None; h = f.Node(h).Sibling {
		result = append(result, h)
	}
	return result
}

func (f *Forest) TopLevel() []Handle {
	return f.Siblings(f.Root)
}

// Callee returns the node naming the function of the call at h.
func (f *Forest) Callee(call Handle) Handle {
	return f.Node(call).Next
}

// Arguments returns the argument nodes of the call at h. They are the Next chain after the callee,
// up to and including the first nested call, since a nested call takes the rest of the line.
func (f *Forest) Arguments(call Handle) []Handle {
	result := []Handle{}
	callee := f.Callee(call)
	if callee == None {
		return result
	}
	for a := f.Node(callee).Next; a != None; a = f.Node(a).Next {
		result = append(result, a)
		if f.Node(a).Kind() == token.Call {
			break
		}
	}
	return result
}

// Parameters returns the FunctionArg nodes of the definition at h, and the first node after them.
func (f *Forest) Parameters(def Handle) ([]Handle, Handle) {
	result := []Handle{}
	h := f.Node(def).Next
	for h != None && f.Node(h).Kind() == token.FunctionArg {
		result = append(result, h)
		h = f.Node(h).Next
	}
	return result, h
}

// String renders the forest one statement per line, calls in prefix form with their arguments in
// parentheses, and the body of a definition indented beneath it.
func (f *Forest) String() string {
	var out strings.Builder
	for _, h := range f.TopLevel() {
		f.prettyPrint(&out, h, 0)
	}
	return out.String()
}

func (f *Forest) prettyPrint(out *strings.Builder, h Handle, depth int) {
	out.WriteString(strings.Repeat("    ", depth))
	n := f.Node(h)
	if n.Kind() != token.Function {
		out.WriteString(f.Expression(h) + "\n")
		return
	}
	out.WriteString("def " + n.Atom.String())
	params, _ := f.Parameters(h)
	for _, p := range params {
		out.WriteString(" " + f.Node(p).Atom.String())
	}
	out.WriteString(" :\n")
	for _, child := range f.Siblings(n.Children) {
		f.prettyPrint(out, child, depth+1)
	}
}

// Expression renders the statement whose Next chain starts at h.
func (f *Forest) Expression(h Handle) string {
	n := f.Node(h)
	switch n.Kind() {
	case token.Call:
		parts := []string{n.Atom.String()}
		for _, arg := range f.Arguments(h) {
			parts = append(parts, f.Expression(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case token.Return:
		if n.Next == None {
			return "return"
		}
		return "return " + f.Expression(n.Next)
	}
	return values.Literal(n.Atom)
}

package parser

// The parser turns the token stream into a forest of nodes. Nesting is decided by the Indent and
// Dedent tokens alone: an Indent opens the body of the definition on the line before it, and the
// Dedent which ends every line says which level the next line goes back to.

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/tim-hardcastle/lair/source/ast"
	"github.com/tim-hardcastle/lair/source/dtypes"
	"github.com/tim-hardcastle/lair/source/err"
	"github.com/tim-hardcastle/lair/source/settings"
	"github.com/tim-hardcastle/lair/source/token"
	"github.com/tim-hardcastle/lair/source/values"
)

// A block of statements at one indentation level.
type scope struct {
	level  int
	parent ast.Handle // the definition owning the block, or None at the top level.
	tail   ast.Handle // the last parameter of the definition, or the definition itself.
	last   ast.Handle // the last statement added to the block.
}

type Parser struct {
	tokens     *token.Stream
	forest     *ast.Forest
	scopes     *dtypes.Stack[scope]
	header     ast.Handle // a definition header on the line being parsed.
	headerTail ast.Handle
	pending    ast.Handle // a definition header whose line has ended, waiting for its body.
	pendingTok *token.Token
	log        *logrus.Entry
}

func New(tokens *token.Stream) *Parser {
	p := &Parser{
		tokens:  tokens,
		forest:  ast.NewForest(),
		scopes:  dtypes.NewStack[scope](),
		header:  ast.None,
		pending: ast.None,
		log:     settings.Stage("parser"),
	}
	p.scopes.Push(scope{level: 0, parent: ast.None, tail: ast.None, last: ast.None})
	return p
}

// Parse consumes the stream and returns the forest. On an error the stream is left positioned just
// after the token that caused it.
func Parse(tokens *token.Stream) (*ast.Forest, error) {
	return New(tokens).Parse()
}

func (p *Parser) Parse() (*ast.Forest, error) {
	for {
		tok := p.tokens.Pop()
		if p.pending != ast.None && (tok == nil || tok.Kind != token.Indent) {
			return nil, err.CreateErr("parse/def/empty", p.pendingTok, p.pendingTok.Literal)
		}
		if tok == nil {
			return p.finish(), nil
		}
		switch tok.Kind {
		case token.Eof:
			if !p.tokens.Empty() {
				return nil, err.CreateErr("parse/eof", p.tokens.Pop())
			}
			return p.finish(), nil
		case token.Indent:
			if e := p.openBlock(tok); e != nil {
				return nil, e
			}
		case token.Dedent:
			if e := p.closeBlocks(tok); e != nil {
				return nil, e
			}
		default:
			h, e := p.parseStatement(tok)
			if e != nil {
				return nil, e
			}
			p.addStatement(h)
		}
	}
}

func (p *Parser) finish() *ast.Forest {
	if settings.Log.IsLevelEnabled(logrus.TraceLevel) {
		p.log.Trace("\n" + p.forest.String())
	}
	return p.forest
}

func (p *Parser) openBlock(tok *token.Token) error {
	head, _ := p.scopes.HeadValue()
	if p.pending == ast.None || tok.IndentLevel <= head.level {
		return err.CreateErr("parse/indent", tok)
	}
	p.scopes.Push(scope{level: tok.IndentLevel, parent: p.pending, tail: p.headerTail, last: ast.None})
	p.pending = ast.None
	p.pendingTok = nil
	return nil
}

func (p *Parser) closeBlocks(tok *token.Token) error {
	if p.header != ast.None {
		p.pending = p.header
		p.header = ast.None
	}
	for {
		head, _ := p.scopes.HeadValue()
		if head.level <= tok.IndentLevel {
			if head.level != tok.IndentLevel {
				return err.CreateErr("parse/dedent", tok, tok.IndentLevel)
			}
			return nil
		}
		p.scopes.Pop()
	}
}

// addStatement puts the statement at the end of the current block. The first statement of the
// body of a definition is also the end of the definition's Next chain, so the evaluator can find
// it by walking past the parameters.
func (p *Parser) addStatement(h ast.Handle) {
	head, _ := p.scopes.HeadValue()
	switch {
	case head.last != ast.None:
		p.forest.SetSibling(head.last, h)
	case head.parent == ast.None:
		p.forest.Root = h
	default:
		p.forest.SetChildren(head.parent, h)
		p.forest.SetNext(head.tail, h)
	}
	head.last = h
	p.scopes.SetHead(head)
}

func (p *Parser) parseStatement(tok *token.Token) (ast.Handle, error) {
	switch tok.Kind {
	case token.Function:
		return p.parseDefinition(tok)
	case token.Return:
		ret := p.forest.Add(values.Str(token.Return, tok.Literal), tok.Line)
		if p.atEndOfLine() {
			return ast.None, err.CreateErr("parse/return", tok)
		}
		expr, e := p.parseExpression(p.tokens.Pop())
		if e != nil {
			return ast.None, e
		}
		if !p.atEndOfLine() {
			return ast.None, err.CreateErr("parse/line", p.tokens.Pop())
		}
		p.forest.SetNext(ret, expr)
		return ret, nil
	case token.Atom, token.Operator:
		return p.parseCall(tok)
	case token.Number, token.String, token.Variable:
		h, e := p.parseLiteral(tok)
		if e != nil {
			return ast.None, e
		}
		if !p.atEndOfLine() {
			return ast.None, err.CreateErr("parse/line", p.tokens.Pop())
		}
		return h, nil
	}
	return ast.None, err.CreateErr("parse/start", tok)
}

func (p *Parser) parseDefinition(tok *token.Token) (ast.Handle, error) {
	def := p.forest.Add(values.Str(token.Function, tok.Literal), tok.Line)
	tail := def
	for !p.atEndOfLine() {
		next := p.tokens.Pop()
		if next.Kind != token.FunctionArg {
			return ast.None, err.CreateErr("parse/def/args", next, tok.Literal)
		}
		param := p.forest.Add(values.Str(token.FunctionArg, next.Literal), next.Line)
		p.forest.SetNext(tail, param)
		tail = param
	}
	p.header = def
	p.headerTail = tail
	p.pendingTok = tok
	return def, nil
}

// parseCall makes a Call node followed by the callee and then the arguments. A name in argument
// position starts a nested call which takes the rest of the line.
func (p *Parser) parseCall(tok *token.Token) (ast.Handle, error) {
	call := p.forest.Add(values.Str(token.Call, tok.Literal), tok.Line)
	callee := p.forest.Add(values.Str(tok.Kind, tok.Literal), tok.Line)
	p.forest.SetNext(call, callee)
	tail := callee
	for !p.atEndOfLine() {
		arg, e := p.parseExpression(p.tokens.Pop())
		if e != nil {
			return ast.None, e
		}
		p.forest.SetNext(tail, arg)
		tail = arg
	}
	return call, nil
}

func (p *Parser) parseExpression(tok *token.Token) (ast.Handle, error) {
	switch tok.Kind {
	case token.Atom, token.Operator:
		return p.parseCall(tok)
	case token.Number, token.String, token.Variable:
		return p.parseLiteral(tok)
	}
	return ast.None, err.CreateErr("parse/line", tok)
}

func (p *Parser) parseLiteral(tok *token.Token) (ast.Handle, error) {
	if tok.Kind == token.Number {
		n, e := strconv.Atoi(tok.Literal)
		if e != nil {
			return ast.None, err.CreateErr("parse/line", tok)
		}
		return p.forest.Add(values.Int(token.Number, n), tok.Line), nil
	}
	return p.forest.Add(values.Str(tok.Kind, tok.Literal), tok.Line), nil
}

func (p *Parser) atEndOfLine() bool {
	next := p.tokens.Peek()
	return next == nil || next.Kind == token.Dedent || next.Kind == token.Indent || next.Kind == token.Eof
}

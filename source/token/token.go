package token

import "slices"

// Kind classifies a token. The same enumeration tags the values held in the AST, so that a node
// knows whether it is a call, a literal, a definition, and so on.
type Kind int

const (
	Error Kind = iota // Unknown type. Should not happen.
	Function          // The name in a definition header.
	Operator          // +, -, <= etc.
	Return            // The 'return' keyword.
	FunctionArg       // A parameter in a definition header.
	Variable          // A parameter used inside the body that declares it.
	Indent            // Emitted when a line is indented further than the one before it.
	Dedent            // Ends every line.
	Eof
	String
	Call // Only ever made by the parser.
	Atom // A bare identifier, which may refer to a function.
	Number
)

var kindNames = [...]string{
	Error:       "ERROR",
	Function:    "FUNCTION",
	Operator:    "OPERATOR",
	Return:      "RETURN",
	FunctionArg: "FUNCTION_ARG",
	Variable:    "VARIABLE",
	Indent:      "INDENT",
	Dedent:      "DEDENT",
	Eof:         "EOF",
	String:      "STRING",
	Call:        "CALL",
	Atom:        "ATOM",
	Number:      "NUMBER",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "ERROR"
	}
	return kindNames[k]
}

type Token struct {
	Literal     string
	Kind        Kind
	IndentLevel int
	Line        int
	Offset      int // byte offset of the first character in the source.
	Prev        *Token
	Next        *Token
}

var keywords = map[string]Kind{
	"return": Return,
}

// The operators the lexer recognizes.
var Operators = []string{"+", "-", "*", "/", "%", "<", ">", "<=", ">=", "==", "!="}

func IsOperator(op string) bool {
	return slices.Contains(Operators, op)
}

func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Atom
}

// Stream is the doubly-linked list of tokens produced by the lexer. The parser consumes it from the
// front with Pop, so after a parse the stream shows how far the parser got.
type Stream struct {
	head   *Token
	tail   *Token
	length int
}

func NewStream() *Stream {
	return &Stream{}
}

func (s *Stream) Append(tok *Token) *Token {
	tok.Prev = s.tail
	tok.Next = nil
	if s.tail == nil {
		s.head = tok
	} else {
		s.tail.Next = tok
	}
	s.tail = tok
	s.length++
	return tok
}

// Peek returns the head of the stream without detaching it, or nil.
func (s *Stream) Peek() *Token {
	return s.head
}

// Pop detaches the head of the stream and returns it, or nil if the stream is exhausted.
func (s *Stream) Pop() *Token {
	tok := s.head
	if tok == nil {
		return nil
	}
	s.head = tok.Next
	if s.head == nil {
		s.tail = nil
	} else {
		s.head.Prev = nil
	}
	tok.Next = nil
	s.length--
	return tok
}

func (s *Stream) Len() int {
	return s.length
}

func (s *Stream) Empty() bool {
	return s.head == nil
}

// All yields the tokens currently in the stream, front to back, without consuming them.
func (s *Stream) All() func(yield func(*Token) bool) {
	return func(yield func(*Token) bool) {
		for tok := s.head; tok != nil; tok = tok.Next {
			if !yield(tok) {
				return
			}
		}
	}
}

// Kinds is a convenience for tests and debugging.
func (s *Stream) Kinds() []Kind {
	result := []Kind{}
	for tok := range s.All() {
		result = append(result, tok.Kind)
	}
	return result
}

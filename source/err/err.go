package err

import (
	"errors"
	"strconv"

	"github.com/tim-hardcastle/lair/source/token"
)

// Kind is the category of an error. Every kind has a sentinel which the Error unwraps to, so
// callers can ask errors.Is(e, err.ErrUndefined) without knowing the identifier.
type Kind int

const (
	LexError Kind = iota
	ParseError
	DuplicateName
	UndefinedFunction
	NotSupportedError
	ArityError
	TypeError
)

var (
	ErrLex          = errors.New("lex error")
	ErrParse        = errors.New("parse error")
	ErrDuplicate    = errors.New("duplicate name")
	ErrUndefined    = errors.New("undefined function")
	ErrNotSupported = errors.New("not supported")
	ErrArity        = errors.New("wrong number of arguments")
	ErrType         = errors.New("type error")
)

var sentinels = map[Kind]error{
	LexError:          ErrLex,
	ParseError:        ErrParse,
	DuplicateName:     ErrDuplicate,
	UndefinedFunction: ErrUndefined,
	NotSupportedError: ErrNotSupported,
	ArityError:        ErrArity,
	TypeError:         ErrType,
}

func (k Kind) String() string {
	if s, ok := sentinels[k]; ok {
		return s.Error()
	}
	return "error"
}

type ErrorCreator struct {
	Kind        Kind
	Message     func(tok *token.Token, args ...any) string
	Explanation func(tok *token.Token, args ...any) string
}

type Error struct {
	ErrorId string
	Message string
	Kind    Kind
	Args    []any
	Token   *token.Token // May be nil if the error isn't about a token.
	Line    int
	Offset  int // Byte offset into the source, or -1.
}

func (e *Error) Error() string {
	prefix := e.Kind.String()
	if e.Line > 0 {
		prefix = prefix + " at line " + strconv.Itoa(e.Line)
	}
	if e.Offset >= 0 {
		prefix = prefix + " (offset " + strconv.Itoa(e.Offset) + ")"
	}
	return prefix + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

// CreateErr makes an error from the catalogue. The line and offset are taken from the token if
// there is one.
func CreateErr(errorId string, tok *token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[errorId]
	if !ok {
		panic("Unknown error id " + strconv.Quote(errorId))
	}
	e := &Error{ErrorId: errorId, Kind: creator.Kind, Args: args, Token: tok, Offset: -1}
	if tok != nil {
		e.Line = tok.Line
		e.Offset = tok.Offset
	}
	e.Message = creator.Message(tok, args...)
	return e
}

// CreateErrAt is CreateErr for errors found before there is a token to blame, as in the lexer.
func CreateErrAt(errorId string, line, offset int, args ...any) *Error {
	e := CreateErr(errorId, nil, args...)
	e.Line = line
	e.Offset = offset
	return e
}

// Explain returns the long-form explanation of an error, if it came from the catalogue.
func Explain(e error) string {
	var lairErr *Error
	if !errors.As(e, &lairErr) {
		return "There is no further explanation of this error."
	}
	return ErrorCreatorMap[lairErr.ErrorId].Explanation(lairErr.Token, lairErr.Args...)
}

// Id returns the catalogue identifier of an error, or "" if it didn't come from the catalogue.
func Id(e error) string {
	var lairErr *Error
	if errors.As(e, &lairErr) {
		return lairErr.ErrorId
	}
	return ""
}

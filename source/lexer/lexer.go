package lexer

import (
	"bytes"
	"slices"
	"strconv"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/tim-hardcastle/lair/source/dtypes"
	"github.com/tim-hardcastle/lair/source/err"
	"github.com/tim-hardcastle/lair/source/settings"
	"github.com/tim-hardcastle/lair/source/token"
)

// A logical line of the source, with its indentation measured.
type line struct {
	code   []byte // the line after its indentation, without the newline.
	start  int    // offset of the first byte of the line.
	body   int    // offset of the first byte after the indentation.
	lineNo int
	level  int
	blank  bool // whitespace or comment only; these produce no tokens.
}

// An open definition: lines indented more deeply than level are its body.
type definition struct {
	level  int
	params dtypes.Set[string]
}

type Lexer struct {
	unit   rune // the indentation character, or 0 until the first indented line fixes it.
	pinned settings.IndentUnit
	defs   dtypes.Stack[definition]
	out    *token.Stream
	log    *logrus.Entry
}

func New(unit settings.IndentUnit) *Lexer {
	l := &Lexer{pinned: unit, log: settings.Stage("lexer")}
	switch unit {
	case settings.Spaces:
		l.unit = ' '
	case settings.Tabs:
		l.unit = '\t'
	}
	return l
}

// Tokenize lexes a whole program, accepting either spaces or tabs as the indentation unit.
func Tokenize(source []byte) (*token.Stream, error) {
	return New(settings.AnyIndent).Tokenize(source)
}

// Tokenize turns the source into a stream of tokens. Every non-blank line ends with a Dedent whose
// level is the level the next line returns to, a line indented further than the one before starts
// with an Indent, and the stream ends with a single Eof.
func (l *Lexer) Tokenize(source []byte) (*token.Stream, error) {
	l.out = token.NewStream()
	l.defs = *dtypes.NewStack[definition]()
	if l.pinned == settings.AnyIndent || l.pinned == "" {
		l.unit = 0
	}
	lines, e := l.splitLines(source)
	if e != nil {
		return nil, e
	}
	nonBlank := slices.DeleteFunc(lines, func(ln line) bool { return ln.blank })
	previousLevel := 0
	lastLine := 1
	for i, ln := range nonBlank {
		nextLevel := 0
		if i+1 < len(nonBlank) {
			nextLevel = nonBlank[i+1].level
		}
		if ln.level > previousLevel {
			l.emit(token.Indent, "", ln.level, ln.lineNo, ln.start)
		}
		for {
			if d, ok := l.defs.HeadValue(); ok && d.level >= ln.level {
				l.defs.Pop()
				continue
			}
			break
		}
		isHeader := nextLevel > ln.level
		params, e := l.lexLine(ln, isHeader)
		if e != nil {
			return nil, e
		}
		l.emit(token.Dedent, "", min(ln.level, nextLevel), ln.lineNo, ln.body+len(ln.code))
		if isHeader {
			d := definition{level: ln.level, params: dtypes.MakeFromSlice(params)}
			l.log.Tracef("header at line %d binds %s", ln.lineNo, d.params)
			l.defs.Push(d)
		}
		previousLevel = ln.level
		lastLine = ln.lineNo
	}
	l.emit(token.Eof, "", 0, lastLine, len(source))
	if settings.Log.IsLevelEnabled(logrus.TraceLevel) {
		for tok := range l.out.All() {
			l.log.Trace(token.Describe(tok))
		}
	}
	return l.out, nil
}

func (l *Lexer) splitLines(source []byte) ([]line, error) {
	result := []line{}
	start := 0
	for lineNo := 1; start <= len(source); lineNo++ {
		end := bytes.IndexByte(source[start:], '\n')
		if end < 0 {
			end = len(source)
		} else {
			end = start + end
		}
		code := bytes.TrimSuffix(source[start:end], []byte("\r"))
		ln, e := l.measure(code, start, lineNo)
		if e != nil {
			return nil, e
		}
		result = append(result, ln)
		start = end + 1
	}
	return result, nil
}

func (l *Lexer) measure(code []byte, start, lineNo int) (line, error) {
	n := 0
	for n < len(code) && (code[n] == ' ' || code[n] == '\t') {
		n++
	}
	ln := line{code: code[n:], start: start, body: start + n, lineNo: lineNo, level: n}
	if n == len(code) || code[n] == '#' {
		ln.blank = true
		return ln, nil
	}
	for i := 0; i < n; i++ {
		ch := rune(code[i])
		if l.unit == 0 {
			l.unit = ch
		}
		if ch != l.unit {
			return ln, err.CreateErrAt("lex/wsp", lineNo, start+i, describeUnit(l.unit), describeUnit(ch))
		}
	}
	return ln, nil
}

func describeUnit(ch rune) string {
	if ch == '\t' {
		return "tabs"
	}
	return "spaces"
}

// lexLine emits the tokens of one line and, if it's a definition header, returns its parameters.
func (l *Lexer) lexLine(ln line, isHeader bool) ([]string, error) {
	runes := NewRuneSupplier(ln.code, ln.body)
	params := []string{}
	first := true
	for {
		for runes.CurrentRune() == ' ' || runes.CurrentRune() == '\t' {
			runes.Next()
		}
		if runes.AtEnd() || runes.CurrentRune() == '#' {
			return params, nil
		}
		offset := runes.Offset()
		ch := runes.CurrentRune()
		switch {
		case ch == '"':
			s, ok := runes.ReadFormattedString()
			if !ok {
				return nil, err.CreateErrAt("lex/quote", ln.lineNo, offset)
			}
			l.emit(token.String, s, ln.level, ln.lineNo, offset)
		case IsDigit(ch):
			numString := runes.ReadRun(IsIdentifierRune)
			if _, e := strconv.Atoi(numString); e != nil {
				return nil, err.CreateErrAt("lex/num", ln.lineNo, offset, numString)
			}
			l.emit(token.Number, numString, ln.level, ln.lineNo, offset)
		case IsOperatorRune(ch):
			op := runes.ReadRun(IsOperatorRune)
			if !token.IsOperator(op) {
				return nil, err.CreateErrAt("lex/op", ln.lineNo, offset, op)
			}
			l.emit(token.Operator, op, ln.level, ln.lineNo, offset)
		case IsIdentifierStart(ch):
			lit := runes.ReadRun(IsIdentifierRune)
			kind := token.LookupIdent(lit)
			if kind == token.Atom {
				switch {
				case isHeader && first:
					kind = token.Function
				case isHeader:
					kind = token.FunctionArg
					params = append(params, lit)
				case !first && l.isParameter(lit):
					kind = token.Variable
				}
			}
			l.emit(kind, lit, ln.level, ln.lineNo, offset)
		default:
			return nil, err.CreateErrAt("lex/ill", ln.lineNo, offset, ch)
		}
		first = false
	}
}

// Whether the name is a parameter of a definition whose body we're in.
func (l *Lexer) isParameter(name string) bool {
	return l.defs.Find(func(d definition) bool { return d.params.Contains(name) }) >= 0
}

func (l *Lexer) emit(kind token.Kind, literal string, level, lineNo, offset int) {
	l.out.Append(&token.Token{Literal: literal, Kind: kind, IndentLevel: level, Line: lineNo, Offset: offset})
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func IsIdentifierStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func IsIdentifierRune(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func IsOperatorRune(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '%', '<', '>', '=', '!':
		return true
	}
	return false
}

package lexer

import "unicode/utf8"

// A RuneSupplier walks over one logical line of source, rune by rune. Positions are byte offsets
// into the whole source, so that errors can point at the offending byte.
type RuneSupplier struct {
	code []byte
	pos  int // relative to the start of code
	base int // offset of code[0] in the source
}

func NewRuneSupplier(code []byte, base int) *RuneSupplier {
	return &RuneSupplier{code: code, base: base}
}

func (rs *RuneSupplier) CurrentRune() rune {
	if rs.pos >= len(rs.code) {
		return 0
	}
	r, _ := utf8.DecodeRune(rs.code[rs.pos:])
	return r
}

func (rs *RuneSupplier) Next() {
	if rs.pos >= len(rs.code) {
		return
	}
	_, size := utf8.DecodeRune(rs.code[rs.pos:])
	rs.pos += size
}

func (rs *RuneSupplier) AtEnd() bool {
	return rs.pos >= len(rs.code)
}

// Offset is the position of the current rune in the source.
func (rs *RuneSupplier) Offset() int {
	return rs.base + rs.pos
}

// ReadRun consumes runes for as long as they satisfy the predicate and returns them.
func (rs *RuneSupplier) ReadRun(ok func(rune) bool) string {
	start := rs.pos
	for !rs.AtEnd() && ok(rs.CurrentRune()) {
		rs.Next()
	}
	return string(rs.code[start:rs.pos])
}

// ReadFormattedString expects to be at the opening quote. It consumes the literal including the
// closing quote and returns its unescaped contents, or false if the line ends first.
func (rs *RuneSupplier) ReadFormattedString() (string, bool) {
	escape := false
	result := []rune{}
	for {
		rs.Next()
		if rs.AtEnd() {
			return string(result), false
		}
		ch := rs.CurrentRune()
		if ch == '"' && !escape {
			rs.Next()
			return string(result), true
		}
		if ch == '\\' && !escape {
			escape = true
			continue
		}
		if escape {
			escape = false
			switch ch {
			case 'n':
				ch = '\n'
			case 'r':
				ch = '\r'
			case 't':
				ch = '\t'
			}
		}
		result = append(result, ch)
	}
}

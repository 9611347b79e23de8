package token

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes the stream in a human-friendly form, one token per row. It only reads the stream.
func Dump(w io.Writer, s *Stream) error {
	for tok := range s.All() {
		if _, e := fmt.Fprintln(w, Describe(tok)); e != nil {
			return e
		}
	}
	return nil
}

func Describe(tok *Token) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(tok.Line))
	b.WriteString(":")
	b.WriteString(strings.Repeat(" ", max(0, 4-len(strconv.Itoa(tok.Line)))))
	b.WriteString(fmt.Sprintf("%-13s", tok.Kind.String()))
	b.WriteString(" level ")
	b.WriteString(strconv.Itoa(tok.IndentLevel))
	switch tok.Kind {
	case Indent, Dedent, Eof:
	case String:
		b.WriteString("  " + strconv.Quote(tok.Literal))
	default:
		b.WriteString("  " + tok.Literal)
	}
	return b.String()
}

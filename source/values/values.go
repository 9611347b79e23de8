package values

import (
	"strconv"

	"github.com/tim-hardcastle/lair/source/token"
)

// A Value is either an Integer or a Text, tagged with the kind of the token or node that produced
// it. The interface is sealed: nothing outside this package can implement it, so a type switch
// over Integer and Text is exhaustive.
type Value interface {
	Kind() token.Kind
	String() string
	sealed()
}

type Integer struct {
	K token.Kind
	N int
}

type Text struct {
	K token.Kind
	S string
}

func Int(kind token.Kind, n int) Value {
	return Integer{K: kind, N: n}
}

func Str(kind token.Kind, s string) Value {
	return Text{K: kind, S: s}
}

func (i Integer) Kind() token.Kind { return i.K }
func (i Integer) String() string   { return strconv.Itoa(i.N) }
func (Integer) sealed()            {}

func (t Text) Kind() token.Kind { return t.K }
func (t Text) String() string   { return t.S }
func (Text) sealed()            {}

// Literal renders a value the way it would appear in source, so strings get their quotes back.
func Literal(v Value) string {
	switch v := v.(type) {
	case Integer:
		return v.String()
	case Text:
		if v.K == token.String {
			return strconv.Quote(v.S)
		}
		return v.S
	}
	return "<nil>"
}

// Retag returns the same payload under a different kind.
func Retag(v Value, kind token.Kind) Value {
	switch v := v.(type) {
	case Integer:
		return Integer{K: kind, N: v.N}
	case Text:
		return Text{K: kind, S: v.S}
	}
	return v
}

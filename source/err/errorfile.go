package err

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tim-hardcastle/lair/source/token"
)

// A map from error identifiers to functions that supply the corresponding error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifers.
//
// Major categories are env, eval, lex, and parse.
//
// Two otherwise identical errors thrown in different places in the Go code must be assigned
// different identifiers, if only by suffixing /a, /b, etc to the identifier.

var ErrorCreatorMap = map[string]ErrorCreator{

	// TEMPLATE
	"": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return ""
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return ""
		},
	},

	"env/collision": {
		Kind: DuplicateName,
		Message: func(tok *token.Token, args ...any) string {
			return "function " + emph(args[0]) + " has the same name as a builtin"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The hub is configured with the 'reject' collision policy, so a function defined in " +
				"your script may not share its name with a builtin function."
		},
	},

	"env/dup": {
		Kind: DuplicateName,
		Message: func(tok *token.Token, args ...any) string {
			return "builtin " + emph(args[0]) + " is already registered"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "Each builtin function can only be registered once. The first registration " +
				"has been kept."
		},
	},

	"eval/arity": {
		Kind: ArityError,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("%v takes %v, got %v", emph(args[0]), plural(args[1].(int), "argument"), args[2].(int))
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A function must be given exactly as many arguments as it has parameters. Note that an " +
				"identifier in argument position is itself a call, which takes the rest of the line as " +
				"its arguments."
		},
	},

	"eval/overflow": {
		Kind: TypeError,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("%v of %v and %v doesn't fit in an integer", emph(args[0]), args[1], args[2])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "Integers are 64 bits wide. The arithmetic builtins fail rather than wrap around when a " +
				"result is too big or too small to hold."
		},
	},

	"eval/type": {
		Kind: TypeError,
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("%v can't be applied to %v", emph(args[0]), args[1])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The builtin was given a value of a type it doesn't know how to deal with. The arithmetic " +
				"builtins take integers; 'concat' takes strings."
		},
	},

	"eval/undefined": {
		Kind: UndefinedFunction,
		Message: func(tok *token.Token, args ...any) string {
			return "there is no function called " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The name was neither a builtin nor a function defined earlier in the script. Functions " +
				"must be defined before the line that calls them is reached."
		},
	},

	"eval/unsupported/args": {
		Kind: NotSupportedError,
		Message: func(tok *token.Token, args ...any) string {
			return "calling " + emph(args[0]) + " with parameters is not supported yet"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "Functions defined in a script can be declared with parameters, but as presently " +
				"implemented only functions with no parameters can be called."
		},
	},

	"eval/unsupported/atom": {
		Kind: NotSupportedError,
		Message: func(tok *token.Token, args ...any) string {
			return "using function " + emph(args[0]) + " as a value is not supported yet"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A bare identifier that names a function would be an indirect reference to that function, " +
				"and these can't yet be resolved."
		},
	},

	"eval/unsupported/nested": {
		Kind: NotSupportedError,
		Message: func(tok *token.Token, args ...any) string {
			return "defining " + emph(args[0]) + " inside another function is not supported yet"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "Only functions defined at the top level of a script are registered."
		},
	},

	"eval/unsupported/return": {
		Kind: NotSupportedError,
		Message: func(tok *token.Token, args ...any) string {
			return "returning the result of a call is not supported yet"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "'return' hands back the value written directly after it. It can't yet evaluate a call " +
				"such as 'return + 1 2'."
		},
	},

	"lex/ill": {
		Kind: LexError,
		Message: func(tok *token.Token, args ...any) string {
			return "illegal character " + emph(string(args[0].(rune)))
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The character doesn't belong to any kind of token the language recognizes."
		},
	},

	"lex/num": {
		Kind: LexError,
		Message: func(tok *token.Token, args ...any) string {
			return "malformed number " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A token beginning with a digit must consist only of digits, and must fit in an integer."
		},
	},

	"lex/op": {
		Kind: LexError,
		Message: func(tok *token.Token, args ...any) string {
			return "unknown operator " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The recognized operators are " + strings.Join(token.Operators, ", ") + "."
		},
	},

	"lex/quote": {
		Kind: LexError,
		Message: func(tok *token.Token, args ...any) string {
			return "unterminated string literal"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A string literal must have its closing quote before the end of the line."
		},
	},

	"lex/wsp": {
		Kind: LexError,
		Message: func(tok *token.Token, args ...any) string {
			return "inconsistent indentation: expected " + args[0].(string) + ", found " + args[1].(string)
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A script must be indented with either spaces or tabs throughout, and a single line " +
				"can't mix them."
		},
	},

	"parse/dedent": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "unindenting to level " + strconv.Itoa(args[0].(int)) + ", which was never opened"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "When a line is indented less than the line before it, it must line up with some " +
				"earlier line that is still open."
		},
	},

	"parse/def/args": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected " + describe(tok) + " in the definition of " + emph(args[0])
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A definition header consists of the name of the function followed by the names of " +
				"its parameters, and nothing else."
		},
	},

	"parse/def/empty": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "function " + emph(args[0]) + " has no body"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A definition header must be followed by at least one more deeply indented line."
		},
	},

	"parse/eof": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "tokens after the end of input"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "The token stream continued past its end-of-file marker."
		},
	},

	"parse/indent": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected indentation"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "Only a function definition can be followed by an indented block."
		},
	},

	"parse/line": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected " + describe(tok)
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A line which begins with a literal value can't contain anything else."
		},
	},

	"parse/return": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return "'return' needs a value"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "'return' must be followed by the value to be returned."
		},
	},

	"parse/start": {
		Kind: ParseError,
		Message: func(tok *token.Token, args ...any) string {
			return describe(tok) + " can't begin a line"
		},
		Explanation: func(tok *token.Token, args ...any) string {
			return "A line must begin with the name of a function to call, a definition, 'return', or a value."
		},
	},
}

func emph(s any) string {
	if t, ok := s.(string); ok {
		s = strings.TrimSpace(t)
	}
	return fmt.Sprintf("'%v'", s)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

func describe(tok *token.Token) string {
	if tok == nil {
		return "end of input"
	}
	switch tok.Kind {
	case token.Indent:
		return "indentation"
	case token.Dedent:
		return "end of line"
	case token.Eof:
		return "end of input"
	case token.String:
		return "string " + strconv.Quote(tok.Literal)
	}
	return strings.ToLower(strings.ReplaceAll(tok.Kind.String(), "_", " ")) + " " + emph(tok.Literal)
}

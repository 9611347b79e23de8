package text

// This consists of a bunch of text utilities to help in generating pretty and meaningful
// help messages, error messages, etc.

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/tim-hardcastle/lair/source/settings"
)

const (
	BULLET        = "  ▪ "
	PROMPT        = "→ "
	INDENT_PROMPT = "  "
	OK            = "ok"
)

var (
	GOOD_BULLET = color.GreenString(BULLET)
	BROKEN      = color.RedString("  ✖ ")
)

func Emph(s string) string {
	return "'" + s + "'"
}

func Red(s string) string {
	return color.RedString("%s", s)
}

func Green(s string) string {
	return color.GreenString("%s", s)
}

// ExtractFileName turns "dir/prog.lr" into "prog".
func ExtractFileName(s string) string {
	if strings.LastIndex(s, "/") >= 0 {
		s = s[strings.LastIndex(s, "/")+1:]
	}
	if strings.LastIndex(s, ".") > 0 {
		s = s[:strings.LastIndex(s, ".")]
	}
	return s
}

// Plural gives e.g. "1 argument", "2 arguments".
func Plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// DescribePos says where in the source something happened, for error messages.
func DescribePos(line, offset int) string {
	if line <= 0 {
		return ""
	}
	result := " at line " + strconv.Itoa(line)
	if offset >= 0 {
		result = result + ", offset " + strconv.Itoa(offset)
	}
	return result
}

func Logo() string {
	titleText := " lair version " + settings.VERSION + " "
	leftMargin := "  "
	bar := strings.Repeat("═", len(titleText))
	return "\n" +
		leftMargin + "╔" + bar + "╗\n" +
		leftMargin + "║" + titleText + "║\n" +
		leftMargin + "╚" + bar + "╝\n\n"
}

const HELP = "\nUsage: lair [hub command]\n\n" +
	"With no arguments, starts the REPL. Otherwise the arguments are run as a hub command, e.g.\n\n" +
	"  lair run <file>      Runs a script.\n" +
	"  lair tokens <file>   Shows the tokens of a script.\n" +
	"  lair tree <file>     Shows the syntax tree of a script.\n\n" +
	"Set LAIR_CONFIG to the path of a YAML file to configure builtins, logging and the script database.\n\n"

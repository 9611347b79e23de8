package text

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestExtractFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"prog.lr", "prog"},
		{"dir/sub/prog.lr", "prog"},
		{"prog", "prog"},
		{".hidden", ".hidden"},
	}
	for _, test := range tests {
		if got := ExtractFileName(test.in); got != test.want {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.in, test.want, got)
		}
	}
}

func TestColours(t *testing.T) {
	saved := color.NoColor
	defer func() { color.NoColor = saved }()
	color.NoColor = true
	if Red("x") != "x" || Green("y") != "y" {
		t.Fatalf("Colour leaked through with colours off")
	}
	color.NoColor = false
	if Red("x") == "x" || !strings.Contains(Red("x"), "x") {
		t.Fatalf("Red didn't colour")
	}
}

func TestDescribePos(t *testing.T) {
	if DescribePos(0, 5) != "" || DescribePos(2, -1) != " at line 2" || DescribePos(2, 7) != " at line 2, offset 7" {
		t.Fatalf("Bad position descriptions")
	}
}

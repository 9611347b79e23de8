package test_helper

import (
	"testing"

	"github.com/tim-hardcastle/lair/source/err"
	"github.com/tim-hardcastle/lair/source/settings"
	"github.com/tim-hardcastle/lair/source/text"
)

// Auxiliary types and functions for testing the parser and evaluator.

type TestItem struct {
	Input string
	Want  string
}

// RunTest applies F to the input of each item. If F returns an error, what is compared against
// Want is the catalogue identifier of the error, e.g. "parse/indent".
func RunTest(t *testing.T, tests []TestItem, F func(s string) (string, error)) {
	t.Helper()
	for _, test := range tests {
		if settings.SHOW_TESTS {
			println(text.BULLET + "Running test " + text.Emph(test.Input))
		}
		got, e := F(test.Input)
		if e != nil {
			got = err.Id(e)
			if got == "" {
				got = e.Error()
			}
		}
		if !(test.Want == got) {
			t.Fatalf(`Test failed with input %q | Wanted : %s | Got : %s.`, test.Input, test.Want, got)
		}
	}
}

package evaluator

import (
	"math"
	"testing"
)

func TestArithmeticBounds(t *testing.T) {
	tests := []struct {
		op         func(a, b int) (int, bool)
		a, b, want int
		fits       bool
	}{
		{add, math.MaxInt, 0, math.MaxInt, true},
		{add, math.MaxInt, 1, 0, false},
		{add, math.MinInt, -1, 0, false},
		{subtract, 0, math.MaxInt, -math.MaxInt, true},
		{subtract, math.MinInt, 1, 0, false},
		{subtract, 0, math.MinInt, 0, false},
		{multiply, -1, math.MaxInt, -math.MaxInt, true},
		{multiply, math.MinInt, -1, 0, false},
		{multiply, -1, math.MinInt, 0, false},
		{multiply, 1 << 32, 1 << 31, 0, false},
		{multiply, 0, math.MinInt, 0, true},
	}
	for i, test := range tests {
		got, fits := test.op(test.a, test.b)
		if fits != test.fits || (fits && got != test.want) {
			t.Fatalf("tests[%d] | Wanted : %d, %v | Got : %d, %v", i, test.want, test.fits, got, fits)
		}
	}
}

package lang

import (
	"math"
	"testing"
)

func TestNumber_String(t *testing.T) {
	tests := []struct {
		name string
		n    Number
		want string
	}{
		{name: "int", n: IntNumber(10), want: "10"},
		{name: "negative int", n: IntNumber(-3), want: "-3"},
		{name: "zero int", n: IntNumber(0), want: "0"},
		{name: "whole float", n: FloatNumber(30), want: "30.0"},
		{name: "fractional float", n: FloatNumber(2.5), want: "2.5"},
		{name: "repeating fraction", n: FloatNumber(2.0 / 3.0), want: "0.6666666666666666"},
		{name: "large whole float", n: FloatNumber(2000000), want: "2000000.0"},
		{name: "exponent threshold", n: FloatNumber(1e16), want: "1e+16"},
		{name: "below fixed threshold", n: FloatNumber(1.5e-7), want: "1.5e-07"},
		{name: "smallest fixed", n: FloatNumber(0.0001), want: "0.0001"},
		{name: "zero float", n: FloatNumber(0), want: "0.0"},
		{name: "negative zero float", n: FloatNumber(math.Copysign(0, -1)), want: "-0.0"},
		{name: "positive infinity", n: FloatNumber(math.Inf(1)), want: "+Inf"},
		{name: "not a number", n: FloatNumber(math.NaN()), want: "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumber_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Number
		want string
	}{
		{name: "int add", got: IntNumber(10).Add(IntNumber(5)), want: "15"},
		{name: "int sub", got: IntNumber(10).Sub(IntNumber(5)), want: "5"},
		{name: "int mul", got: IntNumber(10).Mul(IntNumber(5)), want: "50"},
		{name: "div is always float", got: IntNumber(10).Div(IntNumber(5)), want: "2.0"},
		{name: "div fraction", got: IntNumber(2).Div(IntNumber(3)), want: "0.6666666666666666"},
		{name: "mixed add is float", got: IntNumber(10).Add(FloatNumber(0.5)), want: "10.5"},
		{name: "mixed mul is float", got: FloatNumber(1.5).Mul(IntNumber(4)), want: "6.0"},
		{name: "div by zero", got: IntNumber(1).Div(IntNumber(0)), want: "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.String(); got != tt.want {
				t.Errorf("result = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumber_Min(t *testing.T) {
	tests := []struct {
		name string
		a, b Number
		want Number
	}{
		{name: "left smaller", a: IntNumber(3), b: IntNumber(7), want: IntNumber(3)},
		{name: "right smaller", a: IntNumber(7), b: IntNumber(3), want: IntNumber(3)},
		{name: "mixed keeps original operand", a: FloatNumber(2.5), b: IntNumber(3), want: FloatNumber(2.5)},
		{name: "tie keeps right operand", a: FloatNumber(3), b: IntNumber(3), want: IntNumber(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Min(tt.b); got != tt.want {
				t.Errorf("Min = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNumber_Conversions(t *testing.T) {
	n := IntNumber(42)
	if !n.IsInt() || n.Int() != 42 || n.Float() != 42.0 {
		t.Errorf("IntNumber(42) conversions wrong: %v", n)
	}

	if v, ok := n.Native().(int64); !ok || v != 42 {
		t.Errorf("Native() = %#v, want int64 42", n.Native())
	}

	f := FloatNumber(2.5)
	if f.IsInt() || f.Int() != 2 || f.Float() != 2.5 {
		t.Errorf("FloatNumber(2.5) conversions wrong: %v", f)
	}

	if v, ok := f.Native().(float64); !ok || v != 2.5 {
		t.Errorf("Native() = %#v, want float64 2.5", f.Native())
	}
}

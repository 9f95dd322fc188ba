package lang

import (
	"math"
	"strconv"
	"strings"
)

// Number is a numeric scalar that keeps the integer/float distinction
// of its source. Arithmetic preserves integer operands except for
// division, which always yields a float.
type Number struct {
	i       int64
	f       float64
	isFloat bool
}

// IntNumber returns a Number holding an integer value.
func IntNumber(i int64) Number { return Number{i: i} }

// FloatNumber returns a Number holding a float value.
func FloatNumber(f float64) Number { return Number{f: f, isFloat: true} }

// IsInt reports whether the number holds an integer value.
func (n Number) IsInt() bool { return !n.isFloat }

// Int returns the value as an int64, truncating a float toward zero.
func (n Number) Int() int64 {
	if n.isFloat {
		return int64(n.f)
	}

	return n.i
}

// Float returns the value as a float64.
func (n Number) Float() float64 {
	if n.isFloat {
		return n.f
	}

	return float64(n.i)
}

// Native returns the underlying int64 or float64.
func (n Number) Native() any {
	if n.isFloat {
		return n.f
	}

	return n.i
}

// String renders the number: integers in base 10, floats in their
// shortest round-trip decimal form with ".0" appended when whole, so
// "30.0" rather than "30". Magnitudes below 1e-4 or at least 1e16 use
// exponent notation.
func (n Number) String() string {
	if !n.isFloat {
		return strconv.FormatInt(n.i, 10)
	}

	return formatFloat(n.f)
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// Add returns n + m.
func (n Number) Add(m Number) Number {
	if n.IsInt() && m.IsInt() {
		return IntNumber(n.i + m.i)
	}

	return FloatNumber(n.Float() + m.Float())
}

// Sub returns n - m.
func (n Number) Sub(m Number) Number {
	if n.IsInt() && m.IsInt() {
		return IntNumber(n.i - m.i)
	}

	return FloatNumber(n.Float() - m.Float())
}

// Mul returns n * m.
func (n Number) Mul(m Number) Number {
	if n.IsInt() && m.IsInt() {
		return IntNumber(n.i * m.i)
	}

	return FloatNumber(n.Float() * m.Float())
}

// Div returns n / m as a float. Division by zero follows IEEE 754
// semantics rather than aborting.
func (n Number) Div(m Number) Number {
	return FloatNumber(n.Float() / m.Float())
}

// Min returns the lesser operand unchanged. Ties keep m.
func (n Number) Min(m Number) Number {
	if n.less(m) {
		return n
	}

	return m
}

func (n Number) less(m Number) bool {
	if n.IsInt() && m.IsInt() {
		return n.i < m.i
	}

	return n.Float() < m.Float()
}

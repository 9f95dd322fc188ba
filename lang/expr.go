package lang

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ExprDelim marks both ends of an expression string.
const ExprDelim = "|"

// Operator is a binary numeric operation usable in postfix
// expressions.
type Operator func(a, b Number) Number

// operators is the static operator table. Symbols outside it are
// unknown tokens.
//
//nolint:gochecknoglobals
var operators = map[string]Operator{
	"+":   Number.Add,
	"-":   Number.Sub,
	"*":   Number.Mul,
	"/":   Number.Div,
	"min": Number.Min,
}

// Operators returns the operator symbols in lexical order.
func Operators() []string {
	return slices.Sorted(maps.Keys(operators))
}

// EvaluateSource splits src on whitespace and evaluates the resulting
// postfix token stream against env.
func EvaluateSource(src string, env Env) (Number, error) {
	return Evaluate(strings.Fields(src), env)
}

// Evaluate computes a postfix token stream against env.
//
// Each token is classified in order: a run of ASCII digits pushes an
// integer literal, a name bound in env pushes its value, and an
// operator symbol pops two operands (b first, then a) and pushes
// a OP b. Anything else fails with ErrUnknownToken. An operator with
// fewer than two stacked operands fails with ErrStackUnderflow, and a
// stream that does not reduce to exactly one value fails with
// ErrMalformedExpression.
//
// Evaluate never mutates env. Recording results is the caller's
// responsibility.
func Evaluate(tokens []string, env Env) (Number, error) {
	var stack []Number

	for _, token := range tokens {
		if isIntLiteral(token) {
			i, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				// Digit runs too long for int64 land here.
				return Number{}, ErrUnknownToken.Wrap(err).
					With(slog.String("token", token))
			}

			stack = append(stack, IntNumber(i))

			continue
		}

		if value, ok := env.Lookup(token); ok {
			stack = append(stack, value)

			continue
		}

		op, ok := operators[token]
		if !ok {
			return Number{}, ErrUnknownToken.
				With(slog.String("token", token))
		}

		if len(stack) < 2 {
			return Number{}, ErrStackUnderflow.With(
				slog.String("operator", token),
				slog.Int("operands", len(stack)),
			)
		}

		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = append(stack[:len(stack)-2], op(a, b))
	}

	if len(stack) != 1 {
		return Number{}, ErrMalformedExpression.
			With(slog.Int("remaining", len(stack)))
	}

	return stack[0], nil
}

// isIntLiteral reports whether token is a nonempty run of ASCII
// digits.
func isIntLiteral(token string) bool {
	if token == "" {
		return false
	}

	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}

	return true
}

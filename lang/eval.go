package lang

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/tomelt/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrInfixCompile  = pkg.NewError("failed to compile expression")
	ErrInfixEvaluate = pkg.NewError("failed to evaluate expression")
)

// EvaluateInfix compiles and runs source as a conventional infix
// expression with the environment's constants in scope. It complements
// the postfix evaluator for interactive sessions where infix notation
// is more comfortable to type.
//
// Unknown identifiers are rejected at compile time against the
// environment, matching the visibility rules of the postfix evaluator.
// Pure-literal expressions work against an empty environment.
func EvaluateInfix(source string, env Env) (any, error) {
	scope := env.Native()

	program, err := expr.Compile(source, expr.Env(scope))
	if err != nil {
		return nil, ErrInfixCompile.Wrap(err).
			With(slog.String("source", source))
	}

	result, err := vm.Run(program, scope)
	if err != nil {
		return nil, ErrInfixEvaluate.Wrap(err).
			With(slog.String("source", source))
	}

	return result, nil
}

package lang

import (
	"fmt"
	"log/slog"
	"regexp"
)

// Arrow separates the rendered value from its label in output lines.
const Arrow = " -> "

// nameRegexp is the required shape of every top-level entry name.
//
//nolint:gochecknoglobals
var nameRegexp = regexp.MustCompile(`^[_A-Z][_a-zA-Z0-9]*$`)

// ValidateName checks that name starts with an underscore or uppercase
// letter followed by any run of underscores, letters, or digits.
func ValidateName(name string) error {
	if !nameRegexp.MatchString(name) {
		return ErrInvalidName.With(slog.String("name", name))
	}

	return nil
}

// binding is the name→value contribution one entry makes to the
// constants environment.
type binding struct {
	name  string
	value Number
}

// renderEntry produces the output line for one entry evaluated against
// env, plus the binding the entry contributes, if any. The name is
// validated before the value is classified. env is never mutated.
func renderEntry(entry Entry, env Env) (string, *binding, error) {
	if err := ValidateName(entry.Name); err != nil {
		return "", nil, err
	}

	switch entry.Value.Kind {
	case KindNumber:
		value := entry.Value.Number

		return value.String() + Arrow + entry.Name,
			&binding{name: entry.Name, value: value},
			nil

	case KindList:
		return FormatList(entry.Value.List) + Arrow + entry.Name, nil, nil

	case KindTable:
		return FormatTable(entry.Value.Table) + Arrow + entry.Name, nil, nil

	case KindExpr:
		result, err := EvaluateSource(entry.Value.Expr, env)
		if err != nil {
			return "", nil, ErrExpression.Wrap(err).
				With(slog.String("entry", entry.Name))
		}

		// An expression line is labeled with its own source text, not
		// the entry name.
		return result.String() + Arrow + entry.Value.Expr,
			&binding{name: entry.Name, value: result},
			nil

	default:
		return "", nil, ErrUnsupportedValue.With(
			slog.String("entry", entry.Name),
			slog.String("type", fmt.Sprintf("%T", entry.Value.Raw)),
		)
	}
}

// Process renders every entry of doc, in order, as output lines with
// comments reattached. Any error aborts the whole run with nothing
// rendered.
//
// The constants environment starts empty and is threaded through the
// fold: each numeric or expression entry binds its result after its
// own line is rendered, so a name is visible only to strictly later
// entries.
func Process(doc *Document, comments []Comment) ([]string, error) {
	attach := make(map[int]string, len(comments))
	for _, comment := range comments {
		attach[comment.Line] = comment.Text
	}

	var (
		lines []string
		env   Env
	)

	for _, entry := range doc.Entries {
		line, bind, err := renderEntry(entry, env)
		if err != nil {
			return nil, err
		}

		// Comments associate by index coincidence: a comment whose
		// opening line index in the raw source equals this line's
		// position in the output is appended here.
		if text, ok := attach[len(lines)]; ok {
			line += "   {! " + text + " !}"
		}

		lines = append(lines, line)

		if bind != nil {
			env = env.Bind(bind.name, bind.value)
		}
	}

	return lines, nil
}

// Constants folds the full environment a document defines: every
// numeric entry and every successfully evaluated expression, bound in
// document order.
func Constants(doc *Document) (Env, error) {
	var env Env

	for _, entry := range doc.Entries {
		_, bind, err := renderEntry(entry, env)
		if err != nil {
			return nil, err
		}

		if bind != nil {
			env = env.Bind(bind.name, bind.value)
		}
	}

	return env, nil
}

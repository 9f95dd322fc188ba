package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ardnew/tomelt/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax              = pkg.NewError("failed to parse document")
	ErrInvalidName         = pkg.NewError("invalid entry name")
	ErrUnsupportedValue    = pkg.NewError("unsupported value type")
	ErrExpression          = pkg.NewError("expression evaluation failed")
	ErrUnknownToken        = pkg.NewError("unknown token")
	ErrStackUnderflow      = pkg.NewError("stack underflow")
	ErrMalformedExpression = pkg.NewError("malformed expression")
)

// SyntaxError describes a TOML parse failure with source context.
type SyntaxError struct {
	Err    error  // underlying decoder error
	Source string // cleaned source text, for context rendering
}

// Error implements the error interface. When the decoder reported a
// position and the source is available, the offending line is rendered
// with a column marker.
func (e *SyntaxError) Error() string {
	var perr toml.ParseError
	if e.Source != "" && errors.As(e.Err, &perr) {
		return e.formatWithContext(perr)
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return "syntax error"
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *SyntaxError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *SyntaxError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)

	var perr toml.ParseError
	if errors.As(e.Err, &perr) {
		attrs = append(attrs,
			slog.String("error", perr.Message),
			slog.Int("line", perr.Position.Line),
			slog.Int("column", perr.Position.Col),
		)
	} else if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}

	return slog.GroupValue(attrs...)
}

// formatWithContext formats the parse error with source code context.
func (e *SyntaxError) formatWithContext(perr toml.ParseError) string {
	lines := strings.Split(e.Source, "\n")

	var buf strings.Builder

	// Write error location and description
	buf.WriteString("syntax error at line ")
	buf.WriteString(strconv.Itoa(perr.Position.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(perr.Position.Col))
	buf.WriteString(": ")
	buf.WriteString(perr.Message)

	// Show the offending line if within bounds
	if perr.Position.Line > 0 && perr.Position.Line <= len(lines) {
		line := lines[perr.Position.Line-1]

		// Print the line with line number
		buf.WriteString("\n  ")
		buf.WriteString(strconv.Itoa(perr.Position.Line))
		buf.WriteString(" | ")
		buf.WriteString(line)
		buf.WriteRune('\n')

		// Print marker pointing to the column
		// Calculate the width needed for line number display
		lineNumWidth := len(strconv.Itoa(perr.Position.Line))
		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := strings.Repeat(" ", lineNumWidth+5)

		// Add spaces to reach the error column
		if perr.Position.Col > 0 {
			padding += strings.Repeat(" ", perr.Position.Col-1)
		}

		buf.WriteString(padding + "^")
	}

	return buf.String()
}

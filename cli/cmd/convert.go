package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/tomelt/lang"
	"github.com/ardnew/tomelt/log"
)

// Convert transcribes a TOML document into flat output lines, one per
// top-level entry.
type Convert struct {
	Input  string `arg:"" default:"-" help:"Source input file or '-' for stdin."  name:"input"  optional:""`
	Output string `arg:"" default:"-" help:"Destination file or '-' for stdout." name:"output" optional:""`
}

// Run executes the convert command.
func (c *Convert) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, ext, err := loadSource(ctx, c.Input)
	if err != nil {
		return err
	}

	// Render every line before opening the output so a data error never
	// creates or truncates the destination file.
	lines, err := lang.Process(doc, ext.Comments)
	if err != nil {
		return err
	}

	writer, err := createOutput(c.Output)
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return ErrWriteOutput.
				With(slog.String("output", c.Output)).
				Wrap(err)
		}
	}

	log.DebugContext(
		ctx,
		"converted document",
		slog.String("input", c.Input),
		slog.String("output", c.Output),
		slog.Int("entry_count", len(doc.Entries)),
		slog.Int("comment_count", len(ext.Comments)),
		slog.Int("line_count", len(lines)),
	)

	return nil
}

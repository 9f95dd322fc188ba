package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/tomelt/cli/cmd/repl"
	"github.com/ardnew/tomelt/log"
)

// Repl starts an interactive expression evaluator over a document's
// constants.
type Repl struct {
	Source string `arg:"" help:"Source document binding constants, '-' for stdin" name:"source"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache path undefined")
	}

	reader, err := openSource(r.Source)
	if err != nil {
		return err
	}
	defer reader.Close()

	return repl.Run(
		ctx,
		reader,
		cacheDir,
		log.With(slog.String("command", "repl")),
	)
}

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tomelt/lang"
	"github.com/ardnew/tomelt/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
// It doubles as the output indicator for writing to stdout.
const stdinSource = "-"

// openSource opens the named file for reading, or stdin when name is "-".
// The returned closer never closes stdin itself.
func openSource(name string) (io.ReadCloser, error) {
	if name == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, ErrReadInput.
			With(slog.String("source", name)).
			Wrap(err)
	}

	return file, nil
}

// readSource reads the entire contents of the named source.
func readSource(name string) (string, error) {
	reader, err := openSource(name)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", ErrReadInput.
			With(slog.String("source", name)).
			Wrap(err)
	}

	return string(data), nil
}

// loadSource reads the named source, strips comment blocks, and decodes the
// remaining text as a document. A dropped unterminated block is logged but
// does not fail the load, preserving the blocks that did close.
func loadSource(
	ctx context.Context,
	name string,
) (*lang.Document, lang.Extraction, error) {
	text, err := readSource(name)
	if err != nil {
		return nil, lang.Extraction{}, err
	}

	ext := lang.Extract(text)
	if ext.Dangling != nil {
		log.WarnContext(
			ctx,
			"unterminated comment block dropped",
			slog.String("source", name),
			slog.Int("line", ext.Dangling.Line),
		)
	}

	doc, err := lang.DecodeDocument(ext.Text)
	if err != nil {
		return nil, ext, err
	}

	return doc, ext, nil
}

// nopWriteCloser wraps a writer whose lifetime the caller does not own.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// createOutput creates the named file for writing, or stdout when name is
// "-". The returned closer never closes stdout itself.
func createOutput(name string) (io.WriteCloser, error) {
	if name == stdinSource {
		return nopWriteCloser{os.Stdout}, nil
	}

	file, err := os.Create(name)
	if err != nil {
		return nil, ErrWriteOutput.
			With(slog.String("output", name)).
			Wrap(err)
	}

	return file, nil
}

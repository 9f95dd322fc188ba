package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/tomelt/lang"
	"github.com/ardnew/tomelt/log"
)

const defaultEditor = "vi"

// editDocCommand implements [tea.ExecCommand] for the document
// edit-decode-retry loop. It writes the current source to a temp file,
// opens the user's editor, and rebuilds the constants environment from
// the result. On a decode or evaluation error the user is prompted to
// re-edit; declining exits the program.
type editDocCommand struct {
	source    string
	ctxFunc   func() context.Context
	logger    log.Logger
	newSource string
	newEnv    lang.Env
	applied   bool
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editDocCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editDocCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editDocCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-decode-retry loop. It writes the source, opens
// the editor, rebuilds the environment from the result, and prompts on
// error. If the user declines to re-edit, it returns [ErrEditDeclined].
func (c *editDocCommand) Run() error {
	ctx := c.ctxFunc()

	content := c.source

	// Create a single temp file for the entire loop.
	f, err := os.CreateTemp(os.TempDir(), "tomelt-repl-*.toml")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		// Write current content to temp file.
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		// Treat a cleared file as a cancelled edit.
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		env, loadErr := loadEnv(string(data))
		c.logger.TraceContext(
			ctx,
			"editor decode attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", loadErr == nil),
		)

		if loadErr == nil {
			c.newSource = string(data)
			c.newEnv = env
			c.applied = true

			return nil
		}

		// Show error and prompt.
		fmt.Fprintf(c.stderr, "\nDecode error: %s\n", loadErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		// Carry the (failed) content into the next editor iteration.
		content = string(data)
	}
}

// loadEnv rebuilds the constants environment from raw document text.
// Comment blocks are stripped before decoding, same as the initial load.
func loadEnv(source string) (lang.Env, error) {
	ext := lang.Extract(source)

	doc, err := lang.DecodeDocument(ext.Text)
	if err != nil {
		return nil, err
	}

	return lang.Constants(doc)
}

// runEditor launches the user's editor on the given file path and waits
// for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}

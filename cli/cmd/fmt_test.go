package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/ardnew/tomelt/lang"
)

// captureRun runs fn with stdout captured and returns what it wrote.
func captureRun(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Capture stdout
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	runErr := fn()

	// Restore stdout
	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)

	return buf.String(), runErr
}

// TestLinesRun tests the default lines format.
func TestLinesRun(t *testing.T) {
	source := writeSourceFile(t,
		"Key1 = 10\nKey2 = 20\nKey3 = \"|Key1 Key2 +|\"\n")

	lines := &Lines{Source: source}

	got, err := captureRun(t, func() error {
		return lines.Run(context.Background())
	})
	if err != nil {
		t.Fatalf("Lines.Run() error: %v", err)
	}

	want := "10 -> Key1\n20 -> Key2\n30 -> Key1 Key2 +\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestJSONRun tests ordered JSON output at different indent widths.
func TestJSONRun(t *testing.T) {
	tests := []struct {
		name   string
		source string
		indent int
		want   string
	}{
		{
			name:   "indented",
			source: "Key1 = 10\nKey2 = 20\n",
			indent: 2,
			want:   "{\n  \"Key1\": 10,\n  \"Key2\": 20\n}\n",
		},
		{
			name:   "compact",
			source: "Zeta = 1\nAlpha = 2.5\n",
			indent: 0,
			want:   "{\"Zeta\":1,\"Alpha\":2.5}\n",
		},
		{
			name:   "expression_renders_delimited",
			source: "Key1 = 10\nKey2 = \"|Key1 1 +|\"\n",
			indent: 0,
			want:   "{\"Key1\":10,\"Key2\":\"|Key1 1 +|\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonCmd := &JSON{
				Indent: tt.indent,
				Source: writeSourceFile(t, tt.source),
			}

			got, err := captureRun(t, func() error {
				return jsonCmd.Run(context.Background())
			})
			if err != nil {
				t.Fatalf("JSON.Run() error: %v", err)
			}

			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestYAMLRun tests ordered YAML output including nested tables.
func TestYAMLRun(t *testing.T) {
	source := writeSourceFile(t, "Z = 1\nA = 2\n[T]\nB = 3\nA2 = 4\n")

	yamlCmd := &YAML{Indent: 2, Source: source}

	got, err := captureRun(t, func() error {
		return yamlCmd.Run(context.Background())
	})
	if err != nil {
		t.Fatalf("YAML.Run() error: %v", err)
	}

	want := "Z: 1\nA: 2\nT:\n  B: 3\n  A2: 4\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestFmtSyntaxErrors tests that every format surfaces decode errors.
func TestFmtSyntaxErrors(t *testing.T) {
	source := writeSourceFile(t, "Key1 = @\n")

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "lines",
			run: func() error {
				return (&Lines{Source: source}).Run(context.Background())
			},
		},
		{
			name: "json",
			run: func() error {
				return (&JSON{Indent: 2, Source: source}).Run(context.Background())
			},
		},
		{
			name: "yaml",
			run: func() error {
				return (&YAML{Indent: 2, Source: source}).Run(context.Background())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, lang.ErrSyntax) {
				t.Errorf("Run() error = %v, want %v", err, lang.ErrSyntax)
			}
		})
	}
}

// TestLinesRunStdin tests reading the lines format from stdin.
func TestLinesRunStdin(t *testing.T) {
	// Save and restore stdin
	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdin = r

	go func() {
		defer w.Close()
		io.WriteString(w, "Key1 = 10\n")
	}()

	lines := &Lines{Source: stdinSource}

	got, err := captureRun(t, func() error {
		return lines.Run(context.Background())
	})
	if err != nil {
		t.Fatalf("Lines.Run() error: %v", err)
	}

	if got != "10 -> Key1\n" {
		t.Errorf("output = %q, want %q", got, "10 -> Key1\n")
	}
}

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/tomelt/lang"
)

// TestOpenSourceStdin tests that "-" reads from stdin without closing it.
func TestOpenSourceStdin(t *testing.T) {
	// Save and restore stdin
	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdin = r

	content := "Key1 = 10\n"

	go func() {
		defer w.Close()
		io.WriteString(w, content)
	}()

	reader, err := openSource(stdinSource)
	if err != nil {
		t.Fatalf("openSource(-) error: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("reading from stdin source: %v", err)
	}

	if string(data) != content {
		t.Errorf("got %q, want %q", string(data), content)
	}
}

// TestReadSourceFile tests reading the full contents of a named file.
func TestReadSourceFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "tomelt-test-*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := "Key1 = 10\nKey2 = 20\n"
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	text, err := readSource(tmpfile.Name())
	if err != nil {
		t.Fatalf("readSource() error: %v", err)
	}

	if text != content {
		t.Errorf("got %q, want %q", text, content)
	}
}

// TestReadSourceMissing tests that a nonexistent file reports ErrReadInput.
func TestReadSourceMissing(t *testing.T) {
	_, err := readSource("/nonexistent/path/file.toml")
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("readSource() error = %v, want %v", err, ErrReadInput)
	}
}

// TestLoadSource tests decoding a document with an embedded comment block.
func TestLoadSource(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "tomelt-test-*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := "Key1 = 10\n{{!\na note\n}}\nKey2 = 20\n"
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	doc, ext, err := loadSource(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("loadSource() error: %v", err)
	}

	if len(doc.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(doc.Entries))
	}

	if len(ext.Comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(ext.Comments))
	}

	if ext.Comments[0].Line != 1 {
		t.Errorf("comment line = %d, want 1", ext.Comments[0].Line)
	}
}

// TestLoadSourceSyntaxError tests that TOML syntax errors surface as
// ErrSyntax.
func TestLoadSourceSyntaxError(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "tomelt-test-*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.WriteString("Key1 = @\n"); err != nil {
		t.Fatal(err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	_, _, err = loadSource(context.Background(), tmpfile.Name())
	if !errors.Is(err, lang.ErrSyntax) {
		t.Errorf("loadSource() error = %v, want %v", err, lang.ErrSyntax)
	}
}

// TestCreateOutputFile tests writing to a named file.
func TestCreateOutputFile(t *testing.T) {
	tmpdir, err := os.MkdirTemp("", "tomelt-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpdir)

	path := filepath.Join(tmpdir, "out.txt")

	writer, err := createOutput(path)
	if err != nil {
		t.Fatalf("createOutput() error: %v", err)
	}

	if _, err := io.WriteString(writer, "10 -> Key1\n"); err != nil {
		t.Fatal(err)
	}

	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "10 -> Key1\n" {
		t.Errorf("got %q, want %q", string(data), "10 -> Key1\n")
	}
}

// TestCreateOutputStdout tests that "-" writes to stdout without closing it.
func TestCreateOutputStdout(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	writer, err := createOutput(stdinSource)
	if err != nil {
		os.Stdout = oldStdout

		t.Fatalf("createOutput(-) error: %v", err)
	}

	if _, err := io.WriteString(writer, "hello"); err != nil {
		os.Stdout = oldStdout

		t.Fatal(err)
	}

	if err := writer.Close(); err != nil {
		os.Stdout = oldStdout

		t.Fatal(err)
	}

	// Restore stdout
	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)

	if buf.String() != "hello" {
		t.Errorf("got %q, want %q", buf.String(), "hello")
	}
}

package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  NewError("something failed"),
			want: "something failed",
		},
		{
			name: "message with cause",
			err:  NewError("something failed").Wrap(errors.New("root cause")),
			want: "something failed: root cause",
		},
		{
			name: "cause only",
			err:  WrapError(errors.New("root cause")),
			want: "root cause",
		},
		{
			name: "empty",
			err:  &Error{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_IsMatchesSentinel(t *testing.T) {
	sentinel := NewError("operation failed")

	derived := sentinel.
		Wrap(errors.New("disk full")).
		With(slog.String("path", "/tmp/out"))

	if !errors.Is(derived, sentinel) {
		t.Error("expected derived error to match its sentinel")
	}

	other := NewError("different failure")
	if errors.Is(derived, other) {
		t.Error("expected derived error not to match an unrelated sentinel")
	}
}

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError("wrapper").Wrap(cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	if errors.Unwrap(err) != cause {
		t.Error("expected Unwrap to return the wrapped cause")
	}
}

func TestError_WrapPreservesAttrs(t *testing.T) {
	base := NewError("failure").With(slog.String("stage", "decode"))
	wrapped := base.Wrap(errors.New("bad byte"))

	val := wrapped.LogValue()
	if val.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", val.Kind())
	}

	var found bool
	for _, attr := range val.Group() {
		if attr.Key == "stage" && attr.Value.String() == "decode" {
			found = true
		}
	}
	if !found {
		t.Error("expected wrapped error to carry attributes of the original")
	}
}

func TestError_WithDoesNotMutateReceiver(t *testing.T) {
	base := NewError("failure")
	_ = base.With(slog.Int("count", 1), slog.Int("count", 2))

	if n := len(base.attrs); n != 0 {
		t.Errorf("expected receiver to remain without attrs, got %d", n)
	}
}

func TestError_WrapErrorIdempotent(t *testing.T) {
	orig := NewError("already structured")
	got := WrapError(fmt.Errorf("outer: %w", orig))

	if got != orig {
		t.Error("expected WrapError to return the embedded *Error unchanged")
	}
}

func TestError_LogValueIncludesCause(t *testing.T) {
	err := NewError("failure").Wrap(errors.New("root cause"))

	var msg, cause string
	for _, attr := range err.LogValue().Group() {
		switch attr.Key {
		case "error":
			msg = attr.Value.String()
		case "cause":
			cause = attr.Value.String()
		}
	}

	if msg != "failure" {
		t.Errorf("expected error attr %q, got %q", "failure", msg)
	}
	if cause != "root cause" {
		t.Errorf("expected cause attr %q, got %q", "root cause", cause)
	}
}

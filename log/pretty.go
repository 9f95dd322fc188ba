package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler implements a colorized slog.Handler in either text or JSON
// framing. Text framing is a single line of space-separated key=value pairs;
// JSON framing is a multiline object with two-space indentation.
type prettyHandler struct {
	mu         *sync.Mutex
	w          io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	attrs      []slog.Attr
	groups     []string
}

func newPrettyHandler(cfg config) *prettyHandler {
	return &prettyHandler{
		mu:         &sync.Mutex{},
		w:          cfg.output,
		formatTime: cfg.formatTime,
		level:      cfg.level,
		format:     cfg.format,
		caller:     cfg.caller,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.Level(h.level)
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if h.format == FormatJSON {
		h.handleJSON(buf, r)
	} else {
		h.handleText(buf, r)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// field is one rendered key with its resolved value.
type field struct {
	key   string
	value slog.Value
}

// fields assembles the record's builtin fields followed by handler and
// record attributes, with group names folded into dotted key prefixes.
func (h *prettyHandler) fields(r slog.Record) []field {
	out := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		if formatted := h.formatTime(r.Time); formatted != "" {
			out = append(out, field{slog.TimeKey, slog.StringValue(formatted)})
		}
	}

	out = append(out, field{slog.LevelKey, slog.AnyValue(r.Level)})

	if h.caller {
		if src := r.Source(); src != nil {
			loc := fmt.Sprintf("%s:%d", src.File, src.Line)
			out = append(out, field{slog.SourceKey, slog.StringValue(loc)})
		}
	}

	out = append(out, field{slog.MessageKey, slog.StringValue(r.Message)})

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}

	for _, a := range h.attrs {
		out = append(out, field{prefix + a.Key, a.Value.Resolve()})
	}

	r.Attrs(func(a slog.Attr) bool {
		out = append(out, field{prefix + a.Key, a.Value.Resolve()})

		return true
	})

	return out
}

func (h *prettyHandler) handleText(buf *bytes.Buffer, r slog.Record) {
	for i, f := range h.fields(r) {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(colorGray)
		buf.WriteString(f.key)
		buf.WriteString(colorReset)
		buf.WriteByte('=')
		writeValue(buf, f.value)
	}
}

func (h *prettyHandler) handleJSON(buf *bytes.Buffer, r slog.Record) {
	buf.WriteString("{\n")

	for i, f := range h.fields(r) {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(colorGray)
		buf.WriteString(f.key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")
		writeValue(buf, f.value)
	}

	buf.WriteString("\n}")
}

// writeValue renders a resolved value with a color keyed to its kind:
// strings cyan, numbers yellow, booleans green/red, durations magenta,
// times blue, and levels by severity.
func writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		buf.WriteString(colorCyan)
		buf.WriteString(v.String())
		buf.WriteString(colorReset)

	case slog.KindInt64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatInt(v.Int64(), 10))
		buf.WriteString(colorReset)

	case slog.KindUint64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatUint(v.Uint64(), 10))
		buf.WriteString(colorReset)

	case slog.KindFloat64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
		buf.WriteString(colorReset)

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(colorGreen)
			buf.WriteString("true")
		} else {
			buf.WriteString(colorRed)
			buf.WriteString("false")
		}

		buf.WriteString(colorReset)

	case slog.KindDuration:
		buf.WriteString(colorMagenta)
		buf.WriteString(v.Duration().String())
		buf.WriteString(colorReset)

	case slog.KindTime:
		buf.WriteString(colorBlue)
		buf.WriteString(v.Time().String())
		buf.WriteString(colorReset)

	case slog.KindGroup:
		buf.WriteByte('[')

		for i, a := range v.Group() {
			if i > 0 {
				buf.WriteByte(' ')
			}

			buf.WriteString(colorGray)
			buf.WriteString(a.Key)
			buf.WriteString(colorReset)
			buf.WriteByte('=')
			writeValue(buf, a.Value.Resolve())
		}

		buf.WriteByte(']')

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			switch {
			case level >= slog.LevelError:
				buf.WriteString(colorRed)
			case level >= slog.LevelWarn:
				buf.WriteString(colorYellow)
			case level >= slog.LevelInfo:
				buf.WriteString(colorGreen)
			default:
				buf.WriteString(colorBlue)
			}

			buf.WriteString(Level(level).String())
			buf.WriteString(colorReset)

			return
		}

		buf.WriteString(colorCyan)
		buf.WriteString(v.String())
		buf.WriteString(colorReset)

	default:
		buf.WriteString(colorCyan)
		buf.WriteString(v.String())
		buf.WriteString(colorReset)
	}
}

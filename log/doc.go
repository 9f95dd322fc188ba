// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options. A package-level default logger writes to stderr,
// keeping diagnostics separate from converted documents on stdout.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("conversion started", slog.String("input", path))
//	logger.Error("conversion failed", slog.Any("error", err))
//
// Or use the package-level functions, which share one default logger:
//
//	log.Warn("unterminated comment block", slog.Int("line", n))
//
// # Configuration
//
// Configure a logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The default logger is reconfigured with [Config] using the same options.
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("source", "doc.toml"))
//	logger.Info("decoded") // includes source=doc.toml
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant:
//
//	logger.InfoContext(ctx, "processing document")
//	logger.Info("message without context") // uses DefaultContextProvider
//
// Context-unaware functions internally call their context-aware counterparts
// using [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the
// configured level are discarded.
//
// # Time Formatting
//
// Time formatting is configurable using [WithTimeLayout]. You can
// specify any named layout supported by the [time] package (such as
// "RFC3339" or "RFC3339Nano") or provide a custom layout string.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. Both have colorized pretty variants, enabled by default
// and controlled with [WithPretty].
package log

// Package cli contains the command line interface for tomelt.
//
// # Usage
//
// The CLI parses flags and subcommands with Kong and dispatches to the
// commands defined in the cmd package:
//
//	tomelt convert config.toml out.txt
//	tomelt eval --source config.toml Key1 Key2 +
//	tomelt fmt json --indent 4 config.toml
//	tomelt repl config.toml
//	tomelt init
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads
// TOML config files and converts them to Kong flag values. The default
// config file is written by the init command and lives at:
//
//	~/.config/tomelt/config.toml
//
// Command-line flags always override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// Logger flags are applied by an early argument scan before Kong begins
// parsing, so diagnostics emitted during parsing itself already honor the
// requested level and format.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tomelt .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/tomelt/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	tomelt --log-level=debug --pprof-mode=cpu convert config.toml
//
//	# Text format with heap profiling
//	tomelt --log-format=text --pprof-mode=heap convert config.toml
//
//	# Custom profile directory
//	tomelt --pprof-mode=allocs --pprof-dir=/tmp/profiles convert config.toml
package cli

// Package profile provides optional runtime profiling for the tomelt
// application.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime profiling
// capabilities with conditional compilation support. Profiling is optional and
// must be enabled at build time using the "pprof" build tag.
//
// When built with profiling disabled (default), all operations are no-ops with
// zero runtime overhead.
//
// # Available Profiling Modes
//
// The following profiling modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Using File-Based Profiling
//
// File-based profiling writes profiling data to disk for later analysis. The
// profiler is configured using the [Profiler] type and started with
// [Profiler.Start]:
//
//	p := profile.Profiler{
//	    Mode:  "cpu",
//	    Path:  "/tmp/profiles",
//	    Quiet: false,
//	}
//	ctrl := p.Start()
//	defer ctrl.Stop()
//
//	// Application code runs here with profiling enabled
//
// Profile files are written to the specified directory with names matching the
// profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
// The tomelt command supports profiling through command-line flags when built
// with the pprof tag:
//
//	# Enable CPU profiling (writes to default cache directory)
//	./tomelt --pprof-mode cpu
//
//	# Enable heap profiling with custom output directory
//	./tomelt --pprof-mode heap --pprof-dir ./profiles
//
//	# List available profiling modes
//	./tomelt -h
//
// The default output directory is:
//
//	$XDG_CACHE_HOME/tomelt/pprof   (Linux/Unix)
//	~/Library/Caches/tomelt/pprof  (macOS)
//	%LocalAppData%\tomelt\pprof    (Windows)
//
// # Analyzing Profile Data
//
// Use the go tool pprof command to analyze profile data interactively:
//
//	# Analyze a CPU profile
//	go tool pprof /tmp/profiles/cpu.pprof
//
//	# Analyze with the original binary for symbol resolution
//	go tool pprof ./tomelt /tmp/profiles/cpu.pprof
//
//	# Open web UI with flame graphs on a specific port
//	go tool pprof -http=localhost:8080 /tmp/profiles/cpu.pprof
//
// When built with the pprof tag, this package also imports [net/http/pprof],
// which registers HTTP handlers for runtime profiling at /debug/pprof/ in any
// HTTP server the application starts.
//
// # Performance Overhead
//
//   - CPU profiling: ~5% overhead
//   - Heap profiling: minimal overhead (sampled)
//   - Block profiling: can add significant overhead if rate is too high
//   - Mutex profiling: can add significant overhead if rate is too high
//   - Trace profiling: high overhead, use for short durations only
//
// Adjust sampling rates using [runtime.SetBlockProfileRate],
// [runtime.SetMutexProfileFraction], and [runtime.MemProfileRate].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

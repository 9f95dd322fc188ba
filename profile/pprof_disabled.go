//go:build !pprof

package profile

// start is a no-op when profiling support is compiled out.
func start(_, _ string, _ bool) interface{ Stop() } {
	return ignore{}
}

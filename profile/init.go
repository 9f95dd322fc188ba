package profile

// Profiler holds all supported pprof configuration parameters.
type Profiler struct {
	// Mode is the profiler mode to enable, one of [Modes].
	Mode string
	// Path is the output directory where profiling data will be written.
	Path string
	// Quiet suppresses the profiler's own logging when true.
	Quiet bool
}

// Start initializes the profiler and returns an interface for stopping it.
//
// If build tag pprof or p.Mode are unset, then Start returns a no-op
// implementation.
// Both Start and Stop are always safely callable.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p.Mode, p.Path, p.Quiet)
}

type ignore struct{}

func (ignore) Stop() {}

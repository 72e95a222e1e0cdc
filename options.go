package asyncrt

// runtimeOptions holds configuration resolved from a RuntimeOption slice.
type runtimeOptions struct {
	logger        eventLogger
	diagnostics   bool
	scavengeBatch int
}

// RuntimeOption configures a Runtime at construction time.
type RuntimeOption interface {
	applyRuntime(*runtimeOptions)
}

type runtimeOptionFunc func(*runtimeOptions)

func (f runtimeOptionFunc) applyRuntime(o *runtimeOptions) { f(o) }

// WithLogger attaches a structured logger for executor diagnostics (task
// lifecycle, reactor waits, nested loops, channel rendezvous). When unset, a
// no-op logger is used.
func WithLogger(l eventLogger) RuntimeOption {
	return runtimeOptionFunc(func(o *runtimeOptions) {
		if l != nil {
			o.logger = l
		}
	})
}

// WithDiagnosticRegistry enables the optional introspection registry that tracks
// live oneshot and channel cores for debugging. It carries no correctness weight;
// nothing on the hot path reads it.
func WithDiagnosticRegistry(enabled bool) RuntimeOption {
	return runtimeOptionFunc(func(o *runtimeOptions) {
		o.diagnostics = enabled
	})
}

// WithScavengeBatch records a diagnostic-registry batch size (default 64) in
// the resolved options; non-positive values are ignored. NewRuntime does not
// read it: diagRegistry.Scavenge takes its batch size as an argument.
func WithScavengeBatch(n int) RuntimeOption {
	return runtimeOptionFunc(func(o *runtimeOptions) {
		if n > 0 {
			o.scavengeBatch = n
		}
	})
}

func resolveRuntimeOptions(opts []RuntimeOption) *runtimeOptions {
	cfg := &runtimeOptions{
		scavengeBatch: 64,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyRuntime(cfg)
	}
	return cfg
}

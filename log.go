package vtcore

import "go.uber.org/zap"

// defaultLogger is used by a [Terminal] constructed without [WithLogger];
// it discards everything, so the core never pays logging cost (or blocks
// on a slow sink) unless a caller opts in.
var defaultLogger = zap.NewNop()

// WithLogger sets the logger a Terminal uses for malformed-input warnings
// and other diagnostics. The core never treats a log call as load-bearing:
// a listener or logging failure is dropped silently rather than changing
// parse behaviour.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Terminal) {
		if logger != nil {
			t.logger = logger
		}
	}
}

package session

// DefaultPrecision is the number of recent mismatches the position estimate
// absorbs before moving.
const DefaultPrecision = 5

// Logger receives the session's diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures a Session during creation.
type Option func(*Session)

// WithPrecision sets the position tolerance. Negative values are ignored.
func WithPrecision(precision int) Option {
	return func(s *Session) {
		if precision >= 0 {
			s.precision = precision
		}
	}
}

// WithLogger sets the logger for recoverable lookup misses and debug traces.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

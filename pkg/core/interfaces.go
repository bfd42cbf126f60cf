package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything. Handy for tests and library callers that want silence.
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}

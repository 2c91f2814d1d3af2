package log

// nullLogger discards everything. Tests and embedding applications pass
// it explicitly (e.g. via emulator.WithLogger) to get silence instead of
// the default stdout logger.
type nullLogger struct{}

// NewNullLogger returns a Logger that discards all output.
func NewNullLogger() Logger {
	return &nullLogger{}
}

func (n nullLogger) Infof(format string, args ...interface{})  {}
func (n nullLogger) Warnf(format string, args ...interface{})  {}
func (n nullLogger) Errorf(format string, args ...interface{}) {}
func (n nullLogger) Debugf(format string, args ...interface{}) {}

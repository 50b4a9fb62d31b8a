package logger

var _ LoggerInterface = (*NoOpLogger)(nil)

// NoOpLogger discards everything. Tests use it where output is irrelevant.
type NoOpLogger struct{}

func (n *NoOpLogger) Trace(msg string, args ...any) {}
func (n *NoOpLogger) Debug(msg string, args ...any) {}
func (n *NoOpLogger) Info(msg string, args ...any)  {}
func (n *NoOpLogger) Warn(msg string, args ...any)  {}
func (n *NoOpLogger) Error(msg string, args ...any) {}
func (n *NoOpLogger) Close()                        {}
func (n *NoOpLogger) GetLogPath() string            { return "" }

// NewNoOpLogger returns a NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

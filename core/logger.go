package core

// Logger is any service that can log application events.
// args may contain errors, map[string]interface{} fields and other domain values.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
	// Sync flushes buffered entries and pending reports.
	Sync() error
}

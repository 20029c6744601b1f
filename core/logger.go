package core

// Logger is any service that can log messages at various levels.
// Extra args may carry structured context; implementations decide what to do
// with a user.User arg (eg. attach the person to an error report).
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

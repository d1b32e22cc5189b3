package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// logger is a global reference to a shared Logger (created/initialized with the
// compiler, but separated for general usage)
var logger = newLogger(LogLevelVerbose)

// Initialize initializes the global logger with the provided log level.  It
// resets the error counter, the recorded messages, and disables tracing.
func Initialize(loglevelname string) {
	logger = newLogger(ParseLogLevel(loglevelname))
}

// ParseLogLevel converts a log level name into one of the enumerated levels
func ParseLogLevel(loglevelname string) int {
	switch loglevelname {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		return LogLevelVerbose
	}
}

// EnableTrace routes structured debug events to w
func EnableTrace(w io.Writer) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.trace = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(zerolog.DebugLevel)
}

// Trace returns the structured debug logger.  It discards everything unless
// EnableTrace has been called.
func Trace() *zerolog.Logger {
	return &logger.trace
}

// ShouldProceed indicates whether or not the log module has encountered any
// errors.
func ShouldProceed() bool {
	return ErrorCount() == 0
}

// ErrorCount returns the number of errors logged since initialization
func ErrorCount() int {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount
}

// WarningCount returns the number of warnings logged since initialization
func WarningCount() int {
	logger.m.Lock()
	defer logger.m.Unlock()

	return len(logger.warnings)
}

// Messages returns a copy of every error message logged since initialization
func Messages() []string {
	logger.m.Lock()
	defer logger.m.Unlock()

	return append([]string(nil), logger.messages...)
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Errors are always counted.

// LogCompileError logs a compilation error (user-induced, bad code)
func LogCompileError(message string, kind int) {
	logger.handleMsg(&CompileMessage{
		Message: message,
		Kind:    kind,
		IsError: true,
	})
}

// LogCompileWarning logs a compilation warning (user-induced, problematic code)
func LogCompileWarning(message string, kind int) {
	logger.handleMsg(&CompileMessage{
		Message: message,
		Kind:    kind,
		IsError: false,
	})
}

// LogConfigError logs an error related to project or compiler configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogCompilationFinished displays the deferred warnings and the closing
// summary of compilation
func LogCompilationFinished() {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel >= LogLevelWarning {
		for _, warning := range logger.warnings {
			warning.display()
		}
	}

	if logger.LogLevel >= LogLevelError {
		displayCompilationFinished(logger.errorCount == 0, logger.errorCount, len(logger.warnings))
	}
}

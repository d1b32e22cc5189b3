package logging

import (
	"sync"

	"github.com/rs/zerolog"
)

// Logger is a type that is responsible for storing and logging output from the
// compiler as necessary.  It is the shared error channel: every reported error
// increments its counter and records its message.
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// messages is the text of every error logged, in order of occurrence
	messages []string

	// warnings is a list of all warnings to be logged at the end of compilation
	warnings []LogMessage

	// trace receives structured debug events when verbose tracing is enabled
	trace zerolog.Logger

	// m is the mutex used to synchonize the printing of error messages
	m *sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and closing compilation notification (success/fail)
	LogLevelWarning        // errors, warnings, and closing message
	LogLevelVerbose        // errors, warnings, compiler version and progress summary, closing message (DEFAULT)
)

// newLogger creates a new logger struct
func newLogger(loglevel int) Logger {
	return Logger{
		LogLevel: loglevel,
		trace:    zerolog.Nop(),
		m:        &sync.Mutex{},
	}
}

// handleMsg prompts to logger to process a message; the mutex keeps the
// counter and the display consistent if messages arrive concurrently
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if lm.isError() {
		l.errorCount++
		l.messages = append(l.messages, lm.text())

		if l.LogLevel > LogLevelSilent {
			lm.display()
		}
	} else {
		l.warnings = append(l.warnings, lm)
	}
}

// -----------------------------------------------------------------------------

// LogMessage is the interface for all messages passed through the logger
type LogMessage interface {
	isError() bool
	display()
	text() string
}

// CompileMessage is an error or warning produced by erroneous source code
type CompileMessage struct {
	Message string
	Kind    int
	IsError bool
}

func (cm *CompileMessage) isError() bool { return cm.IsError }
func (cm *CompileMessage) text() string  { return cm.Message }

// Enumeration of compile message kinds
const (
	LMKDef    = iota // Definitions and redeclarations
	LMKName          // Name usage and resolution
	LMKTyping        // Type specifications
	LMKTrace         // Malformed declaration traces
)

// ConfigError is an error related to project or compiler configuration
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool { return true }
func (ce *ConfigError) text() string  { return ce.Kind + ": " + ce.Message }

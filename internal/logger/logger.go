package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger.
type Logger struct {
	*zap.Logger
}

// NewLogger creates a logger with the production configuration writing to stdout.
func NewLogger() (*Logger, error) {
	return NewLoggerWithLevel(zapcore.InfoLevel)
}

// NewLoggerWithLevel creates a production logger at the given level.
func NewLoggerWithLevel(level zapcore.Level) (*Logger, error) {
	return newLogger(level, "stdout")
}

// NewStderrLogger creates a production logger writing to stderr, leaving
// stdout to command output.
func NewStderrLogger(level zapcore.Level) (*Logger, error) {
	return newLogger(level, "stderr")
}

func newLogger(level zapcore.Level, output string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger: zapLogger,
	}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// ParseLevel maps a level name ("debug", "info", ...) to a zap level.
// Unknown names fall back to info.
func ParseLevel(name string) zapcore.Level {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}

	return level
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}

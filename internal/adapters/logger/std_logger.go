package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/go_naco/internal/ports"
	"github.com/baditaflorin/l"
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// Options controls how a StdLogger is created.
type Options struct {
	// Output receives log lines. Defaults to os.Stdout.
	Output io.Writer
	// JSON switches from text to JSON lines.
	JSON bool
	// Async buffers writes in the background.
	Async bool
}

// DefaultConfig returns the l.Config shared by every logger in the module.
func DefaultConfig(opts Options) l.Config {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	return l.Config{
		Output:      output,
		JsonFormat:  opts.JSON,
		AsyncWrite:  opts.Async,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	}
}

// NewCustomStdLogger creates a new standard logger with custom configuration.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &StdLogger{logger: logger}, nil
}

// OpenLogger creates an l.Logger that appends to path, or writes to
// opts.Output when path is empty. The returned function closes the logger
// and then the file.
func OpenLogger(path string, opts Options) (l.Logger, func() error, error) {
	var file *os.File
	if path != "" {
		var err error
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		opts.Output = file
	}

	logger, err := l.NewStandardFactory().CreateLogger(DefaultConfig(opts))
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	closeFn := func() error {
		err := logger.Close()
		if file != nil {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return logger, closeFn, nil
}

// FromExisting wraps an l.Logger owned by the caller.
func FromExisting(logger l.Logger) ports.Logger {
	if logger == nil {
		return NewNopLogger()
	}
	return &StdLogger{logger: logger}
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes the underlying logger.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}

// NopLogger discards everything. It is the default for the pure normalizer.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() ports.Logger {
	return NopLogger{}
}

// Debug discards the message.
func (NopLogger) Debug(string, ...interface{}) {}

// Info discards the message.
func (NopLogger) Info(string, ...interface{}) {}

// Warn discards the message.
func (NopLogger) Warn(string, ...interface{}) {}

// Error discards the message.
func (NopLogger) Error(string, ...interface{}) {}

// Close does nothing.
func (NopLogger) Close() error { return nil }

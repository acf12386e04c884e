// Package logging provides structured debug logging for PrepWise components.
// All logs are written to a rotated file in ~/.prepwise/logs/, tagged with a
// per-run session ID so individual runs can be traced in the shared file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/prepwise/prepwise/pkg/storage"
)

// Logger writes level-tagged log lines for a single component.
//
// All log methods (Debugf, Infof, Warnf, Errorf) write unconditionally.
// There is currently no log level filtering.
type Logger struct {
	runID     string
	component string
	writer    io.WriteCloser
	logger    *log.Logger
	mu        sync.Mutex
	logPath   string
	closeOnce sync.Once
}

var (
	// Global run ID for the current execution
	runID     string
	runIDOnce sync.Once
)

// getRunID returns or creates the run ID for this execution.
func getRunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

// NewLogger creates a new logger for a specific component. The logger writes
// to ~/.prepwise/logs/prepwise.log, rotated at 5 MB with three backups kept.
//
// If the log directory cannot be created, it returns a fallback logger that
// writes to stderr along with the error. Callers can check the error to
// detect fallback mode.
func NewLogger(component string) (*Logger, error) {
	logDir, err := storage.LogDir()
	if err != nil {
		return newFallbackLogger(component, err), err
	}
	if err := os.MkdirAll(logDir, 0750); err != nil {
		err = fmt.Errorf("failed to create log directory: %w", err)
		return newFallbackLogger(component, err), err
	}

	logPath := filepath.Join(logDir, "prepwise.log")
	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	return &Logger{
		runID:     getRunID(),
		component: component,
		writer:    writer,
		logger:    log.New(writer, "", 0), // timestamps are formatted manually
		logPath:   logPath,
	}, nil
}

// newFallbackLogger creates a logger that writes to stderr when file logging fails.
func newFallbackLogger(component string, err error) *Logger {
	logger := log.New(os.Stderr, fmt.Sprintf("[%s] ", component), log.LstdFlags)
	logger.Printf("WARNING: Failed to initialize file logging: %v", err)

	return &Logger{
		runID:     getRunID(),
		component: component,
		logger:    logger,
	}
}

// formatLogEntry creates a structured log entry with timestamp, run ID,
// component, and level.
func (l *Logger) formatLogEntry(level, message string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s", timestamp, l.runID[:8], l.component, level, message)
}

func (l *Logger) write(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Println(l.formatLogEntry(level, fmt.Sprintf(format, v...)))
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) { l.write("DEBUG", format, v...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) { l.write("INFO", format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) { l.write("WARN", format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) { l.write("ERROR", format, v...) }

// RunID returns the current run ID.
func (l *Logger) RunID() string {
	return l.runID
}

// LogPath returns the path of the log file, or empty in fallback mode.
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close closes the underlying writer. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.writer != nil {
			err = l.writer.Close()
		}
	})
	return err
}

// GetRunID returns the current global run ID.
func GetRunID() string {
	return getRunID()
}

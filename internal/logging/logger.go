// Package logging provides the leveled console logger and the append-only
// audit log.
//
// Console lines are colored by level when colors are enabled. Every line is
// also recorded in the audit log, a zap logger writing to a file outside
// the dataset (by default ~/annotrim.log) and tagged with a per-run id so
// interleaved runs can be told apart.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/annotrim/internal/config"
	"github.com/backmassage/annotrim/internal/term"
)

// Logger provides leveled, optionally colored console logging mirrored into
// a zap audit log.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	out     io.Writer
	errOut  io.Writer

	file  *os.File
	audit *zap.Logger
	runID string
}

// NewLogger configures colors from cfg and opens the audit log at
// cfg.LogFile when set. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{
		verbose: cfg.Verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
		audit:   zap.NewNop(),
		runID:   uuid.NewString(),
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.audit = newAuditLogger(f).With(zap.String("run_id", l.runID))
	}
	return l, nil
}

// newAuditLogger writes console-encoded entries with ISO8601 timestamps to w.
func newAuditLogger(w io.Writer) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

// SetOutput redirects console output. Errors go to errOut; a nil writer
// leaves the current one in place.
func (l *Logger) SetOutput(out, errOut io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if out != nil {
		l.out = out
	}
	if errOut != nil {
		l.errOut = errOut
	}
}

// Out returns the writer used for regular console output.
func (l *Logger) Out() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out
}

// Audit returns the structured audit logger for events that carry fields.
// It is a no-op logger when no audit file is configured.
func (l *Logger) Audit() *zap.Logger { return l.audit }

// RunID identifies this run in the audit log.
func (l *Logger) RunID() string { return l.runID }

// Close flushes and closes the audit log if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	_ = l.audit.Sync()
	err := l.file.Close()
	l.file = nil
	l.audit = zap.NewNop()
	return err
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.out
	if level == "ERROR" {
		out = l.errOut
	}
	_, _ = io.WriteString(out, ts+" "+term.Paint(color, "["+level+"]")+" "+text+"\n")
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.line("INFO", term.Colors().Info, msg)
	l.audit.Info(msg)
}

// Success logs at SUCCESS level (green). The audit log records it as info.
func (l *Logger) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.line("SUCCESS", term.Colors().Success, msg)
	l.audit.Info(msg)
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.line("WARN", term.Colors().Warn, msg)
	l.audit.Warn(msg)
}

// Error logs at ERROR level (red), to the error writer.
func (l *Logger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.line("ERROR", term.Colors().Error, msg)
	l.audit.Error(msg)
}

// Debug logs at DEBUG level (cyan) only when verbose. The audit log always
// receives it.
func (l *Logger) Debug(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.verbose {
		l.line("DEBUG", term.Colors().Debug, msg)
	}
	l.audit.Debug(msg)
}

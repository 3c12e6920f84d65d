package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is the log file, relative to the working directory.
const DefaultPath = "logs/crane.txt"

// Logger writes structured records to stderr and appends them to a file on disk.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New opens (or creates) the log file at path and returns a logger writing text records
// at level and above. An empty path logs to stderr only. If the file cannot be opened the
// logger still works and the error is returned alongside it.
func New(path string, level slog.Level) (*Logger, error) {
	l := &Logger{}
	var w io.Writer = os.Stderr
	var openErr error
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			openErr = err
		} else if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
			openErr = err
		} else {
			l.file = f
			w = io.MultiWriter(os.Stderr, f)
		}
	}
	l.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return l, openErr
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level. Anything else is info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

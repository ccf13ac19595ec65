package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Format selects the slog handler
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logger configuration
type Config struct {
	Level      slog.Level
	Format     Format
	OutputFile string // optional copy of every record, e.g. a CI artifact
	AddSource  bool
}

// Logger owns the slog handler installed as the process default
type Logger struct {
	slog   *slog.Logger
	config Config
	file   *os.File
	mu     sync.Mutex
}

var (
	globalLogger *Logger
	globalMu     sync.Mutex
)

// Initialize builds a logger writing to stderr and installs it as slog's
// default, so component loggers created with slog.Default().With pick it up.
// stdout is left alone because it carries command output.
func Initialize(config Config) (*Logger, error) {
	logger, err := NewLogger(os.Stderr, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger != nil {
		globalLogger.Close()
	}
	globalLogger = logger
	slog.SetDefault(logger.slog)

	return logger, nil
}

// NewLogger creates a logger writing to w and, if configured, a log file
func NewLogger(w io.Writer, config Config) (*Logger, error) {
	logger := &Logger{config: config}

	writers := []io.Writer{w}
	if config.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(config.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.OutputFile, err)
		}
		logger.file = file
		writers = append(writers, file)
	}
	out := io.MultiWriter(writers...)

	opts := &slog.HandlerOptions{
		Level:     config.Level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if resolveFormat(config.Format, w) == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger.slog = slog.New(handler)
	return logger, nil
}

// resolveFormat picks JSON for non-terminal writers when the format is auto.
// CI runners never attach a terminal, so their logs come out structured.
func resolveFormat(format Format, w io.Writer) Format {
	switch format {
	case FormatText, FormatJSON:
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return FormatText
	}
	return FormatJSON
}

// ParseLevel maps a level name to a slog.Level, defaulting to info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog exposes the underlying slog.Logger
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// With returns a logger with additional context
func (l *Logger) With(args ...any) *slog.Logger {
	return l.slog.With(args...)
}

// Close closes the log file if one is open
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Close closes the global logger
func Close() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// DefaultConfig returns info level in auto format, or debug with source
// locations when debugMode is set.
func DefaultConfig(debugMode bool) Config {
	if debugMode {
		return Config{Level: slog.LevelDebug, Format: FormatText, AddSource: true}
	}
	return Config{Level: slog.LevelInfo, Format: FormatAuto}
}

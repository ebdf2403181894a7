package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes leveled, printf-style messages to the terminal and/or a rotated file.
type Logger struct {
	mu     *sync.Mutex
	writer io.Writer

	Name  string
	Level LogLevel

	TimeFormat string
	File       string
	NoColor    bool
	JSON       bool
	NoTerminal bool
	Rotation   *LoggerRotation

	painter *painter
}

type LoggerRotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type LoggerOption func(*Logger)

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

// WithLevel sets the minimum level that gets written.
func WithLevel(level LogLevel) LoggerOption {
	return func(l *Logger) {
		l.Level = level
	}
}

// WithFile additionally writes all entries into a rotated log file.
func WithFile(file string) LoggerOption {
	return func(l *Logger) {
		l.File = file
	}
}

// WithoutTerminal disables writing to stderr.
func WithoutTerminal() LoggerOption {
	return func(l *Logger) {
		l.NoTerminal = true
	}
}

// WithoutColor disables ANSI colouring of terminal output.
func WithoutColor() LoggerOption {
	return func(l *Logger) {
		l.NoColor = true
	}
}

// WithJSON writes one JSON object per entry.
func WithJSON() LoggerOption {
	return func(l *Logger) {
		l.JSON = true
	}
}

// WithWriter replaces the terminal writer. Colours are disabled for custom writers.
func WithWriter(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.writer = w
		l.NoColor = true
	}
}

func NewLogger(name string, opts ...LoggerOption) *Logger {
	l := &Logger{
		mu:    &sync.Mutex{},
		Name:  name,
		Level: Info,

		TimeFormat: "2006-01-02 15:04:05",
		Rotation: &LoggerRotation{
			MaxSize:    16,
			MaxBackups: 3,
			MaxAge:     16,
			Compress:   false,
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	l.setupWriter()

	return l
}

// Discard returns a logger that drops every entry.
func Discard() *Logger {
	return NewLogger("", WithWriter(io.Discard), WithLevel(Fatal+1))
}

func (l *Logger) setupWriter() {
	var writers []io.Writer

	if !l.NoTerminal {
		if l.writer != nil {
			writers = append(writers, l.writer)
		} else {
			writers = append(writers, os.Stderr)
			if !l.NoColor {
				l.painter = newPainter(os.Stderr)
			}
		}
	}

	if l.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.Rotation.MaxSize,
			MaxBackups: l.Rotation.MaxBackups,
			MaxAge:     l.Rotation.MaxAge,
			Compress:   l.Rotation.Compress,
		}
		writers = append(writers, fileWriter)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	l.writer = io.MultiWriter(writers...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.Level {
		return
	}

	timestamp := time.Now().Format(l.TimeFormat)
	formattedMsg := fmt.Sprintf(msg, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Message:   formattedMsg,
		}
		if l.Name != "" {
			entry.Service = l.Name
		}

		jsonBytes, _ := json.Marshal(entry)
		fmt.Fprintf(l.writer, "%s\n", jsonBytes)
	} else {
		prefix := fmt.Sprintf("%s (%s)", level.Letter(), timestamp)
		if l.Name != "" {
			prefix = fmt.Sprintf("%s %s:", prefix, l.Name)
		}

		fmt.Fprintln(l.writer, l.painter.paint(level, prefix+" "+formattedMsg))
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

// Named returns a child logger sharing the same writer, e.g. "console/registry".
func (l *Logger) Named(name string) *Logger {
	child := *l
	if l.Name != "" {
		child.Name = fmt.Sprintf("%s/%s", l.Name, name)
	} else {
		child.Name = name
	}
	return &child
}

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// defaultDemoLogFile keeps demo logs out of the terminal the TUI draws on.
const defaultDemoLogFile = "pullrefresh-debug.log"

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// newTextLogger writes human-readable logs, for commands that print to a
// plain terminal.
func newTextLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// fileLogger is a JSON logger on a rotating file. Close the writer when done.
type fileLogger struct {
	Logger   *slog.Logger
	Writer   io.WriteCloser
	FilePath string
}

func (f *fileLogger) Close() error {
	if f.Writer != nil {
		return f.Writer.Close()
	}
	return nil
}

// newFileLogger sets up logging for the TUI so log output does not corrupt
// the display.
func newFileLogger(path string, level slog.Leveler) *fileLogger {
	if path == "" {
		path = defaultDemoLogFile
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}
	return &fileLogger{
		Logger:   slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})),
		Writer:   w,
		FilePath: path,
	}
}

// logger builds the logger for a plain-terminal command from the log flags.
// The returned func closes the log file, if any.
func (a *app) logger() (*slog.Logger, func() error, error) {
	level, err := parseLevel(a.v.GetString(FlagLogLevel))
	if err != nil {
		return nil, nil, err
	}
	if path := a.v.GetString(FlagLogFile); path != "" {
		fl := newFileLogger(path, level)
		return fl.Logger, fl.Close, nil
	}
	return newTextLogger(a.stderr, level), func() error { return nil }, nil
}

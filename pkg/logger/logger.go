// Package logger provides the leveled logger used across the migration.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var def = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Setup configures the package logger. Verbose enables debug output;
// debug implies verbose and additionally records source positions.
func Setup(w io.Writer, verbose, debug bool) {
	level := slog.LevelInfo
	if verbose || debug {
		level = slog.LevelDebug
	}
	def = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: debug}))
}

func Infof(format string, v ...any) {
	def.Info(fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...any) {
	def.Warn(fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...any) {
	def.Error(fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...any) {
	def.Debug(fmt.Sprintf(format, v...))
}

// StepLogger tags every message with the migration step it came from.
type StepLogger struct {
	name string
}

func Step(name string) *StepLogger {
	return &StepLogger{name: name}
}

func (l *StepLogger) Infof(format string, v ...any) {
	def.Info(fmt.Sprintf(format, v...), "step", l.name)
}

func (l *StepLogger) Warnf(format string, v ...any) {
	def.Warn(fmt.Sprintf(format, v...), "step", l.name)
}

func (l *StepLogger) Errorf(format string, v ...any) {
	def.Error(fmt.Sprintf(format, v...), "step", l.name)
}

func (l *StepLogger) Debugf(format string, v ...any) {
	def.Debug(fmt.Sprintf(format, v...), "step", l.name)
}

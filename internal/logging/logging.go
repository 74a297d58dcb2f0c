// Package logging configures the diagnostics logger. All non-CSV output
// goes to stderr so the CSV stream stays pure.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ResolveLevel decides the effective log level. An explicit level name
// always wins; otherwise --verbose means debug, an enabled progress
// interval means info, and the default is warn.
func ResolveLevel(explicit string, verbose bool, progressEvery int) slog.Level {
	switch explicit {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if verbose {
		return slog.LevelDebug
	}

	if progressEvery > 0 {
		return slog.LevelInfo
	}

	return slog.LevelWarn
}

// Setup builds a stderr slog logger at the given level and installs it as
// the default. Colors are enabled only when stderr is a terminal.
func Setup(level slog.Level) *slog.Logger {
	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal,
	}))

	slog.SetDefault(logger)

	return logger
}

package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
)

var DefaultOptions = &slog.HandlerOptions{
	Level:       slog.LevelInfo,
	ReplaceAttr: colorizeLevel,
}

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgHiBlack),
	slog.LevelInfo:  color.New(color.FgCyan),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed, color.Bold),
}

// NewHandler returns a text handler that writes colored level names to w.
func NewHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if opts == nil {
		opts = DefaultOptions
	}
	return slog.NewTextHandler(w, opts)
}

// OptionsWithLevel copies DefaultOptions with the given level name.
// Unknown names fall back to info.
func OptionsWithLevel(name string) *slog.HandlerOptions {
	opts := *DefaultOptions
	opts.Level = ParseLevel(name)
	return &opts
}

func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

func colorizeLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	c, ok := levelColors[level]
	if !ok {
		return a
	}
	return slog.String(a.Key, c.Sprint(level.String()))
}

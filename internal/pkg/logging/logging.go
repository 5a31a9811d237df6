package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Init configures the process-wide slog default. format "json" produces
// machine-readable output for production; anything else uses a tint handler
// for readable terminal logs.
func Init(level, format string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      l,
			TimeFormat: time.DateTime,
		})
	}
	slog.SetDefault(slog.New(handler))
}

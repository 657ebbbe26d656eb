package telemetry

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates the process-wide structured logger, tagged with the
// service name so log aggregation can tell the API apart from other
// deployments sharing a sink. Format is "json" (the default) or "text" for
// local development.
func NewLogger(format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("service", "wapptv")
}

// parseLevel maps a config string to a slog level. Unknown values fall back
// to info rather than failing startup.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

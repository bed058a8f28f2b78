package observability

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Writer   io.Writer  // Text handler destination; defaults to os.Stderr.
	Level    slog.Level // Minimum level for the text and file handlers.
	JSONPath string     // Optional JSON log file, appended to.
}

// NewLogger builds the process logger: a text handler on Writer, an optional
// JSON file handler, and a systemd journal handler when the process runs as
// a unit. Handlers are fanned out so every record reaches all of them.
func NewLogger(opts LoggerOptions) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var handlers []slog.Handler
	handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: opts.Level,
	}))

	if opts.JSONPath != "" {
		f, err := os.OpenFile(opts.JSONPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
				Level: opts.Level,
			}))
		}
	}

	// systemd sets INVOCATION_ID for services; only then is journald a
	// useful destination.
	if os.Getenv("INVOCATION_ID") != "" {
		if h, err := slogjournal.NewHandler(&slogjournal.Options{}); err == nil {
			handlers = append(handlers, h)
		}
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

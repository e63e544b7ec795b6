package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/redacok/redacok-backend/pkg/env"
)

// Setup builds the default slog logger for the given mode: human-readable text
// in local/dev, JSON in prod. When logPath is non-empty the output is also
// duplicated into the file. The returned cleanup closes the log file, if any.
func Setup(mode env.Mode, logPath string) (*slog.Logger, func() error) {
	var out io.Writer = os.Stdout
	cleanup := func() error { return nil }

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				out = io.MultiWriter(os.Stdout, f)
				cleanup = f.Close
			}
		}
	}

	opts := &slog.HandlerOptions{Level: mode.SlogLevel()}

	var handler slog.Handler
	if mode == env.Prod {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler), cleanup
}

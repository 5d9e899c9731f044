package main

import (
	"io"
	"log/slog"
	"os"
)

// log is the package-wide logger. It discards everything until initLogger
// is called from the root command's cobra.OnInitialize hook.
var log *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type logOptions struct {
	Enabled bool
	Path    string // "" logs to stderr when Enabled
}

// initLogger configures the package logger. Call once, before any command
// runs; it never fails outright, falling back to stderr if Path can't be
// opened.
func initLogger(opts logOptions) {
	if !opts.Enabled {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	w := io.Writer(os.Stderr)
	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			w = f
		}
	}
	log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

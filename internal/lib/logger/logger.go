package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the root slog logger for the given environment.
// Local runs log human-readable text to stdout; dev and prod log JSON
// to a file under logDir, duplicated to stdout.
func SetupLogger(env, logDir string) *slog.Logger {
	switch env {
	case envDev, envProd:
		level := slog.LevelInfo
		if env == envDev {
			level = slog.LevelDebug
		}

		out := io.Writer(os.Stdout)
		path := filepath.Join(logDir, "fibertrack.log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Printf("cannot open log file %s: %v, logging to stdout", path, err)
		} else {
			out = io.MultiWriter(os.Stdout, file)
		}

		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

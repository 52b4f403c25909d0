// Package logging sets up the server and request loggers.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lingomap/pkg/config"
)

// RequestLogger is the logger instance for HTTP requests.
var RequestLogger *slog.Logger

// Init rotates old logs and installs the server logger as the slog default.
// The returned func closes the log files.
func Init(cfg *config.LogConfig, hCfg *config.HistoryConfig) (func(), error) {
	rotatePaths(cfg.Server.Path, cfg.Requests.Path)
	if hCfg != nil && hCfg.TTS.Enabled {
		rotatePaths(hCfg.TTS.Path)
	}

	EnableTrace = isTrace(cfg.Server.Level)

	serverFile, err := openLog(cfg.Server.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to setup server logger: %w", err)
	}
	requestFile, err := openLog(cfg.Requests.Path)
	if err != nil {
		serverFile.Close()
		return nil, fmt.Errorf("failed to setup requests logger: %w", err)
	}

	level := ParseLevel(cfg.Server.Level)
	slog.SetDefault(slog.New(fanout{
		textHandler(serverFile, level, level == slog.LevelDebug),
		textHandler(os.Stdout, max(level, slog.LevelInfo), false),
		textHandler(GlobalLogCapture, slog.LevelInfo, false),
	}))
	RequestLogger = slog.New(textHandler(requestFile, ParseLevel(cfg.Requests.Level), false))

	return func() {
		_ = errors.Join(serverFile.Close(), requestFile.Close())
	}, nil
}

// ParseLevel maps a config level name to a slog level. TRACE logs at DEBUG.
// Unknown names yield INFO.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "TRACE", "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTrace(levelStr string) bool {
	return strings.EqualFold(strings.TrimSpace(levelStr), "TRACE")
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

func textHandler(w io.Writer, level slog.Level, source bool) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: source})
}

// rotatePaths moves each existing file to <path>.old, replacing an older one.
func rotatePaths(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		oldPath := p + ".old"
		_ = os.Remove(oldPath)
		_ = os.Rename(p, oldPath)
	}
}

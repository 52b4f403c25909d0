package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lingomap/pkg/config"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	serverLog := filepath.Join(tempDir, "server.log")
	requestLog := filepath.Join(tempDir, "requests.log")
	ttsLog := filepath.Join(tempDir, "tts.log")

	// a previous run's history should be rotated away
	if err := os.WriteFile(ttsLog, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.LogConfig{
		Server:   config.LogSettings{Path: serverLog, Level: "DEBUG"},
		Requests: config.LogSettings{Path: requestLog, Level: "INFO"},
	}
	hCfg := &config.HistoryConfig{
		TTS: config.HistorySettings{Enabled: true, Path: ttsLog},
	}

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cleanup, err := Init(cfg, hCfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer cleanup()

	if _, err := os.Stat(serverLog); os.IsNotExist(err) {
		t.Error("Server log file not created")
	}
	if _, err := os.Stat(requestLog); os.IsNotExist(err) {
		t.Error("Request log file not created")
	}
	if _, err := os.Stat(ttsLog + ".old"); err != nil {
		t.Error("TTS history was not rotated")
	}
	if RequestLogger == nil {
		t.Error("RequestLogger was not initialized")
	}

	slog.Info("capture me", "k", "v")
	if !strings.Contains(GlobalLogCapture.GetLastLine(), "capture me") {
		t.Errorf("capture handler missed line, got %q", GlobalLogCapture.GetLastLine())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"trace", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInit_Trace(t *testing.T) {
	dir := t.TempDir()
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		EnableTrace = false
	})

	for _, level := range []string{"TRACE", "DEBUG"} {
		cleanup, err := Init(&config.LogConfig{
			Server:   config.LogSettings{Path: filepath.Join(dir, "server.log"), Level: level},
			Requests: config.LogSettings{Path: filepath.Join(dir, "requests.log"), Level: "INFO"},
		}, nil)
		if err != nil {
			t.Fatalf("Init(%s) failed: %v", level, err)
		}
		cleanup()
		if want := level == "TRACE"; EnableTrace != want {
			t.Errorf("level %s: EnableTrace = %v, want %v", level, EnableTrace, want)
		}
	}
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestFanout(t *testing.T) {
	var a, b strings.Builder
	h := fanout{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}
	log := slog.New(h).With("provider", "native")

	log.Debug("quiet")
	log.Warn("loud")

	if !strings.Contains(a.String(), "quiet") || !strings.Contains(a.String(), "loud") {
		t.Errorf("debug handler missed records: %q", a.String())
	}
	if strings.Contains(b.String(), "quiet") || !strings.Contains(b.String(), "provider=native") {
		t.Errorf("warn handler got %q", b.String())
	}

	inner := slog.NewTextHandler(io.Discard, nil)
	bad := fanout{failingHandler{inner}, inner}
	if err := bad.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0)); err == nil {
		t.Error("expected handler error to surface")
	}
}

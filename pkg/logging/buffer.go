package logging

import (
	"strings"
	"sync"
)

// captureSize is how many recent server log lines are kept in memory.
const captureSize = 50

// LogCaptureWriter keeps the most recent log lines in a ring.
type LogCaptureWriter struct {
	mu    sync.RWMutex
	lines []string
	next  int
	full  bool
}

// GlobalLogCapture receives a copy of every server log line.
var GlobalLogCapture = NewLogCapture(captureSize)

// NewLogCapture creates a capture holding up to size lines.
func NewLogCapture(size int) *LogCaptureWriter {
	if size < 1 {
		size = 1
	}
	return &LogCaptureWriter{lines: make([]string, size)}
}

// Write stores p as one line. slog handlers write one record per call.
func (w *LogCaptureWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lines[w.next] = strings.TrimRight(string(p), "\n")
	w.next = (w.next + 1) % len(w.lines)
	if w.next == 0 {
		w.full = true
	}
	return len(p), nil
}

// GetLastLine returns the most recent line, or "".
func (w *LogCaptureWriter) GetLastLine() string {
	lines := w.Lines(1)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

// Lines returns up to n recent lines, oldest first.
func (w *LogCaptureWriter) Lines(n int) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	count := w.next
	if w.full {
		count = len(w.lines)
	}
	if n <= 0 || n > count {
		n = count
	}
	out := make([]string, 0, n)
	for i := n; i > 0; i-- {
		idx := (w.next - i + len(w.lines)) % len(w.lines)
		out = append(out, w.lines[idx])
	}
	return out
}

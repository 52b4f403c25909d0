package api

import (
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"lingomap/pkg/logging"
)

const maxLogLines = 50

// key=value or key="value with spaces"
var logRegex = regexp.MustCompile(`([a-zA-Z0-9_\-.]+)=(?:"([^"]*)"|([^ ]+))`)

// LogEntry is one parsed server log line.
type LogEntry struct {
	Time    string            `json:"time,omitempty"` // HH:MM:SS
	Level   string            `json:"level,omitempty"`
	Message string            `json:"msg"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// LogResponse carries the status line and the recent log tail.
type LogResponse struct {
	Log    string     `json:"log"`
	Recent []LogEntry `json:"recent,omitempty"`
}

// handleLatestLog returns the last log line formatted for a status bar and,
// with ?n=, that many recent entries.
func handleLatestLog(w http.ResponseWriter, r *http.Request) {
	resp := LogResponse{Log: parseLogLine(logging.GlobalLogCapture.GetLastLine()).String()}
	if s := r.URL.Query().Get("n"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxLogLines {
			writeError(w, http.StatusBadRequest, "n must be between 1 and 50")
			return
		}
		for _, line := range logging.GlobalLogCapture.Lines(n) {
			resp.Recent = append(resp.Recent, parseLogLine(line))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseLogLine splits a slog text line. Values longer than 20 characters are
// dropped; a line without msg= is returned whole as the message.
func parseLogLine(raw string) LogEntry {
	matches := logRegex.FindAllStringSubmatch(raw, -1)
	e := LogEntry{}
	for _, m := range matches {
		key, val := m[1], m[2]
		if val == "" {
			val = m[3]
		}
		val = strings.TrimSpace(val)

		switch key {
		case "time":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				e.Time = t.Format("15:04:05")
			}
		case "level":
			e.Level = val
		case "msg":
			e.Message = val
		default:
			if len(val) > 20 {
				continue
			}
			if e.Fields == nil {
				e.Fields = make(map[string]string)
			}
			e.Fields[key] = val
		}
	}
	if e.Message == "" {
		return LogEntry{Message: raw}
	}
	return e
}

// String renders "HH:MM:SS msg (k=v, ...)" with keys sorted.
func (e LogEntry) String() string {
	out := e.Message
	if e.Time != "" {
		out = e.Time + " " + out
	}
	if len(e.Fields) == 0 {
		return out
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	params := make([]string, len(keys))
	for i, k := range keys {
		params[i] = k + "=" + e.Fields[k]
	}
	return out + " (" + strings.Join(params, ", ") + ")"
}

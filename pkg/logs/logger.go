package logs

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes JSON lines with a timestamp and event fields.
type Logger struct {
	mu      sync.Mutex
	w       *bufio.Writer
	f       *os.File
	enabled bool
}

// NewFromEnv returns a logger if VKBD_LOG is set to a truthy value or if
// VKBD_LOG_FILE is provided. Otherwise it returns a disabled logger. When
// enabled and no file is specified, it writes to ./vkbd.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("VKBD_LOG_FILE")
	enabled := false
	if v := os.Getenv("VKBD_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if lf != "" {
		enabled = true
	}
	if !enabled {
		return &Logger{}
	}
	if lf == "" {
		lf = filepath.Join(".", "vkbd.log")
	}
	return NewFile(lf)
}

// NewFile returns a logger appending to path. If the file cannot be opened
// the logger is disabled.
func NewFile(path string) *Logger {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return &Logger{}
	}
	return &Logger{w: bufio.NewWriter(f), f: f, enabled: true}
}

// Enabled reports whether events are written anywhere.
func (l *Logger) Enabled() bool { return l != nil && l.enabled }

// Close flushes and closes the underlying file if enabled.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.w.Flush()
	_ = l.f.Close()
	l.enabled = false
}

// Event writes a JSON line with the event name and fields.
// Common fields: code, class, glyph, language, caps, shift, caret, buffer_len.
func (l *Logger) Event(event string, fields map[string]any) {
	l.write("", event, fields)
}

// Warn writes an event with "level":"warn". Used for contained errors such
// as catalog defects and failed preference writes.
func (l *Logger) Warn(event string, fields map[string]any) {
	l.write("warn", event, fields)
}

func (l *Logger) write(level, event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	rec := map[string]any{
		"time":  time.Now().Format(time.RFC3339Nano),
		"event": event,
	}
	if level != "" {
		rec["level"] = level
	}
	for k, v := range fields {
		rec[k] = v
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return
	}
	enc := json.NewEncoder(l.w)
	_ = enc.Encode(rec)
	_ = l.w.Flush()
}

package colors

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	structuredMu             sync.Mutex
	structuredLoggingEnabled atomic.Bool
)

func init() {
	structuredLoggingEnabled.Store(true)
}

// StructuredLogLevel represents log level for structured logs.
type StructuredLogLevel string

const (
	LevelDebug StructuredLogLevel = "debug"
	LevelInfo  StructuredLogLevel = "info"
	LevelWarn  StructuredLogLevel = "warn"
	LevelError StructuredLogLevel = "error"
)

// StructuredLogEntry is one JSON line of debug tracing.
type StructuredLogEntry struct {
	Timestamp string             `json:"timestamp"`
	Level     StructuredLogLevel `json:"level"`
	Component string             `json:"component"`
	Action    string             `json:"action"`
	Status    string             `json:"status"`
	Error     string             `json:"error,omitempty"`
	Fields    map[string]any     `json:"fields,omitempty"`
}

// DisableStructuredLogging turns structured tracing off. The prefs editor
// calls this so JSON lines do not tear the terminal UI.
func DisableStructuredLogging() {
	structuredLoggingEnabled.Store(false)
}

// EnableStructuredLogging turns structured tracing back on.
func EnableStructuredLogging() {
	structuredLoggingEnabled.Store(true)
}

// StructuredLog writes a JSON trace line to stderr when debug mode is on.
func StructuredLog(level StructuredLogLevel, component, action, status string, err error, fields map[string]any) {
	if !debugEnabled.Load() || !structuredLoggingEnabled.Load() {
		return
	}

	entry := StructuredLogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: component,
		Action:    action,
		Status:    status,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal structured log: %v\n", marshalErr)
		return
	}

	structuredMu.Lock()
	defer structuredMu.Unlock()
	fmt.Fprintf(os.Stderr, "%s\n", data)
}

// StructuredDebug logs a structured debug entry.
func StructuredDebug(component, action, status string, err error, fields map[string]any) {
	StructuredLog(LevelDebug, component, action, status, err, fields)
}

// StructuredInfo logs a structured info entry.
func StructuredInfo(component, action, status string, err error, fields map[string]any) {
	StructuredLog(LevelInfo, component, action, status, err, fields)
}

// StructuredError logs a structured error entry.
func StructuredError(component, action, status string, err error, fields map[string]any) {
	StructuredLog(LevelError, component, action, status, err, fields)
}

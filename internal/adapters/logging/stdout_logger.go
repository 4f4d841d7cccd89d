// Package logging provides the production implementation of the application
// logger: line-delimited JSON on a writer, filtered by level.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/openfleet/eldsim/internal/domain/shared"
)

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// StdoutLogger writes structured log lines to a writer. Safe for concurrent
// use.
type StdoutLogger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel int
	clock    shared.Clock
}

// NewStdoutLogger creates a logger writing to stdout at the given minimum
// level ("debug", "info", "warn", "error").
func NewStdoutLogger(level string) *StdoutLogger {
	return NewWriterLogger(os.Stdout, level, nil)
}

// NewWriterLogger creates a logger on an arbitrary writer; a nil clock uses
// the real clock.
func NewWriterLogger(out io.Writer, level string, clock shared.Clock) *StdoutLogger {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank["INFO"]
	}
	return &StdoutLogger{out: out, minLevel: rank, clock: clock}
}

// Log emits one JSON line when the level passes the filter.
func (l *StdoutLogger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank["INFO"]
	}
	if rank < l.minLevel {
		return
	}

	entry := make(map[string]interface{}, len(metadata)+3)
	for k, v := range metadata {
		entry[k] = v
	}
	entry["ts"] = l.clock.Now().Format(time.RFC3339)
	entry["level"] = strings.ToUpper(level)
	entry["message"] = message

	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":"ERROR","message":"failed to encode log entry: %s"}`, err))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(append(line, '\n'))
}

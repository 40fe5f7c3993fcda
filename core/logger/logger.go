// Package logger captures command execution logs so shell activity
// can be audited after the fact.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// Entry is a single logged event.
type Entry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	RunCommand *RunCommand `json:"run_command,omitempty"`
	Panic      *Panic      `json:"panic,omitempty"`
}

// RunCommand records one executed pipeline and its final status.
type RunCommand struct {
	Argv   []string `json:"argv"`
	Status int      `json:"status"`
}

// Panic records a crash recovered by the shell loop.
type Panic struct {
	Context    string `json:"context"`
	Stacktrace string `json:"stacktrace"`
}

// Recorder is a callback that stores entries in an external datastore.
type Recorder func(e *Entry) error

// Logger records shell events.
type Logger struct {
	Record Recorder
}

// NewJSONLinesRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJSONLinesRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(e *Entry) error {
			entry, err := json.Marshal(e)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{Record: func(*Entry) error { return nil }}
}

// NewSession creates a logger with an attached random session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// SessionLogger logs entries with a shared session ID.
type SessionLogger struct {
	logger    *Logger
	sessionID string
}

func (s *SessionLogger) record(e *Entry) error {
	e.TimestampMicros = time.Now().UnixNano() / int64(time.Microsecond)
	e.SessionID = s.sessionID
	return s.logger.Record(e)
}

// RecordCommand logs a pipeline run and the status it resolved to.
func (s *SessionLogger) RecordCommand(argv []string, status int) error {
	return s.record(&Entry{RunCommand: &RunCommand{Argv: argv, Status: status}})
}

// RecordPanic logs a recovered panic.
func (s *SessionLogger) RecordPanic(context, stacktrace string) error {
	return s.record(&Entry{Panic: &Panic{Context: context, Stacktrace: stacktrace}})
}

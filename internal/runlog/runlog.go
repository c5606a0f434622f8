// internal/runlog/runlog.go
// Package runlog appends one JSON line per run event to court.jsonl,
// keeping a machine-readable history alongside the Markdown transcripts.
package runlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event type constants.
const (
	EventRunStarted      = "run_started"
	EventTurnCompleted   = "turn_completed"
	EventVerdictReached  = "verdict_reached"
	EventRunInterrupted  = "run_interrupted"
	EventTranscriptSaved = "transcript_saved"
)

// Event is a single structured entry in the run log
type Event struct {
	Time             time.Time `json:"time"`
	Event            string    `json:"event"`
	RunID            string    `json:"run_id"`
	Topic            string    `json:"topic,omitempty"`
	Rounds           int       `json:"rounds,omitempty"`
	Participant      string    `json:"participant,omitempty"`
	Model            string    `json:"model,omitempty"`
	PromptTokens     int       `json:"prompt_tokens,omitempty"`
	CompletionTokens int       `json:"completion_tokens,omitempty"`
	Turns            int       `json:"turns,omitempty"`
	Path             string    `json:"path,omitempty"`
}

// NewRunID returns a fresh identifier tying one run's events together
func NewRunID() string {
	return uuid.NewString()
}

// Logger writes append-only JSONL events to court.jsonl inside dir.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger under dir, creating dir if needed.
// An existing log file is never truncated.
func NewLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &Logger{path: filepath.Join(dir, "court.jsonl")}, nil
}

// Append writes one event as a JSON line. A zero Time is set to now.
func (l *Logger) Append(event Event) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}
	return nil
}

// ReadAll parses every event in the log file. A missing file yields an
// empty slice, not an error.
func (l *Logger) ReadAll() ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Event{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return events, nil
}

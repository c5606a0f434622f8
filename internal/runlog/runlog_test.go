// internal/runlog/runlog_test.go
package runlog

import (
	"testing"
)

func TestAppendAndReadAll(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	runID := NewRunID()
	events := []Event{
		{Event: EventRunStarted, RunID: runID, Topic: "what is justice", Rounds: 2},
		{Event: EventTurnCompleted, RunID: runID, Participant: "Machiavelli", Model: "m:latest", PromptTokens: 10, CompletionTokens: 20},
		{Event: EventVerdictReached, RunID: runID, Model: "j:latest"},
		{Event: EventTranscriptSaved, RunID: runID, Path: "debates/x.md", Turns: 4},
	}
	for _, e := range events {
		if err := logger.Append(e); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("read %d events, want %d", len(got), len(events))
	}
	for i, e := range events {
		if got[i].Event != e.Event {
			t.Errorf("event %d type = %q, want %q", i, got[i].Event, e.Event)
		}
		if got[i].RunID != runID {
			t.Errorf("event %d run id = %q, want %q", i, got[i].RunID, runID)
		}
		if got[i].Time.IsZero() {
			t.Errorf("event %d has zero time", i)
		}
	}
	if got[1].PromptTokens != 10 || got[1].CompletionTokens != 20 {
		t.Errorf("turn event tokens = (%d, %d)", got[1].PromptTokens, got[1].CompletionTokens)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestAppendDoesNotTruncate(t *testing.T) {
	dir := t.TempDir()

	first, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	if err := first.Append(Event{Event: EventRunStarted, RunID: "a"}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	second, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	if err := second.Append(Event{Event: EventRunStarted, RunID: "b"}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	events, err := second.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events across loggers, got %d", len(events))
	}
}

func TestNewRunIDUnique(t *testing.T) {
	if NewRunID() == NewRunID() {
		t.Error("run IDs should be unique")
	}
}

// internal/cli/sink.go
package cli

import (
	"court/internal/debate"
	"court/internal/render"
	"court/internal/runlog"
)

// journalSink forwards engine output to the console and mirrors it into
// the run log. Log write failures never interrupt a running debate.
type journalSink struct {
	console *render.Console
	log     *runlog.Logger
	runID   string
	models  map[string]string // participant name -> model identifier
}

func (s *journalSink) Thinking(name string) {
	s.console.Thinking(name)
}

func (s *journalSink) Turn(t debate.Turn) {
	s.console.Turn(t)
	if s.log != nil {
		_ = s.log.Append(runlog.Event{
			Event:            runlog.EventTurnCompleted,
			RunID:            s.runID,
			Participant:      t.Name,
			Model:            s.models[t.Name],
			PromptTokens:     t.PromptTokens,
			CompletionTokens: t.CompletionTokens,
		})
	}
}

func (s *journalSink) Verdict(text string, promptTokens, completionTokens int) {
	s.console.Verdict(text, promptTokens, completionTokens)
	if s.log != nil {
		_ = s.log.Append(runlog.Event{
			Event:            runlog.EventVerdictReached,
			RunID:            s.runID,
			Model:            s.models["Judge"],
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
		})
	}
}

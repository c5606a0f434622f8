// internal/render/console_test.go
package render

import (
	"bytes"
	"strings"
	"testing"

	"court/internal/debate"
)

func TestTurnRendersThoughtsAndSpeech(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, 80)

	c.Turn(debate.Turn{
		Name:             "Machiavelli",
		Icon:             "🦊",
		Think:            "a quiet scheme",
		Speech:           "Power decides.",
		PromptTokens:     12,
		CompletionTokens: 8,
	})

	out := buf.String()
	for _, want := range []string{
		"MACHIAVELLI",
		"Thoughts: a quiet scheme",
		"Power decides.",
		"Tokens: prompt: 12, completion: 8, total: 20",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTurnWithoutThink(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, 80)

	c.Turn(debate.Turn{Name: "Socrates", Icon: "🏛", Speech: "What is power?"})

	if strings.Contains(buf.String(), "Thoughts:") {
		t.Error("empty think text should not render a thoughts line")
	}
}

func TestThinking(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, 80)

	c.Thinking("Machiavelli")
	if !strings.Contains(buf.String(), "Machiavelli is thinking...") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	c.Thinking("Judge")
	if !strings.Contains(buf.String(), "Judge is deliberating...") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestVerdict(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, 80)

	c.Verdict("Socrates wins.", 40, 10)

	out := buf.String()
	if !strings.Contains(out, "VERDICT") {
		t.Error("missing verdict title")
	}
	if !strings.Contains(out, "Socrates wins.") {
		t.Error("missing verdict text")
	}
	if !strings.Contains(out, "total: 50") {
		t.Error("missing token line")
	}
}

func TestSettingsTable(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, 120)

	c.Settings("order versus chaos", 3, "m:latest", "s:7b", "j:latest")

	out := buf.String()
	for _, want := range []string{"order versus chaos", "3", "m:latest", "s:7b", "j:latest"} {
		if !strings.Contains(out, want) {
			t.Errorf("settings table missing %q", want)
		}
	}
}

func TestErrorPanel(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithWriter(&buf, 120)

	c.Error("Error", "Ollama server is not running.")

	out := buf.String()
	if !strings.Contains(out, "Ollama server is not running.") {
		t.Error("missing error message")
	}
}

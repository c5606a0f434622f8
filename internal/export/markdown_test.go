// internal/export/markdown_test.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"court/internal/debate"
)

func TestTopicSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"What is justice? Why?", "what_is_justice_why"},
		{"Hello, World!", "hello_world"},
		{"Café & Co.", "café_co"},
		{"a-b c", "a_b_c"},
		{"", "debate"},
		{"???", "debate"},
		{"   spaces   ", "spaces"},
		{"UPPER Case", "upper_case"},
	}

	for _, test := range tests {
		if got := TopicSlug(test.input); got != test.expected {
			t.Errorf("TopicSlug(%q) = %q, want %q", test.input, got, test.expected)
		}
	}
}

func TestTopicSlugCharset(t *testing.T) {
	safe := regexp.MustCompile(`^[\p{Ll}\p{N}_-]+$`)
	inputs := []string{
		"What is justice? Why?",
		"Total state CONTROL!!! or... anarchy?",
		"  mixed   WHITESPACE\tand\nbreaks  ",
		"punctuation:;#$%^&*()[]{}",
	}

	for _, input := range inputs {
		slug := TopicSlug(input)
		if !safe.MatchString(slug) {
			t.Errorf("TopicSlug(%q) = %q contains unsafe characters", input, slug)
		}
		if len([]rune(slug)) > 240 {
			t.Errorf("TopicSlug(%q) is %d runes long", input, len([]rune(slug)))
		}
	}
}

func TestTopicSlugTruncation(t *testing.T) {
	slug := TopicSlug(strings.Repeat("a", 300))
	if len(slug) != 240 {
		t.Errorf("slug length = %d, want 240", len(slug))
	}
}

func sampleResult() *debate.Result {
	return &debate.Result{
		Topic:            "What is justice?",
		ModelMachiavelli: "llama3:latest",
		ModelSocrates:    "qwen2.5-coder:7b",
		ModelJudge:       "llama3.2:latest",
		Transcript: []debate.Turn{
			{Name: "Machiavelli", Icon: "🦊", Think: "scheme quietly", Speech: "Justice serves power.\nNothing more.", PromptTokens: 10, CompletionTokens: 20},
			{Name: "Socrates", Icon: "🏛", Speech: "And what is power, friend?", PromptTokens: 15, CompletionTokens: 25},
		},
		Verdict: "Socrates wins on rigor.",
		Tokens:  debate.TokenStats{Prompt: 25, Completion: 45, Total: 70},
	}
}

func TestBuildMarkdown(t *testing.T) {
	md := BuildMarkdown(sampleResult())

	if !strings.HasPrefix(md, "# Debate: What is justice?") {
		t.Errorf("missing title, got prefix %q", md[:40])
	}
	for _, want := range []string{
		"## Participants",
		"- **Socrates:** `qwen2.5-coder:7b`",
		"- **Machiavelli:** `llama3:latest`",
		"- **Judge:** `llama3.2:latest`",
		"## Transcript",
		"<details><summary>Thoughts</summary>",
		"scheme quietly",
		"> **🦊 Machiavelli:**",
		"> Justice serves power.",
		"> Nothing more.",
		"> **🏛 Socrates:**",
		"> And what is power, friend?",
		"## Verdict",
		"Socrates wins on rigor.",
		"## Token usage",
		"- **Prompt tokens:** 25",
		"- **Completion tokens:** 45",
		"- **Total:** 70",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	// No thoughts block for the turn without think text
	if strings.Count(md, "<details>") != 1 {
		t.Errorf("expected exactly one thoughts block, got %d", strings.Count(md, "<details>"))
	}
}

func TestBuildMarkdownParticipantsRoundTrip(t *testing.T) {
	res := sampleResult()
	md := BuildMarkdown(res)

	pattern := regexp.MustCompile("- \\*\\*(Socrates|Machiavelli|Judge):\\*\\* `([^`]+)`")
	found := map[string]string{}
	for _, m := range pattern.FindAllStringSubmatch(md, -1) {
		found[m[1]] = m[2]
	}

	if found["Socrates"] != res.ModelSocrates {
		t.Errorf("recovered Socrates model %q, want %q", found["Socrates"], res.ModelSocrates)
	}
	if found["Machiavelli"] != res.ModelMachiavelli {
		t.Errorf("recovered Machiavelli model %q, want %q", found["Machiavelli"], res.ModelMachiavelli)
	}
	if found["Judge"] != res.ModelJudge {
		t.Errorf("recovered Judge model %q, want %q", found["Judge"], res.ModelJudge)
	}
}

func TestBuildMarkdownInterruptedRun(t *testing.T) {
	res := &debate.Result{
		Topic:            "abandoned topic",
		ModelMachiavelli: "m",
		ModelSocrates:    "s",
		ModelJudge:       "j",
		Verdict:          debate.InterruptedVerdict,
		Interrupted:      true,
	}

	md := BuildMarkdown(res)
	if !strings.Contains(md, debate.InterruptedVerdict) {
		t.Error("placeholder verdict missing from markdown")
	}
	if !strings.Contains(md, "## Transcript") {
		t.Error("transcript section should exist even when empty")
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "debates")
	res := sampleResult()

	path, err := Write(res, dir)
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	wantName := fmt.Sprintf("%s_what_is_justice.md", time.Now().Format("2006-01-02"))
	if filepath.Base(path) != wantName {
		t.Errorf("filename = %q, want %q", filepath.Base(path), wantName)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if string(content) != BuildMarkdown(res) {
		t.Error("written content differs from BuildMarkdown output")
	}
}

func TestWriteOverwritesSameDayTopic(t *testing.T) {
	dir := t.TempDir()
	res := sampleResult()

	first, err := Write(res, dir)
	if err != nil {
		t.Fatalf("first Write() failed: %v", err)
	}

	res.Verdict = "changed verdict"
	second, err := Write(res, dir)
	if err != nil {
		t.Fatalf("second Write() failed: %v", err)
	}
	if first != second {
		t.Errorf("paths differ: %q vs %q", first, second)
	}

	content, _ := os.ReadFile(second)
	if !strings.Contains(string(content), "changed verdict") {
		t.Error("second write should silently overwrite the first")
	}
}

func TestWriteFailure(t *testing.T) {
	// A file where the directory should be forces MkdirAll to fail
	blocker := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := Write(sampleResult(), filepath.Join(blocker, "debates")); err == nil {
		t.Error("expected error when the debates directory cannot be created")
	}
}

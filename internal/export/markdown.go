// internal/export/markdown.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"court/internal/debate"
)

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// slugLimit caps slugs at this many runes to keep filenames portable
const slugLimit = 240

// TopicSlug converts a debate topic to a short filename-safe slug
func TopicSlug(topic string) string {
	slug := strings.ToLower(strings.TrimSpace(topic))
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugCollapse.ReplaceAllString(slug, "_")
	if r := []rune(slug); len(r) > slugLimit {
		slug = string(r[:slugLimit])
	}
	if slug == "" {
		return "debate"
	}
	return slug
}

// BuildMarkdown renders a debate result as a Markdown document:
// title, participants, transcript, verdict, and token usage.
func BuildMarkdown(res *debate.Result) string {
	lines := []string{
		fmt.Sprintf("# Debate: %s", res.Topic),
		"",
		"## Participants",
		"",
		fmt.Sprintf("- **Socrates:** `%s`", res.ModelSocrates),
		fmt.Sprintf("- **Machiavelli:** `%s`", res.ModelMachiavelli),
		fmt.Sprintf("- **Judge:** `%s`", res.ModelJudge),
		"",
		"## Transcript",
		"",
	}

	for _, turn := range res.Transcript {
		if think := strings.TrimSpace(turn.Think); think != "" {
			lines = append(lines,
				"<details><summary>Thoughts</summary>",
				"",
				think,
				"",
				"</details>",
				"",
			)
		}
		lines = append(lines, fmt.Sprintf("> **%s %s:**", turn.Icon, turn.Name))
		for _, line := range strings.Split(turn.Speech, "\n") {
			lines = append(lines, "> "+line)
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## Verdict", "", strings.TrimSpace(res.Verdict), "")

	lines = append(lines,
		"",
		"## Token usage",
		"",
		fmt.Sprintf("- **Prompt tokens:** %d", res.Tokens.Prompt),
		fmt.Sprintf("- **Completion tokens:** %d", res.Tokens.Completion),
		fmt.Sprintf("- **Total:** %d", res.Tokens.Total),
		"",
	)

	return strings.Join(lines, "\n")
}

// Write saves the rendered result to dir as {date}_{slug}.md, creating
// dir if needed. A second run on the same day and topic overwrites the
// first. Returns the written path.
func Write(res *debate.Result, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create debates directory: %w", err)
	}

	path := filepath.Join(dir, filename(res.Topic, time.Now()))
	if err := os.WriteFile(path, []byte(BuildMarkdown(res)), 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

func filename(topic string, day time.Time) string {
	return fmt.Sprintf("%s_%s.md", day.Format("2006-01-02"), TopicSlug(topic))
}

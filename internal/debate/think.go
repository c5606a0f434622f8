// internal/debate/think.go
package debate

import (
	"regexp"
	"strings"
)

// thinkLimit caps extracted reasoning text at this many runes
const thinkLimit = 200

var (
	thinkPattern = regexp.MustCompile(`(?s)<think>(.*?)</think>`)
	blankRuns    = regexp.MustCompile(`\n+`)
)

// extractThink separates <think> reasoning from the visible speech.
// Only the first well-formed open/close pair supplies the think text;
// every well-formed pair is removed from the speech. An unmatched
// closing tag is left in place.
func extractThink(text string) (think, speech string) {
	if m := thinkPattern.FindStringSubmatch(text); m != nil {
		think = strings.TrimSpace(m[1])
		if r := []rune(think); len(r) > thinkLimit {
			think = string(r[:thinkLimit]) + "..."
		}
	}
	speech = strings.TrimSpace(thinkPattern.ReplaceAllString(text, ""))
	return cleanText(think), cleanText(speech)
}

// cleanText collapses runs of line breaks and trims surrounding whitespace
func cleanText(text string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(text, "\n"))
}

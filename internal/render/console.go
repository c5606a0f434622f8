// internal/render/console.go
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"court/internal/debate"
)

// fallbackWidth is used when stdout is not a terminal
const fallbackWidth = 100

// errorPanelWidth caps error panels so they stay readable
const errorPanelWidth = 72

// Console renders debate turns and status to a terminal. It implements
// debate.Sink and is a pure output surface: nothing reads back from it.
type Console struct {
	out   io.Writer
	width int
}

// New creates a console bound to stdout, sized to the terminal
func New() *Console {
	width := fallbackWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return &Console{out: os.Stdout, width: width}
}

// NewWithWriter creates a console for an arbitrary writer and width
func NewWithWriter(w io.Writer, width int) *Console {
	return &Console{out: w, width: width}
}

// Banner prints the opening panel with the debate topic
func (c *Console) Banner(topic string) {
	fmt.Fprintln(c.out)
	c.panel("🏛  HISTORICAL COURT", TopicStyle.Render("«"+topic+"»"), Cyan, c.width)
	fmt.Fprintln(c.out)
}

// Settings prints the resolved run settings before the debate starts
func (c *Console) Settings(topic string, rounds int, modelM, modelS, modelJudge string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Cyan)).
		Headers("SETTING", "VALUE").
		Row("Topic", topic).
		Row("Rounds", strconv.Itoa(rounds)).
		Row("Machiavelli (model)", modelM).
		Row("Socrates (model)", modelS).
		Row("Judge (model)", modelJudge)

	fmt.Fprintln(c.out, t)
	fmt.Fprintln(c.out)
}

// Thinking prints a status line while a backend call is in flight
func (c *Console) Thinking(name string) {
	msg := name + " is thinking..."
	if name == "Judge" {
		msg = "Judge is deliberating..."
	}
	fmt.Fprintln(c.out, DimStyle.Render(msg))
}

// Turn prints one participant's speech block
func (c *Console) Turn(t debate.Turn) {
	var body strings.Builder
	if t.Think != "" {
		body.WriteString(ThoughtStyle.Render("🔍 Thoughts: " + t.Think))
		body.WriteString("\n\n")
	}
	body.WriteString(t.Speech)

	title := fmt.Sprintf("%s %s", t.Icon, strings.ToUpper(t.Name))
	c.panel(title, body.String(), ParticipantColor(t.Name), c.width)
	c.tokens(t.PromptTokens, t.CompletionTokens)
	fmt.Fprintln(c.out)
}

// Verdict prints the judge's closing panel
func (c *Console) Verdict(text string, promptTokens, completionTokens int) {
	c.panel("⚖️  VERDICT", VerdictStyle.Render(text), JudgeColor, c.width)
	c.tokens(promptTokens, completionTokens)
	fmt.Fprintln(c.out)
}

// Status prints a dim progress line (model pulls, saved paths)
func (c *Console) Status(msg string) {
	fmt.Fprintln(c.out, DimStyle.Render(msg))
}

// Warn prints a yellow notice line
func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.out, WarnStyle.Render(msg))
}

// Error prints a red bordered panel with a title and message
func (c *Console) Error(title, msg string) {
	width := errorPanelWidth
	if c.width < width {
		width = c.width
	}
	c.panel(title, msg, Red, width)
}

func (c *Console) tokens(prompt, completion int) {
	fmt.Fprintln(c.out, DimStyle.Render(
		fmt.Sprintf("Tokens: prompt: %d, completion: %d, total: %d", prompt, completion, prompt+completion)))
}

func (c *Console) panel(title, body string, color lipgloss.Color, width int) {
	if width > c.width {
		width = c.width
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(width - 2)
	header := lipgloss.NewStyle().Foreground(color).Bold(true).Render(title)
	fmt.Fprintln(c.out, box.Render(header+"\n\n"+body))
}

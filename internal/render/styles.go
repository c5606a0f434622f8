// internal/render/styles.go
package render

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Cyan    = lipgloss.Color("#00FFFF")
	Magenta = lipgloss.Color("#FF00FF")
	Gold    = lipgloss.Color("#FFD700")
	Red     = lipgloss.Color("#FF6B6B")
	Yellow  = lipgloss.Color("#FFA500")
	Dim     = lipgloss.Color("#555555")
	White   = lipgloss.Color("#FFFFFF")

	// Participant colors
	MachiavelliColor = Magenta
	SocratesColor    = Cyan
	JudgeColor       = Gold

	// Text styles
	DimStyle = lipgloss.NewStyle().
			Foreground(Dim)

	ThoughtStyle = lipgloss.NewStyle().
			Foreground(Dim).
			Italic(true)

	TopicStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	VerdictStyle = lipgloss.NewStyle().
			Bold(true)
)

// ParticipantColor returns the border color for a participant name
func ParticipantColor(name string) lipgloss.Color {
	switch name {
	case "Machiavelli":
		return MachiavelliColor
	case "Socrates":
		return SocratesColor
	case "Judge":
		return JudgeColor
	default:
		return White
	}
}

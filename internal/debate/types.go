// internal/debate/types.go
package debate

// Persona is one of the two fixed debate roles, bound to a backend
// model and a system prompt. Immutable for the run.
type Persona struct {
	Name         string
	Icon         string
	Color        string // Hex color for rendering
	Model        string // Backend model identifier
	SystemPrompt string
}

// NewMachiavelli creates the Machiavelli persona bound to a model and prompt
func NewMachiavelli(model, systemPrompt string) Persona {
	return Persona{
		Name:         "Machiavelli",
		Icon:         "🦊",
		Color:        "#FF00FF", // Magenta
		Model:        model,
		SystemPrompt: systemPrompt,
	}
}

// NewSocrates creates the Socrates persona bound to a model and prompt
func NewSocrates(model, systemPrompt string) Persona {
	return Persona{
		Name:         "Socrates",
		Icon:         "🏛",
		Color:        "#00FFFF", // Cyan
		Model:        model,
		SystemPrompt: systemPrompt,
	}
}

// Turn records one persona's completed exchange. Immutable once created.
type Turn struct {
	Name             string
	Icon             string
	Think            string // Extracted reasoning text, possibly empty
	Speech           string // Cleaned response body
	PromptTokens     int
	CompletionTokens int
}

// TokenStats aggregates token counts over every backend call of a run
type TokenStats struct {
	Prompt     int
	Completion int
	Total      int
}

// Result is the terminal value of a run, full or partial
type Result struct {
	Topic            string
	ModelMachiavelli string
	ModelSocrates    string
	ModelJudge       string
	Transcript       []Turn
	Verdict          string
	Tokens           TokenStats
	Interrupted      bool
}

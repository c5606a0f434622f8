// internal/debate/engine.go
package debate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"court/internal/ollama"
)

// InterruptedVerdict replaces the judge's verdict when a run is cancelled
const InterruptedVerdict = "(Debate interrupted by user.)"

// DefaultJudgePrompt is used when the configuration supplies no judge prompt
const DefaultJudgePrompt = "You are the Supreme Judge. Analyze the debate. Who won: Socrates or Machiavelli? Answer briefly and strictly in English."

// Backend is the single chat operation the engine needs from the server
type Backend interface {
	Chat(ctx context.Context, req ollama.ChatRequest) (*ollama.ChatResponse, error)
}

// Sink receives turn records and status as they are produced, making a
// run observable in real time. Implementations must not mutate turns.
type Sink interface {
	// Thinking signals that a backend call for the named participant started
	Thinking(name string)
	// Turn delivers one completed turn record
	Turn(t Turn)
	// Verdict delivers the judge's verdict and the judge call's token counts
	Verdict(text string, promptTokens, completionTokens int)
}

type nopSink struct{}

func (nopSink) Thinking(string)          {}
func (nopSink) Turn(Turn)                {}
func (nopSink) Verdict(string, int, int) {}

// Params configures a debate engine for one run
type Params struct {
	Backend     Backend
	Sink        Sink // optional
	Machiavelli Persona
	Socrates    Persona
	JudgeModel  string
	JudgePrompt string // optional, DefaultJudgePrompt when empty
	Topic       string
	Rounds      int
	Options     *ollama.Options // debate turns only; the judge call uses server defaults
}

// Engine drives the alternating-turn protocol for one debate run.
// Execution is strictly sequential: one backend call in flight at a time.
type Engine struct {
	backend     Backend
	sink        Sink
	machiavelli Persona
	socrates    Persona
	judgeModel  string
	judgePrompt string
	topic       string
	rounds      int
	options     *ollama.Options
}

func New(p Params) *Engine {
	if p.Sink == nil {
		p.Sink = nopSink{}
	}
	if p.JudgePrompt == "" {
		p.JudgePrompt = DefaultJudgePrompt
	}
	return &Engine{
		backend:     p.Backend,
		sink:        p.Sink,
		machiavelli: p.Machiavelli,
		socrates:    p.Socrates,
		judgeModel:  p.JudgeModel,
		judgePrompt: p.JudgePrompt,
		topic:       p.Topic,
		rounds:      p.Rounds,
		options:     p.Options,
	}
}

// Run executes the configured number of rounds plus the judge's verdict.
//
// Cancelling ctx between or during backend calls ends the run: the
// partial result carries the turns completed so far and the placeholder
// verdict, and Run returns it with a nil error. This covers the judge
// call too, so an interrupt during deliberation still saves a partial
// transcript. Any other backend failure aborts the run and propagates.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		Topic:            e.topic,
		ModelMachiavelli: e.machiavelli.Model,
		ModelSocrates:    e.socrates.Model,
		ModelJudge:       e.judgeModel,
	}

	var historyM, historyS []ollama.Message
	var plain []string
	totals := &res.Tokens

	currentInput := fmt.Sprintf("Start a debate on the topic: %s. State your position briefly.", e.topic)

	for i := 0; i < e.rounds; i++ {
		turnM, err := e.turn(ctx, e.machiavelli, &historyM, currentInput, totals)
		if err != nil {
			return e.interruptedOrFail(res, err)
		}
		res.Transcript = append(res.Transcript, turnM)
		plain = append(plain, fmt.Sprintf("%s: %s", turnM.Name, turnM.Speech))

		turnS, err := e.turn(ctx, e.socrates, &historyS, turnM.Speech, totals)
		if err != nil {
			return e.interruptedOrFail(res, err)
		}
		res.Transcript = append(res.Transcript, turnS)
		plain = append(plain, fmt.Sprintf("%s: %s", turnS.Name, turnS.Speech))

		currentInput = turnS.Speech
	}

	e.sink.Thinking("Judge")
	resp, err := e.backend.Chat(ctx, ollama.ChatRequest{
		Model: e.judgeModel,
		Messages: []ollama.Message{
			{Role: "system", Content: e.judgePrompt},
			{Role: "user", Content: strings.Join(plain, "\n")},
		},
	})
	if err != nil {
		return e.interruptedOrFail(res, err)
	}

	prompt, completion := resp.TokenCounts()
	totals.Prompt += prompt
	totals.Completion += completion
	totals.Total = totals.Prompt + totals.Completion

	res.Verdict = strings.TrimSpace(resp.Message.Content)
	e.sink.Verdict(res.Verdict, prompt, completion)
	return res, nil
}

// turn runs one persona exchange: the input joins the persona's history
// as a user entry, the backend answers with the persona's system prompt
// and full private history, and the cleaned speech is recorded back.
func (e *Engine) turn(ctx context.Context, p Persona, history *[]ollama.Message, input string, totals *TokenStats) (Turn, error) {
	*history = append(*history, ollama.Message{Role: "user", Content: input})

	messages := make([]ollama.Message, 0, len(*history)+1)
	messages = append(messages, ollama.Message{Role: "system", Content: p.SystemPrompt})
	messages = append(messages, *history...)

	e.sink.Thinking(p.Name)
	resp, err := e.backend.Chat(ctx, ollama.ChatRequest{
		Model:    p.Model,
		Messages: messages,
		Options:  e.options,
	})
	if err != nil {
		return Turn{}, err
	}

	prompt, completion := resp.TokenCounts()
	totals.Prompt += prompt
	totals.Completion += completion
	totals.Total = totals.Prompt + totals.Completion

	think, speech := extractThink(resp.Message.Content)
	*history = append(*history, ollama.Message{Role: "assistant", Content: speech})

	t := Turn{
		Name:             p.Name,
		Icon:             p.Icon,
		Think:            think,
		Speech:           speech,
		PromptTokens:     prompt,
		CompletionTokens: completion,
	}
	e.sink.Turn(t)
	return t, nil
}

// interruptedOrFail finalizes a partial result on user cancellation and
// propagates every other backend failure untouched.
func (e *Engine) interruptedOrFail(res *Result, err error) (*Result, error) {
	if errors.Is(err, context.Canceled) {
		res.Verdict = InterruptedVerdict
		res.Interrupted = true
		return res, nil
	}
	return nil, err
}

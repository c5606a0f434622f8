// internal/ollama/client.go
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultBaseURL is the Ollama server address used when OLLAMA_HOST is unset
const DefaultBaseURL = "http://localhost:11434"

// Message is one role-tagged entry in a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options holds the generation settings recognized by the server
type Options struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx"`
}

// ChatRequest is the payload for a single non-streaming chat call
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  *Options  `json:"options,omitempty"`
}

// ChatResponse is the complete response to a chat call
type ChatResponse struct {
	Model           string  `json:"model"`
	Message         Message `json:"message"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
}

// TokenCounts returns the prompt and completion token counts.
// Missing or null counts in the response read as zero.
func (r *ChatResponse) TokenCounts() (prompt, completion int) {
	return r.PromptEvalCount, r.EvalCount
}

// Client talks to a local Ollama server over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server named by OLLAMA_HOST,
// falling back to localhost. No overall timeout is set: a chat
// call blocks until the model finishes or the context is cancelled.
func New() *Client {
	base := os.Getenv("OLLAMA_HOST")
	if base == "" {
		base = DefaultBaseURL
	}
	return NewWithBaseURL(base)
}

// NewWithBaseURL creates a client for a specific server address
func NewWithBaseURL(base string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(base), "/"),
		httpClient: &http.Client{},
	}
}

// Chat sends the full message list to a model and returns its complete response
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req.Stream = false

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chat: server returned %d: %s", resp.StatusCode, errorSnippet(payload))
	}

	var chat ChatResponse
	if err := json.Unmarshal(payload, &chat); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	return &chat, nil
}

// List returns the names of all installed models
func (c *Client) List(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read list response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("list models: server returned %d: %s", resp.StatusCode, errorSnippet(payload))
	}

	var listed struct {
		Models []struct {
			Name  string `json:"name"`
			Model string `json:"model"`
		} `json:"models"`
	}
	if err := json.Unmarshal(payload, &listed); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	names := make([]string, 0, len(listed.Models))
	for _, m := range listed.Models {
		name := m.Name
		if name == "" {
			name = m.Model
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Pull fetches a model from the registry, blocking until it is installed
func (c *Client) Pull(ctx context.Context, name string) error {
	body, err := json.Marshal(map[string]any{"model": name, "stream": false})
	if err != nil {
		return fmt.Errorf("marshal pull request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("pull request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("pull %s: %w", name, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read pull response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pull %s: server returned %d: %s", name, resp.StatusCode, errorSnippet(payload))
	}

	var status struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(payload, &status); err == nil && status.Error != "" {
		return fmt.Errorf("pull %s: %s", name, status.Error)
	}
	return nil
}

// Available reports whether a model name is satisfied by the installed
// list, either exactly or as a base name with any tag (llama3 matches
// llama3:latest).
func Available(name string, installed []string) bool {
	base := name
	if i := strings.Index(name, ":"); i >= 0 {
		base = name[:i]
	}
	for _, n := range installed {
		if n == name || strings.HasPrefix(n, base+":") {
			return true
		}
	}
	return false
}

// errorSnippet flattens a response body into a short single line for errors
func errorSnippet(payload []byte) string {
	s := strings.Join(strings.Fields(string(payload)), " ")
	if len(s) > 240 {
		s = s[:240]
	}
	return s
}

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultOllamaHost = "http://localhost:11434"

// OllamaClient talks to a local Ollama server's chat endpoint.
type OllamaClient struct {
	Host          string
	Model         string
	ContextWindow int

	httpClient *http.Client
}

// NewOllamaClient creates a client for the given host and model. An empty
// host selects the default local server.
func NewOllamaClient(host, model string, contextWindow int) *OllamaClient {
	if host == "" {
		host = DefaultOllamaHost
	}
	return &OllamaClient{
		Host:          strings.TrimRight(host, "/"),
		Model:         model,
		ContextWindow: contextWindow,
		httpClient:    &http.Client{Timeout: 5 * time.Minute},
	}
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx,omitempty"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error,omitempty"`
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaChatRequest{
		Model:    c.Model,
		Messages: []ollamaMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options:  ollamaOptions{Temperature: Temperature, NumCtx: c.ContextWindow},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GenerationError{Provider: "ollama", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Host+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return "", &GenerationError{Provider: "ollama", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &GenerationError{Provider: "ollama", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{Provider: "ollama", Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var parsed ollamaChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &GenerationError{Provider: "ollama", Err: fmt.Errorf("decoding response: %w", err)}
	}
	if parsed.Error != "" {
		return "", &GenerationError{Provider: "ollama", Err: fmt.Errorf("model error: %s", parsed.Error)}
	}

	text := strings.TrimSpace(parsed.Message.Content)
	if text == "" {
		return "", &GenerationError{Provider: "ollama", Err: fmt.Errorf("model returned empty content")}
	}
	return text, nil
}

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAIClient talks to the OpenAI chat completions API. The key is read
// from OPENAI_API_KEY.
type OpenAIClient struct {
	Model string

	endpoint   string
	httpClient *http.Client
}

// NewOpenAIClient creates a client for the given model.
func NewOpenAIClient(model string) *OpenAIClient {
	return &OpenAIClient{
		Model:      model,
		endpoint:   openAIEndpoint,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", &GenerationError{Provider: "openai", Err: fmt.Errorf("OPENAI_API_KEY not set")}
	}

	reqBody := openAIChatRequest{
		Model:       c.Model,
		Messages:    []openAIMessage{{Role: "user", Content: prompt}},
		Temperature: Temperature,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GenerationError{Provider: "openai", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return "", &GenerationError{Provider: "openai", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &GenerationError{Provider: "openai", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{Provider: "openai", Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var parsed openAIChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &GenerationError{Provider: "openai", Err: fmt.Errorf("decoding response: %w", err)}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &GenerationError{Provider: "openai", Err: fmt.Errorf("model returned empty content")}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

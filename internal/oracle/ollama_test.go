package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	var received ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "  SELECT id AS order_id FROM raw.orders_raw \n"},
		})
	}))
	defer server.Close()

	c := NewOllamaClient(server.URL, "phi3:mini", 2048)
	text, err := c.Generate(context.Background(), "generate orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "SELECT id AS order_id FROM raw.orders_raw" {
		t.Errorf("expected trimmed model output, got %q", text)
	}
	if received.Model != "phi3:mini" {
		t.Errorf("expected model phi3:mini, got %q", received.Model)
	}
	if received.Stream {
		t.Error("expected non-streaming request")
	}
	if received.Options.Temperature != 0 {
		t.Errorf("expected temperature 0, got %v", received.Options.Temperature)
	}
	if received.Options.NumCtx != 2048 {
		t.Errorf("expected num_ctx 2048, got %d", received.Options.NumCtx)
	}
	if len(received.Messages) != 1 || received.Messages[0].Content != "generate orders" {
		t.Errorf("unexpected messages: %+v", received.Messages)
	}
}

func TestOllamaGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewOllamaClient(server.URL, "phi3:mini", 0)
	_, err := c.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error on server failure")
	}
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if gerr.Provider != "ollama" {
		t.Errorf("expected ollama provider in error, got %q", gerr.Provider)
	}
}

func TestOllamaGenerateModelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{Error: "model 'phi3:mini' not found"})
	}))
	defer server.Close()

	c := NewOllamaClient(server.URL, "phi3:mini", 0)
	_, err := c.Generate(context.Background(), "prompt")
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
}

func TestOllamaGenerateEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Content: "   "}})
	}))
	defer server.Close()

	c := NewOllamaClient(server.URL, "phi3:mini", 0)
	_, err := c.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for empty model output")
	}
}

func TestOllamaDefaultHost(t *testing.T) {
	c := NewOllamaClient("", "phi3:mini", 0)
	if c.Host != DefaultOllamaHost {
		t.Errorf("expected default host, got %q", c.Host)
	}
}

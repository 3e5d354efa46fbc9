package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPClientGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-5.1" {
			t.Errorf("unexpected model: %q", req.Model)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "compatibility") {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "You two match well."}},
			},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "gpt-5.1", nil)
	text, err := client.Generate(context.Background(), "Write a compatibility note.")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if text != "You two match well." {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestHTTPClientGenerateErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "gpt-5.1", nil)
	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestHTTPClientGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "quota exceeded"},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "gpt-5.1", nil)
	_, err := client.Generate(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestHTTPClientGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "gpt-5.1", nil)
	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pintunes/pintunes-api/internal/core/domain"
)

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1beta/models/gemini-pro:generateContent") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "api-key" {
			t.Fatalf("missing api key")
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid request: %v", err)
		}
		gc, _ := req["generationConfig"].(map[string]any)
		if gc["temperature"] != 0.7 {
			t.Fatalf("unexpected temperature: %v", gc["temperature"])
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "Hi ana!"}}}},
			},
		})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "api-key", BaseURL: srv.URL})
	reply, err := c.Generate(context.Background(), "greet ana", 0.7)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if reply != "Hi ana!" {
		t.Fatalf("unexpected reply: %s", reply)
	}
}

func TestClient_Generate_NoKey(t *testing.T) {
	c := New(Config{})
	if c.Enabled() {
		t.Fatalf("expected disabled client")
	}
	if _, err := c.Generate(context.Background(), "hello", 0.7); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "api-key", BaseURL: srv.URL})
	if _, err := c.Generate(context.Background(), "hello", 0.7); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestClient_Generate_EmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "api-key", BaseURL: srv.URL})
	if _, err := c.Generate(context.Background(), "hello", 0.7); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})
	if c.cfg.BaseURL != DefaultBaseURL || c.cfg.Model != DefaultModel {
		t.Errorf("base=%q model=%q", c.cfg.BaseURL, c.cfg.Model)
	}
	if c.cfg.Temperature != 0.7 || c.cfg.MaxTokens != 1000 || c.cfg.Timeout != 60*time.Second {
		t.Errorf("cfg=%+v", c.cfg)
	}
	if c.IsConfigured() {
		t.Errorf("client without key should not be configured")
	}
}

func TestChat(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path=%q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("auth=%q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Keep going!"}}]}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/", Model: "test-model"})
	reply, err := c.Ask(context.Background(), "be kind", "hello")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != "Keep going!" {
		t.Errorf("reply=%q", reply)
	}
	if got.Model != "test-model" || got.Temperature != 0.7 || got.MaxTokens != 1000 {
		t.Errorf("request=%+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "hello" {
		t.Errorf("messages=%+v", got.Messages)
	}
}

func TestChatAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := c.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err=%v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status=%d", apiErr.StatusCode)
	}
}

func TestChatEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if _, err := c.Chat(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestChatNotConfigured(t *testing.T) {
	c := NewClient(Config{})
	if _, err := c.Chat(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err=%v, want ErrNotConfigured", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `  {"a":1} `, `{"a":1}`},
		{"json fence", "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence()=%q, want %q", got, tt.want)
			}
		})
	}
}

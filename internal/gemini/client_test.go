package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGenerateContentSendsSchemaAndReturnsCandidateText(t *testing.T) {
	var captured Request
	var capturedPath string
	var capturedKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"a\":"},{"text":"1}"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/", Model: "test-model"})
	text, err := client.GenerateContent(context.Background(), Request{
		SystemInstruction: SystemText("system"),
		Contents:          []Content{UserContent(TextPart("hello"))},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   &Schema{Type: TypeObject, Required: []string{"a"}, Properties: map[string]*Schema{"a": {Type: TypeInteger}}},
		},
	})
	if err != nil {
		t.Fatalf("GenerateContent() unexpected error: %v", err)
	}
	if text != `{"a":1}` {
		t.Fatalf("GenerateContent() = %q, want joined part text", text)
	}
	if capturedPath != "/models/test-model:generateContent" {
		t.Fatalf("unexpected request path %q", capturedPath)
	}
	if capturedKey != "test-key" {
		t.Fatalf("expected api key header, got %q", capturedKey)
	}
	if captured.GenerationConfig == nil || captured.GenerationConfig.ResponseSchema == nil {
		t.Fatal("expected response schema to be forwarded")
	}
	if captured.Contents[0].Role != "user" || captured.Contents[0].Parts[0].Text != "hello" {
		t.Fatalf("unexpected contents %#v", captured.Contents)
	}
}

func TestGenerateContentReportsNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.GenerateContent(context.Background(), Request{Contents: []Content{UserContent(TextPart("x"))}})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status code in error, got %v", err)
	}
}

func TestGenerateContentReportsBlockedPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.GenerateContent(context.Background(), Request{Contents: []Content{UserContent(TextPart("x"))}})
	if !errors.Is(err, ErrPromptBlocked) {
		t.Fatalf("expected ErrPromptBlocked, got %v", err)
	}
}

func TestGenerateContentReportsEmptyCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.GenerateContent(context.Background(), Request{Contents: []Content{UserContent(TextPart("x"))}})
	if !errors.Is(err, ErrEmptyCandidate) {
		t.Fatalf("expected ErrEmptyCandidate, got %v", err)
	}
}

func TestGenerateContentHonorsTransportTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	_, err := client.GenerateContent(context.Background(), Request{Contents: []Content{UserContent(TextPart("x"))}})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed on timeout, got %v", err)
	}
}

func TestGenerateContentRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.GenerateContent(context.Background(), Request{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if client.Model() != DefaultModel {
		t.Fatalf("expected default model %q, got %q", DefaultModel, client.Model())
	}
}

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"

	maxErrorBodyBytes = 2048
)

var (
	ErrMissingAPIKey  = errors.New("gemini api key is not configured")
	ErrRequestFailed  = errors.New("gemini request failed")
	ErrPromptBlocked  = errors.New("gemini prompt blocked")
	ErrEmptyCandidate = errors.New("gemini returned no candidate text")
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client calls the generateContent endpoint. It performs exactly one HTTP
// round trip per call and never retries.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:     strings.TrimSpace(config.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (client *Client) Model() string {
	return client.model
}

// GenerateContent sends request and returns the concatenated text of the
// first candidate.
func (client *Client) GenerateContent(ctx context.Context, request Request) (string, error) {
	if client.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", client.baseURL, client.model)
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("x-goog-api-key", client.apiKey)

	response, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrRequestFailed, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", ErrRequestFailed, response.StatusCode, truncate(body, maxErrorBodyBytes))
	}

	return candidateText(body)
}

func candidateText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: response is not json", ErrRequestFailed)
	}
	parsed := gjson.ParseBytes(body)

	if reason := parsed.Get("promptFeedback.blockReason").String(); reason != "" {
		return "", fmt.Errorf("%w: %s", ErrPromptBlocked, reason)
	}

	var builder strings.Builder
	parsed.Get("candidates.0.content.parts.#.text").ForEach(func(_, value gjson.Result) bool {
		builder.WriteString(value.String())
		return true
	})

	text := strings.TrimSpace(builder.String())
	if text == "" {
		if reason := parsed.Get("candidates.0.finishReason").String(); reason != "" {
			return "", fmt.Errorf("%w: finish reason %s", ErrEmptyCandidate, reason)
		}
		return "", ErrEmptyCandidate
	}
	return text, nil
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}

package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Classifier invocation parameters. The reply template in the prompt assumes
// a short answer, so the token ceiling is deliberately tight.
const (
	Temperature         float32 = 0.7
	MaxCompletionTokens         = 500
)

// Client is a minimal chat-completions client. Every call is a single
// best-effort attempt bounded by the configured timeout; callers degrade to
// sentinel results instead of retrying.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client. An empty apiKey produces an unconfigured
// client; Configured reports this and no request is ever sent.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether an API credential is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Complete sends a single user prompt and returns the completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("groq API key not configured")
	}

	reqBody := ChatCompletionRequest{
		Model:               c.model,
		Messages:            []ChatMessage{{Role: MessageRoleUser, Content: prompt}},
		Temperature:         Temperature,
		MaxCompletionTokens: MaxCompletionTokens,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq API error %d", resp.StatusCode)
	}

	var decoded ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("groq response has no choices")
	}
	content := decoded.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("groq response is empty")
	}
	return content, nil
}

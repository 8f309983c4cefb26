// Package llm calls an OpenAI-compatible chat-completions endpoint to turn
// the client-composed prompt into itinerary text. The API key comes from
// the caller per request; the server holds none.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrMissingAPIKey = errors.New("api key is required")
	ErrUpstream      = errors.New("generation upstream failed")
	ErrEmptyResult   = errors.New("generation returned no choices")
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	timeout    time.Duration
}

func New(baseURL, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		model:      model,
		timeout:    timeout,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt as a single user message and returns the first
// choice's content. Every call carries a deadline; a stuck upstream cannot
// hold the request open indefinitely.
func (c *Client) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})

	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(cctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))

	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Upstream error bodies are not surfaced to clients.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out chatResponse

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode: %w", ErrUpstream, err)
	}

	if len(out.Choices) == 0 {
		return "", ErrEmptyResult
	}

	return out.Choices[0].Message.Content, nil
}

// Package llm wraps the chat-completion fallback used when no structured
// source can answer a question.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Completer produces a free-text answer for a question. An empty result means
// the caller must substitute its fixed apology sentence.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, question string) (string, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
	log    zerolog.Logger
}

func NewClient(baseURL, apiKey, model string, log zerolog.Logger) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)
	return &Client{http: c, apiKey: apiKey, model: model, log: log}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt pair and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, systemPrompt, question string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
		MaxTokens: 800,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(&req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode(), resp.String())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return cr.Choices[0].Message.Content, nil
}

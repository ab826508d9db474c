package recs

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/tripweave/backend/internal/domain"
)

// Client issues the recommendation request to an OpenAI-compatible chat
// completion endpoint. The call is single best-effort: no retries, no
// client-side timeout beyond what the caller's context imposes. While it is
// outstanding the UI shows a blocking indicator; if the user navigates away
// the caller simply discards the eventual result.
type Client struct {
	http  *resty.Client
	model string
}

// NewClient builds a Client for the given endpoint. apiKey may be empty for
// local model servers that do not authenticate.
func NewClient(baseURL, apiKey, model string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0) // single best-effort request; retry policy is out of scope

	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}

	return &Client{http: c, model: model}
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

// Recommend sends the prompt and returns the model's raw text reply.
// Transport failures and non-success statuses are both surfaced as
// domain.ErrUpstream with a human-readable message; the caller decides how to
// present it and never retries through this client.
func (c *Client) Recommend(ctx context.Context, prompt string) (string, error) {
	var out chatResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:    c.model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("recs.Client.Recommend: %w: %v", domain.ErrUpstream, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("recs.Client.Recommend: %w: recommendation service returned %s", domain.ErrUpstream, resp.Status())
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("recs.Client.Recommend: %w: empty response from recommendation service", domain.ErrUpstream)
	}

	return out.Choices[0].Message.Content, nil
}

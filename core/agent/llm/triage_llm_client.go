// Package llm wraps the OpenAI chat completion endpoint behind the
// CompletionClient port, with a circuit breaker around the external call.
package llm

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sony/gobreaker"

	openai "github.com/sashabaranov/go-openai"

	"triage_server/core/port/out"
	"triage_server/pkg/logger"
)

const DefaultModel = "gpt-4o-mini"

type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
}

type ClientConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	cbSettings := gobreaker.Settings{
		Name:        "openai-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker %s: state changed from %s to %s", name, from.String(), to.String())
		},
	}

	return &Client{
		client:  openai.NewClient(cfg.APIKey),
		model:   model,
		timeout: timeout,
		cb:      gobreaker.NewCircuitBreaker(cbSettings),
	}
}

// CompleteJSON sends a system+user chat completion requesting a JSON object
// response and returns the raw text of the first choice.
func (c *Client) CompleteJSON(ctx context.Context, req out.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// The request struct marshals Temperature with omitempty, so an explicit
	// zero would fall back to the API default. Substitute the smallest
	// representable value to keep deterministic sampling.
	temperature := req.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	result, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: req.System,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: req.User,
				},
			},
			Temperature: temperature,
			MaxTokens:   req.MaxTokens,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("completion returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	return result.(string), nil
}

var _ out.CompletionClient = (*Client)(nil)

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"poshchat/models"
)

// ProviderOptions describes the OpenAI-compatible endpoint both completers talk to.
type ProviderOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout of zero leaves the HTTP client without a deadline.
	Timeout time.Duration
}

// SDKCompleter calls the provider through the go-openai client.
type SDKCompleter struct {
	client *openai.Client
	model  string
}

func NewSDKCompleter(opts ProviderOptions) (*SDKCompleter, error) {
	if opts.Model == "" {
		return nil, errors.New("services: model must not be empty")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}

	return &SDKCompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  opts.Model,
	}, nil
}

func (c *SDKCompleter) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
		Stream:   false,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"poshchat/models"
)

type completionRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// RESTCompleter posts chat completions with a plain resty client.
type RESTCompleter struct {
	client *resty.Client
	url    string
	model  string
}

func NewRESTCompleter(opts ProviderOptions) (*RESTCompleter, error) {
	if opts.Model == "" {
		return nil, errors.New("services: model must not be empty")
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, errors.New("services: base url must not be empty")
	}

	client := resty.New().
		SetAuthToken(opts.APIKey).
		SetHeader("Content-Type", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &RESTCompleter{
		client: client,
		url:    base + "/chat/completions",
		model:  opts.Model,
	}, nil
}

func (c *RESTCompleter) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(completionRequest{
			Model:    c.model,
			Messages: messages,
			Stream:   false,
		}).
		Post(c.url)
	if err != nil {
		return "", err
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &StatusError{
			StatusCode: resp.StatusCode(),
			URL:        c.url,
			Body:       truncate(resp.String(), 4096),
		}
	}

	var result completionResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

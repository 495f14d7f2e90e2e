package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"poshchat/models"
)

// SystemPrompt is the fixed instruction sent ahead of every user message.
const SystemPrompt = "You are an expert assistant who provides concise, specific, high quality responses."

// Completer sends one non-streaming chat completion and returns the first choice's text.
type Completer interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// ChatService relays a single user message to the provider. It keeps no
// state between calls.
type ChatService struct {
	apiKey    string
	completer Completer
	logger    *slog.Logger
	metrics   Recorder
}

type ChatServiceOption func(*ChatService)

func WithLogger(logger *slog.Logger) ChatServiceOption {
	return func(s *ChatService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRecorder(r Recorder) ChatServiceOption {
	return func(s *ChatService) {
		if r != nil {
			s.metrics = r
		}
	}
}

// NewChatService wires the relay. apiKey may be empty: every Reply then
// fails with KindConfig and completer is never called.
func NewChatService(apiKey string, completer Completer, opts ...ChatServiceOption) (*ChatService, error) {
	if completer == nil && apiKey != "" {
		return nil, errors.New("services: completer must not be nil")
	}
	s := &ChatService{
		apiKey:    apiKey,
		completer: completer,
		logger:    slog.Default(),
		metrics:   (*Metrics)(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BuildPrompt returns the system turn followed by message as the only user turn.
func BuildPrompt(message string) []models.ChatMessage {
	return []models.ChatMessage{
		{Role: models.RoleSystem, Content: SystemPrompt},
		{Role: models.RoleUser, Content: message},
	}
}

// Reply sends message to the provider. Errors are always *RelayError.
func (s *ChatService) Reply(ctx context.Context, message string) (models.ChatExchange, error) {
	exchange := models.ChatExchange{UserMessage: message}

	if s.apiKey == "" {
		s.metrics.ObserveRelay(string(KindConfig))
		s.logger.Warn("chat relay rejected", "kind", KindConfig)
		return exchange, newConfigError()
	}

	exchange.Prompt = BuildPrompt(message)

	start := time.Now()
	text, err := s.completer.Complete(ctx, exchange.Prompt)
	s.metrics.ObserveUpstream(time.Since(start))
	if err != nil {
		s.metrics.ObserveRelay(string(KindUpstream))
		s.logger.Warn("chat relay failed", "kind", KindUpstream, "error", err)
		return exchange, newUpstreamError(err)
	}

	s.metrics.ObserveRelay(outcomeSuccess)
	s.logger.Debug("chat relay succeeded", "message_len", len(message), "response_len", len(text))
	exchange.BotResponse = text
	return exchange, nil
}

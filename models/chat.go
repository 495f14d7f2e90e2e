package models

// ChatMessage is a single prompt turn sent to the provider.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the body accepted by POST /api/chat. A missing message is "".
type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ChatExchange lives for one request. It is never stored.
type ChatExchange struct {
	UserMessage string
	Prompt      []ChatMessage
	BotResponse string
}

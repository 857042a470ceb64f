package service

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is one chat-completion exchange. A nil Temperature leaves the provider
// default in place and a zero MaxTokens sends no cap.
type ChatRequest struct {
	Messages    []ChatMessage
	MaxTokens   int
	Temperature *float64
}

// ChatCompleter returns the text of the first choice of a chat completion.
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

func Float64(v float64) *float64 { return &v }

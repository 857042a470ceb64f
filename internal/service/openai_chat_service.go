package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fadilmartias/resume-api/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenAIChatService talks to any OpenAI-compatible /chat/completions endpoint.
type OpenAIChatService struct {
	client *resty.Client
	model  string
	logger *slog.Logger
}

var _ ChatCompleter = (*OpenAIChatService)(nil)

func NewOpenAIChatService(cfg *config.LLMConfig, timeout time.Duration, logger *slog.Logger) *OpenAIChatService {
	if logger == nil {
		logger = slog.Default()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.Token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &OpenAIChatService{client: client, model: cfg.Model, logger: logger}
}

func (s *OpenAIChatService) Complete(ctx context.Context, req ChatRequest) (string, error) {
	body := map[string]any{
		"model":    s.model,
		"messages": req.Messages,
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}
	if req.Temperature != nil {
		body["temperature"] = *req.Temperature
	}

	start := time.Now()
	s.logger.Info("llm.chat.request", "model", s.model, "messages", len(req.Messages), "max_tokens", req.MaxTokens)

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		s.logger.Error("llm.chat.send_error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}

	s.logger.Info("llm.chat.response", "status", resp.StatusCode(), "bytes", len(resp.Body()),
		"elapsed_ms", time.Since(start).Milliseconds())

	if resp.IsError() {
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	content := gjson.Get(resp.String(), "choices.0.message.content")
	if !content.Exists() || content.Type == gjson.Null {
		return "", fmt.Errorf("no message content in chat completion response")
	}
	return content.String(), nil
}

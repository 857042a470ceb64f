package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fadilmartias/resume-api/internal/config"
	"google.golang.org/genai"
)

type GeminiService struct {
	Client *genai.Client
	Model  string
	logger *slog.Logger
}

var _ ChatCompleter = (*GeminiService)(nil)

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, logger *slog.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client: client,
		Model:  cfg.Model,
		logger: logger,
	}, nil
}

func (s *GeminiService) Complete(ctx context.Context, req ChatRequest) (string, error) {
	system, contents := toGeminiContents(req.Messages)
	if len(contents) == 0 {
		return "", fmt.Errorf("chat request has no user content")
	}

	genConfig := &genai.GenerateContentConfig{}
	if system != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature != nil {
		genConfig.Temperature = genai.Ptr(float32(*req.Temperature))
	}

	start := time.Now()
	result, err := s.Client.Models.GenerateContent(ctx, s.Model, contents, genConfig)
	if err != nil {
		s.logger.Error("llm.gemini.error", "model", s.Model, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return "", fmt.Errorf("invalid response: %w", err)
	}
	s.logger.Info("llm.gemini.response", "model", s.Model, "elapsed_ms", time.Since(start).Milliseconds())
	return result.Text(), nil
}

// toGeminiContents folds system messages into one system instruction and maps the
// remaining turns onto user/model contents.
func toGeminiContents(messages []ChatMessage) (string, []*genai.Content) {
	var (
		system   []string
		contents []*genai.Content
	)
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fadilmartias/resume-api/internal/model"
)

const (
	// NotInProfileAnswer is what the model is told to say when the context lacks the answer.
	NotInProfileAnswer = "This information is not in the candidate's profile."

	qaMaxTokens = 100
)

var qaSystemPrompt = "You are an HR assistant. Answer the question based *only* on the context provided. If the answer is not in the context, say '" + NotInProfileAnswer + "'"

type CandidateQAService struct {
	llm    ChatCompleter
	logger *slog.Logger
}

func NewCandidateQAService(llm ChatCompleter, logger *slog.Logger) *CandidateQAService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CandidateQAService{llm: llm, logger: logger}
}

// Answer grounds the question in the full record. Transport failures are returned.
func (s *CandidateQAService) Answer(ctx context.Context, record model.CandidateRecord, question string) (string, error) {
	userPrompt := fmt.Sprintf("Context: %s\n\nQuestion: %s", record.String(), question)

	s.logger.Info("candidate.ask.start", "candidate_id", record.CandidateID, "question_len", len(question))
	answer, err := s.llm.Complete(ctx, ChatRequest{
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: qaSystemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
		MaxTokens: qaMaxTokens,
	})
	if err != nil {
		s.logger.Error("candidate.ask.llm_error", "candidate_id", record.CandidateID, "error", err)
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

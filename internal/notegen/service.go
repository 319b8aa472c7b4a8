package notegen

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pycert-prep/backend/internal/bank"
)

var (
	// ErrDisabled means no drafting client is configured.
	ErrDisabled = errors.New("note drafting is not configured")
	// ErrNoteExists guards hand-written notes from being overwritten.
	ErrNoteExists = errors.New("question already has a note")
)

type Service struct {
	store *bank.Store
	llm   LLMClient
	model string
}

func NewService(store *bank.Store) *Service {
	llm, model := NewClient()
	return &Service{store: store, llm: llm, model: model}
}

func (s *Service) Enabled() bool {
	return s.llm != nil
}

// DraftNote generates and persists an explanation note for a question
// whose note is empty.
func (s *Service) DraftNote(ctx context.Context, questionID int64) (string, error) {
	if s.llm == nil {
		return "", ErrDisabled
	}

	q, err := s.store.QuestionWithChoices(questionID)
	if err != nil {
		return "", err
	}
	if q.Note != "" {
		return "", ErrNoteExists
	}

	resp, err := s.llm.Generate(ctx, SystemPrompt(), BuildUserPrompt(q))
	if err != nil {
		return "", fmt.Errorf("draft note: %w", err)
	}

	note, err := ParseNote(resp.Content)
	if err != nil {
		return "", fmt.Errorf("parse drafted note: %w", err)
	}

	if err := s.store.UpdateQuestionNote(questionID, note); err != nil {
		return "", fmt.Errorf("save drafted note: %w", err)
	}

	log.Printf("[notegen] drafted note for question %d (model=%s, tokens=%d/%d)",
		questionID, s.model, resp.PromptTokens, resp.OutputTokens)
	return note, nil
}

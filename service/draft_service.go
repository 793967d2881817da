package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zpdraft-backend/config"
	"zpdraft-backend/llm"
	"zpdraft-backend/models"
	"zpdraft-backend/repository"

	"github.com/google/uuid"
)

var (
	ErrGeneratorNotSet  = errors.New("generator not set")
	ErrGenerationFailed = errors.New("failed to generate draft")
)

// DraftService runs the drafting pipeline: normalize the payload, render the
// prompt pair, call the generation backend once, extract the structured
// result. Each request is independent and stateless; the optional archive
// write is the only side effect.
type DraftService struct {
	generator llm.Generator
	draftRepo *repository.DraftRepository
	model     string
	opts      PromptOptions
	now       func() time.Time
}

// DraftServiceOption is a functional option for DraftService
type DraftServiceOption func(*DraftService)

// WithGenerator sets the generation backend
func WithGenerator(g llm.Generator) DraftServiceOption {
	return func(s *DraftService) {
		s.generator = g
	}
}

// WithDraftRepository enables archiving of generated drafts
func WithDraftRepository(repo *repository.DraftRepository) DraftServiceOption {
	return func(s *DraftService) {
		s.draftRepo = repo
	}
}

// WithConfig applies the prompt policy and model name from configuration
func WithConfig(cfg *config.Config) DraftServiceOption {
	return func(s *DraftService) {
		s.model = cfg.Model()
		s.opts = PromptOptions{
			CaseTextLimit:  cfg.CaseTextLimit,
			GRTextLimit:    cfg.GRTextLimit,
			LegalTextLimit: cfg.LegalTextLimit,
			TwoTierAppeal:  cfg.AppealPolicy == config.AppealTwoTier,
		}
	}
}

// WithClock overrides the time source used for the document date
func WithClock(now func() time.Time) DraftServiceOption {
	return func(s *DraftService) {
		s.now = now
	}
}

// NewDraftService creates a new draft service
func NewDraftService(opts ...DraftServiceOption) *DraftService {
	s := &DraftService{
		opts: DefaultPromptOptions(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateDraftResult bundles the pipeline output with the normalized record
type GenerateDraftResult struct {
	Record *models.CaseRecord
	Result *models.DraftResult
}

// GenerateDraft runs one full pipeline pass. Normalization and rendering
// never fail; only the backend call does. A backend response that defeats
// structured extraction still succeeds, with only Raw populated.
func (s *DraftService) GenerateDraft(ctx context.Context, payload map[string]interface{}) (*GenerateDraftResult, error) {
	if s.generator == nil {
		return nil, ErrGeneratorNotSet
	}

	record := NormalizeCaseInput(payload)
	record.Today = s.now().Format("02/01/2006")

	systemPrompt, userPrompt := BuildPrompts(record, s.opts)

	raw, err := s.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	result, err := ExtractDraftResult(raw, record.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if result.Raw != nil {
		slog.Warn("structured extraction failed, returning raw draft text",
			"mode", record.Mode,
			"language", record.Language,
		)
	}

	s.archive(ctx, record, result)

	return &GenerateDraftResult{
		Record: record,
		Result: result,
	}, nil
}

// archive stores the outcome when a repository is configured. Failures are
// logged, never surfaced: an archive miss must not fail a produced draft.
func (s *DraftService) archive(ctx context.Context, record *models.CaseRecord, result *models.DraftResult) {
	if s.draftRepo == nil {
		return
	}

	draft := &models.Draft{
		ID:            uuid.New(),
		Language:      record.Language,
		Mode:          record.Mode,
		CaseNumber:    record.CaseNumber,
		ApplicantName: record.ApplicantName,
		DecisionText:  result.DecisionText,
		OrderText:     result.OrderText,
		RawResponse:   result.Raw,
		Model:         s.model,
	}
	if result.Facts != nil {
		draft.Facts = &models.DraftFacts{Facts: *result.Facts}
	}

	if err := s.draftRepo.Create(ctx, draft); err != nil {
		slog.Error("failed to archive draft", "error", err, "case_number", record.CaseNumber)
	}
}

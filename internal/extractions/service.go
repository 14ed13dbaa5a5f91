package extractions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumeats-backend/internal/llm"
	"resumeats-backend/internal/shared/telemetry"
	"resumeats-backend/resume/aipayload"
	"resumeats-backend/resume/merge"
	"resumeats-backend/resume/model"
	"resumeats-backend/resume/sections"
)

// minTextChars rejects inputs too short to be a resume.
const minTextChars = 50

// Service runs the structuring pipeline and persists extraction records.
type Service struct {
	LLM   llm.Client
	Repo  ExtractionsRepo
	Model string
}

// Extract runs the full pipeline over the resume text: AI extraction,
// deterministic section parsing, reconciliation, validation. Every run leaves
// an extraction record with its final status.
func (s *Service) Extract(ctx context.Context, userId, text string) (Extraction, model.ResumeData, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minTextChars {
		return Extraction{}, model.ResumeData{}, ErrEmptyText
	}

	now := time.Now().UTC()
	ext := Extraction{
		ID:        uuid.NewString(),
		UserID:    userId,
		Status:    StatusProcessing,
		CharCount: len(trimmed),
		Model:     s.Model,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, ext); err != nil {
		return Extraction{}, model.ResumeData{}, fmt.Errorf("create extraction: %w", err)
	}

	data, err := s.runPipeline(ctx, trimmed)
	if err != nil {
		s.finish(ctx, &ext, StatusFailed, nil, err.Error())
		return ext, model.ResumeData{}, err
	}

	resultJSON, err := json.Marshal(data)
	if err != nil {
		s.finish(ctx, &ext, StatusFailed, nil, err.Error())
		return ext, model.ResumeData{}, fmt.Errorf("marshal result: %w", err)
	}

	s.finish(ctx, &ext, StatusCompleted, resultJSON, "")
	return ext, data, nil
}

func (s *Service) runPipeline(ctx context.Context, text string) (model.ResumeData, error) {
	raw, err := s.LLM.ExtractResume(ctx, text)
	if err != nil {
		return model.ResumeData{}, err
	}

	cleaned := llm.CleanJSONResponse(raw)
	if !json.Valid([]byte(cleaned)) {
		return model.ResumeData{}, ErrDecodeFailure
	}

	aiRecord := aipayload.Normalize(json.RawMessage(cleaned))
	sectionRecord := sections.BuildRecord(text)
	final := merge.Reconcile(aiRecord, sectionRecord, text)

	if err := final.Validate(); err != nil {
		return model.ResumeData{}, fmt.Errorf("%w: %s", ErrSchemaFailure, err.Error())
	}
	return final, nil
}

func (s *Service) finish(ctx context.Context, ext *Extraction, status string, resultJSON json.RawMessage, errorMessage string) {
	ext.Status = status
	ext.ResultJSON = resultJSON
	ext.ErrorMessage = errorMessage
	ext.UpdatedAt = time.Now().UTC()
	if err := s.Repo.UpdateResult(ctx, *ext); err != nil {
		telemetry.Error("extractions.update_failed", map[string]any{
			"extraction_id": ext.ID,
			"status":        status,
			"error":         err.Error(),
		})
	}
}

// Get returns one extraction for a user.
func (s *Service) Get(ctx context.Context, userId, id string) (Extraction, error) {
	return s.Repo.GetByID(ctx, userId, id)
}

// List returns a user's extraction history, newest first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]Extraction, error) {
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

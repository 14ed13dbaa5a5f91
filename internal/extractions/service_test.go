package extractions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resumeats-backend/internal/llm"
)

const sampleText = `Maria Silva
Desenvolvedora Frontend
Email: maria@example.com
Experiência Profissional
Acme | Jan 2022 - Atual
- Construiu o painel de vendas com React e TypeScript`

type stubLLM struct {
	output string
	err    error
	calls  int
}

func (s *stubLLM) ExtractResume(ctx context.Context, resumeText string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

func newTestService(client llm.Client) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return &Service{LLM: client, Repo: repo, Model: "gemini-2.5-pro"}, repo
}

func TestExtractCompletesAndPersists(t *testing.T) {
	client := &stubLLM{output: "```json\n{\"personal_info\":{\"full_name\":\"Maria Silva\"},\"summary\":\"Resumo\"}\n```"}
	svc, repo := newTestService(client)

	ext, data, err := svc.Extract(context.Background(), "user-1", sampleText)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if data.PersonalInfo.FullName != "Maria Silva" {
		t.Fatalf("full name = %q", data.PersonalInfo.FullName)
	}
	if len(data.Experiences) == 0 {
		t.Fatalf("section experiences not merged: %+v", data.Experiences)
	}

	stored, err := repo.GetByID(context.Background(), "user-1", ext.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != StatusCompleted {
		t.Fatalf("status = %q", stored.Status)
	}
	if len(stored.ResultJSON) == 0 {
		t.Fatal("result JSON not stored")
	}
	if stored.CharCount != len(strings.TrimSpace(sampleText)) {
		t.Fatalf("char count = %d", stored.CharCount)
	}
}

func TestExtractRejectsShortText(t *testing.T) {
	client := &stubLLM{output: "{}"}
	svc, repo := newTestService(client)

	_, _, err := svc.Extract(context.Background(), "user-1", "curto demais")
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("err = %v", err)
	}
	if client.calls != 0 {
		t.Fatal("LLM called for short input")
	}
	items, _ := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if len(items) != 0 {
		t.Fatalf("record created for rejected input: %+v", items)
	}
}

func TestExtractMarksFailedOnDecodeFailure(t *testing.T) {
	client := &stubLLM{output: "isto nao é JSON"}
	svc, repo := newTestService(client)

	ext, _, err := svc.Extract(context.Background(), "user-1", sampleText)
	if !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("err = %v", err)
	}

	stored, err := repo.GetByID(context.Background(), "user-1", ext.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != StatusFailed {
		t.Fatalf("status = %q", stored.Status)
	}
	if stored.ErrorMessage == "" {
		t.Fatal("error message not stored")
	}
}

func TestExtractPropagatesLLMErrors(t *testing.T) {
	client := &stubLLM{err: llm.ErrUnavailable}
	svc, repo := newTestService(client)

	ext, _, err := svc.Extract(context.Background(), "user-1", sampleText)
	if !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("err = %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), "user-1", ext.ID)
	if stored.Status != StatusFailed {
		t.Fatalf("status = %q", stored.Status)
	}
}

func TestExtractMarksFailedOnSchemaFailure(t *testing.T) {
	// The email survives normalization verbatim and then fails validation.
	client := &stubLLM{output: `{"personal_info":{"full_name":"Maria Silva","email":"nao-e-um-email"}}`}
	svc, repo := newTestService(client)

	ext, _, err := svc.Extract(context.Background(), "user-1", sampleText)
	if !errors.Is(err, ErrSchemaFailure) {
		t.Fatalf("err = %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), "user-1", ext.ID)
	if stored.Status != StatusFailed {
		t.Fatalf("status = %q", stored.Status)
	}
}

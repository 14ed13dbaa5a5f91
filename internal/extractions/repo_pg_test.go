package extractions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	ext := Extraction{
		ID:        "ext-1",
		UserID:    "user-1",
		Status:    StatusProcessing,
		CharCount: 1234,
		Model:     "gemini-2.5-pro",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO extractions").
		WithArgs(
			ext.ID,
			ext.UserID,
			ext.Status,
			ext.CharCount,
			ext.Model,
			nil, // result_json
			nil, // error_message
			ext.CreatedAt,
			ext.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), ext); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateResultNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE extractions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateResult(context.Background(), Extraction{ID: "missing", UserID: "user-1", Status: StatusFailed})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	result := json.RawMessage(`{"personal_info":{"full_name":"Maria"}}`)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "status", "char_count", "model", "result_json", "error_message", "created_at", "updated_at",
	}).AddRow("ext-1", "user-1", StatusCompleted, 1234, "gemini-2.5-pro", []byte(result), nil, now, now)

	mock.ExpectQuery("SELECT id, user_id, status").
		WithArgs("user-1", "ext-1").
		WillReturnRows(rows)

	ext, err := repo.GetByID(context.Background(), "user-1", "ext-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if ext.Status != StatusCompleted || string(ext.ResultJSON) != string(result) {
		t.Fatalf("extraction = %+v", ext)
	}

	mock.ExpectQuery("SELECT id, user_id, status").
		WithArgs("user-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

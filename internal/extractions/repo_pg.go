package extractions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements ExtractionsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new extraction record.
func (r *PGRepo) Create(ctx context.Context, ext Extraction) error {
	const query = `
INSERT INTO extractions (
    id,
    user_id,
    status,
    char_count,
    model,
    result_json,
    error_message,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		ext.ID,
		ext.UserID,
		ext.Status,
		ext.CharCount,
		ext.Model,
		nullableJSON(ext.ResultJSON),
		nullableString(ext.ErrorMessage),
		ext.CreatedAt,
		ext.UpdatedAt,
	)
	return err
}

// UpdateResult stores the outcome of a run.
func (r *PGRepo) UpdateResult(ctx context.Context, ext Extraction) error {
	const query = `
UPDATE extractions
SET status = $1, result_json = $2, error_message = $3, updated_at = $4
WHERE user_id = $5 AND id = $6`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		ext.Status,
		nullableJSON(ext.ResultJSON),
		nullableString(ext.ErrorMessage),
		ext.UpdatedAt,
		ext.UserID,
		ext.ID,
	)
	if err != nil {
		return err
	}
	if updated, err := res.RowsAffected(); err == nil && updated == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches an extraction by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, id string) (Extraction, error) {
	const query = `
SELECT id, user_id, status, char_count, model, result_json, error_message, created_at, updated_at
FROM extractions
WHERE user_id = $1 AND id = $2
LIMIT 1`

	var ext Extraction
	var resultJSON []byte
	var errorMessage sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userId, id).Scan(
		&ext.ID,
		&ext.UserID,
		&ext.Status,
		&ext.CharCount,
		&ext.Model,
		&resultJSON,
		&errorMessage,
		&ext.CreatedAt,
		&ext.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Extraction{}, ErrNotFound
		}
		return Extraction{}, err
	}
	if len(resultJSON) > 0 {
		ext.ResultJSON = json.RawMessage(resultJSON)
	}
	if errorMessage.Valid {
		ext.ErrorMessage = errorMessage.String
	}
	return ext, nil
}

// ListByUser lists extractions ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Extraction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, status, char_count, model, result_json, error_message, created_at, updated_at
FROM extractions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Extraction
	for rows.Next() {
		var ext Extraction
		var resultJSON []byte
		var errorMessage sql.NullString
		if err := rows.Scan(
			&ext.ID,
			&ext.UserID,
			&ext.Status,
			&ext.CharCount,
			&ext.Model,
			&resultJSON,
			&errorMessage,
			&ext.CreatedAt,
			&ext.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(resultJSON) > 0 {
			ext.ResultJSON = json.RawMessage(resultJSON)
		}
		if errorMessage.Valid {
			ext.ErrorMessage = errorMessage.String
		}
		out = append(out, ext)
	}
	return out, rows.Err()
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

var _ ExtractionsRepo = (*PGRepo)(nil)

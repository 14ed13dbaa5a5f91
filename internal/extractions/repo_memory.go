package extractions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of ExtractionsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Extraction // userId -> extractions
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Extraction),
	}
}

// Create stores a new extraction for a user.
func (r *MemoryRepo) Create(ctx context.Context, ext Extraction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[ext.UserID] = append(r.data[ext.UserID], ext)
	return nil
}

// UpdateResult stores the outcome of a run.
func (r *MemoryRepo) UpdateResult(ctx context.Context, ext Extraction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.data[ext.UserID]
	for i := range items {
		if items[i].ID == ext.ID {
			items[i].Status = ext.Status
			items[i].ResultJSON = ext.ResultJSON
			items[i].ErrorMessage = ext.ErrorMessage
			items[i].UpdatedAt = ext.UpdatedAt
			r.data[ext.UserID] = items
			return nil
		}
	}
	return ErrNotFound
}

// GetByID returns an extraction by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, id string) (Extraction, error) {
	if err := ctx.Err(); err != nil {
		return Extraction{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ext := range r.data[userId] {
		if ext.ID == id {
			return ext, nil
		}
	}
	return Extraction{}, ErrNotFound
}

// ListByUser returns extractions newest-first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	userItems := r.data[userId]
	r.mu.RUnlock()

	if len(userItems) == 0 || offset >= len(userItems) {
		return []Extraction{}, nil
	}

	items := make([]Extraction, len(userItems))
	copy(items, userItems)
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	end := len(items)
	if offset+limit < end {
		end = offset + limit
	}
	return items[offset:end], nil
}

var _ ExtractionsRepo = (*MemoryRepo)(nil)

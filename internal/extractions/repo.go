package extractions

import "context"

// ExtractionsRepo defines persistence operations for extractions.
type ExtractionsRepo interface {
	Create(ctx context.Context, ext Extraction) error
	UpdateResult(ctx context.Context, ext Extraction) error
	GetByID(ctx context.Context, userId, id string) (Extraction, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]Extraction, error)
}

package extractions

import (
	"encoding/json"
	"time"
)

// Extraction statuses.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Extraction records one structuring run over a resume text.
type Extraction struct {
	ID           string
	UserID       string
	Status       string
	CharCount    int
	Model        string
	ResultJSON   json.RawMessage
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package extractions

import (
	"encoding/json"
	"time"

	"resumeats-backend/resume/model"
)

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResponse is the envelope returned by POST /extract.
type ExtractResponse struct {
	Success bool             `json:"success"`
	ID      string           `json:"id"`
	Data    model.ResumeData `json:"data"`
	Message string           `json:"message"`
}

// ParseResponse is the envelope returned by POST /parse.
type ParseResponse struct {
	Success      bool   `json:"success"`
	Filename     string `json:"filename"`
	DetectedType string `json:"detectedType"`
	Text         string `json:"text"`
	Message      string `json:"message"`
}

// GenerateRequest accepts either {templateId, resumeData} or the /extract
// envelope {success, data, ...}.
type GenerateRequest struct {
	TemplateID string          `json:"templateId"`
	ResumeData json.RawMessage `json:"resumeData"`
	Data       json.RawMessage `json:"data"`
}

// Payload returns whichever record field was provided.
func (r GenerateRequest) Payload() json.RawMessage {
	if len(r.ResumeData) > 0 {
		return r.ResumeData
	}
	return r.Data
}

// ExtractionResponse is the outward-facing representation of an extraction.
type ExtractionResponse struct {
	ExtractionID string            `json:"extractionId"`
	Status       string            `json:"status"`
	CharCount    int               `json:"charCount"`
	Model        string            `json:"model"`
	Data         *model.ResumeData `json:"data,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func toResponse(ext Extraction, includeData bool) ExtractionResponse {
	resp := ExtractionResponse{
		ExtractionID: ext.ID,
		Status:       ext.Status,
		CharCount:    ext.CharCount,
		Model:        ext.Model,
		ErrorMessage: ext.ErrorMessage,
		CreatedAt:    ext.CreatedAt,
		UpdatedAt:    ext.UpdatedAt,
	}
	if includeData && len(ext.ResultJSON) > 0 {
		var data model.ResumeData
		if err := json.Unmarshal(ext.ResultJSON, &data); err == nil {
			resp.Data = &data
		}
	}
	return resp
}

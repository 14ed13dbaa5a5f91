// Package llm abstracts the AI provider used for resume extraction.
package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for resume extraction. ExtractResume returns
// the raw model output; fence stripping and JSON decoding happen at the
// caller's boundary.
type Client interface {
	ExtractResume(ctx context.Context, resumeText string) (string, error)
}

// Sentinel errors. Providers wrap their SDK errors into one of these so
// handlers can map them to stable status codes with errors.Is.
var (
	// ErrNotConfigured means no API key was provided.
	ErrNotConfigured = errors.New("AI service is not configured")
	// ErrUnavailable covers quota and rate-limit rejections.
	ErrUnavailable = errors.New("AI service temporarily unavailable")
	// ErrInvalidKey means the API key was rejected.
	ErrInvalidKey = errors.New("AI API key invalid or lacks permission")
	// ErrModelUnavailable means the configured model does not exist for this key.
	ErrModelUnavailable = errors.New("AI model unavailable for this key")
	// ErrEmptyResponse means the provider returned no content.
	ErrEmptyResponse = errors.New("AI service returned empty content")
)

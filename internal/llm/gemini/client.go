// Package gemini implements llm.Client over the Google Generative AI SDK.
package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"resumeats-backend/internal/llm"
)

const (
	primaryMaxOutputTokens = 12288
	retryMaxOutputTokens   = 16384
)

// Client calls the Gemini API for resume extraction.
type Client struct {
	client *genai.Client
	model  string
}

// New constructs a Gemini client. The API key is required.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.ErrNotConfigured
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("gemini model name is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	return c.client.Close()
}

// ExtractResume runs the extraction prompt at temperature zero. When the
// primary call is truncated at the token limit, it retries once with a
// stricter suffix and a larger output budget.
func (c *Client) ExtractResume(ctx context.Context, resumeText string) (string, error) {
	prompt := BuildPrompt(resumeText)

	content, finishReason, err := c.generateJSON(ctx, prompt, primaryMaxOutputTokens)
	if err != nil {
		return "", c.mapError(err)
	}

	if finishReason == genai.FinishReasonMaxTokens {
		log.Printf("gemini response truncated model=%s, retrying", c.model)
		content, _, err = c.generateJSON(ctx, prompt+retrySuffix, retryMaxOutputTokens)
		if err != nil {
			return "", c.mapError(err)
		}
	}

	if strings.TrimSpace(content) == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string, maxOutputTokens int32) (string, genai.FinishReason, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.0)
	model.SetTopP(0.1)
	model.SetTopK(1)
	model.SetMaxOutputTokens(maxOutputTokens)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", genai.FinishReasonUnspecified, err
	}
	if len(resp.Candidates) == 0 {
		return "", genai.FinishReasonUnspecified, nil
	}

	candidate := resp.Candidates[0]
	var b strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String()), candidate.FinishReason, nil
}

// mapError folds SDK errors into the llm sentinels so handlers can pick
// status codes without knowing the provider.
func (c *Client) mapError(err error) error {
	message := err.Error()
	lowered := strings.ToLower(message)

	if apiErr, ok := err.(*googleapi.Error); ok {
		switch apiErr.Code {
		case 429:
			return fmt.Errorf("%w: %s", llm.ErrUnavailable, message)
		case 401, 403:
			return fmt.Errorf("%w: %s", llm.ErrInvalidKey, message)
		case 404:
			return fmt.Errorf("%w: model %q: %s", llm.ErrModelUnavailable, c.model, message)
		}
	}
	if isQuotaOrRateError(lowered) {
		return fmt.Errorf("%w: %s", llm.ErrUnavailable, message)
	}
	if strings.Contains(lowered, "not found") && strings.Contains(lowered, "model") {
		return fmt.Errorf("%w: model %q: %s", llm.ErrModelUnavailable, c.model, message)
	}
	if strings.Contains(lowered, "api key not valid") || strings.Contains(lowered, "permission denied") || strings.Contains(lowered, "403") {
		return fmt.Errorf("%w: %s", llm.ErrInvalidKey, message)
	}
	return fmt.Errorf("gemini request: %w", err)
}

var quotaKeywords = []string{
	"quota",
	"quota exceeded",
	"exceeded your current quota",
	"rate limit",
	"resource exhausted",
	"resource_exhausted",
	"429",
	"too many requests",
	"free_tier",
}

func isQuotaOrRateError(lowered string) bool {
	for _, keyword := range quotaKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

var _ llm.Client = (*Client)(nil)

package gemini

import (
	"errors"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"

	"resumeats-backend/internal/llm"
)

func TestBuildPromptEmbedsText(t *testing.T) {
	prompt := BuildPrompt("MEU CURRICULO AQUI")
	if !strings.Contains(prompt, "MEU CURRICULO AQUI") {
		t.Fatal("prompt missing resume text")
	}
	if strings.Contains(prompt, "[[CURRICULO_TEXT]]") {
		t.Fatal("placeholder not replaced")
	}
}

func TestMapError(t *testing.T) {
	client := &Client{model: "gemini-2.5-pro"}
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"quota keyword", errors.New("RESOURCE_EXHAUSTED: quota exceeded"), llm.ErrUnavailable},
		{"rate limit", errors.New("too many requests, slow down"), llm.ErrUnavailable},
		{"http 429", &googleapi.Error{Code: 429, Message: "rate"}, llm.ErrUnavailable},
		{"http 403", &googleapi.Error{Code: 403, Message: "denied"}, llm.ErrInvalidKey},
		{"http 404", &googleapi.Error{Code: 404, Message: "missing"}, llm.ErrModelUnavailable},
		{"bad key text", errors.New("API key not valid. Please pass a valid key."), llm.ErrInvalidKey},
		{"model text", errors.New("model gemini-x is not found for API version"), llm.ErrModelUnavailable},
	}
	for _, tc := range cases {
		if got := client.mapError(tc.in); !errors.Is(got, tc.want) {
			t.Fatalf("%s: mapError(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}

	generic := client.mapError(errors.New("connection reset"))
	for _, sentinel := range []error{llm.ErrUnavailable, llm.ErrInvalidKey, llm.ErrModelUnavailable} {
		if errors.Is(generic, sentinel) {
			t.Fatalf("generic error mapped to %v", sentinel)
		}
	}
}

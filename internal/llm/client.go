package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"StyleSense/internal/config"
	"StyleSense/internal/models"
)

var (
	// ErrMissingAPIKey is returned by every call when no provider credential is configured.
	ErrMissingAPIKey = errors.New("llm API key not configured")
	ErrEmptyResponse = errors.New("llm returned an empty response")
)

type Message struct {
	Role    string
	Content string
}

// Request is one completion call. When Image is set the provider's vision model is used and
// the image is attached to the last user message.
type Request struct {
	Messages    []Message
	Temperature *float32
	JSON        bool
	Image       []byte
	ImageMIME   string
}

// Client is a hosted chat-completion endpoint.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Temperature returns a pointer for Request.Temperature.
func Temperature(t float32) *float32 { return &t }

// New returns the client for the configured provider, or a client that always fails with
// ErrMissingAPIKey when the provider has no credential.
func New(ctx context.Context, cfg *config.Config) (Client, error) {
	if !cfg.AIConfigured() {
		return Unconfigured{}, nil
	}
	switch cfg.LLMProvider {
	case "gemini":
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "groq", "":
		return NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.TextModel, cfg.VisionModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

type Unconfigured struct{}

func (Unconfigured) Complete(context.Context, Request) (string, error) {
	return "", ErrMissingAPIKey
}

// UserPrompt builds a single-message request.
func UserPrompt(prompt string) []Message {
	return []Message{{Role: models.RoleUser, Content: prompt}}
}

func lastUserIndex(msgs []Message) int {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == models.RoleUser {
			return i
		}
	}
	return -1
}

func checkContent(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", ErrEmptyResponse
	}
	return s, nil
}

package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"StyleSense/internal/models"
)

// GeminiClient is the alternate provider. One model serves text and vision.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	contents, system := geminiContents(req)

	cfg := &genai.GenerateContentConfig{Temperature: req.Temperature}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	return checkContent(resp.Text())
}

// geminiContents splits system messages out; Gemini takes them as the system instruction.
func geminiContents(req Request) ([]*genai.Content, string) {
	imageAt := -1
	if len(req.Image) > 0 {
		imageAt = lastUserIndex(req.Messages)
	}

	var system []string
	var contents []*genai.Content
	for i, m := range req.Messages {
		switch m.Role {
		case models.RoleSystem:
			system = append(system, m.Content)
			continue
		case models.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
			continue
		}
		if i == imageAt {
			mime := req.ImageMIME
			if mime == "" {
				mime = "image/jpeg"
			}
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromText(m.Content),
				genai.NewPartFromBytes(req.Image, mime),
			}, genai.RoleUser))
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}
	return contents, strings.Join(system, "\n\n")
}

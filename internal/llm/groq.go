package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"StyleSense/internal/models"
)

// GroqClient talks to Groq's OpenAI-compatible chat completion API.
type GroqClient struct {
	client      *openai.Client
	textModel   string
	visionModel string
}

func NewGroqClient(apiKey, baseURL, textModel, visionModel string) *GroqClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &GroqClient{
		client:      openai.NewClientWithConfig(cfg),
		textModel:   textModel,
		visionModel: visionModel,
	}
}

func (g *GroqClient) Complete(ctx context.Context, req Request) (string, error) {
	model := g.textModel
	if len(req.Image) > 0 {
		model = g.visionModel
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: g.buildMessages(req),
	}
	if req.Temperature != nil {
		chatReq.Temperature = *req.Temperature
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return checkContent(resp.Choices[0].Message.Content)
}

func (g *GroqClient) buildMessages(req Request) []openai.ChatCompletionMessage {
	imageAt := -1
	if len(req.Image) > 0 {
		imageAt = lastUserIndex(req.Messages)
	}

	out := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for i, m := range req.Messages {
		msg := openai.ChatCompletionMessage{Role: toOpenAIRole(m.Role)}
		if i == imageAt {
			msg.MultiContent = []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: m.Content},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
					URL: dataURL(req.ImageMIME, req.Image),
				}},
			}
		} else {
			msg.Content = m.Content
		}
		out = append(out, msg)
	}
	return out
}

func toOpenAIRole(role string) string {
	switch role {
	case models.RoleSystem:
		return openai.ChatMessageRoleSystem
	case models.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}

func dataURL(mime string, data []byte) string {
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

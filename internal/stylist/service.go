/**
* Name: 			service.go
* Description: 		프롬프트 조립, LLM 호출, 응답 처리
* Workflow: 		프롬프트 생성 → LLM 호출 → 실패 시 대체 문구 반환
 */
package stylist

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"StyleSense/internal/catalog"
	"StyleSense/internal/llm"
	"StyleSense/internal/metrics"
	"StyleSense/internal/models"
)

// Messages shown for the request errors below.
const (
	MsgNoProfile     = "Please update your profile in the Sign Up page to get personalized advice."
	MsgEmptyWardrobe = "Add items to your wardrobe first!"
)

var (
	ErrNoProfile     = errors.New("style profile is empty")
	ErrEmptyWardrobe = errors.New("wardrobe is empty")
	ErrUnknownAdvice = errors.New("unknown advice kind")
	ErrEmptyChat     = errors.New("chat transcript must end with a user message")
)

// Operation names used for metrics and logs.
const (
	OpStyleContent   = "style_content"
	OpSustainability = "sustainability"
	OpTrendInsight   = "trend_insight"
	OpAdvice         = "advice"
	OpChat           = "chat"
	OpMixAndMatch    = "mix_and_match"
	OpVision         = "vision"
)

const (
	defaultTemperature = 0.7
	jsonTemperature    = 0.2
)

// StyleRequest is a studio generation request.
type StyleRequest struct {
	Topic    string
	Vibes    []string
	Mood     string
	Platform string
	Language string
	Weather  string
	Occasion string
}

// FullTopic is the topic combined with the occasion. This is what history records.
func (r StyleRequest) FullTopic() string {
	if r.Occasion == "" {
		return r.Topic
	}
	return r.Topic + " for " + r.Occasion
}

// Reply is model prose. Degraded replies carry an inline error message instead.
type Reply struct {
	Content  string `json:"content"`
	Degraded bool   `json:"degraded"`
}

// Service builds prompts and turns model output into results.
// Upstream failures never surface as errors; they become fallback values.
type Service struct {
	client  llm.Client
	metrics metrics.Recorder
	logger  *zap.Logger
	timeout time.Duration
}

func NewService(client llm.Client, rec metrics.Recorder, logger *zap.Logger, timeout time.Duration) *Service {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{client: client, metrics: rec, logger: logger, timeout: timeout}
}

func (s *Service) complete(ctx context.Context, op string, req llm.Request) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.client.Complete(ctx, req)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		s.metrics.RecordUpstream(op, metrics.OutcomeSuccess, elapsed)
	case errors.Is(err, llm.ErrMissingAPIKey):
		s.metrics.RecordUpstream(op, metrics.OutcomeUnavailable, elapsed)
	default:
		s.metrics.RecordUpstream(op, metrics.OutcomeError, elapsed)
		s.logger.Warn("llm call failed", zap.String("operation", op), zap.Duration("elapsed", elapsed), zap.Error(err))
	}
	return out, err
}

func (s *Service) degraded(op, msg string) Reply {
	s.metrics.RecordDegraded(op)
	return Reply{Content: msg, Degraded: true}
}

// prose runs a free-text completion and maps failures to the caller's messages.
func (s *Service) prose(ctx context.Context, op string, req llm.Request, noKey string, onErr func(error) string) Reply {
	out, err := s.complete(ctx, op, req)
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return s.degraded(op, noKey)
	}
	if err != nil {
		return s.degraded(op, onErr(err))
	}
	return Reply{Content: out}
}

func (s *Service) GenerateStyleContent(ctx context.Context, r StyleRequest, profile models.StyleProfile) Reply {
	return s.prose(ctx, OpStyleContent, llm.Request{
		Messages:    llm.UserPrompt(styleContentPrompt(r, profile)),
		Temperature: llm.Temperature(defaultTemperature),
	},
		"⚠️ Error: Groq API Key not found. Please check your .env file.",
		func(err error) string { return "⚠️ Error generating content: " + err.Error() })
}

// SustainabilityScore rates item. The second result reports whether the fallback was used.
func (s *Service) SustainabilityScore(ctx context.Context, item string) (models.SustainabilityScore, bool) {
	out, err := s.complete(ctx, OpSustainability, llm.Request{
		Messages:    llm.UserPrompt(sustainabilityPrompt(item)),
		Temperature: llm.Temperature(jsonTemperature),
		JSON:        true,
	})
	if err != nil {
		s.metrics.RecordDegraded(OpSustainability)
		return FallbackSustainability, true
	}
	score, err := ParseSustainability(out)
	if err != nil {
		s.logger.Warn("unparseable sustainability response", zap.Error(err))
		s.metrics.RecordDegraded(OpSustainability)
		return score, true
	}
	return score, false
}

// TrendInsight asks for a rising/falling call on the most recent interest values.
func (s *Service) TrendInsight(ctx context.Context, keyword string, recent []int) Reply {
	return s.prose(ctx, OpTrendInsight, llm.Request{
		Messages: llm.UserPrompt(trendInsightPrompt(trendSummary(keyword, recent))),
	},
		"Error: No API Key",
		func(err error) string { return "Error: " + err.Error() })
}

// StaticAdvice produces profile-based advice of the given kind (catalog.AdviceDosDonts or catalog.AdviceTrends).
func (s *Service) StaticAdvice(ctx context.Context, kind string, profile models.StyleProfile) (Reply, error) {
	if profile.IsZero() {
		return Reply{}, ErrNoProfile
	}
	var prompt string
	switch kind {
	case catalog.AdviceDosDonts:
		prompt = dosDontsPrompt(profile)
	case catalog.AdviceTrends:
		prompt = trendsAdvicePrompt(profile)
	default:
		return Reply{}, ErrUnknownAdvice
	}
	return s.prose(ctx, OpAdvice, llm.Request{
		Messages:    llm.UserPrompt(prompt),
		Temperature: llm.Temperature(defaultTemperature),
	},
		"⚠️ Please set API Key.",
		func(err error) string { return "Error: " + err.Error() }), nil
}

// Chat answers the last user message of transcript. The whole transcript is forwarded.
func (s *Service) Chat(ctx context.Context, profile models.StyleProfile, transcript []models.ChatMessage) (Reply, error) {
	if len(transcript) == 0 || transcript[len(transcript)-1].Role != models.RoleUser {
		return Reply{}, ErrEmptyChat
	}
	msgs := make([]llm.Message, 0, len(transcript)+1)
	msgs = append(msgs, llm.Message{Role: models.RoleSystem, Content: chatSystemPrompt(profile)})
	for _, m := range transcript {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	return s.prose(ctx, OpChat, llm.Request{
		Messages:    msgs,
		Temperature: llm.Temperature(defaultTemperature),
	},
		"Error: "+llm.ErrMissingAPIKey.Error(),
		func(err error) string { return "Error: " + err.Error() }), nil
}

// MixAndMatch builds an outfit for occasion from the user's wardrobe.
func (s *Service) MixAndMatch(ctx context.Context, profile models.StyleProfile, occasion string, wardrobe []models.WardrobeItem) (Reply, error) {
	if len(wardrobe) == 0 {
		return Reply{}, ErrEmptyWardrobe
	}
	return s.prose(ctx, OpMixAndMatch, llm.Request{
		Messages:    llm.UserPrompt(mixAndMatchPrompt(profile, occasion, wardrobe)),
		Temperature: llm.Temperature(defaultTemperature),
	},
		"API Key missing.",
		func(err error) string { return "AI Error: " + err.Error() }), nil
}

// AnalyzeImage runs the smart mirror analysis. A failed analysis has only Error set.
func (s *Service) AnalyzeImage(ctx context.Context, image []byte, mime string) models.VisionAnalysis {
	out, err := s.complete(ctx, OpVision, llm.Request{
		Messages:    llm.UserPrompt(visionPrompt),
		Temperature: llm.Temperature(defaultTemperature),
		JSON:        true,
		Image:       image,
		ImageMIME:   mime,
	})
	if errors.Is(err, llm.ErrMissingAPIKey) {
		s.metrics.RecordDegraded(OpVision)
		return models.VisionAnalysis{Error: "No response from AI"}
	}
	if err != nil {
		s.metrics.RecordDegraded(OpVision)
		return models.VisionAnalysis{Error: err.Error()}
	}
	analysis, err := ParseVision(out)
	if err != nil {
		s.logger.Warn("unparseable vision response", zap.Error(err))
		s.metrics.RecordDegraded(OpVision)
	}
	return analysis
}

// NormalizeVibes drops blanks and defaults to the first catalog vibe.
func NormalizeVibes(vibes []string) []string {
	out := make([]string, 0, len(vibes))
	for _, v := range vibes {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		out = append(out, catalog.First(catalog.Default().Vibes))
	}
	return out
}

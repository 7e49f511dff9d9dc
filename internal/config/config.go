/**
* Name: 			config.go
* Description: 		환경 변수 / .env 기반 설정 로딩
* Workflow: 		.env 로드, 기본값 설정, 검증
 */
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultJWTSecret = "default_secret_key"

type Config struct {
	// LLM
	LLMProvider  string `validate:"oneof=groq gemini"`
	GroqAPIKey   string
	GroqBaseURL  string `validate:"required,url"`
	GeminiAPIKey string
	TextModel    string        `validate:"required"`
	VisionModel  string        `validate:"required"`
	GeminiModel  string        `validate:"required"`
	LLMTimeout   time.Duration `validate:"gt=0"`

	// Storage
	StoreDriver string `validate:"oneof=json sqlite"`
	DataFile    string `validate:"required_if=StoreDriver json"`
	SQLitePath  string `validate:"required_if=StoreDriver sqlite"`

	// Auth
	JWTSecret        string        `validate:"required"`
	TokenTTL         time.Duration `validate:"gt=0"`
	PasswordScheme   string        `validate:"oneof=sha256 bcrypt"`
	SignupInviteCode string

	// Server
	ServerPort     string `validate:"required,numeric"`
	VisionPort     string `validate:"required,numeric"`
	MaxUploadBytes int64  `validate:"gt=0"`

	// Outbound
	OutboundTimeout time.Duration `validate:"gt=0"`
	ImageGenURL     string        `validate:"required,url"`
	ImageGenToken   string

	// Trends
	TrendsHL              string `validate:"required"`
	TrendsGeo             string
	TrendsTimeframe       string        `validate:"required"`
	TrendsDailyGeo        string        `validate:"required"`
	TrendsRefreshInterval time.Duration `validate:"gt=0"`

	// Speech
	GoogleCredentialsFile string
	SpeechLanguage        string `validate:"required"`

	// Rate limits, requests per minute per client
	RateLimitAuth int `validate:"gt=0"`
	RateLimitAI   int `validate:"gt=0"`

	// Logging
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`
}

var defaults = map[string]any{
	"LLM_PROVIDER":            "groq",
	"GROQ_BASE_URL":           "https://api.groq.com/openai/v1",
	"TEXT_MODEL":              "llama-3.3-70b-versatile",
	"VISION_MODEL":            "meta-llama/llama-4-scout-17b-16e-instruct",
	"GEMINI_MODEL":            "gemini-2.0-flash",
	"LLM_TIMEOUT":             "60s",
	"STORE_DRIVER":            "json",
	"DATA_FILE":               "data.json",
	"SQLITE_PATH":             "stylesense.db",
	"TOKEN_TTL":               "24h",
	"PASSWORD_SCHEME":         "sha256",
	"SERVER_PORT":             "8080",
	"VISION_PORT":             "5000",
	"MAX_UPLOAD_BYTES":        16 << 20,
	"OUTBOUND_TIMEOUT":        "60s",
	"IMAGE_GEN_URL":           "https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-2-1",
	"TRENDS_HL":               "en-US",
	"TRENDS_GEO":              "",
	"TRENDS_TIMEFRAME":        "today 12-m",
	"TRENDS_DAILY_GEO":        "US",
	"TRENDS_REFRESH_INTERVAL": "30m",
	"SPEECH_LANGUAGE":         "en-US",
	"RATE_LIMIT_AUTH":         10,
	"RATE_LIMIT_AI":           30,
	"LOG_LEVEL":               "info",
	"LOG_FORMAT":              "json",
}

// Load reads .env (if present) and the process environment.
// A missing GROQ_API_KEY is not an error: AI features degrade to inline messages instead.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	return v
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		LLMProvider:  v.GetString("LLM_PROVIDER"),
		GroqAPIKey:   v.GetString("GROQ_API_KEY"),
		GroqBaseURL:  v.GetString("GROQ_BASE_URL"),
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		TextModel:    v.GetString("TEXT_MODEL"),
		VisionModel:  v.GetString("VISION_MODEL"),
		GeminiModel:  v.GetString("GEMINI_MODEL"),
		LLMTimeout:   v.GetDuration("LLM_TIMEOUT"),

		StoreDriver: v.GetString("STORE_DRIVER"),
		DataFile:    v.GetString("DATA_FILE"),
		SQLitePath:  v.GetString("SQLITE_PATH"),

		JWTSecret:        v.GetString("JWT_SECRET_KEY"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		PasswordScheme:   v.GetString("PASSWORD_SCHEME"),
		SignupInviteCode: v.GetString("SIGNUP_INVITE_CODE"),

		ServerPort:     v.GetString("SERVER_PORT"),
		VisionPort:     v.GetString("VISION_PORT"),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),

		OutboundTimeout: v.GetDuration("OUTBOUND_TIMEOUT"),
		ImageGenURL:     v.GetString("IMAGE_GEN_URL"),
		ImageGenToken:   v.GetString("IMAGE_GEN_TOKEN"),

		TrendsHL:              v.GetString("TRENDS_HL"),
		TrendsGeo:             v.GetString("TRENDS_GEO"),
		TrendsTimeframe:       v.GetString("TRENDS_TIMEFRAME"),
		TrendsDailyGeo:        v.GetString("TRENDS_DAILY_GEO"),
		TrendsRefreshInterval: v.GetDuration("TRENDS_REFRESH_INTERVAL"),

		GoogleCredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		SpeechLanguage:        v.GetString("SPEECH_LANGUAGE"),

		RateLimitAuth: v.GetInt("RATE_LIMIT_AUTH"),
		RateLimitAI:   v.GetInt("RATE_LIMIT_AI"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}

	// 기본 키 설정 (권장하지 않음)
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DefaultJWTSecret
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// UsesDefaultJWTSecret reports whether JWT_SECRET_KEY was left unset.
func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// AIConfigured reports whether the selected provider has a credential.
func (c *Config) AIConfigured() bool {
	if c.LLMProvider == "gemini" {
		return c.GeminiAPIKey != ""
	}
	return c.GroqAPIKey != ""
}

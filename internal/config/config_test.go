package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func testViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(testViper(nil))
	if err != nil {
		t.Fatalf("FromViper() error: %v", err)
	}

	if cfg.StoreDriver != "json" || cfg.DataFile != "data.json" {
		t.Errorf("store = %q %q", cfg.StoreDriver, cfg.DataFile)
	}
	if cfg.TextModel != "llama-3.3-70b-versatile" {
		t.Errorf("TextModel = %q", cfg.TextModel)
	}
	if cfg.VisionModel != "meta-llama/llama-4-scout-17b-16e-instruct" {
		t.Errorf("VisionModel = %q", cfg.VisionModel)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if cfg.MaxUploadBytes != 16<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.TrendsHL != "en-US" || cfg.TrendsTimeframe != "today 12-m" {
		t.Errorf("trends = %q %q", cfg.TrendsHL, cfg.TrendsTimeframe)
	}
	if !cfg.UsesDefaultJWTSecret() {
		t.Error("expected default JWT secret when JWT_SECRET_KEY is unset")
	}
	if cfg.AIConfigured() {
		t.Error("AIConfigured() = true without GROQ_API_KEY")
	}
}

func TestFromViper_MissingAPIKeyIsNotFatal(t *testing.T) {
	cfg, err := FromViper(testViper(map[string]any{"GROQ_API_KEY": ""}))
	if err != nil {
		t.Fatalf("missing API key must not fail startup: %v", err)
	}
	if cfg.GroqAPIKey != "" {
		t.Errorf("GroqAPIKey = %q", cfg.GroqAPIKey)
	}
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := FromViper(testViper(map[string]any{
		"GROQ_API_KEY":    "gsk_test",
		"STORE_DRIVER":    "sqlite",
		"SQLITE_PATH":     "/tmp/x.db",
		"JWT_SECRET_KEY":  "s3cret",
		"PASSWORD_SCHEME": "bcrypt",
		"LLM_TIMEOUT":     "5s",
	}))
	if err != nil {
		t.Fatalf("FromViper() error: %v", err)
	}
	if !cfg.AIConfigured() {
		t.Error("AIConfigured() = false with key set")
	}
	if cfg.UsesDefaultJWTSecret() {
		t.Error("UsesDefaultJWTSecret() = true with explicit key")
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Errorf("LLMTimeout = %v", cfg.LLMTimeout)
	}
	if cfg.PasswordScheme != "bcrypt" || cfg.StoreDriver != "sqlite" {
		t.Errorf("scheme/driver = %q/%q", cfg.PasswordScheme, cfg.StoreDriver)
	}
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"unknown store driver", map[string]any{"STORE_DRIVER": "mongo"}},
		{"unknown provider", map[string]any{"LLM_PROVIDER": "llamafile"}},
		{"unknown password scheme", map[string]any{"PASSWORD_SCHEME": "md5"}},
		{"non-numeric port", map[string]any{"SERVER_PORT": "http"}},
		{"zero rate limit", map[string]any{"RATE_LIMIT_AI": 0}},
		{"bad log level", map[string]any{"LOG_LEVEL": "trace"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromViper(testViper(tt.overrides)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

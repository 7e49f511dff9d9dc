package stylist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"StyleSense/internal/models"
)

var errNoJSONObject = errors.New("response contains no JSON object")

// FallbackSustainability is used whenever the score cannot be obtained or parsed.
var FallbackSustainability = models.SustainabilityScore{
	Score:  5,
	Reason: "Could not analyze",
	Tips:   "Check materials manually.",
}

// extractJSON returns the outermost {...} block, tolerating code fences and chatter around it.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "", errNoJSONObject
	}
	return raw[start : end+1], nil
}

// ParseSustainability decodes a sustainability response. On any failure it returns
// FallbackSustainability together with the decode error.
func ParseSustainability(raw string) (models.SustainabilityScore, error) {
	obj, err := extractJSON(raw)
	if err != nil {
		return FallbackSustainability, err
	}
	var s models.SustainabilityScore
	if err := json.Unmarshal([]byte(obj), &s); err != nil {
		return FallbackSustainability, fmt.Errorf("invalid sustainability JSON: %w", err)
	}
	s.Score = clamp(s.Score, 1, 10)
	return s, nil
}

// ParseVision decodes a vision response. On failure the returned analysis carries only Error.
func ParseVision(raw string) (models.VisionAnalysis, error) {
	obj, err := extractJSON(raw)
	if err != nil {
		return models.VisionAnalysis{Error: err.Error()}, err
	}
	var v models.VisionAnalysis
	if err := json.Unmarshal([]byte(obj), &v); err != nil {
		err = fmt.Errorf("invalid vision JSON: %w", err)
		return models.VisionAnalysis{Error: err.Error()}, err
	}
	if v.Failed() {
		return models.VisionAnalysis{Error: v.Error}, errors.New(v.Error)
	}
	v.StyleScore = clamp(v.StyleScore, 0, 100)
	return v, nil
}

func clamp(s models.Score, lo, hi models.Score) models.Score {
	if s < lo {
		return lo
	}
	if s > hi {
		return hi
	}
	return s
}

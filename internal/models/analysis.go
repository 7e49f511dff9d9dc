package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Score accepts a JSON number or a numeric string. Models are not consistent about which one they emit.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "/100"))
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("score %q is not a number", raw)
	}
	*s = Score(math.Round(f))
	return nil
}

// SustainabilityScore is the JSON object the model is asked to return for an item description.
type SustainabilityScore struct {
	Score  Score  `json:"score"`
	Reason string `json:"reason"`
	Tips   string `json:"tips"`
}

// VisionFeatures holds the "features" object of a vision analysis.
// A plain string is kept under the "Summary" key.
type VisionFeatures map[string]string

func (f *VisionFeatures) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = VisionFeatures{"Summary": s}
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(VisionFeatures, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
		default:
			b, _ := json.Marshal(val)
			out[k] = string(b)
		}
	}
	*f = out
	return nil
}

// VisionAnalysis is the smart mirror result. Error is set instead of the other fields on failure.
type VisionAnalysis struct {
	Features             VisionFeatures `json:"features,omitempty"`
	OutfitIdeas          []string       `json:"outfit_ideas,omitempty"`
	WhyItSuits           string         `json:"why_it_suits,omitempty"`
	StyleScore           Score          `json:"style_score"`
	MoodAnalysis         string         `json:"mood_analysis,omitempty"`
	ColorPatternAnalysis string         `json:"color_pattern_analysis,omitempty"`
	Error                string         `json:"error,omitempty"`
}

func (v VisionAnalysis) Failed() bool {
	return v.Error != ""
}

// MarshalJSON writes a failed analysis as {"error": "..."} alone.
func (v VisionAnalysis) MarshalJSON() ([]byte, error) {
	if v.Failed() {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{v.Error})
	}
	type plain VisionAnalysis
	return json.Marshal(plain(v))
}

package stylist

import "StyleSense/internal/models"

const notAvailable = "N/A"

// Sustainability badge colours.
const (
	BadgeGreen  = "#00b894"
	BadgeYellow = "#fdcb6e"
	BadgeRed    = "#d63031"
)

func BadgeColor(score models.Score) string {
	switch {
	case score > 7:
		return BadgeGreen
	case score > 4:
		return BadgeYellow
	default:
		return BadgeRed
	}
}

func StyleVerdict(score models.Score) string {
	switch {
	case score > 85:
		return "Fashion Icon Status!"
	case score > 60:
		return "Looking Sharp!"
	default:
		return "Room for Styling!"
	}
}

type SustainabilityView struct {
	models.SustainabilityScore
	Color string `json:"color"`
}

func NewSustainabilityView(s models.SustainabilityScore) SustainabilityView {
	return SustainabilityView{SustainabilityScore: s, Color: BadgeColor(s.Score)}
}

// MirrorView is a vision analysis with every display field filled in.
type MirrorView struct {
	StyleScore           models.Score `json:"style_score"`
	Verdict              string       `json:"verdict"`
	MoodAnalysis         string       `json:"mood_analysis"`
	ColorPatternAnalysis string       `json:"color_pattern_analysis"`
	SkinTone             string       `json:"skin_tone"`
	BodyShape            string       `json:"body_shape"`
	Vibe                 string       `json:"vibe"`
	OutfitIdeas          []string     `json:"outfit_ideas"`
	WhyItSuits           string       `json:"why_it_suits"`
}

func NewMirrorView(v models.VisionAnalysis) MirrorView {
	ideas := v.OutfitIdeas
	if ideas == nil {
		ideas = []string{}
	}
	return MirrorView{
		StyleScore:           v.StyleScore,
		Verdict:              StyleVerdict(v.StyleScore),
		MoodAnalysis:         orDefault(v.MoodAnalysis, notAvailable),
		ColorPatternAnalysis: orDefault(v.ColorPatternAnalysis, notAvailable),
		SkinTone:             orDefault(v.Features[FeatureSkinTone], notAvailable),
		BodyShape:            orDefault(v.Features[FeatureBody], notAvailable),
		Vibe:                 orDefault(v.Features[FeatureVibe], notAvailable),
		OutfitIdeas:          ideas,
		WhyItSuits:           orDefault(v.WhyItSuits, notAvailable),
	}
}

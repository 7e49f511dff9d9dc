package catalog

import "StyleSense/internal/models"

// Option lists offered by the signup, studio, wardrobe and guide pages.
type Catalog struct {
	BodyTypes      []string `json:"body_types"`
	SkinTones      []string `json:"skin_tones"`
	Genders        []string `json:"genders"`
	Vibes          []string `json:"vibes"`
	Moods          []string `json:"moods"`
	Platforms      []string `json:"platforms"`
	Languages      []string `json:"languages"`
	Weather        []string `json:"weather"`
	Occasions      []string `json:"occasions"`
	OutfitOccasion []string `json:"outfit_occasions"`
	Categories     []string `json:"wardrobe_categories"`
	AdviceKinds    []string `json:"advice_kinds"`
}

const (
	AdviceDosDonts = "dos_donts"
	AdviceTrends   = "trends"

	DefaultTrendKeyword = "Oversized Blazer"
)

var defaults = Catalog{
	BodyTypes:      []string{"Hourglass", "Pear", "Apple", "Rectangle", "Inverted Triangle", "Athletic"},
	SkinTones:      []string{"Warm", "Cool", "Neutral", "Olive", "Deep"},
	Genders:        []string{"Female", "Male", "Unisex"},
	Vibes:          []string{"Casual", "Professional", "Vintage", "Streetwear", "Minimalist", "Boho", "Glam", "Sustainable", "Edgy"},
	Moods:          []string{"Lazy", "Casual", "Confident", "Festive", "Professional", "Bold"},
	Platforms:      []string{"Instagram", "Twitter", "WhatsApp", "Blog Post", "LinkedIn"},
	Languages:      []string{"English", "Spanish", "French", "Hindi", "Mandarin", "Arabic"},
	Weather:        []string{"Sunny & Hot", "Mild / Spring", "Rainy", "Cold / Snowy", "Windy", "Indoor / AC"},
	Occasions:      []string{"Casual", "Date Night", "Wedding Guest", "Job Interview", "Party", "Travel", "Gym/Athleisure", "Office"},
	OutfitOccasion: []string{"Weekend Casual", "Work/Office", "Date Night", "Party"},
	Categories:     models.WardrobeCategories,
	AdviceKinds:    []string{AdviceDosDonts, AdviceTrends},
}

// Default returns the option catalog. Callers must not modify the slices.
func Default() Catalog {
	return defaults
}

// First returns the first option of list, the value a form preselects.
func First(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

func Contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

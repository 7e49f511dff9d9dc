package models

// 회원 사용자 모델
type User struct {
	Username     string         `json:"username"`
	PasswordHash string         `json:"-"`
	Profile      StyleProfile   `json:"profile"`
	Wardrobe     []WardrobeItem `json:"wardrobe"`
}

// StyleProfile is the self-reported profile used to personalise prompts.
type StyleProfile struct {
	BodyType string `json:"body_type"`
	SkinTone string `json:"skin_tone"`
	Gender   string `json:"gender"`
}

// IsZero reports whether no profile attribute is set.
func (p StyleProfile) IsZero() bool {
	return p.BodyType == "" && p.SkinTone == "" && p.Gender == ""
}

// Merge returns p with every non-empty field of override applied.
func (p StyleProfile) Merge(override StyleProfile) StyleProfile {
	if override.BodyType != "" {
		p.BodyType = override.BodyType
	}
	if override.SkinTone != "" {
		p.SkinTone = override.SkinTone
	}
	if override.Gender != "" {
		p.Gender = override.Gender
	}
	return p
}

type WardrobeItem struct {
	Item     string `json:"item"`
	Category string `json:"category"`
}

package stylist

import (
	"fmt"
	"strings"

	"StyleSense/internal/models"
)

const notSpecified = "Not specified"

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// describeProfile renders the profile inline, as used by the chat and wardrobe prompts.
func describeProfile(p models.StyleProfile) string {
	return fmt.Sprintf("Body Type: %s, Skin Tone: %s, Gender: %s",
		orDefault(p.BodyType, notSpecified),
		orDefault(p.SkinTone, notSpecified),
		orDefault(p.Gender, notSpecified))
}

func styleContentPrompt(r StyleRequest, p models.StyleProfile) string {
	return fmt.Sprintf(`You are StyleSense, an expert AI Fashion Stylist and Content Creator.

Goal: Generate engaging, trendy, and platform-specific fashion content based on the user's request and profile.

Request Details:
- Topic: %s
- Platform: %s
- Language: %s
- Mood: %s
- Weather: %s
- Style Vibes: %s

User Profile:
- Body Type: %s
- Skin Tone: %s
- Gender Preference: %s

Guidelines:
- Tone: Stylish, confident, inclusive, and helpful.
- %s specific optimizations (e.g., hashtags for Instagram, concise constraints for Twitter).
- If the platform is Instagram, suggest a caption, a visual description of the outfit/photo, and relevant hashtags.
- If the platform is Twitter, keep it punchy and thread-like if needed.
- If the platform is WhatsApp, make it personal and shareable.
- Suggest outfits that flatter the specific body type and skin tone mentioned.
- Consider the weather and mood in the recommendation.`,
		r.FullTopic(), r.Platform, r.Language, r.Mood, r.Weather, strings.Join(r.Vibes, ", "),
		orDefault(p.BodyType, notSpecified),
		orDefault(p.SkinTone, notSpecified),
		orDefault(p.Gender, notSpecified),
		r.Platform)
}

func sustainabilityPrompt(item string) string {
	return fmt.Sprintf(`Analyze the sustainability of this fashion item: "%s".

Return ONLY a JSON object with:
- "score": (1-10 integer, 10 being most eco-friendly)
- "reason": (Short 1 sentence explanation)
- "tips": (Short 1 sentence tip to make it more sustainable)

Do not add markdown formatting. Just the JSON string.`, item)
}

// trendSummary is the data line handed to the trend prompt. The label stays "Last 5"
// even when the series is shorter.
func trendSummary(keyword string, last []int) string {
	vals := make([]string, len(last))
	for i, v := range last {
		vals[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("Trend: %s, Last 5 values: [%s]", keyword, strings.Join(vals, ", "))
}

func trendInsightPrompt(summary string) string {
	return fmt.Sprintf("Analyze this fashion trend data trend: '%s'. Predict if it's rising or falling and give one strategy to wear it.", summary)
}

func dosDontsPrompt(p models.StyleProfile) string {
	return fmt.Sprintf(`Generate a concise list of 5 Fashion DOs and 5 Fashion DON'Ts specifically for:
Body Type: %s
Skin Tone: %s
Gender: %s

Format as clear markdown bullet points.
Focus on cuts, colors, and styling tricks.`, p.BodyType, p.SkinTone, p.Gender)
}

func trendsAdvicePrompt(p models.StyleProfile) string {
	return fmt.Sprintf(`What are the top 3 current fashion trends suitable for:
Gender: %s

Briefly explain each and why it works.`, p.Gender)
}

func chatSystemPrompt(p models.StyleProfile) string {
	return fmt.Sprintf(`You are StyleSense, an expert personal fashion stylist.
User Profile: %s
Context: The user is asking for real-time style advice. Be helpful, trendy, and concise.`, describeProfile(p))
}

func mixAndMatchPrompt(p models.StyleProfile, occasion string, wardrobe []models.WardrobeItem) string {
	items := make([]string, len(wardrobe))
	for i, it := range wardrobe {
		items[i] = fmt.Sprintf("%s (%s)", it.Item, it.Category)
	}
	return fmt.Sprintf("Act as a personal stylist. User Profile: %s Occasion: %s Available Wardrobe: %s "+
		"Task: Create a complete outfit using ONLY the items from the available wardrobe if possible. "+
		"If a key piece is missing, suggest what to buy to complete the look. "+
		"Explain why this outfit works for the occasion.",
		describeProfile(p), occasion, strings.Join(items, ", "))
}

// Feature keys the vision prompt asks for.
const (
	FeatureSkinTone = "Estimated Skin Tone"
	FeatureBody     = "Body Shape/Type"
	FeatureVibe     = "Facial Features/Vibe"
)

const visionPrompt = `You are a professional fashion stylist and image consultant. Analyze this image deeply.

1. Identify the person's features:
   - Estimated Skin Tone (e.g., Warm, Cool, Olive, Fair, Deep)
   - Body Shape/Type (if visible)
   - Facial Features/Vibe

2. Analyze the context/outfit (if present):
   - Current Style
   - Colors worn
   - Occasion fit

3. PROVIDE STYLING ADVICE:
   - "What to Wear": Suggest 3 specific outfit ideas that would perfectly suit this person's features.
   - "Why it Suits": Explain WHY these colors, cuts, and styles work for their specific skin tone and body type.

4. ADDITIONAL ANALYSIS:
   - "Style Score": Rate the outfit/look on a scale of 0-100 based on coordination, fit, and trendiness.
   - "Mood & Vibe": Describe the mood (e.g., "Confident & Edgy", "Relaxed Boho").
   - "Colors & Patterns": Analyze the color palette and any patterns used.

Format the output as JSON with keys:
"features" (object with keys "Estimated Skin Tone", "Body Shape/Type", "Facial Features/Vibe"),
"outfit_ideas" (list of strings),
"why_it_suits" (string),
"style_score" (integer 0-100),
"mood_analysis" (string),
"color_pattern_analysis" (string).`

// ImagePrompt is the text sent to the image generation endpoint for a studio request.
func ImagePrompt(r StyleRequest) string {
	return fmt.Sprintf("Professional fashion photography of %s, %s, %s, %s",
		r.FullTopic(), r.Mood, r.Weather, strings.Join(r.Vibes, ", "))
}

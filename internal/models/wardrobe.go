package models

// Display order of wardrobe categories. Ties for "most popular" resolve to the earlier category.
var WardrobeCategories = []string{"Top", "Bottom", "Dress", "Outerwear", "Shoes", "Accessory"}

// OtherCategory collects items whose category is not one of WardrobeCategories.
const OtherCategory = "Other"

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type WardrobeAnalytics struct {
	TotalItems  int             `json:"total_items"`
	Counts      []CategoryCount `json:"counts"`
	MostPopular string          `json:"most_popular,omitempty"`
}

type CategoryGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// AnalyzeWardrobe counts items per category. The counts always sum to TotalItems.
func AnalyzeWardrobe(items []WardrobeItem) WardrobeAnalytics {
	counts := make(map[string]int, len(WardrobeCategories)+1)
	for _, it := range items {
		counts[normalizeCategory(it.Category)]++
	}

	a := WardrobeAnalytics{TotalItems: len(items)}
	best := -1
	for _, cat := range WardrobeCategories {
		a.Counts = append(a.Counts, CategoryCount{Category: cat, Count: counts[cat]})
		if counts[cat] > best {
			best = counts[cat]
			a.MostPopular = cat
		}
	}
	if n := counts[OtherCategory]; n > 0 {
		a.Counts = append(a.Counts, CategoryCount{Category: OtherCategory, Count: n})
	}
	if len(items) == 0 {
		a.MostPopular = ""
	}
	return a
}

// GroupWardrobe lists item descriptions per category in display order.
func GroupWardrobe(items []WardrobeItem) []CategoryGroup {
	byCat := make(map[string][]string)
	for _, it := range items {
		cat := normalizeCategory(it.Category)
		byCat[cat] = append(byCat[cat], it.Item)
	}

	groups := make([]CategoryGroup, 0, len(WardrobeCategories)+1)
	for _, cat := range WardrobeCategories {
		groups = append(groups, CategoryGroup{Category: cat, Items: nonNil(byCat[cat])})
	}
	if other := byCat[OtherCategory]; len(other) > 0 {
		groups = append(groups, CategoryGroup{Category: OtherCategory, Items: other})
	}
	return groups
}

func IsWardrobeCategory(category string) bool {
	for _, c := range WardrobeCategories {
		if c == category {
			return true
		}
	}
	return false
}

func normalizeCategory(category string) string {
	if IsWardrobeCategory(category) {
		return category
	}
	return OtherCategory
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

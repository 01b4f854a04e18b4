package recommend

import "strings"

// Filters is what Analyze derives from a chat message. A nil MaxPrice means
// no price bound.
type Filters struct {
	Category string
	Keywords []string
	MaxPrice *int
}

// Empty reports whether no filter at all was derived.
func (f Filters) Empty() bool {
	return f.Category == "" && len(f.Keywords) == 0 && f.MaxPrice == nil
}

type priceRule struct {
	max   int
	words []string
}

// Price rules are checked before categories and the first hit wins.
var priceRules = []priceRule{
	{0, []string{"free", "no cost", "zero price"}},
	{20, []string{"cheap", "affordable", "budget", "under $20", "under 20"}},
	{50, []string{"under $50", "under 50"}},
}

type categoryRule struct {
	category string
	keywords []string
}

// categoryRules is ordered; the first category with any keyword hit wins.
var categoryRules = []categoryRule{
	{"music", []string{"music", "concert", "festival", "band", "dj", "song"}},
	{"tech", []string{"tech", "technology", "coding", "developer", "startup", "ai", "programming", "conference"}},
	{"sports", []string{"sport", "game", "match", "football", "basketball", "soccer", "baseball", "tournament"}},
	{"food", []string{"food", "cooking", "dinner", "restaurant", "cuisine", "taste", "culinary", "chef"}},
	{"art", []string{"art", "painting", "gallery", "exhibition", "artist", "craft"}},
	{"culture", []string{"cultural", "culture", "performance", "theater", "dance", "musical"}},
	{"business", []string{"business", "workshop", "seminar", "training", "career", "networking"}},
}

var locationKeywords = []string{"downtown", "park", "center", "hall", "garden", "beach"}

// Analyze derives search filters from message. Matching is case-insensitive
// substring matching, so "art" also hits "start".
func Analyze(message string) Filters {
	msg := strings.ToLower(message)
	var f Filters

	for _, rule := range priceRules {
		if containsAny(msg, rule.words) {
			bound := rule.max
			f.MaxPrice = &bound
			break
		}
	}

	for _, rule := range categoryRules {
		if containsAny(msg, rule.keywords) {
			f.Category = rule.category
			f.Keywords = append(f.Keywords, rule.keywords[:2]...)
			break
		}
	}

	for _, loc := range locationKeywords {
		if strings.Contains(msg, loc) {
			f.Keywords = append(f.Keywords, loc)
		}
	}
	return f
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

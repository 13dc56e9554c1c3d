package usecase

import (
	"strings"

	"github.com/pantrypal/backend/internal/domain"
)

// Score ranks a valid match of name against entry; higher is better.
// Call it only for entries accepted by IsValidMatch. Scores can be negative.
func Score(name string, entry domain.CatalogEntry) int {
	sanitized, ok := sanitizeEntry(entry)
	if !ok {
		return 0
	}
	terms := newEntryTerms(sanitized)
	return scoreMatch(newIngredientTerms(name), &terms)
}

// scoreMatch combines:
//   - key relation: exact (1000), entry is name plus descriptor (800),
//     entry is a root of a longer name (700)
//   - word-count parity: same (+500), one extra (+300), two or more extra (-200)
//   - whole-word coverage of the significant words (+400 / -100)
//   - tag bonuses for ingredient classifications
//   - a product penalty for short names matched to product entries (-500)
func scoreMatch(ing ingredientTerms, e *entryTerms) int {
	score := 0

	switch {
	case ing.matchesExactly(e.slug) || ing.matchesExactly(e.title):
		score += scoreExact
	case hasWordPrefix(e.slug, ing.normalized) || hasWordPrefix(e.title, ing.normalized):
		score += scoreEntryPrefix
	case hasWordPrefix(ing.normalized, e.slug) || hasWordPrefix(ing.normalized, e.title):
		score += scoreIngredientPrefix
	}

	switch extra := len(e.words) - len(ing.words); {
	case extra == 0:
		score += scoreSameWordCount
	case extra == 1:
		score += scoreOneExtraWord
	case extra >= 2:
		score += penaltyManyExtraWords
	}

	if wordsPresent(ing.significant, e.words) {
		score += scoreCompleteWords
	} else {
		score += penaltyIncompleteWords
	}

	score += tagBonus(ing, e.entry)

	if len(ing.words) <= 2 && hasExtraProductIndicator(ing, e) {
		score += penaltyProduct
	}

	return score
}

// hasWordPrefix reports whether key starts with prefix followed by a word boundary
func hasWordPrefix(key, prefix string) bool {
	if key == "" || prefix == "" {
		return false
	}
	return strings.HasPrefix(key, prefix+"-")
}

func tagBonus(ing ingredientTerms, entry domain.CatalogEntry) int {
	bonus := 0
	for _, tag := range entry.Tags {
		if ingredientTypeTags[tag] {
			bonus += scoreIngredientTypeTag
			break
		}
	}
	if entry.HasTag(ingredientTag) {
		bonus += scoreIngredientTag
	}
	if entry.HasTag(spiceTag) && suggestsSpice(ing.raw) {
		bonus += scoreSpiceHint
	}
	return bonus
}

func suggestsSpice(name string) bool {
	for _, hint := range spiceHints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}

// hasExtraProductIndicator reports whether the entry adds a product word the
// ingredient does not already name ("olive-oil" is not penalized for "olive oil")
func hasExtraProductIndicator(ing ingredientTerms, e *entryTerms) bool {
	for _, extra := range extraWords(ing, e) {
		if productIndicators[extra] {
			return true
		}
	}
	return false
}

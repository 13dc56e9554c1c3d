package usecase

import (
	"strings"

	"github.com/pantrypal/backend/internal/domain"
)

// ingredientTerms is an ingredient name prepared for matching
type ingredientTerms struct {
	raw         string   // lowercased name without its quantity
	normalized  string   // NormalizeForLookup of the name
	forms       []string // normalized, its singular forms and the joined words
	words       []string
	significant []string
}

func newIngredientTerms(name string) ingredientTerms {
	stripped := StripQuantity(name)
	normalized := NormalizeForLookup(stripped)
	words := splitKey(normalized)

	forms := []string{normalized}
	if normalized != "" {
		forms = append(forms, singularForms(normalized)...)
	}
	if len(words) > 1 {
		forms = append(forms, strings.Join(words, ""))
	}

	return ingredientTerms{
		raw:         strings.ToLower(stripped),
		normalized:  normalized,
		forms:       forms,
		words:       words,
		significant: significantWords(words),
	}
}

// matchesExactly reports whether key equals one of the name's forms
func (t ingredientTerms) matchesExactly(key string) bool {
	if key == "" {
		return false
	}
	for _, form := range t.forms {
		if form == key {
			return true
		}
	}
	return false
}

// IsValidMatch decides whether entry is an acceptable icon for the ingredient
// name. It rejects products made from the ingredient, compound-word false
// positives ("pepper" in "peppermint"), over-qualified entries for single-word
// names, and non-food artwork.
func IsValidMatch(name string, entry domain.CatalogEntry) bool {
	sanitized, ok := sanitizeEntry(entry)
	if !ok {
		return false
	}
	terms := newEntryTerms(sanitized)
	return isValidMatch(newIngredientTerms(name), &terms)
}

func isValidMatch(ing ingredientTerms, e *entryTerms) bool {
	if ing.normalized == "" || len(e.words) == 0 {
		return false
	}

	if isProductContaining(ing, e) {
		return false
	}

	if len(ing.words) == 1 && len(e.words) > 2 && !extraWordsAreDescriptors(ing, e) {
		return false
	}

	if violatesCompoundRule(ing, e) {
		return false
	}

	if !significantWordsPresent(ing, e) {
		return false
	}

	if hasDisqualifyingTag(e.entry) && !hasQualifyingTag(e.entry) {
		return false
	}

	return true
}

// IsProductContainingIngredient reports whether entry is a product made from
// the ingredient: its words are a strict superset of the ingredient's words
// and the extra words include a product indicator ("cinnamon" vs "cinnamon-roll").
func IsProductContainingIngredient(name string, entry domain.CatalogEntry) bool {
	terms := newEntryTerms(entry)
	return isProductContaining(newIngredientTerms(name), &terms)
}

func isProductContaining(ing ingredientTerms, e *entryTerms) bool {
	if len(ing.words) == 0 {
		return false
	}
	for _, w := range ing.words {
		if !containsWord(e.words, w) {
			return false
		}
	}
	for _, extra := range extraWords(ing, e) {
		if productIndicators[extra] {
			return true
		}
	}
	return false
}

// extraWords returns the entry words that are not part of the ingredient name
func extraWords(ing ingredientTerms, e *entryTerms) []string {
	var extras []string
	for _, w := range e.words {
		if !containsWord(ing.words, w) {
			extras = append(extras, w)
		}
	}
	return extras
}

func extraWordsAreDescriptors(ing ingredientTerms, e *entryTerms) bool {
	for _, extra := range extraWords(ing, e) {
		if !legitimateDescriptors[extra] {
			return false
		}
	}
	return true
}

// violatesCompoundRule reports whether one side holds a compound word
// ("gingerbread", "pineapple") that the other side lacks
func violatesCompoundRule(ing ingredientTerms, e *entryTerms) bool {
	for _, rule := range compoundRules {
		if waived(rule, ing.words) {
			continue
		}
		if unmatchedCompound(rule, e.words, ing.words) || unmatchedCompound(rule, ing.words, e.words) {
			return true
		}
	}
	return false
}

func waived(rule compoundRule, words []string) bool {
	for _, w := range words {
		if rule.exceptions[w] {
			return true
		}
	}
	return false
}

// unmatchedCompound reports whether words contain a compound of rule.part
// that is absent from other
func unmatchedCompound(rule compoundRule, words, other []string) bool {
	for _, w := range words {
		if isCompoundOf(rule, w) && !containsWord(other, w) {
			return true
		}
	}
	return false
}

func isCompoundOf(rule compoundRule, word string) bool {
	candidates := append([]string{word}, singularForms(word)...)
	for _, c := range candidates {
		if len(c) < len(rule.part)+minCompoundStem {
			continue
		}
		if rule.prefix && strings.HasPrefix(c, rule.part) {
			return true
		}
		if !rule.prefix && strings.HasSuffix(c, rule.part) {
			return true
		}
	}
	return false
}

// significantWordsPresent requires every significant ingredient word to appear
// in the entry as a whole word, or the words written together to be one entry
// word ("corn starch" and "cornstarch"). Names of three or more significant
// words only need each word contained somewhere in the entry text, in any order.
func significantWordsPresent(ing ingredientTerms, e *entryTerms) bool {
	if len(ing.significant) >= 3 {
		for _, w := range ing.significant {
			if !containedInText(e.text, w) {
				return false
			}
		}
		return true
	}
	return wordsPresent(ing.significant, e.words)
}

// wordsPresent reports whether words all appear as whole entry words or,
// joined without separators, form a single entry word
func wordsPresent(words, entryWords []string) bool {
	if allWordsBounded(words, entryWords) {
		return true
	}
	return len(words) > 1 && containsWord(entryWords, strings.Join(words, ""))
}

func allWordsBounded(words, entryWords []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !containsWord(entryWords, w) {
			return false
		}
	}
	return true
}

func containedInText(text, word string) bool {
	if strings.Contains(text, word) {
		return true
	}
	for _, form := range singularForms(word) {
		if strings.Contains(text, form) {
			return true
		}
	}
	return false
}

package usecase

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var (
	apostropheRegex         = regexp.MustCompile(`['’‘` + "`" + `]`)
	nonAlphanumericRunRegex = regexp.MustCompile(`[^a-z0-9]+`)
)

// foldChainPool holds diacritic-stripping transformer chains. A chain keeps
// state between calls, so each caller borrows its own.
var foldChainPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	},
}

// foldDiacritics maps accented letters onto their ASCII base (jalapeño -> jalapeno)
func foldDiacritics(s string) string {
	t := foldChainPool.Get().(transform.Transformer)
	defer foldChainPool.Put(t)

	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// NormalizeForLookup converts a raw ingredient name, catalog title or slug into
// a canonical hyphenated key: lowercased, diacritics folded, stop words dropped,
// non-alphanumeric runs collapsed to a single hyphen.
//
//	"Fresh Chopped Cilantro" -> "cilantro"
//	"Black Pepper"           -> "black-pepper"
//	"the and of"             -> ""
func NormalizeForLookup(raw string) string {
	s := strings.ToLower(foldDiacritics(raw))
	s = apostropheRegex.ReplaceAllString(s, "")
	s = nonAlphanumericRunRegex.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if lookupStopWords[word] {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, "-")
}

// GenerateLookupKeys returns the candidate index keys for an ingredient name,
// most specific first: the base key, the base without a descriptor suffix,
// naive singular forms, and the hyphen-free concatenation. Empty input or an
// all-stop-word name yields no keys.
func GenerateLookupKeys(name string) []string {
	base := NormalizeForLookup(StripQuantity(name))
	return lookupKeysFor(base)
}

// lookupKeysFor derives the key variants from an already normalized base
func lookupKeysFor(base string) []string {
	if base == "" {
		return nil
	}

	candidates := make([]string, 0, 6)
	candidates = append(candidates, base, stripDescriptorSuffix(base))
	candidates = append(candidates, singularForms(base)...)
	candidates = append(candidates, strings.ReplaceAll(base, "-", ""))

	keys := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, key := range candidates {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

// stripDescriptorSuffix removes the first trailing descriptor suffix ("-leaves",
// "-powder", ...) from a normalized key. Returns "" when none applies.
func stripDescriptorSuffix(key string) string {
	for _, suffix := range descriptorSuffixes {
		if strings.HasSuffix(key, suffix) && len(key) > len(suffix) {
			return strings.TrimSuffix(key, suffix)
		}
	}
	return ""
}

// singularForms returns naive singular candidates for a word or key.
// "tomatoes" yields "tomato" and "tomatoe"; "berries" also yields "berry".
func singularForms(word string) []string {
	var forms []string
	if len(word) > 3 && strings.HasSuffix(word, "es") {
		forms = append(forms, word[:len(word)-2])
	}
	if len(word) > 2 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		forms = append(forms, word[:len(word)-1])
	}
	if len(word) > 4 && strings.HasSuffix(word, "ies") {
		forms = append(forms, word[:len(word)-3]+"y")
	}
	return forms
}

// sameWord reports whether two lookup words name the same thing, tolerating
// a naive plural on either side
func sameWord(a, b string) bool {
	if a == b {
		return true
	}
	for _, form := range singularForms(a) {
		if form == b {
			return true
		}
	}
	for _, form := range singularForms(b) {
		if form == a {
			return true
		}
	}
	return false
}

// containsWord reports whether word is present in words as a whole word
func containsWord(words []string, word string) bool {
	for _, w := range words {
		if sameWord(w, word) {
			return true
		}
	}
	return false
}

// splitKey splits a normalized key into its words
func splitKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, "-")
}

// significantWords drops descriptor words ("root", "leaves", "powder"...) that
// do not change what an ingredient is. If nothing else remains, the input is
// returned unchanged.
func significantWords(words []string) []string {
	significant := make([]string, 0, len(words))
	for _, w := range words {
		if !descriptorWords[w] {
			significant = append(significant, w)
		}
	}
	if len(significant) == 0 {
		return words
	}
	return significant
}

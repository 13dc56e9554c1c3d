package usecase

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/pantrypal/backend/internal/domain"
)

// entryTerms is a catalog entry with its lookup text precomputed at index time
type entryTerms struct {
	entry domain.CatalogEntry
	title string   // normalized title
	slug  string   // normalized slug
	words []string // distinct words of title and slug, title first
	text  string   // title and slug joined, for containment checks
}

func newEntryTerms(entry domain.CatalogEntry) entryTerms {
	title := NormalizeForLookup(entry.Title)
	slug := NormalizeForLookup(entry.Slug)

	words := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, w := range append(splitKey(title), splitKey(slug)...) {
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}

	return entryTerms{
		entry: entry,
		title: title,
		slug:  slug,
		words: words,
		text:  title + " " + slug,
	}
}

// CatalogIndex is the immutable, read-only lookup structure over the food
// entries of the icon catalog. Build it once with BuildCatalogIndex and share
// it freely between goroutines.
type CatalogIndex struct {
	terms       []entryTerms
	bySlug      map[string]int
	byTitle     map[string]int
	byTag       map[string][]int
	fingerprint string
}

// BuildCatalogIndex filters the catalog to food entries usable as ingredient
// icons and builds the slug, title and tag indexes. Entries missing a title,
// slug or asset are skipped; on key collisions the later entry wins.
func BuildCatalogIndex(entries []domain.CatalogEntry) *CatalogIndex {
	idx := &CatalogIndex{
		terms:   make([]entryTerms, 0, len(entries)),
		bySlug:  make(map[string]int, len(entries)),
		byTitle: make(map[string]int, len(entries)),
		byTag:   make(map[string][]int),
	}
	digest := xxhash.New()

	for _, raw := range entries {
		entry, ok := sanitizeEntry(raw)
		if !ok || !isIngredientEligible(entry) {
			continue
		}

		terms := newEntryTerms(entry)
		if terms.title == "" && terms.slug == "" {
			continue
		}

		pos := len(idx.terms)
		idx.terms = append(idx.terms, terms)

		if terms.slug != "" {
			idx.bySlug[terms.slug] = pos
		}
		if terms.title != "" {
			idx.byTitle[terms.title] = pos
		}
		for _, tag := range entry.Tags {
			idx.byTag[tag] = append(idx.byTag[tag], pos)
		}

		_, _ = digest.WriteString(entry.Slug + "\x1f" + entry.Title + "\x1f" + entry.AssetFile + "\x1f" + strings.Join(entry.Tags, ",") + "\x1e")
	}

	idx.fingerprint = strconv.FormatUint(digest.Sum64(), 36)
	return idx
}

// sanitizeEntry trims the entry fields and lowercases its tags. The returned
// entry owns its tag slice.
func sanitizeEntry(raw domain.CatalogEntry) (domain.CatalogEntry, bool) {
	entry := domain.CatalogEntry{
		Title:     strings.TrimSpace(raw.Title),
		Slug:      strings.TrimSpace(raw.Slug),
		AssetFile: strings.TrimSpace(raw.AssetFile),
		Category:  strings.ToLower(strings.TrimSpace(raw.Category)),
	}
	if entry.Title == "" || entry.Slug == "" || entry.AssetFile == "" {
		return domain.CatalogEntry{}, false
	}

	if len(raw.Tags) > 0 {
		entry.Tags = make([]string, 0, len(raw.Tags))
		seen := make(map[string]bool, len(raw.Tags))
		for _, tag := range raw.Tags {
			if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" && !seen[tag] {
				seen[tag] = true
				entry.Tags = append(entry.Tags, tag)
			}
		}
	}

	return entry, true
}

// isIngredientEligible keeps food entries and drops appliances, tools and
// decorations unless they are also tagged as an ingredient type
func isIngredientEligible(entry domain.CatalogEntry) bool {
	if entry.Category != domain.FoodCategory {
		return false
	}
	return !hasDisqualifyingTag(entry) || hasQualifyingTag(entry)
}

func hasDisqualifyingTag(entry domain.CatalogEntry) bool {
	for _, tag := range entry.Tags {
		if disqualifyingTags[tag] {
			return true
		}
	}
	return false
}

func hasQualifyingTag(entry domain.CatalogEntry) bool {
	for _, tag := range entry.Tags {
		if tag == ingredientTag || ingredientTypeTags[tag] {
			return true
		}
	}
	return false
}

// Len returns the number of indexed entries
func (idx *CatalogIndex) Len() int {
	return len(idx.terms)
}

// Fingerprint identifies the indexed content. Indexes built from the same
// entries in the same order share a fingerprint.
func (idx *CatalogIndex) Fingerprint() string {
	return idx.fingerprint
}

// Entries returns the indexed entries in catalog order
func (idx *CatalogIndex) Entries() []domain.CatalogEntry {
	entries := make([]domain.CatalogEntry, len(idx.terms))
	for i, t := range idx.terms {
		entries[i] = t.entry
	}
	return entries
}

// BySlug looks up an entry by normalized slug key
func (idx *CatalogIndex) BySlug(key string) (domain.CatalogEntry, bool) {
	pos, ok := idx.bySlug[key]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return idx.terms[pos].entry, true
}

// ByTitle looks up an entry by normalized title key
func (idx *CatalogIndex) ByTitle(key string) (domain.CatalogEntry, bool) {
	pos, ok := idx.byTitle[key]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return idx.terms[pos].entry, true
}

// EntriesWithTag returns the entries carrying tag, in catalog order
func (idx *CatalogIndex) EntriesWithTag(tag string) []domain.CatalogEntry {
	positions := idx.byTag[strings.ToLower(strings.TrimSpace(tag))]
	entries := make([]domain.CatalogEntry, 0, len(positions))
	for _, pos := range positions {
		entries = append(entries, idx.terms[pos].entry)
	}
	return entries
}

// lookupKey returns the precomputed terms of the slug hit for key, then the title hit
func (idx *CatalogIndex) lookupKey(key string) []*entryTerms {
	var hits []*entryTerms
	if pos, ok := idx.bySlug[key]; ok {
		hits = append(hits, &idx.terms[pos])
	}
	if pos, ok := idx.byTitle[key]; ok {
		hits = append(hits, &idx.terms[pos])
	}
	return hits
}

package usecase

import (
	"strings"

	"github.com/pantrypal/backend/internal/domain"
)

// storagePhrases override the keyword rules for multi-word names whose
// location differs from their head word ("peanut butter" is not kept cold).
// Longer phrases are listed first.
var storagePhrases = []struct {
	phrase   string
	location domain.StorageLocation
}{
	{"ice-cream", domain.StorageFreezer},
	{"peanut-butter", domain.StoragePantry},
	{"almond-butter", domain.StoragePantry},
	{"coconut-milk", domain.StoragePantry},
	{"evaporated-milk", domain.StoragePantry},
	{"condensed-milk", domain.StoragePantry},
	{"butternut-squash", domain.StorageCounter},
	{"red-pepper-flakes", domain.StorageSpiceRack},
	{"bell-pepper", domain.StorageFridge},
	{"jalapeno", domain.StorageFridge},
	{"black-pepper", domain.StorageSpiceRack},
	{"soy-sauce", domain.StoragePantry},
	{"fish-sauce", domain.StoragePantry},
	{"sour-cream", domain.StorageFridge},
	{"chicken-stock", domain.StoragePantry},
	{"chicken-broth", domain.StoragePantry},
}

// storageRules are checked in order; the first rule with a keyword present
// as a whole word decides
var storageRules = []struct {
	location domain.StorageLocation
	keywords []string
}{
	{domain.StorageFreezer, []string{"frozen", "popsicle", "sorbet", "gelato"}},
	{domain.StorageSpiceRack, []string{
		"cinnamon", "paprika", "cumin", "turmeric", "nutmeg", "oregano",
		"thyme", "peppercorn", "pepper", "cardamom", "coriander", "chili", "cayenne",
		"saffron", "allspice", "salt", "vanilla", "bay",
	}},
	{domain.StorageFridge, []string{
		"milk", "butter", "cheese", "yogurt", "cream", "egg", "tofu", "chicken",
		"beef", "pork", "lamb", "turkey", "bacon", "ham", "sausage", "fish", "salmon",
		"tuna", "shrimp", "prawn", "crab", "lettuce", "spinach", "kale", "carrot",
		"celery", "broccoli", "cauliflower", "cucumber", "zucchini", "mushroom",
		"berry", "strawberry", "blueberry", "raspberry", "grape", "cilantro",
		"parsley", "basil", "mint", "ginger", "lemon", "lime",
	}},
	{domain.StorageCounter, []string{
		"banana", "tomato", "avocado", "potato", "onion", "garlic", "shallot",
		"apple", "orange", "peach", "pear", "mango", "pineapple", "melon",
		"watermelon", "squash", "pumpkin", "bread", "bagel",
	}},
}

// CategorizeStorage suggests where an ingredient is stored. The quantity is
// stripped first so "2 lbs chicken" and "chicken" agree. Unknown items go
// to the pantry.
func CategorizeStorage(name string) domain.StorageLocation {
	normalized := NormalizeForLookup(StripQuantity(name))
	if normalized == "" {
		return domain.StoragePantry
	}

	bounded := "-" + normalized + "-"
	for _, p := range storagePhrases {
		if strings.Contains(bounded, "-"+p.phrase+"-") {
			return p.location
		}
	}

	words := splitKey(normalized)
	for _, rule := range storageRules {
		for _, keyword := range rule.keywords {
			if containsWord(words, keyword) {
				return rule.location
			}
		}
	}

	return domain.StoragePantry
}

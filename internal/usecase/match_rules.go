package usecase

// Heuristic rule tables for lookup-key generation, match validation and scoring.
// They are tuned against the bundled catalog and are expected to grow with it.

// lookupStopWords are dropped from names before building lookup keys:
// articles, prepositions and preparation descriptors
var lookupStopWords = map[string]bool{
	// Articles, conjunctions, prepositions
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "with": true,
	"into": true, "from": true, "by": true, "about": true, "plus": true,
	// Preparation
	"fresh": true, "freshly": true, "chopped": true, "diced": true, "minced": true,
	"sliced": true, "grated": true, "shredded": true, "crushed": true, "ground": true,
	"peeled": true, "cubed": true, "julienned": true, "halved": true, "quartered": true,
	"softened": true, "melted": true, "beaten": true, "sifted": true, "packed": true,
	"rinsed": true, "drained": true, "trimmed": true, "cooked": true, "raw": true,
	"boneless": true, "skinless": true, "deveined": true, "pitted": true, "seeded": true,
	"finely": true, "roughly": true, "thinly": true, "coarsely": true, "lightly": true,
	// Size and sourcing
	"large": true, "medium": true, "small": true, "extra": true, "organic": true,
	"optional": true, "divided": true, "taste": true, "needed": true, "room": true,
	"temperature": true,
}

// descriptorSuffixes are trailing key parts that qualify rather than identify
// an ingredient. Used both to strip input keys and to extend them when the
// catalog stores the qualified form ("ginger" -> "ginger-root").
var descriptorSuffixes = []string{
	"-leaves", "-leaf", "-pieces", "-powder", "-flakes", "-seeds",
	"-fresh", "-dried", "-whole", "-root",
}

// descriptorWords are the words of descriptorSuffixes; they do not count as
// significant words of an ingredient name
var descriptorWords = map[string]bool{
	"leaves": true, "leaf": true, "pieces": true, "powder": true, "flakes": true,
	"seeds": true, "seed": true, "fresh": true, "dried": true, "whole": true, "root": true,
}

// legitimateDescriptors may accompany a single-word ingredient in a catalog
// entry without turning it into a different product ("pepper" -> "black-pepper")
var legitimateDescriptors = map[string]bool{
	"black": true, "white": true, "green": true, "red": true, "yellow": true,
	"root": true, "leaves": true, "leaf": true, "seed": true, "seeds": true,
	"powder": true, "fresh": true, "dried": true,
}

// productIndicators mark entries that are products made from an ingredient
// rather than the ingredient itself ("cinnamon-roll", "pepper-spray")
var productIndicators = map[string]bool{
	"roll": true, "rolls": true, "bun": true, "cake": true, "cakes": true,
	"bread": true, "pie": true, "tart": true, "muffin": true, "cookie": true,
	"cookies": true, "soup": true, "stew": true, "sauce": true, "oil": true,
	"extract": true, "spray": true, "can": true, "bottle": true, "jar": true,
	"powder": true, "juice": true, "tea": true, "coffee": true, "latte": true,
	"soda": true, "smoothie": true, "candy": true, "chips": true, "syrup": true,
	"jam": true, "jelly": true, "bar": true, "pizza": true, "sandwich": true,
	"burger": true, "cereal": true, "crackers": true,
}

// compoundRule catches compound words that whole-word and substring matching
// alone would confuse: a token that ends with (or starts with) part but is a
// different thing, e.g. "gingerbread" vs "ginger" or "pineapple" vs "apple".
// The rule is waived when the ingredient itself contains one of exceptions.
type compoundRule struct {
	part       string
	prefix     bool
	exceptions map[string]bool
}

// minCompoundStem is how many letters a compound must add to part, so plurals
// ("rolls", "eggs") are not treated as compounds
const minCompoundStem = 3

var compoundRules = []compoundRule{
	{part: "bread", exceptions: wordSet("bread", "breadcrumbs", "crumbs")},
	{part: "cake", exceptions: wordSet("cake", "pancake", "cupcake")},
	{part: "soup", exceptions: wordSet("soup", "broth", "stock")},
	{part: "mint", exceptions: wordSet("mint", "peppermint", "spearmint")},
	{part: "roll", exceptions: wordSet("roll")},
	{part: "pizza", exceptions: wordSet("pizza")},
	{part: "cheese", exceptions: wordSet("cheese")},
	{part: "spray", exceptions: wordSet()},
	{part: "corn", exceptions: wordSet("corn", "cornmeal", "cornstarch")},
	{part: "milk", exceptions: wordSet("milk")},
	{part: "pine", prefix: true, exceptions: wordSet("pine", "pinenut", "pinenuts")},
	{part: "butter", prefix: true, exceptions: wordSet("butter")},
	{part: "egg", prefix: true, exceptions: wordSet("egg", "eggs")},
}

// Tag vocabularies. Tags are compared lowercased.
var (
	// disqualifyingTags mark non-food artwork that must never be an ingredient icon
	disqualifyingTags = wordSet(
		"appliance", "appliances", "tool", "tools", "utensil", "utensils",
		"cookware", "kitchenware", "equipment", "device", "decoration",
		"decorations", "decor", "furniture",
	)

	// ingredientTypeTags are generic ingredient classifications
	ingredientTypeTags = wordSet(
		"vegetable", "vegetables", "fruit", "fruits", "herb", "herbs", "spice",
		"spices", "meat", "poultry", "seafood", "fish", "dairy", "grain", "grains",
		"legume", "legumes", "nut", "nuts", "seed", "seeds", "condiment",
		"baking", "produce", "mushroom",
	)
)

const (
	ingredientTag = "ingredient"
	spiceTag      = "spice"
)

// spiceHints are name fragments that suggest the user means the spice
var spiceHints = []string{"pepper", "cinnamon"}

// Scoring weights. Ordering matters more than magnitude: exact > descriptor
// prefix > root prefix, and product icons are pushed below plain ingredients.
const (
	scoreExact             = 1000
	scoreEntryPrefix       = 800
	scoreIngredientPrefix  = 700
	scoreSameWordCount     = 500
	scoreOneExtraWord      = 300
	penaltyManyExtraWords  = -200
	scoreCompleteWords     = 400
	penaltyIncompleteWords = -100
	scoreIngredientTypeTag = 50
	scoreIngredientTag     = 30
	scoreSpiceHint         = 20
	penaltyProduct         = -500
)

// DefaultMinScanScore is the minimum full-scan score accepted for names of
// one or two significant words
const DefaultMinScanScore = 200

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

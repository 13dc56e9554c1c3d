package usecase

import (
	"regexp"
	"strings"

	"github.com/pantrypal/backend/internal/domain"
)

// DefaultQuantityText is shown when an item has no usable quantity
const DefaultQuantityText = "As needed"

// unitPattern lists the recognised unit words, longer spellings first so the
// alternation never stops at a shorter prefix
const unitPattern = `(?:` +
	`tablespoons?|tbsps?|tbs|tbl|teaspoons?|tsps?|` +
	`cups?|c|fl\.?\s*oz|fluid\s+ounces?|ounces?|oz|pounds?|lbs?|` +
	`kilograms?|kg|grams?|g|milliliters?|millilitres?|ml|liters?|litres?|l|` +
	`quarts?|qt|pints?|pt|gallons?|gal|` +
	`pieces?|pcs|cans?|jars?|boxes|box|bags?|containers?|packages?|pkgs?|packets?|` +
	`cloves?|slices?|sticks?|bunch(?:es)?|heads?|sprigs?|pinch(?:es)?|dash(?:es)?|handfuls?` +
	`)`

// rangeSeparator joins the two ends of a range: "2-3", "2–3", "2 to 3"
const rangeSeparator = `(?:\s*[-–]\s*|\s+to\s+)`

// Quantity pattern classes, tried in order. Each captures the quantity text
// in group 1 and the remainder in group 2.
var quantityPatterns = []*regexp.Regexp{
	// fraction, mixed number, decimal or unicode fraction followed by a unit: "1 1/2 cups", "0.5 kg", "½ tsp"
	regexp.MustCompile(`(?i)^\s*((?:\d+\s+\d+/\d+|\d+/\d+|\d*\.\d+|\d+\s*[½⅓⅔¼¾⅛]|[½⅓⅔¼¾⅛])\s*` + unitPattern + `\.?)(?:\s+|$)(.*)$`),
	// integer or integer range followed by a unit: "2 cups", "500g", "2-3 cans"
	regexp.MustCompile(`(?i)^\s*(\d+(?:` + rangeSeparator + `\d+)?\s*` + unitPattern + `\.?)(?:\s+|$)(.*)$`),
	// bare leading number or range: "3 eggs", "1/2 onion", "2-3 eggs"
	regexp.MustCompile(`(?i)^\s*((?:\d+\s+\d+/\d+|\d+/\d+|\d*\.\d+|\d+` + rangeSeparator + `\d+|\d+|[½⅓⅔¼¾⅛]))\s+(.*)$`),
}

var leadingOfRegex = regexp.MustCompile(`(?i)^of\s+`)

// ExtractQuantity splits a leading quantity expression off name.
// It returns false when no pattern matches or when nothing would remain
// after the quantity, so a name that is only a number or a measure
// ("2 cups") is left alone.
//
//	ExtractQuantity("2 cups flour") -> {Magnitude: "2 cups", Remainder: "flour"}, true
//	ExtractQuantity("flour")        -> {}, false
func ExtractQuantity(name string) (domain.QuantityToken, bool) {
	for _, pattern := range quantityPatterns {
		m := pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}

		remainder := strings.TrimSpace(leadingOfRegex.ReplaceAllString(strings.TrimSpace(m[2]), ""))
		if remainder == "" {
			return domain.QuantityToken{}, false
		}

		return domain.QuantityToken{
			Magnitude: strings.TrimSpace(m[1]),
			Remainder: remainder,
		}, true
	}

	return domain.QuantityToken{}, false
}

// DefaultQuantity picks the quantity to display for an item: the existing
// value when set, otherwise the quantity parsed from the name, otherwise
// DefaultQuantityText. It never returns an empty string.
func DefaultQuantity(name, existing string) string {
	if trimmed := strings.TrimSpace(existing); trimmed != "" {
		return trimmed
	}
	if token, ok := ExtractQuantity(name); ok {
		return token.Magnitude
	}
	return DefaultQuantityText
}

// StripQuantity returns name without its leading quantity expression, or name
// unchanged when there is none
func StripQuantity(name string) string {
	if token, ok := ExtractQuantity(name); ok {
		return token.Remainder
	}
	return name
}

package usecase

import (
	"testing"
)

func TestScore_Ordering(t *testing.T) {
	exact := Score("ginger", food("Ginger", "ginger"))
	descriptor := Score("ginger", food("Ginger Root", "ginger-root"))
	product := Score("ginger", food("Ginger Bread", "ginger-bread"))
	root := Score("ginger paste", food("Ginger", "ginger"))

	if !(exact > descriptor) {
		t.Errorf("exact (%d) should outrank descriptor prefix (%d)", exact, descriptor)
	}
	if !(descriptor > product) {
		t.Errorf("descriptor prefix (%d) should outrank product (%d)", descriptor, product)
	}
	if root <= 0 {
		t.Errorf("root prefix of a longer name should score positive, got %d", root)
	}
	if !(descriptor > root) {
		t.Errorf("descriptor prefix (%d) should outrank root prefix (%d)", descriptor, root)
	}
}

func TestScore_ExactBeatsDescriptorForPepper(t *testing.T) {
	plain := Score("pepper", food("Pepper", "pepper", "spice"))
	black := Score("pepper", food("Black Pepper", "black-pepper", "spice"))

	if plain <= black {
		t.Errorf("Score(pepper, Pepper) = %d should exceed Score(pepper, Black Pepper) = %d", plain, black)
	}
}

func TestScore_Components(t *testing.T) {
	testCases := []struct {
		name       string
		ingredient string
		title      string
		slug       string
		tags       []string
		want       int
	}{
		{
			name:       "exact with same word count",
			ingredient: "ginger",
			title:      "Ginger",
			slug:       "ginger",
			want:       scoreExact + scoreSameWordCount + scoreCompleteWords,
		},
		{
			name:       "descriptor prefix with one extra word",
			ingredient: "ginger",
			title:      "Ginger Root",
			slug:       "ginger-root",
			want:       scoreEntryPrefix + scoreOneExtraWord + scoreCompleteWords,
		},
		{
			name:       "product penalty for short names",
			ingredient: "ginger",
			title:      "Ginger Bread",
			slug:       "ginger-bread",
			want:       scoreEntryPrefix + scoreOneExtraWord + scoreCompleteWords + penaltyProduct,
		},
		{
			name:       "root of a longer name misses a word",
			ingredient: "ginger paste",
			title:      "Ginger",
			slug:       "ginger",
			want:       scoreIngredientPrefix + penaltyIncompleteWords,
		},
		{
			name:       "spice hint only for spicy names",
			ingredient: "ginger",
			title:      "Ginger",
			slug:       "ginger",
			tags:       []string{"spice", "ingredient"},
			want:       scoreExact + scoreSameWordCount + scoreCompleteWords + scoreIngredientTypeTag + scoreIngredientTag,
		},
		{
			name:       "descriptor entry with all tag bonuses",
			ingredient: "pepper",
			title:      "Black Pepper",
			slug:       "black-pepper",
			tags:       []string{"spice", "ingredient"},
			want:       scoreOneExtraWord + scoreCompleteWords + scoreIngredientTypeTag + scoreIngredientTag + scoreSpiceHint,
		},
		{
			name:       "joined words count as complete",
			ingredient: "corn starch",
			title:      "Cornstarch",
			slug:       "cornstarch",
			want:       scoreExact + scoreCompleteWords,
		},
		{
			name:       "many extra words are penalized",
			ingredient: "basil",
			title:      "Basil Tomato Pizza Sauce",
			slug:       "basil-tomato-pizza-sauce",
			want:       scoreEntryPrefix + penaltyManyExtraWords + scoreCompleteWords + penaltyProduct,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.ingredient, food(tc.title, tc.slug, tc.tags...))
			if got != tc.want {
				t.Errorf("Score(%q, %s) = %d, want %d", tc.ingredient, tc.slug, got, tc.want)
			}
		})
	}
}

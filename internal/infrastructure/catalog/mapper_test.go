package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypal/backend/internal/domain"
)

func TestMapper_Parse(t *testing.T) {
	mapper := NewMapper()

	tests := []struct {
		name        string
		input       string
		wantSlugs   []string
		wantSkipped int
	}{
		{
			name: "wrapped document",
			input: `{"version":"2024.1","entries":[
				{"title":"Ginger","slug":"ginger","assetFile":"ginger.svg","category":"Food","tags":["vegetable"]},
				{"title":"Toaster","slug":"toaster","assetFile":"toaster.svg","category":"kitchen"}
			]}`,
			wantSlugs: []string{"ginger", "toaster"},
		},
		{
			name:      "bare array",
			input:     `[{"title":"Basil","slug":"basil","assetFile":"basil.svg","category":"food"}]`,
			wantSlugs: []string{"basil"},
		},
		{
			name: "rows missing required fields are skipped",
			input: `[
				{"title":"Basil","slug":"basil","assetFile":"basil.svg"},
				{"title":"","slug":"empty-title","assetFile":"x.svg"},
				{"title":"No Asset","slug":"no-asset","assetFile":"   "},
				{"title":"No Slug","assetFile":"y.svg"}
			]`,
			wantSlugs:   []string{"basil"},
			wantSkipped: 3,
		},
		{
			name:        "oversized title is skipped",
			input:       `[{"title":"` + strings.Repeat("a", 201) + `","slug":"long","assetFile":"long.svg"}]`,
			wantSlugs:   []string{},
			wantSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := mapper.Parse([]byte(tt.input))
			require.NoError(t, err)

			slugs := make([]string, 0, len(result.Entries))
			for _, e := range result.Entries {
				slugs = append(slugs, e.Slug)
			}
			assert.Equal(t, tt.wantSlugs, slugs)
			assert.Equal(t, tt.wantSkipped, result.Skipped)
		})
	}
}

func TestMapper_Parse_Invalid(t *testing.T) {
	mapper := NewMapper()

	for _, input := range []string{"", "   ", "{not json", `[{"title": 3}]`} {
		_, err := mapper.Parse([]byte(input))
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable, "input %q", input)
	}
}

func TestMapToEntry(t *testing.T) {
	entry := MapToEntry(catalogRow{
		Title:     "Black Pepper",
		Slug:      "black-pepper",
		AssetFile: "black-pepper.svg",
		Category:  " FOOD ",
		Tags:      []string{"spice"},
	})

	assert.Equal(t, domain.CatalogEntry{
		Title:     "Black Pepper",
		Slug:      "black-pepper",
		AssetFile: "black-pepper.svg",
		Category:  "food",
		Tags:      []string{"spice"},
	}, entry)
}

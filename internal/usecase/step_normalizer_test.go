package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripMarketing(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "purely promotional step",
			input: "Sign up to receive our free recipe ebook!",
			want:  "",
		},
		{
			name:  "promotional sentence after an instruction",
			input: "Whisk the eggs. Follow us on Instagram for more!",
			want:  "Whisk the eggs.",
		},
		{
			name:  "newsletter pitch",
			input: "Join our newsletter for weekly recipes.",
			want:  "",
		},
		{
			name:  "ordinary instruction untouched",
			input: "Preheat the oven to 350F.",
			want:  "Preheat the oven to 350F.",
		},
		{
			name:  "case insensitive",
			input: "CLICK HERE for the printable card. Bake for 20 minutes.",
			want:  "Bake for 20 minutes.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripMarketing(tc.input); got != tc.want {
				t.Errorf("StripMarketing(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCleanFormatting(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "step prefix and trailing dots",
			input: "Step 2:  Whisk the eggs ...",
			want:  "Whisk the eggs.",
		},
		{
			name:  "numbered prefix and trailing comma",
			input: "3. Add the flour,",
			want:  "Add the flour",
		},
		{
			name:  "leading parenthetical",
			input: "(Optional) Garnish with parsley!!",
			want:  "Garnish with parsley!",
		},
		{
			name:  "decimal is not a step number",
			input: "1.5 liters of water go into the pot.",
			want:  "1.5 liters of water go into the pot.",
		},
		{
			name:  "collapses inner whitespace",
			input: "Stir   the\tsauce\n gently",
			want:  "Stir the sauce gently",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanFormatting(tc.input); got != tc.want {
				t.Errorf("CleanFormatting(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeLength(t *testing.T) {
	t.Run("short step unchanged", func(t *testing.T) {
		step := "Bake for 20 minutes."
		assert.Equal(t, step, NormalizeLength(step, DefaultStepMinLength, DefaultStepMaxLength))
	})

	t.Run("keeps whole sentences when long enough", func(t *testing.T) {
		s1 := strings.Repeat("a", 99) + "."
		s2 := strings.Repeat("b", 59) + "."
		s3 := strings.Repeat("c", 49) + "."
		step := s1 + " " + s2 + " " + s3

		assert.Equal(t, s1+" "+s2, NormalizeLength(step, DefaultStepMinLength, DefaultStepMaxLength))
	})

	t.Run("cuts at a word boundary", func(t *testing.T) {
		step := strings.TrimSpace(strings.Repeat("word ", 50))

		got := NormalizeLength(step, DefaultStepMinLength, DefaultStepMaxLength)
		assert.Equal(t, strings.Repeat("word ", 35)+"word"+ellipsis, got)
		assert.Equal(t, DefaultStepMaxLength, utf8.RuneCountInString(got))
	})

	t.Run("hard cut without spaces", func(t *testing.T) {
		got := NormalizeLength(strings.Repeat("x", 300), DefaultStepMinLength, DefaultStepMaxLength)
		assert.Equal(t, strings.Repeat("x", DefaultStepMaxLength-1)+ellipsis, got)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		step := strings.Repeat("é", 150)
		assert.Equal(t, step, NormalizeLength(step, DefaultStepMinLength, DefaultStepMaxLength))
	})
}

func TestNewStepNormalizer(t *testing.T) {
	t.Run("invalid bounds fall back to defaults", func(t *testing.T) {
		n := NewStepNormalizer(StepConfig{MinLength: 200, MaxLength: 100}, nil)
		assert.Equal(t, DefaultStepMaxLength, n.MaxLength())
	})

	t.Run("custom bounds", func(t *testing.T) {
		n := NewStepNormalizer(StepConfig{MinLength: 40, MaxLength: 60}, nil)
		assert.Equal(t, 60, n.MaxLength())
	})
}

func TestNormalizeSteps(t *testing.T) {
	n := NewStepNormalizer(StepConfig{}, nil)

	testCases := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "empty input",
			input: nil,
			want:  []string{},
		},
		{
			name: "marketing step dropped",
			input: []string{
				"Sign up to receive our free recipe ebook!",
				"Preheat the oven to 350 degrees F.",
			},
			want: []string{"Preheat the oven to 350 degrees F."},
		},
		{
			name:  "formatting cleaned",
			input: []string{"Step 1: Combine flour and sugar in a bowl."},
			want:  []string{"Combine flour and sugar in a bowl."},
		},
		{
			name:  "short noise dropped",
			input: []string{"Stir well", "Step 2: Pour the batter into the greased pan."},
			want:  []string{"Pour the batter into the greased pan."},
		},
		{
			name:  "only marketing yields placeholder",
			input: []string{"Sign up to receive our free recipe ebook!"},
			want:  []string{PlaceholderStep},
		},
		{
			name:  "only noise yields placeholder",
			input: []string{"Mix.", "Done!"},
			want:  []string{PlaceholderStep},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := n.NormalizeSteps(tc.input)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeSteps_Bounds(t *testing.T) {
	n := NewStepNormalizer(StepConfig{}, nil)

	inputs := [][]string{
		{strings.Repeat("Fold the whipped cream into the chocolate mixture gently. ", 8)},
		{strings.Repeat("x", 500)},
		{"", "   "},
		{"Sign up now!", "Subscribe!"},
		{"1. " + strings.Repeat("Simmer and stir ", 30)},
	}

	for _, input := range inputs {
		got := n.NormalizeSteps(input)
		require.NotEmpty(t, got, "non-empty input must yield steps")
		for _, step := range got {
			if step == PlaceholderStep {
				continue
			}
			assert.LessOrEqual(t, utf8.RuneCountInString(step), DefaultStepMaxLength)
			assert.NotEmpty(t, step)
		}
	}
}

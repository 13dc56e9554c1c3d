package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// DefaultStepMinLength and DefaultStepMaxLength bound the display length of a step
	DefaultStepMinLength = 140
	DefaultStepMaxLength = 180

	// minStepLength is the shortest cleaned step kept; anything shorter is noise
	minStepLength = 20

	// PlaceholderStep is returned when no usable step survives normalization
	PlaceholderStep = "Follow the recipe instructions to prepare this dish."

	ellipsis = "…"
)

// marketingPatterns match whole promotional sentences, including their
// terminating punctuation
var marketingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[^.!?]*\b(?:sign(?:\s|-)?up|subscribe)\b[^.!?]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?]*\bfollow\s+(?:us|me)\s+on\b[^.!?]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?]*\bexclusive\s+bonus\b[^.!?]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?]*\b(?:newsletter|mailing\s+list)\b[^.!?]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?]*\bdownload\s+(?:our|my|the)\s+free\b[^.!?]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?]*\bclick\s+here\b[^.!?]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?]*\btag\s+(?:us|me)\b[^.!?]*[.!?]*`),
}

// Package-level compiled regex patterns for step formatting
var (
	stepPrefixRegex           = regexp.MustCompile(`(?i)^\s*(?:step\s*\d+\s*[:.)\-–]?\s*|\d+\s*[:.)\-–](?:\s+|$))`)
	leadingParentheticalRegex = regexp.MustCompile(`^\s*\([^)]*\)\s*`)
	whitespaceRunRegex        = regexp.MustCompile(`\s+`)
	trailingPunctuationRegex  = regexp.MustCompile(`[\s.,;:!?\-–—]+$`)
	sentenceBreakRegex        = regexp.MustCompile(`[.!?]+\s+`)
	punctuationOnlyRegex      = regexp.MustCompile(`^[\s\p{P}\p{S}]*$`)
)

// StripMarketing removes promotional sentences from a step. A step made only
// of promotional content becomes "".
func StripMarketing(step string) string {
	matched := false
	cleaned := step
	for _, pattern := range marketingPatterns {
		if pattern.MatchString(cleaned) {
			matched = true
			cleaned = pattern.ReplaceAllString(cleaned, " ")
		}
	}
	if !matched {
		return step
	}

	cleaned = strings.TrimSpace(whitespaceRunRegex.ReplaceAllString(cleaned, " "))
	if punctuationOnlyRegex.MatchString(cleaned) {
		return ""
	}
	return cleaned
}

// CleanFormatting strips "Step N:" and bare-number prefixes and one leading
// parenthetical note, collapses whitespace, and reduces a trailing run of
// punctuation to its first sentence terminator (or drops it).
//
//	"Step 2:  Whisk the eggs ..." -> "Whisk the eggs."
func CleanFormatting(step string) string {
	s := stepPrefixRegex.ReplaceAllString(step, "")
	s = leadingParentheticalRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespaceRunRegex.ReplaceAllString(s, " "))

	if loc := trailingPunctuationRegex.FindStringIndex(s); loc != nil {
		tail := s[loc[0]:]
		s = s[:loc[0]]
		if i := strings.IndexAny(tail, ".!?"); i >= 0 {
			s += tail[i : i+1]
		}
	}
	return s
}

// NormalizeLength shortens a step longer than maxLen runes. Whole sentences
// are kept when they add up to at least minLen; otherwise the step is cut at
// the last word boundary that is at least 70% of minLen in, then as a last
// resort hard-cut. Truncated text ends with an ellipsis unless it already
// ends a sentence. The result never exceeds maxLen runes.
func NormalizeLength(step string, minLen, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(step) <= maxLen {
		return step
	}

	if acc := accumulateSentences(step, maxLen); utf8.RuneCountInString(acc) >= minLen {
		return acc
	}

	r := []rune(step)
	for i := maxLen - 1; i > 0; i-- {
		if i*10 < 7*minLen {
			break
		}
		if r[i] != ' ' {
			continue
		}
		head := strings.TrimRight(string(r[:i]), " ,;:-–—")
		if head == "" {
			break
		}
		if strings.ContainsAny(head[len(head)-1:], ".!?") {
			return head
		}
		if utf8.RuneCountInString(head)+1 <= maxLen {
			return head + ellipsis
		}
	}

	return strings.TrimRight(string(r[:maxLen-1]), " ") + ellipsis
}

// accumulateSentences joins leading sentences while they fit within maxLen runes
func accumulateSentences(step string, maxLen int) string {
	var b strings.Builder
	length := 0
	start := 0

	for _, loc := range sentenceBreakRegex.FindAllStringIndex(step, -1) {
		sentence := strings.TrimSpace(step[start:loc[1]])
		start = loc[1]
		if !appendSentence(&b, &length, sentence, maxLen) {
			return b.String()
		}
	}
	if rest := strings.TrimSpace(step[start:]); rest != "" {
		appendSentence(&b, &length, rest, maxLen)
	}
	return b.String()
}

func appendSentence(b *strings.Builder, length *int, sentence string, maxLen int) bool {
	n := utf8.RuneCountInString(sentence)
	if *length > 0 {
		n++
	}
	if *length+n > maxLen {
		return false
	}
	if *length > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(sentence)
	*length += n
	return true
}

// StepConfig holds the target length band for normalized steps
type StepConfig struct {
	MinLength int
	MaxLength int
}

// StepNormalizer cleans recipe instruction steps for display
type StepNormalizer struct {
	minLength int
	maxLength int
	logger    *zap.Logger
}

// NewStepNormalizer creates a step normalizer. Zero or inverted bounds fall
// back to the defaults.
func NewStepNormalizer(config StepConfig, logger *zap.Logger) *StepNormalizer {
	minLen, maxLen := config.MinLength, config.MaxLength
	if minLen <= 0 || maxLen <= 0 || minLen >= maxLen {
		minLen, maxLen = DefaultStepMinLength, DefaultStepMaxLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &StepNormalizer{
		minLength: minLen,
		maxLength: maxLen,
		logger:    logger.Named("step-normalizer"),
	}
}

// MaxLength returns the longest step the normalizer emits
func (n *StepNormalizer) MaxLength() int {
	return n.maxLength
}

// NormalizeSteps strips marketing, cleans formatting, drops noise and
// normalizes the length of every step, preserving order. Non-empty input
// always yields at least one step: the cleaned first step, or
// PlaceholderStep when even that is unusable.
func (n *StepNormalizer) NormalizeSteps(steps []string) []string {
	if len(steps) == 0 {
		return []string{}
	}

	result := make([]string, 0, len(steps))
	for _, step := range steps {
		s := StripMarketing(step)
		if s == "" {
			continue
		}
		s = CleanFormatting(s)
		if utf8.RuneCountInString(s) < minStepLength {
			continue
		}
		result = append(result, NormalizeLength(s, n.minLength, n.maxLength))
	}

	if len(result) > 0 {
		return result
	}

	// the first step is still shown cleaned, unless it was purely promotional
	n.logger.Debug("no usable steps, falling back to first step", zap.Int("input", len(steps)))

	if StripMarketing(steps[0]) != "" {
		first := NormalizeLength(CleanFormatting(steps[0]), n.minLength, n.maxLength)
		if utf8.RuneCountInString(first) >= minStepLength {
			return []string{first}
		}
	}
	return []string{PlaceholderStep}
}

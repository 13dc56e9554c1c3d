package usecase

import (
	"path"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/pantrypal/backend/internal/domain"
)

// MatchConfig holds configuration for the icon matcher
type MatchConfig struct {
	MinScanScore       int
	AssetBasePath      string
	EnableDebugLogging bool
}

// IconMatcher resolves ingredient names to catalog icons. It only reads its
// index, so one matcher serves any number of concurrent callers.
type IconMatcher struct {
	index              *CatalogIndex
	minScanScore       int
	assetBasePath      string
	enableDebugLogging bool
	version            string
	logger             *zap.Logger
}

// NewIconMatcher creates a matcher over a built catalog index
func NewIconMatcher(index *CatalogIndex, config MatchConfig, logger *zap.Logger) *IconMatcher {
	minScore := config.MinScanScore
	if minScore <= 0 {
		minScore = DefaultMinScanScore
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if index == nil {
		index = BuildCatalogIndex(nil)
	}

	version := xxhash.Sum64String(index.Fingerprint() + "\x1f" + strconv.Itoa(minScore) + "\x1f" + config.AssetBasePath)

	return &IconMatcher{
		index:              index,
		minScanScore:       minScore,
		assetBasePath:      config.AssetBasePath,
		enableDebugLogging: config.EnableDebugLogging,
		version:            strconv.FormatUint(version, 36),
		logger:             logger.Named("icon-matcher"),
	}
}

// Version identifies the catalog content and the settings that shape Match
// results. Cached results from a matcher with another version are stale.
func (m *IconMatcher) Version() string {
	return m.version
}

// Index returns the catalog index the matcher reads from
func (m *IconMatcher) Index() *CatalogIndex {
	return m.index
}

// BestIconFor returns the asset path of the best icon for name, or false when
// nothing in the catalog is a confident match
func (m *IconMatcher) BestIconFor(name string) (string, bool) {
	match, ok := m.Match(name)
	if !ok {
		return "", false
	}
	return match.AssetPath, true
}

// Match resolves name through three stages:
//  1. lookup keys against the slug and title indexes
//  2. the base key extended with descriptor suffixes ("ginger" -> "ginger-root")
//  3. a full scan keeping the highest-scoring valid entry, first seen on ties
//
// Scan winners for names of one or two significant words must reach the
// minimum scan score.
func (m *IconMatcher) Match(name string) (*domain.IconMatch, bool) {
	ing := newIngredientTerms(name)
	if ing.normalized == "" {
		return nil, false
	}

	for _, key := range lookupKeysFor(ing.normalized) {
		if e := m.firstValidHit(ing, key); e != nil {
			return m.result(name, e.entry, domain.StageExact, 0), true
		}
	}

	for _, suffix := range descriptorSuffixes {
		if strings.HasSuffix(ing.normalized, suffix) {
			continue
		}
		if e := m.firstValidHit(ing, ing.normalized+suffix); e != nil {
			return m.result(name, e.entry, domain.StageSuffix, 0), true
		}
	}

	best, ok := m.scan(ing)
	if !ok {
		m.debug("no icon match", zap.String("name", name))
		return nil, false
	}

	if len(ing.significant) <= 2 && best.Score < m.minScanScore {
		m.debug("best candidate below threshold",
			zap.String("name", name),
			zap.String("slug", best.Entry.Slug),
			zap.Int("score", best.Score),
			zap.Int("threshold", m.minScanScore))
		return nil, false
	}

	return m.result(name, best.Entry, domain.StageScan, best.Score), true
}

// FindCandidates returns every valid, positively scored candidate for name in
// catalog order. Intended for diagnostics; Match is the lookup path.
func (m *IconMatcher) FindCandidates(name string) []domain.MatchCandidate {
	ing := newIngredientTerms(name)
	if ing.normalized == "" {
		return nil
	}

	var candidates []domain.MatchCandidate
	for i := range m.index.terms {
		e := &m.index.terms[i]
		if !isValidMatch(ing, e) {
			continue
		}
		if score := scoreMatch(ing, e); score > 0 {
			candidates = append(candidates, domain.MatchCandidate{Entry: e.entry, Score: score})
		}
	}
	return candidates
}

func (m *IconMatcher) firstValidHit(ing ingredientTerms, key string) *entryTerms {
	for _, e := range m.index.lookupKey(key) {
		if isValidMatch(ing, e) {
			return e
		}
	}
	return nil
}

// scan scores every valid entry. Only a strictly higher score replaces the
// current best, so ties resolve to catalog order.
func (m *IconMatcher) scan(ing ingredientTerms) (domain.MatchCandidate, bool) {
	var best domain.MatchCandidate
	found := false

	for i := range m.index.terms {
		e := &m.index.terms[i]
		if !isValidMatch(ing, e) {
			continue
		}

		score := scoreMatch(ing, e)
		if m.enableDebugLogging {
			m.logger.Debug("candidate",
				zap.String("name", ing.normalized),
				zap.String("slug", e.entry.Slug),
				zap.Int("score", score))
		}
		if score <= 0 {
			continue
		}

		if !found || score > best.Score {
			best = domain.MatchCandidate{Entry: e.entry, Score: score}
			found = true
		}
	}

	return best, found
}

func (m *IconMatcher) result(name string, entry domain.CatalogEntry, stage domain.MatchStage, score int) *domain.IconMatch {
	m.debug("icon matched",
		zap.String("name", name),
		zap.String("slug", entry.Slug),
		zap.String("stage", string(stage)),
		zap.Int("score", score))

	return &domain.IconMatch{
		AssetPath: m.assetPath(entry.AssetFile),
		Entry:     entry,
		Stage:     stage,
		Score:     score,
	}
}

func (m *IconMatcher) assetPath(file string) string {
	if m.assetBasePath == "" {
		return file
	}
	return path.Join(m.assetBasePath, file)
}

func (m *IconMatcher) debug(msg string, fields ...zap.Field) {
	if m.enableDebugLogging {
		m.logger.Debug(msg, fields...)
	}
}

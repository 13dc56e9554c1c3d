package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pantrypal/backend/internal/domain"
	"github.com/pantrypal/backend/internal/infrastructure/metrics"
)

const (
	// stageNone labels lookups that found no icon
	stageNone = "none"

	iconCachePrefix = "icon:"
)

// IconServiceConfig holds configuration for the icon service
type IconServiceConfig struct {
	CacheTTL time.Duration
}

// IconService resolves ingredient icons with caching
type IconService struct {
	cache     domain.CacheRepository
	matcher   *IconMatcher
	cacheTTL  time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// NewIconService creates a new icon service with dependencies
func NewIconService(
	cache domain.CacheRepository,
	matcher *IconMatcher,
	config IconServiceConfig,
	logger *zap.Logger,
) *IconService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	keyPrefix := iconCachePrefix
	if matcher != nil {
		keyPrefix += matcher.Version() + ":"
	}

	return &IconService{
		cache:     cache,
		matcher:   matcher,
		cacheTTL:  cacheTTL,
		keyPrefix: keyPrefix,
		logger:    logger.Named("icon-service"),
	}
}

// FindIcon returns the icon match for an ingredient name.
// Flow: check cache -> match against the catalog -> cache -> return.
// Misses are cached too, as an empty value.
func (s *IconService) FindIcon(ctx context.Context, name string) (*domain.IconMatch, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidRequest
	}

	key := s.cacheKey(name)
	if key == "" {
		metrics.RecordIconLookup(stageNone)
		return nil, domain.ErrNoIconMatch
	}

	if match, hit := s.getFromCache(ctx, key); hit {
		metrics.RecordIconCache(true)
		if match == nil {
			return nil, domain.ErrNoIconMatch
		}
		return match, nil
	}
	metrics.RecordIconCache(false)

	match, ok := s.matcher.Match(name)
	if !ok {
		metrics.RecordIconLookup(stageNone)
		s.setInCache(ctx, key, nil)
		return nil, domain.ErrNoIconMatch
	}

	metrics.RecordIconLookup(string(match.Stage))
	s.setInCache(ctx, key, match)
	return match, nil
}

// BestIcon returns just the asset path of the icon for name
func (s *IconService) BestIcon(ctx context.Context, name string) (string, error) {
	match, err := s.FindIcon(ctx, name)
	if err != nil {
		return "", err
	}
	return match.AssetPath, nil
}

// ResolveIngredients prepares raw kitchen items for storage: the quantity is
// split off the name, a display quantity is always filled in, and the icon
// and storage location are looked up from the bare ingredient.
func (s *IconService) ResolveIngredients(ctx context.Context, items []domain.IngredientInput) ([]domain.ResolvedIngredient, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	resolved := make([]domain.ResolvedIngredient, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, domain.ErrInvalidRequest
		}

		ingredient := strings.TrimSpace(StripQuantity(name))
		r := domain.ResolvedIngredient{
			Name:       name,
			Ingredient: ingredient,
			Quantity:   DefaultQuantity(name, item.Quantity),
			Storage:    CategorizeStorage(ingredient),
		}

		iconPath, err := s.BestIcon(ctx, ingredient)
		switch {
		case err == nil:
			r.IconPath = iconPath
		case errors.Is(err, domain.ErrNoIconMatch):
		default:
			return nil, err
		}

		resolved = append(resolved, r)
	}

	return resolved, nil
}

// EntriesWithTag lists indexed catalog entries carrying tag
func (s *IconService) EntriesWithTag(tag string) []domain.CatalogEntry {
	return s.matcher.Index().EntriesWithTag(tag)
}

// CatalogSize returns the number of entries available for matching
func (s *IconService) CatalogSize() int {
	return s.matcher.Index().Len()
}

// cacheKey creates a normalized cache key for an ingredient name.
// Format: "icon:{matcher_version}:{normalized_name}", so a new catalog never
// reads results cached for the previous one. Names that normalize to nothing yield "".
func (s *IconService) cacheKey(name string) string {
	normalized := NormalizeForLookup(StripQuantity(name))
	if normalized == "" {
		return ""
	}
	return s.keyPrefix + normalized
}

// getFromCache reports a hit with a nil match for a cached miss. Cache
// failures are logged and treated as a miss.
func (s *IconService) getFromCache(ctx context.Context, key string) (*domain.IconMatch, bool) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("icon cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	if value == "" {
		return nil, true
	}

	var match domain.IconMatch
	if err := json.Unmarshal([]byte(value), &match); err != nil {
		s.logger.Warn("discarding corrupt icon cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &match, true
}

// setInCache stores a match, or an empty value for a miss. Failures are
// logged and do not fail the lookup.
func (s *IconService) setInCache(ctx context.Context, key string, match *domain.IconMatch) {
	value := ""
	if match != nil {
		data, err := json.Marshal(match)
		if err != nil {
			s.logger.Warn("failed to encode icon match", zap.String("key", key), zap.Error(err))
			return
		}
		value = string(data)
	}

	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("icon cache write failed", zap.String("key", key), zap.Error(err))
	}
}

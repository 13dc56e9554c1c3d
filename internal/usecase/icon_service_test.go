package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypal/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string]string
	getError error
	setError error
	gets     int
	sets     int
	lastTTL  time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]string),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getError != nil {
		return "", m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return "", domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func newTestIconService(cache domain.CacheRepository) *IconService {
	matcher := NewIconMatcher(BuildCatalogIndex(testCatalog()), MatchConfig{}, nil)
	return NewIconService(cache, matcher, IconServiceConfig{}, nil)
}

func TestNewIconService(t *testing.T) {
	t.Run("default cache TTL", func(t *testing.T) {
		svc := NewIconService(NewMockCacheRepository(), nil, IconServiceConfig{}, nil)
		assert.Equal(t, 24*time.Hour, svc.cacheTTL)
	})

	t.Run("custom cache TTL", func(t *testing.T) {
		svc := NewIconService(NewMockCacheRepository(), nil, IconServiceConfig{CacheTTL: time.Hour}, nil)
		assert.Equal(t, time.Hour, svc.cacheTTL)
	})
}

func TestIconService_FindIcon(t *testing.T) {
	ctx := context.Background()

	t.Run("matches and caches", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestIconService(cache)

		match, err := svc.FindIcon(ctx, "Fresh Ginger")
		require.NoError(t, err)
		assert.Equal(t, "ginger.svg", match.AssetPath)
		assert.Equal(t, domain.StageExact, match.Stage)

		cached, ok := cache.data[svc.cacheKey("ginger")]
		require.True(t, ok)
		var decoded domain.IconMatch
		require.NoError(t, json.Unmarshal([]byte(cached), &decoded))
		assert.Equal(t, "ginger", decoded.Entry.Slug)
		assert.Equal(t, 24*time.Hour, cache.lastTTL)
	})

	t.Run("second lookup is served from cache", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestIconService(cache)

		_, err := svc.FindIcon(ctx, "Fresh Ginger")
		require.NoError(t, err)
		match, err := svc.FindIcon(ctx, "2 cups ginger")
		require.NoError(t, err)

		assert.Equal(t, "ginger.svg", match.AssetPath)
		assert.Equal(t, 2, cache.gets)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("cached entry is returned as is", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestIconService(cache)
		cache.data[svc.cacheKey("saffron")] = `{"assetPath":"saffron.svg","entry":{"title":"Saffron","slug":"saffron","assetFile":"saffron.svg"},"stage":"exact"}`

		match, err := svc.FindIcon(ctx, "saffron")
		require.NoError(t, err)
		assert.Equal(t, "saffron.svg", match.AssetPath)
		assert.Equal(t, 0, cache.sets)
	})

	t.Run("misses are cached", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestIconService(cache)

		_, err := svc.FindIcon(ctx, "cinnamon")
		assert.ErrorIs(t, err, domain.ErrNoIconMatch)

		value, ok := cache.data[svc.cacheKey("cinnamon")]
		require.True(t, ok)
		assert.Empty(t, value)

		_, err = svc.FindIcon(ctx, "cinnamon")
		assert.ErrorIs(t, err, domain.ErrNoIconMatch)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("blank name is invalid", func(t *testing.T) {
		svc := newTestIconService(NewMockCacheRepository())

		_, err := svc.FindIcon(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("stop words only is a miss without caching", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestIconService(cache)

		_, err := svc.FindIcon(ctx, "the and of")
		assert.ErrorIs(t, err, domain.ErrNoIconMatch)
		assert.Equal(t, 0, cache.gets)
		assert.Equal(t, 0, cache.sets)
	})

	t.Run("cache failures do not fail the lookup", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.getError = domain.ErrCacheUnavailable
		cache.setError = errors.New("connection reset")
		svc := newTestIconService(cache)

		match, err := svc.FindIcon(ctx, "flour")
		require.NoError(t, err)
		assert.Equal(t, "flour.svg", match.AssetPath)
	})

	t.Run("corrupt cache entry is replaced", func(t *testing.T) {
		cache := NewMockCacheRepository()
		svc := newTestIconService(cache)
		cache.data[svc.cacheKey("ginger")] = "{not json"

		match, err := svc.FindIcon(ctx, "ginger")
		require.NoError(t, err)
		assert.Equal(t, "ginger.svg", match.AssetPath)
		assert.NotEqual(t, "{not json", cache.data[svc.cacheKey("ginger")])
	})
}

func TestIconService_BestIcon(t *testing.T) {
	svc := newTestIconService(NewMockCacheRepository())

	asset, err := svc.BestIcon(context.Background(), "pepper")
	require.NoError(t, err)
	assert.Equal(t, "black-pepper.svg", asset)

	asset, err = svc.BestIcon(context.Background(), "gingerbread")
	require.NoError(t, err)
	assert.NotEqual(t, "ginger.svg", asset)
}

func TestIconService_ResolveIngredients(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves quantity, icon and storage", func(t *testing.T) {
		svc := newTestIconService(NewMockCacheRepository())

		resolved, err := svc.ResolveIngredients(ctx, []domain.IngredientInput{
			{Name: "2 cups flour"},
			{Name: "3 eggs"},
			{Name: "fresh ginger", Quantity: "1 knob"},
		})
		require.NoError(t, err)
		require.Len(t, resolved, 3)

		assert.Equal(t, domain.ResolvedIngredient{
			Name:       "2 cups flour",
			Ingredient: "flour",
			Quantity:   "2 cups",
			IconPath:   "flour.svg",
			Storage:    domain.StoragePantry,
		}, resolved[0])

		assert.Equal(t, domain.ResolvedIngredient{
			Name:       "3 eggs",
			Ingredient: "eggs",
			Quantity:   "3",
			Storage:    domain.StorageFridge,
		}, resolved[1])

		assert.Equal(t, domain.ResolvedIngredient{
			Name:       "fresh ginger",
			Ingredient: "fresh ginger",
			Quantity:   "1 knob",
			IconPath:   "ginger.svg",
			Storage:    domain.StorageFridge,
		}, resolved[2])
	})

	t.Run("missing quantity defaults", func(t *testing.T) {
		svc := newTestIconService(NewMockCacheRepository())

		resolved, err := svc.ResolveIngredients(ctx, []domain.IngredientInput{{Name: "tomatoes"}})
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, DefaultQuantityText, resolved[0].Quantity)
		assert.Equal(t, "tomato.svg", resolved[0].IconPath)
		assert.Equal(t, domain.StorageCounter, resolved[0].Storage)
	})

	t.Run("empty list is invalid", func(t *testing.T) {
		svc := newTestIconService(NewMockCacheRepository())

		_, err := svc.ResolveIngredients(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("blank item is invalid", func(t *testing.T) {
		svc := newTestIconService(NewMockCacheRepository())

		_, err := svc.ResolveIngredients(ctx, []domain.IngredientInput{{Name: "flour"}, {Name: " "}})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestIconService_Catalog(t *testing.T) {
	svc := newTestIconService(NewMockCacheRepository())

	assert.Equal(t, 10, svc.CatalogSize())

	entries := svc.EntriesWithTag("spice")
	require.Len(t, entries, 2)
	assert.Equal(t, "black-pepper", entries[0].Slug)
	assert.Equal(t, "turmeric-root", entries[1].Slug)
}

func TestIconService_CacheKey(t *testing.T) {
	svc := newTestIconService(NewMockCacheRepository())
	prefix := "icon:" + svc.matcher.Version() + ":"

	testCases := []struct {
		input string
		want  string
	}{
		{"Fresh Ginger", prefix + "ginger"},
		{"2 cups Flour", prefix + "flour"},
		{"Black Pepper", prefix + "black-pepper"},
		{"the", ""},
	}

	for _, tc := range testCases {
		if got := svc.cacheKey(tc.input); got != tc.want {
			t.Errorf("cacheKey(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	unversioned := NewIconService(NewMockCacheRepository(), nil, IconServiceConfig{}, nil)
	assert.Equal(t, "icon:ginger", unversioned.cacheKey("ginger"))
}

func TestIconService_CatalogChangeInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMockCacheRepository()

	before := NewIconService(cache, newTestMatcher(t, []domain.CatalogEntry{
		food("Ginger", "ginger", "spice"),
	}, MatchConfig{}), IconServiceConfig{}, nil)

	_, err := before.FindIcon(ctx, "saffron")
	require.ErrorIs(t, err, domain.ErrNoIconMatch)

	after := NewIconService(cache, newTestMatcher(t, []domain.CatalogEntry{
		food("Ginger", "ginger", "spice"),
		food("Saffron", "saffron", "spice"),
	}, MatchConfig{}), IconServiceConfig{}, nil)

	match, err := after.FindIcon(ctx, "saffron")
	require.NoError(t, err, "a miss cached for the old catalog must not hide the new entry")
	assert.Equal(t, "saffron.svg", match.AssetPath)
	assert.NotEqual(t, before.cacheKey("saffron"), after.cacheKey("saffron"))
	assert.Equal(t, 2, cache.sets)
}

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypal/backend/internal/domain"
)

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"entries":[
		{"title":"Ginger","slug":"ginger","assetFile":"ginger.svg","category":"food"},
		{"title":"","slug":"broken","assetFile":"broken.svg"}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	entries, err := NewFileSource(path, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ginger", entries[0].Title)
}

func TestFileSource_Load_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json"), nil).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestFileSource_Load_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSource("unused.json", nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSource_Load_BundledCatalog(t *testing.T) {
	entries, err := NewFileSource(filepath.Join("..", "..", "..", "data", "catalog.json"), nil).Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

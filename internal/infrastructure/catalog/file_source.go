package catalog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pantrypal/backend/internal/domain"
)

// FileSource loads the bundled catalog file from disk
type FileSource struct {
	path   string
	mapper *Mapper
	logger *zap.Logger
}

// NewFileSource creates a catalog source reading path
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{
		path:   path,
		mapper: NewMapper(),
		logger: logger.Named("catalog"),
	}
}

// Load reads and maps the catalog file
func (s *FileSource) Load(ctx context.Context) ([]domain.CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	result, err := s.mapper.Parse(data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog loaded",
		zap.String("path", s.path),
		zap.Int("entries", len(result.Entries)),
		zap.Int("skipped", result.Skipped))

	return result.Entries, nil
}

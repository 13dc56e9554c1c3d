package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pantrypal/backend/internal/domain"
)

// catalogRow is one entry as written by the asset build step
type catalogRow struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Slug      string   `json:"slug" validate:"required,max=200"`
	AssetFile string   `json:"assetFile" validate:"required,max=500"`
	Category  string   `json:"category" validate:"max=64"`
	Tags      []string `json:"tags" validate:"max=64,dive,max=64"`
}

// catalogDocument is the wrapped file layout; a bare array of rows is also accepted
type catalogDocument struct {
	Version string       `json:"version"`
	Entries []catalogRow `json:"entries"`
}

// MapResult reports how many rows were kept and skipped
type MapResult struct {
	Entries []domain.CatalogEntry
	Skipped int
}

// Mapper converts raw catalog files into domain entries
type Mapper struct {
	validate *validator.Validate
}

// NewMapper creates a catalog mapper
func NewMapper() *Mapper {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	return &Mapper{validate: v}
}

// Parse decodes a catalog file. Rows missing a title, slug or asset file, or
// with oversized fields, are skipped rather than failing the whole catalog.
func (m *Mapper) Parse(data []byte) (*MapResult, error) {
	rows, err := decodeRows(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	result := &MapResult{Entries: make([]domain.CatalogEntry, 0, len(rows))}
	for _, row := range rows {
		row.Title = strings.TrimSpace(row.Title)
		row.Slug = strings.TrimSpace(row.Slug)
		row.AssetFile = strings.TrimSpace(row.AssetFile)

		if err := m.validate.Struct(row); err != nil {
			result.Skipped++
			continue
		}
		result.Entries = append(result.Entries, MapToEntry(row))
	}

	return result, nil
}

// MapToEntry converts a validated row to our domain CatalogEntry
func MapToEntry(row catalogRow) domain.CatalogEntry {
	return domain.CatalogEntry{
		Title:     row.Title,
		Slug:      row.Slug,
		AssetFile: row.AssetFile,
		Category:  strings.ToLower(strings.TrimSpace(row.Category)),
		Tags:      row.Tags,
	}
}

// jsonTagName makes validation errors report the JSON field name
func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func decodeRows(data []byte) ([]catalogRow, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}

	if trimmed[0] == '[' {
		var rows []catalogRow
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
		return rows, nil
	}

	var doc catalogDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return doc.Entries, nil
}

package domain

// FoodCategory is the only catalog category eligible for ingredient matching
const FoodCategory = "food"

// CatalogEntry is one iconified concept from the asset catalog
type CatalogEntry struct {
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	AssetFile string   `json:"assetFile"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// HasTag reports whether the entry carries the given tag
func (e CatalogEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchCandidate is a scored catalog entry considered during a single lookup
type MatchCandidate struct {
	Entry CatalogEntry `json:"entry"`
	Score int          `json:"score"`
}

// MatchStage identifies which lookup stage produced an icon match
type MatchStage string

const (
	StageExact  MatchStage = "exact"  // lookup key hit the slug or title index
	StageSuffix MatchStage = "suffix" // base name plus a descriptor suffix hit an index
	StageScan   MatchStage = "scan"   // full catalog scan with scoring
)

// IconMatch is the result of resolving an ingredient name to a catalog icon
type IconMatch struct {
	AssetPath string       `json:"assetPath"`
	Entry     CatalogEntry `json:"entry"`
	Stage     MatchStage   `json:"stage"`
	Score     int          `json:"score,omitempty"` // only set for StageScan
}

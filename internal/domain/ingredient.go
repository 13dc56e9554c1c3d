package domain

// QuantityToken is a leading quantity expression split off an ingredient string
type QuantityToken struct {
	Magnitude string `json:"magnitude"` // raw quantity text, e.g. "2 cups"
	Remainder string `json:"remainder"` // ingredient text after the quantity
}

// StorageLocation is where a kitchen item is kept
type StorageLocation string

const (
	StorageFridge    StorageLocation = "fridge"
	StorageFreezer   StorageLocation = "freezer"
	StoragePantry    StorageLocation = "pantry"
	StorageCounter   StorageLocation = "counter"
	StorageSpiceRack StorageLocation = "spice_rack"
)

// IngredientInput is a raw kitchen item as typed by a user
type IngredientInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity,omitempty"`
}

// ResolvedIngredient is a kitchen item ready to be persisted and rendered
type ResolvedIngredient struct {
	Name       string          `json:"name"`
	Ingredient string          `json:"ingredient"`
	Quantity   string          `json:"quantity"`
	IconPath   string          `json:"iconPath,omitempty"`
	Storage    StorageLocation `json:"storage"`
}

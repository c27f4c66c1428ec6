package models

import "time"

// Recipe categories accepted by the catalog.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategoryDesserts  = "desserts"
	CategoryDrinks    = "drinks"
	CategoryOther     = "other"
)

// Categories lists every valid recipe category.
var Categories = []string{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryDesserts,
	CategoryDrinks,
	CategoryOther,
}

// Recipe is a single catalog entry. CreatedAt serializes as an RFC3339
// string and drives newest-first ordering of listings.
type Recipe struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"` // one of Categories
	CookTimeMinutes int       `json:"cookTimeMinutes"`
	Ingredients     []string  `json:"ingredients"`
	Steps           []string  `json:"steps"`
	Notes           string    `json:"notes,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"` // relative, e.g. /uploads/<token>.jpg
	CreatedAt       time.Time `json:"createdAt"`
}

// RecipePatch carries a partial update. Nil fields are left untouched;
// Ingredients and Steps replace the whole slice when set, never merge.
type RecipePatch struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Category        *string    `json:"category"`
	CookTimeMinutes *int       `json:"cookTimeMinutes"`
	Ingredients     []string   `json:"ingredients"`
	Steps           []string   `json:"steps"`
	Notes           *string    `json:"notes"`
	ImageURL        *string    `json:"imageUrl"`
	CreatedAt       *time.Time `json:"createdAt"`
}

// Apply overlays the set fields of p onto r.
func (p RecipePatch) Apply(r *Recipe) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.CookTimeMinutes != nil {
		r.CookTimeMinutes = *p.CookTimeMinutes
	}
	if p.Ingredients != nil {
		r.Ingredients = p.Ingredients
	}
	if p.Steps != nil {
		r.Steps = p.Steps
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.ImageURL != nil {
		r.ImageURL = *p.ImageURL
	}
	if p.CreatedAt != nil {
		r.CreatedAt = p.CreatedAt.UTC()
	}
}

// ValidCategory reports whether s is one of the known categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if s == c {
			return true
		}
	}
	return false
}

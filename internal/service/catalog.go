package service

import (
	"context"
	"strings"
	"time"

	"recipebox/internal/models"
	"recipebox/internal/repository"
)

// CatalogService orchestrates recipe CRUD against the record store.
type CatalogService struct {
	recipes repository.Recipes
}

func NewCatalogService(recipes repository.Recipes) *CatalogService {
	return &CatalogService{recipes: recipes}
}

var _ Catalog = (*CatalogService)(nil)

// List returns all recipes, newest first.
func (s *CatalogService) List(ctx context.Context) ([]models.Recipe, error) {
	return s.recipes.List(ctx)
}

// Get returns one recipe, or nil when the id is unknown.
func (s *CatalogService) Get(ctx context.Context, id int) (*models.Recipe, error) {
	return s.recipes.GetByID(ctx, id)
}

// ByCategory filters on an exact category match. The filter value is
// normalized the way category values are stored: trimmed, lowercase.
func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	return s.recipes.ByCategory(ctx, normalizeTerm(category))
}

// Search does a case-insensitive substring scan; an empty query matches all.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	return s.recipes.Search(ctx, normalizeTerm(query))
}

// Create stores a new recipe, stamping CreatedAt if the caller left it zero.
func (s *CatalogService) Create(ctx context.Context, rec models.Recipe) (models.Recipe, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return s.recipes.Create(ctx, rec)
}

// Update applies a partial patch; nil result means the id is unknown.
func (s *CatalogService) Update(ctx context.Context, id int, patch models.RecipePatch) (*models.Recipe, error) {
	return s.recipes.Update(ctx, id, patch)
}

// Delete reports whether a recipe existed and was removed.
func (s *CatalogService) Delete(ctx context.Context, id int) (bool, error) {
	return s.recipes.Delete(ctx, id)
}

// normalizeTerm trims and lowercases a user-supplied filter term.
func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

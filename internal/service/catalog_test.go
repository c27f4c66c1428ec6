package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipebox/internal/models"
)

// fakeRecipeRepo is a minimal stub satisfying repository.Recipes.
type fakeRecipeRepo struct {
	gotQuery    string
	gotCategory string
	gotCreate   models.Recipe
	gotPatchID  int

	recipes []models.Recipe
	created models.Recipe
	updated *models.Recipe
	deleted bool
	err     error
}

func (f *fakeRecipeRepo) Create(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	f.gotCreate = r
	return f.created, f.err
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, id int) (*models.Recipe, error) {
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			return &f.recipes[i], f.err
		}
	}
	return nil, f.err
}

func (f *fakeRecipeRepo) List(ctx context.Context) ([]models.Recipe, error) {
	return f.recipes, f.err
}

func (f *fakeRecipeRepo) ByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	f.gotCategory = category
	return f.recipes, f.err
}

func (f *fakeRecipeRepo) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	f.gotQuery = query
	return f.recipes, f.err
}

func (f *fakeRecipeRepo) Update(ctx context.Context, id int, patch models.RecipePatch) (*models.Recipe, error) {
	f.gotPatchID = id
	return f.updated, f.err
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, id int) (bool, error) {
	return f.deleted, f.err
}

func TestCatalogService_Search_NormalizesQuery(t *testing.T) {
	repo := &fakeRecipeRepo{}
	svc := NewCatalogService(repo)

	if _, err := svc.Search(context.Background(), "  EgG "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotQuery != "egg" {
		t.Fatalf("query not normalized, repo got %q", repo.gotQuery)
	}
}

func TestCatalogService_ByCategory_NormalizesTerm(t *testing.T) {
	repo := &fakeRecipeRepo{}
	svc := NewCatalogService(repo)

	if _, err := svc.ByCategory(context.Background(), " Drinks "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotCategory != "drinks" {
		t.Fatalf("category not normalized, repo got %q", repo.gotCategory)
	}
}

func TestCatalogService_Create_StampsCreatedAt(t *testing.T) {
	repo := &fakeRecipeRepo{created: models.Recipe{ID: 1}}
	svc := NewCatalogService(repo)

	if _, err := svc.Create(context.Background(), models.Recipe{Title: "Toast"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotCreate.CreatedAt.IsZero() {
		t.Fatalf("createdAt was not stamped before reaching the store")
	}
}

func TestCatalogService_Create_KeepsExplicitCreatedAt(t *testing.T) {
	repo := &fakeRecipeRepo{}
	svc := NewCatalogService(repo)

	ts := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	if _, err := svc.Create(context.Background(), models.Recipe{Title: "Toast", CreatedAt: ts}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.gotCreate.CreatedAt.Equal(ts) {
		t.Fatalf("explicit createdAt replaced: %v", repo.gotCreate.CreatedAt)
	}
}

func TestCatalogService_Update_PassesThrough(t *testing.T) {
	want := &models.Recipe{ID: 9, Title: "Updated"}
	repo := &fakeRecipeRepo{updated: want}
	svc := NewCatalogService(repo)

	got, err := svc.Update(context.Background(), 9, models.RecipePatch{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want || repo.gotPatchID != 9 {
		t.Fatalf("update not passed through: %+v", got)
	}
}

func TestCatalogService_ErrorsPropagate(t *testing.T) {
	repo := &fakeRecipeRepo{err: errors.New("backend down")}
	svc := NewCatalogService(repo)

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected error from List")
	}
	if _, err := svc.Delete(context.Background(), 1); err == nil {
		t.Fatalf("expected error from Delete")
	}
}

package repository

import (
	"context"
	"database/sql"

	"recipebox/internal/models"
	"recipebox/internal/repository/db"
)

// Accounts stores registered users. Absence is reported as (nil, nil),
// never as an error.
type Accounts interface {
	Create(username, password string) (int, error)
	GetByUsername(username string) (*models.Account, error)
	GetByID(id int) (*models.Account, error)
}

// Recipes stores catalog entries. Ids start at 1 and increase on every
// Create, regardless of deletions in between.
type Recipes interface {
	Create(ctx context.Context, r models.Recipe) (models.Recipe, error)
	GetByID(ctx context.Context, id int) (*models.Recipe, error)
	// List returns all recipes newest-first (created_at descending).
	List(ctx context.Context) ([]models.Recipe, error)
	// ByCategory returns exact category matches, newest-first.
	ByCategory(ctx context.Context, category string) ([]models.Recipe, error)
	// Search matches a case-insensitive substring against title, description
	// or any single ingredient. Results come back in id order, not recency.
	Search(ctx context.Context, query string) ([]models.Recipe, error)
	// Update overlays the patch onto the stored recipe and returns the full
	// updated row, or (nil, nil) when the id is unknown.
	Update(ctx context.Context, id int, patch models.RecipePatch) (*models.Recipe, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type Repository struct {
	Accounts Accounts
	Recipes  Recipes
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Accounts: NewAccountSQLite(conn),
		Recipes:  NewRecipeSQLite(conn),
	}
}

// InitDB opens the backing SQLite file and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.Open(path)
}

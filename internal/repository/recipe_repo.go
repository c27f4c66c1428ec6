package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipebox/internal/models"
)

type RecipeSQLite struct {
	db *sql.DB
}

func NewRecipeSQLite(db *sql.DB) *RecipeSQLite {
	return &RecipeSQLite{db: db}
}

var _ Recipes = (*RecipeSQLite)(nil)

const (
	insertRecipeSQL = `
		INSERT INTO recipes (title, description, category, cook_time_minutes, ingredients, steps, notes, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRecipeColumns = `id, title, description, category, cook_time_minutes, ingredients, steps, notes, image_url, created_at`

	selectRecipeByIDSQL = `SELECT ` + selectRecipeColumns + ` FROM recipes WHERE id = ?`

	selectRecipesNewestSQL = `SELECT ` + selectRecipeColumns + ` FROM recipes ORDER BY created_at DESC`

	selectRecipesByCategorySQL = `SELECT ` + selectRecipeColumns + ` FROM recipes WHERE category = ? ORDER BY created_at DESC`

	selectRecipesByIDOrderSQL = `SELECT ` + selectRecipeColumns + ` FROM recipes ORDER BY id`

	updateRecipeSQL = `
		UPDATE recipes
		SET title=?, description=?, category=?, cook_time_minutes=?, ingredients=?, steps=?, notes=?, image_url=?, created_at=?
		WHERE id=?
	`

	deleteRecipeSQL = `DELETE FROM recipes WHERE id = ?`
)

// marshalLines converts an ingredient/step slice to its stored JSON form.
func marshalLines(lines []string) (string, error) {
	b, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalLines(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var lines []string
	if err := json.Unmarshal([]byte(s), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Create inserts the recipe and returns it with the assigned id.
func (r *RecipeSQLite) Create(ctx context.Context, rec models.Recipe) (models.Recipe, error) {
	ingredients, err := marshalLines(rec.Ingredients)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("encode ingredients: %w", err)
	}
	steps, err := marshalLines(rec.Steps)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("encode steps: %w", err)
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	} else {
		rec.CreatedAt = rec.CreatedAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertRecipeSQL,
		rec.Title,
		rec.Description,
		rec.Category,
		rec.CookTimeMinutes,
		ingredients,
		steps,
		nullable(rec.Notes),
		nullable(rec.ImageURL),
		rec.CreatedAt,
	)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("insert recipe %q: %w", rec.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Recipe{}, fmt.Errorf("get last insert id for recipe %q: %w", rec.Title, err)
	}
	rec.ID = int(lastID)
	return rec, nil
}

// GetByID fetches one recipe. Returns (nil, nil) if the id is unknown.
func (r *RecipeSQLite) GetByID(ctx context.Context, id int) (*models.Recipe, error) {
	row := r.db.QueryRowContext(ctx, selectRecipeByIDSQL, id)
	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select recipe %d: %w", id, err)
	}
	return rec, nil
}

// List returns every recipe, newest first.
func (r *RecipeSQLite) List(ctx context.Context) ([]models.Recipe, error) {
	return r.queryMany(ctx, selectRecipesNewestSQL)
}

// ByCategory returns recipes with an exact category match, newest first.
func (r *RecipeSQLite) ByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	return r.queryMany(ctx, selectRecipesByCategorySQL, category)
}

// Search walks all rows in id order and keeps those where the query appears
// as a case-insensitive substring of the title, the description, or any
// single ingredient. No recency sort is applied.
func (r *RecipeSQLite) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	all, err := r.queryMany(ctx, selectRecipesByIDOrderSQL)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	matched := make([]models.Recipe, 0, len(all))
	for _, rec := range all {
		if recipeMatches(rec, needle) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func recipeMatches(rec models.Recipe, needle string) bool {
	if strings.Contains(strings.ToLower(rec.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Description), needle) {
		return true
	}
	for _, ing := range rec.Ingredients {
		if strings.Contains(strings.ToLower(ing), needle) {
			return true
		}
	}
	return false
}

// Update loads the stored recipe, overlays the patch and writes the full row
// back. Returns (nil, nil) when the id is unknown.
func (r *RecipeSQLite) Update(ctx context.Context, id int, patch models.RecipePatch) (*models.Recipe, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	patch.Apply(existing)

	ingredients, err := marshalLines(existing.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("encode ingredients: %w", err)
	}
	steps, err := marshalLines(existing.Steps)
	if err != nil {
		return nil, fmt.Errorf("encode steps: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, updateRecipeSQL,
		existing.Title,
		existing.Description,
		existing.Category,
		existing.CookTimeMinutes,
		ingredients,
		steps,
		nullable(existing.Notes),
		nullable(existing.ImageURL),
		existing.CreatedAt.UTC(),
		id,
	); err != nil {
		return nil, fmt.Errorf("update recipe %d: %w", id, err)
	}
	return existing, nil
}

// Delete removes the recipe and reports whether a row existed.
func (r *RecipeSQLite) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteRecipeSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete recipe %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for recipe %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *RecipeSQLite) queryMany(ctx context.Context, q string, args ...any) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe rows: %w", err)
	}
	return out, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var (
		rec         models.Recipe
		ingredients string
		steps       string
		notes       sql.NullString
		imageURL    sql.NullString
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&rec.Category,
		&rec.CookTimeMinutes,
		&ingredients,
		&steps,
		&notes,
		&imageURL,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if rec.Ingredients, err = unmarshalLines(ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	if rec.Steps, err = unmarshalLines(steps); err != nil {
		return nil, fmt.Errorf("decode steps: %w", err)
	}
	rec.Notes = notes.String
	rec.ImageURL = imageURL.String
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

// nullable maps "" to NULL so optional text columns stay NULL when unset.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

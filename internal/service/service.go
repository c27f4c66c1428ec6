package service

import (
	"context"

	"recipebox/internal/models"
	"recipebox/internal/repository"
)

// Catalog exposes recipe catalog operations over the record store.
type Catalog interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id int) (*models.Recipe, error)
	ByCategory(ctx context.Context, category string) ([]models.Recipe, error)
	Search(ctx context.Context, query string) ([]models.Recipe, error)
	Create(ctx context.Context, rec models.Recipe) (models.Recipe, error)
	Update(ctx context.Context, id int, patch models.RecipePatch) (*models.Recipe, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Authorization covers account sign-up and token issuance/verification.
type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	AccountByID(id int) (*models.Account, error)
}

// Service aggregates all sub-services.
type Service struct {
	Catalog
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	return &Service{
		Catalog:       NewCatalogService(repos.Recipes),
		Authorization: NewAuthService(repos.Accounts),
	}
}

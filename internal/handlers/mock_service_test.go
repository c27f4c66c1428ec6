package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"recipebox/internal/models"
	"recipebox/internal/service"
	"recipebox/internal/uploads"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockCatalog struct {
	listRecipes []models.Recipe
	listErr     error
	getRecipe   *models.Recipe
	getErr      error
	created     models.Recipe
	createErr   error
	updated     *models.Recipe
	updateErr   error
	deleted     bool
	deleteErr   error

	lastSearch   string
	lastCategory string
	lastCreate   models.Recipe
	lastUpdateID int
	lastPatch    models.RecipePatch
	lastDeleteID int

	listCalls     int
	searchCalls   int
	categoryCalls int
	createCalls   int
	updateCalls   int
	deleteCalls   int
}

func (m *mockCatalog) List(ctx context.Context) ([]models.Recipe, error) {
	m.listCalls++
	return m.listRecipes, m.listErr
}

func (m *mockCatalog) Get(ctx context.Context, id int) (*models.Recipe, error) {
	return m.getRecipe, m.getErr
}

func (m *mockCatalog) ByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	m.categoryCalls++
	m.lastCategory = category
	return m.listRecipes, m.listErr
}

func (m *mockCatalog) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	m.searchCalls++
	m.lastSearch = query
	return m.listRecipes, m.listErr
}

func (m *mockCatalog) Create(ctx context.Context, rec models.Recipe) (models.Recipe, error) {
	m.createCalls++
	m.lastCreate = rec
	if m.createErr != nil {
		return models.Recipe{}, m.createErr
	}
	if m.created.ID == 0 {
		created := rec
		created.ID = 1
		return created, nil
	}
	return m.created, nil
}

func (m *mockCatalog) Update(ctx context.Context, id int, patch models.RecipePatch) (*models.Recipe, error) {
	m.updateCalls++
	m.lastUpdateID = id
	m.lastPatch = patch
	return m.updated, m.updateErr
}

func (m *mockCatalog) Delete(ctx context.Context, id int) (bool, error) {
	m.deleteCalls++
	m.lastDeleteID = id
	return m.deleted, m.deleteErr
}

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error
	account       *models.Account
	accountErr    error

	lastSignUpUsername string
	lastSignUpPassword string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) AccountByID(id int) (*models.Account, error) {
	return m.account, m.accountErr
}

// ---- Router / request helpers ----

func newTestRouter(t *testing.T, s *service.Service) (*gin.Engine, *uploads.Store) {
	t.Helper()
	store, err := uploads.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new uploads store: %v", err)
	}
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, store, nil)
	return h.InitRoutes(), store
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// multipartBody builds a multipart form with a 'recipe' JSON field and an
// optional image part.
func multipartBody(t *testing.T, recipeJSON string, imageName, imageType string, imageContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if recipeJSON != "" {
		if err := w.WriteField("recipe", recipeJSON); err != nil {
			t.Fatalf("write recipe field: %v", err)
		}
	}
	if imageName != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, imageName))
		hdr.Set("Content-Type", imageType)
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		if _, err := part.Write(imageContent); err != nil {
			t.Fatalf("write image part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

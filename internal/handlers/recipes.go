package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"recipebox/internal/models"
	"recipebox/internal/validation"

	"github.com/gin-gonic/gin"
)

// Common response/error message constants.
const (
	statusOK = "ok"

	errInvalidID       = "invalid recipe id"
	errRecipeNotFound  = "recipe not found"
	errMissingRecipe   = "missing 'recipe' form field"
	errMalformedRecipe = "malformed recipe JSON: "
	errListRecipes     = "failed to load recipes"
	errGetRecipe       = "failed to load recipe"
	errCreateRecipe    = "failed to create recipe"
	errUpdateRecipe    = "failed to update recipe"
	errDeleteRecipe    = "failed to delete recipe"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// parseIDParam coerces the :id route parameter; writes a 400 on failure.
func (h *Handler) parseIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      List recipes
// @Description  With ?category= returns exact category matches (checked first); with ?search= returns substring matches over title, description and ingredients; otherwise returns all recipes newest-first.
// @Tags         recipes
// @Produce      json
// @Param        category  query  string  false  "Category filter"  Enums(breakfast,lunch,dinner,desserts,drinks,other)
// @Param        search    query  string  false  "Search term"
// @Success      200  {array}   models.Recipe
// @Failure      500  {object}  map[string]string
// @Router       /api/recipes [get]
func (h *Handler) listRecipes(c *gin.Context) {
	ctx := c.Request.Context()

	// category takes precedence over search when both are supplied
	var (
		recipes []models.Recipe
		err     error
	)
	switch {
	case c.Query("category") != "":
		recipes, err = h.services.Catalog.ByCategory(ctx, c.Query("category"))
	case c.Query("search") != "":
		recipes, err = h.services.Catalog.Search(ctx, c.Query("search"))
	default:
		recipes, err = h.services.Catalog.List(ctx)
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListRecipes, "recipes_list_failed", err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

// @Summary      Get a recipe
// @Tags         recipes
// @Produce      json
// @Param        id   path      int  true  "Recipe id"
// @Success      200  {object}  models.Recipe
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/recipes/{id} [get]
func (h *Handler) getRecipe(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	rec, err := h.services.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetRecipe, "recipe_get_failed", err, "id", id)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errRecipeNotFound})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Create a recipe
// @Description  Multipart form: 'recipe' (JSON string of recipe fields) plus an optional 'image' file (max 5 MB, image/* only).
// @Tags         recipes
// @Accept       multipart/form-data
// @Produce      json
// @Param        recipe  formData  string  true   "Recipe JSON"
// @Param        image   formData  file    false  "Image file"
// @Success      201  {object}  models.Recipe
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/recipes [post]
func (h *Handler) createRecipe(c *gin.Context) {
	raw := c.PostForm("recipe")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingRecipe})
		return
	}

	lease, ok := h.acquireImage(c)
	if !ok {
		return
	}
	defer lease.Release()

	var payload validation.RecipePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMalformedRecipe + err.Error()})
		return
	}

	// injected before validation: upload URL and creation timestamp
	payload.CreatedAt = time.Now().UTC()
	if lease.URL() != "" {
		payload.ImageURL = lease.URL()
	}

	if errs := h.validate.ValidateCreate(&payload); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	created, err := h.services.Catalog.Create(c.Request.Context(), payload.ToRecipe())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateRecipe, "recipe_create_failed", err)
		return
	}

	lease.Commit()
	c.JSON(http.StatusCreated, created)
}

// @Summary      Update a recipe
// @Description  Multipart form: 'recipe' (JSON string of the fields to change) plus an optional replacement 'image'. Provided ingredients/steps arrays replace the stored ones wholesale.
// @Tags         recipes
// @Accept       multipart/form-data
// @Produce      json
// @Param        id      path      int     true   "Recipe id"
// @Param        recipe  formData  string  true   "Partial recipe JSON"
// @Param        image   formData  file    false  "Replacement image"
// @Success      200  {object}  models.Recipe
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/recipes/{id} [put]
func (h *Handler) updateRecipe(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	raw := c.PostForm("recipe")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingRecipe})
		return
	}

	lease, ok := h.acquireImage(c)
	if !ok {
		return
	}
	defer lease.Release()

	var payload validation.RecipeUpdate
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMalformedRecipe + err.Error()})
		return
	}

	if lease.URL() != "" {
		u := lease.URL()
		payload.ImageURL = &u
	}

	if errs := h.validate.ValidateUpdate(&payload); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	ctx := c.Request.Context()

	// previous image URL is needed to drop the replaced file afterwards
	prev, err := h.services.Catalog.Get(ctx, id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateRecipe, "recipe_update_failed", err, "id", id)
		return
	}
	if prev == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errRecipeNotFound})
		return
	}

	updated, err := h.services.Catalog.Update(ctx, id, payload.ToPatch())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateRecipe, "recipe_update_failed", err, "id", id)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errRecipeNotFound})
		return
	}

	lease.Commit()
	if lease.URL() != "" && prev.ImageURL != "" && prev.ImageURL != lease.URL() {
		if err := h.uploads.Remove(prev.ImageURL); err != nil && h.log != nil {
			h.log.Warnw("recipe_old_image_remove_failed", "err", err, "id", id, "url", prev.ImageURL)
		}
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete a recipe
// @Description  Removes the recipe and its image file on disk, if any.
// @Tags         recipes
// @Param        id  path  int  true  "Recipe id"
// @Success      204  "no content"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/recipes/{id} [delete]
func (h *Handler) deleteRecipe(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	rec, err := h.services.Catalog.Get(ctx, id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteRecipe, "recipe_delete_failed", err, "id", id)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errRecipeNotFound})
		return
	}

	deleted, err := h.services.Catalog.Delete(ctx, id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteRecipe, "recipe_delete_failed", err, "id", id)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": errRecipeNotFound})
		return
	}

	if rec.ImageURL != "" {
		if err := h.uploads.Remove(rec.ImageURL); err != nil && h.log != nil {
			h.log.Warnw("recipe_image_remove_failed", "err", err, "id", id, "url", rec.ImageURL)
		}
	}
	c.Status(http.StatusNoContent)
}

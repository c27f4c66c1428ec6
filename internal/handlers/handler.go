package handlers

import (
	"recipebox/internal/logger"
	"recipebox/internal/service"
	"recipebox/internal/uploads"
	"recipebox/internal/validation"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services, the upload store and logging.
type Handler struct {
	services *service.Service
	uploads  *uploads.Store
	validate *validation.RecipeValidator
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with its dependencies.
func NewHandler(services *service.Service, store *uploads.Store, log *logger.Logger) *Handler {
	return &Handler{
		services: services,
		uploads:  store,
		validate: validation.New(),
		log:      log,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Uploaded images are served straight from disk
	if h.uploads != nil {
		router.Static("/uploads", h.uploads.Dir())
	}

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Catalog API
	h.registerAPIRoutes(router)

	// Catalog feed over WebSocket — same port
	router.GET("/ws", h.wsCatalogFeed)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		h.registerRecipeRoutes(api)
		// The recipe API is open; only "who am I" needs a token.
		api.GET("/me", h.accountMiddleware, h.me)
	}
}

func (h *Handler) registerRecipeRoutes(api *gin.RouterGroup) {
	recipes := api.Group("/recipes")
	{
		recipes.GET("", h.listRecipes)
		recipes.GET("/:id", h.getRecipe)
		recipes.POST("", h.createRecipe)
		recipes.PUT("/:id", h.updateRecipe)
		recipes.DELETE("/:id", h.deleteRecipe)
	}
}

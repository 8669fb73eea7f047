package handlers

import (
	"brewlog/internal/logger"
	"brewlog/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services   *service.Service
	log        *logger.Logger
	uploadsDir string
}

// NewHandler constructs a new HTTP handler with dependencies.
// uploadsDir is where brew photos are stored; empty disables uploads.
func NewHandler(services *service.Service, log *logger.Logger, uploadsDir string) *Handler {
	return &Handler{services: services, log: log, uploadsDir: uploadsDir}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Brew timer over WebSocket (HTTP upgrade) — same port
	router.GET("/ws/timer", h.userIdMiddleware, h.wsTimer)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		auth.POST("/guest", h.guestSignIn)
		auth.POST("/migrate", h.userIdMiddleware, h.migrateGuest)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerEquipmentRoutes(api)
		h.registerCoffeeRoutes(api)
		h.registerRecipeRoutes(api)
		h.registerDraftRoutes(api)
		h.registerBrewRoutes(api)
		h.registerVisionRoutes(api)
		h.registerAdminRoutes(api)
	}
}

func (h *Handler) registerEquipmentRoutes(api *gin.RouterGroup) {
	grinders := api.Group("/grinders")
	{
		grinders.POST("/", h.createGrinder)
		grinders.GET("/", h.listGrinders)
		grinders.PUT("/:id", h.updateGrinder)
		grinders.DELETE("/:id", h.deleteGrinder)
	}
	brewers := api.Group("/brewers")
	{
		brewers.POST("/", h.createBrewer)
		brewers.GET("/", h.listBrewers)
		brewers.PUT("/:id", h.updateBrewer)
		brewers.DELETE("/:id", h.deleteBrewer)
	}
	servers := api.Group("/servers")
	{
		servers.POST("/", h.createServer)
		servers.GET("/", h.listServers)
		servers.PUT("/:id", h.updateServer)
		servers.DELETE("/:id", h.deleteServer)
	}
}

func (h *Handler) registerCoffeeRoutes(api *gin.RouterGroup) {
	beans := api.Group("/beans")
	{
		beans.POST("/", h.createBean)
		beans.GET("/", h.listBeans)
		beans.PUT("/:id", h.updateBean)
		beans.DELETE("/:id", h.deleteBean)
	}
	batches := api.Group("/batches")
	{
		batches.POST("/", h.createBatch)
		batches.GET("/", h.listBatches)
		batches.PUT("/:id", h.updateBatch)
		batches.DELETE("/:id", h.deleteBatch)
		batches.PATCH("/:id/consume", h.consumeBatch)
	}
}

func (h *Handler) registerRecipeRoutes(api *gin.RouterGroup) {
	recipes := api.Group("/recipes")
	{
		recipes.POST("/", h.createRecipe)
		recipes.GET("/", h.listRecipes)
		recipes.GET("/:id", h.getRecipe)
		recipes.PUT("/:id", h.updateRecipe)
		recipes.DELETE("/:id", h.deleteRecipe)
		recipes.PUT("/:id/favorite", h.setRecipeFavorite)
	}
}

func (h *Handler) registerDraftRoutes(api *gin.RouterGroup) {
	draft := api.Group("/draft")
	{
		draft.GET("/new", h.newDraft)
		draft.POST("/select-recipe", h.draftSelectRecipe)
		draft.POST("/edit", h.draftEdit)
		draft.POST("/resume", h.draftResume)
		draft.POST("/note", h.draftNote)
		draft.POST("/finalize", h.draftFinalize)
	}
}

func (h *Handler) registerBrewRoutes(api *gin.RouterGroup) {
	brews := api.Group("/brews")
	{
		brews.GET("/", h.listBrews)
		brews.GET("/export", h.exportBrews)
		brews.GET("/:id", h.getBrew)
		brews.PUT("/:id/evaluation", h.updateBrewEvaluation)
		brews.PUT("/:id/favorite", h.setBrewFavorite)
		brews.POST("/:id/photo", h.uploadBrewPhoto)
		brews.DELETE("/:id", h.deleteBrew)
	}
}

func (h *Handler) registerVisionRoutes(api *gin.RouterGroup) {
	vision := api.Group("/vision")
	{
		vision.POST("/bag-scan", h.scanBag)
	}
}

func (h *Handler) registerAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", h.adminMiddleware)
	{
		admin.GET("/stats", h.adminStats)
		admin.GET("/stats/brews-per-day", h.adminBrewsPerDay)
	}
}

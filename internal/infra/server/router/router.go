// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/core/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/core/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	transactionController *controller.TransactionController
	categoryController    *controller.CategoryController
	syncController        *controller.SyncController
	currencyController    *controller.CurrencyController
	preferenceController  *controller.PreferenceController
	authRateLimiter       *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	syncController *controller.SyncController,
	currencyController *controller.CurrencyController,
	preferenceController *controller.PreferenceController,
	authRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		transactionController: transactionController,
		categoryController:    categoryController,
		syncController:        syncController,
		currencyController:    currencyController,
		preferenceController:  preferenceController,
		authRateLimiter:       authRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes
		if r.authController != nil && r.authRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/signup", r.authRateLimiter.Middleware(), r.authController.SignUp)
				auth.POST("/signin", r.authRateLimiter.Middleware(), r.authController.SignIn)
				auth.POST("/signout", r.authController.SignOut)
				auth.POST("/guest", r.authController.EnterGuestMode)
				auth.GET("/session", r.authController.SessionState)
			}
		}

		// Transaction routes
		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
				transactions.POST("/:id/image", r.transactionController.AttachImage)
			}
		}

		// Category routes
		if r.categoryController != nil {
			categories := v1.Group("/categories")
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		// Sync routes
		if r.syncController != nil {
			sync := v1.Group("/sync")
			{
				sync.POST("/login", r.syncController.LogInSync)
				sync.POST("/signup", r.syncController.SignUpSync)
			}
		}

		// Currency route
		if r.currencyController != nil {
			v1.POST("/currency", r.currencyController.Change)
		}

		// Preference routes
		if r.preferenceController != nil {
			preferences := v1.Group("/preferences")
			{
				preferences.GET("/:key", r.preferenceController.Get)
				preferences.PUT("/:key", r.preferenceController.Set)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

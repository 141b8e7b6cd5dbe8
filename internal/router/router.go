// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/gramseva/resicert-backend/internal/config"
	"github.com/gramseva/resicert-backend/internal/handlers"
	"github.com/gramseva/resicert-backend/internal/middleware"
	"github.com/gramseva/resicert-backend/internal/services"
	"github.com/gramseva/resicert-backend/internal/store"
	"github.com/gramseva/resicert-backend/internal/utils"
)

// Initialize wires the production router on top of the gorm-backed stores.
func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	applicationStore := store.NewGormApplicationStore(db)
	roleStore := store.NewGormRoleStore(db)

	return New(cfg, applicationStore, roleStore)
}

// New builds the router from explicit store instances so tests can construct
// isolated registries instead of relying on process globals.
func New(cfg *config.Config, applicationStore store.ApplicationStore, roleStore store.RoleStore) *gin.Engine {
	// Initialize services
	roleService := services.NewRoleService(roleStore)
	applicationService := services.NewApplicationService(applicationStore, roleService)

	// Initialize handlers
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	roleHandler := handlers.NewRoleHandler(roleService)
	adminHandler := handlers.NewAdminHandler(applicationService, roleService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Application routes
		applications := v1.Group("/applications")
		applications.Use(middleware.AuthRequired())
		{
			applications.POST("", middleware.SubmitRateLimit(), applicationHandler.CreateApplication)
			applications.GET("/mine", applicationHandler.GetOwnApplications)
			applications.GET("/:number", applicationHandler.GetApplicationByNumber)
		}

		// Role routes
		roles := v1.Group("/roles")
		roles.Use(middleware.AuthRequired())
		{
			roles.GET("/me", roleHandler.GetCallerRole)
			roles.GET("/me/is-admin", roleHandler.IsCallerAdmin)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(roleService))
		{
			admin.GET("/applications", adminHandler.GetAllApplications)
			admin.PUT("/roles/:principal", adminHandler.AssignRole)
		}
	}

	return r
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/audit"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/config"
	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/handlers"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/middleware"
	ucAvailability "github.com/elinspetor87/ai-vision-studio-sub000/internal/usecase/availability"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/validators"
)

// Dependencies are the singletons built by main. DB is nil when the
// memory store is in use.
type Dependencies struct {
	Config  *config.Config
	Log     *zap.Logger
	Repo    domain.Repository
	Catalog *domain.SlotCatalog
	Audit   *audit.Dispatcher
	DB      *gorm.DB
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	if err := validators.Register(deps.Catalog); err != nil {
		deps.Log.Fatal("failed to register validators", zap.Error(err))
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// USE CASES
	// ======================================================
	checkUC := ucAvailability.NewCheckAvailability(deps.Repo, deps.Catalog)
	listUC := ucAvailability.NewListAvailability(deps.Repo)
	setUC := ucAvailability.NewSetAvailability(deps.Repo, deps.Catalog, deps.Audit)
	resetUC := ucAvailability.NewResetAvailability(deps.Repo, deps.Audit)
	copyUC := ucAvailability.NewCopyAvailability(deps.Repo, deps.Audit, deps.Log, cfg.CopyConcurrency)
	deleteUC := ucAvailability.NewDeleteAvailabilityRecord(deps.Repo, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		deps.Catalog,
		checkUC,
		listUC,
		setUC,
		resetUC,
		copyUC,
		deleteUC,
		deps.Log,
	)
	authHandler := handlers.NewAuthHandler(cfg, deps.Log)

	publicLimiter := middleware.NewRateLimiter(cfg.PublicRateLimitRPS, cfg.PublicRateLimitBurst)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/availability/slots", availabilityHandler.Slots)
		api.GET("/availability/check", publicLimiter.Middleware(), availabilityHandler.Check)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", publicLimiter.Middleware(), authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
		{
			admin.GET("/availability", availabilityHandler.List)
			admin.POST("/availability", availabilityHandler.Set)
			admin.POST("/availability/reset", availabilityHandler.Reset)
			admin.POST("/availability/copy", availabilityHandler.Copy)
			admin.DELETE("/availability/:id", availabilityHandler.Delete)

			if deps.DB != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB, deps.Log)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/audit"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/config"
	dbpkg "github.com/elinspetor87/ai-vision-studio-sub000/internal/db"
	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/infra/cache"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/infra/repository"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/logger"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/routes"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/timezone"
	ucAvailability "github.com/elinspetor87/ai-vision-studio-sub000/internal/usecase/availability"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/worker"
)

func main() {

	cfg := config.Load()
	log := logger.NewZapLogger(cfg)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.UsesDefaultJWTSecret() {
		log.Warn("JWT_SECRET is not set, admin tokens are signed with the default secret")
	}

	catalog, err := domain.NewSlotCatalog(cfg.SlotCatalog)
	if err != nil {
		log.Fatal("invalid SLOT_CATALOG", zap.Error(err))
	}
	if !timezone.IsValid(cfg.SiteTimezone) {
		log.Warn("unknown SITE_TIMEZONE, using UTC", zap.String("timezone", cfg.SiteTimezone))
	}

	// ======================================================
	// STORE + AUDIT
	// ======================================================
	var (
		db          *gorm.DB
		repo        domain.Repository
		auditWriter audit.Writer
	)

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		repo = repository.NewAvailabilityMemoryRepository()
		auditWriter = audit.NewZapWriter(log)
	case config.StoreDriverPostgres:
		db = dbpkg.NewDB(cfg, log)
		repo = repository.NewAvailabilityGormRepository(db)
		auditWriter = audit.New(db)
	default:
		log.Fatal("unknown STORE_DRIVER", zap.String("driver", cfg.StoreDriver))
	}

	if client := cache.NewRedisClient(cfg, log); client != nil {
		defer client.Close()
		repo = cache.NewAvailabilityCache(repo, client, cfg.CacheTTL, log)
	}

	auditDispatcher := audit.NewDispatcher(auditWriter, log)

	// ======================================================
	// WORKER
	// ======================================================
	var pruneWorker *worker.PruneWorker
	if cfg.PruneCron != "" {
		pruneUC := ucAvailability.NewPruneAvailability(repo, auditDispatcher, cfg.SiteTimezone, cfg.PruneRetentionDays)
		pruneWorker = worker.NewPruneWorker(log, pruneUC, cfg.PruneCron)
		pruneWorker.Start(context.Background())
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Dependencies{
		Config:  cfg,
		Log:     log,
		Repo:    repo,
		Catalog: catalog,
		Audit:   auditDispatcher,
		DB:      db,
	})

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	if pruneWorker != nil {
		pruneWorker.Stop()
	}
	auditDispatcher.Close()

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	log.Info("server exited")
}

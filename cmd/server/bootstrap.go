package main

import (
	"context"

	"github.com/huangang/boardmaster/internal/config"
	"github.com/huangang/boardmaster/internal/handlers"
	"github.com/huangang/boardmaster/internal/middleware"
	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/internal/services"
	"github.com/huangang/boardmaster/internal/services/access"
	"github.com/huangang/boardmaster/internal/utils"
	"github.com/huangang/boardmaster/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// appServices holds the shared services and schedulers the routes use.
type appServices struct {
	cfg          *config.Config
	db           *gorm.DB
	gate         *access.Gate
	auditService *services.AuditService
	limiter      *middleware.RateLimiter
	scheduler    *cron.Cron
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if cfg.Database.SeedDemo {
		if _, err := services.SeedDemoData(context.Background(), models.GetDB()); err != nil {
			logger.Warn().Err(err).Msg("Failed to seed demo data")
		}
	}

	if err := handlers.RegisterMetrics(models.GetDB()); err != nil {
		logger.Warn().Err(err).Msg("Failed to register database metrics")
	}

	app := newAppServices(cfg, models.GetDB())

	if cfg.Audit.Enabled {
		scheduler, err := services.StartAuditCleanup(app.auditService, cfg.Audit)
		if err != nil {
			logger.Warn().Err(err).Str("schedule", cfg.Audit.CleanupCron).Msg("Failed to schedule audit cleanup")
		}
		app.scheduler = scheduler
	}
	return app
}

// newAppServices wires services on an already migrated database.
func newAppServices(cfg *config.Config, db *gorm.DB) *appServices {
	app := &appServices{
		cfg:          cfg,
		db:           db,
		gate:         access.NewGateFromDB(db),
		auditService: services.NewAuditService(db),
	}
	if cfg.RateLimit.Enabled {
		app.limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	return app
}

// shutdown gracefully stops all background work.
func (s *appServices) shutdown() {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}
	if s.limiter != nil {
		s.limiter.Stop()
	}
	logger.Info().Msg("All schedulers stopped")

	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

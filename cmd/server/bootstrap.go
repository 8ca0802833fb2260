package main

import (
	"context"
	"time"

	"github.com/hubinova/backend/internal/config"
	"github.com/hubinova/backend/internal/drafts"
	"github.com/hubinova/backend/internal/handlers"
	"github.com/hubinova/backend/internal/middleware"
	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/internal/utils"
	"github.com/hubinova/backend/pkg/logger"
	"github.com/hubinova/backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg              *config.Config
	db               *gorm.DB
	registry         *prometheus.Registry
	metrics          *metrics.Metrics
	authLimiter      *middleware.RateLimiter
	accessLogService *services.AccessLogService
	stopBackground   context.CancelFunc

	authHandler           *handlers.AuthHandler
	userHandler           *handlers.UserHandler
	challengeHandler      *handlers.ChallengeHandler
	solutionHandler       *handlers.SolutionHandler
	solutionStatusHandler *handlers.SolutionStatusHandler
	eventHandler          *handlers.EventHandler
	newsHandler           *handlers.NewsHandler
	programInfoHandler    *handlers.ContentHandler
	howToHandler          *handlers.ContentHandler
	geralHandler          *handlers.GeralHandler
	statsHandler          *handlers.StatsHandler
	accessLogHandler      *handlers.AccessLogHandler
	uploadHandler         *handlers.UploadHandler
	draftHandler          *handlers.DraftHandler
	healthHandler         *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database, cfg.Log.Level); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(models.GetDB()); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	svc, err := newAppServices(ctx, cfg, models.GetDB())
	if err != nil {
		logger.Fatalf("Failed to initialize services: %v", err)
	}
	return svc
}

// newAppServices wires services and handlers over an open, migrated database.
func newAppServices(ctx context.Context, cfg *config.Config, db *gorm.DB) (*appServices, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)
	if sqlDB, err := db.DB(); err == nil {
		metrics.RegisterDBStats(registry, sqlDB, cfg.Database.Driver)
	}

	draftStore, err := drafts.New(ctx, cfg.Redis, cfg.DraftTTL())
	if err != nil {
		return nil, err
	}
	fileStore, err := services.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}

	notify := services.NewNotificationService(services.NewNotifier(cfg.WhatsApp), m)
	if !cfg.WhatsApp.Enabled {
		logger.Info().Msg("WhatsApp notifications disabled")
	}

	authService := services.NewAuthService(db, &cfg.JWT, notify)
	if cfg.SeedAdmin() {
		if err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
			logger.Warn().Err(err).Msg("Failed to create admin user")
		}
	}
	userService := services.NewUserService(db)
	accessLogService := services.NewAccessLogService(db, cfg.AccessLog.RetentionDays, m)

	return &appServices{
		cfg:              cfg,
		db:               db,
		registry:         registry,
		metrics:          m,
		authLimiter:      middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst),
		accessLogService: accessLogService,

		authHandler:           handlers.NewAuthHandler(authService, userService),
		userHandler:           handlers.NewUserHandler(userService),
		challengeHandler:      handlers.NewChallengeHandler(services.NewChallengeService(db, notify), draftStore),
		solutionHandler:       handlers.NewSolutionHandler(services.NewSolutionService(db, notify), draftStore),
		solutionStatusHandler: handlers.NewSolutionStatusHandler(services.NewSolutionStatusService(db)),
		eventHandler:          handlers.NewEventHandler(services.NewEventService(db)),
		newsHandler:           handlers.NewNewsHandler(services.NewNewsService(db)),
		programInfoHandler:    handlers.NewContentHandler(services.NewContentService(db, models.TableProgramInfo), "program info"),
		howToHandler:          handlers.NewContentHandler(services.NewContentService(db, models.TableHowToParticipate), "how to participate"),
		geralHandler:          handlers.NewGeralHandler(services.NewGeralService(db)),
		statsHandler:          handlers.NewStatsHandler(services.NewStatsService(db)),
		accessLogHandler:      handlers.NewAccessLogHandler(accessLogService),
		uploadHandler:         handlers.NewUploadHandler(services.NewUploadService(fileStore, cfg.Upload.MaxSizeMB)),
		draftHandler:          handlers.NewDraftHandler(draftStore),
		healthHandler:         handlers.NewHealthHandler(db),
	}, nil
}

// startBackground launches the retention scheduler and the limiter sweeper.
func (s *appServices) startBackground() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopBackground = cancel

	if err := s.accessLogService.StartScheduler(s.cfg.AccessLog.CleanupCron); err != nil {
		logger.Warn().Err(err).Str("cron", s.cfg.AccessLog.CleanupCron).Msg("Failed to schedule access log cleanup")
	}
	go s.authLimiter.Run(ctx)
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.accessLogService.StopScheduler()
	if s.stopBackground != nil {
		s.stopBackground()
	}
	logger.Info().Msg("All schedulers stopped")

	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

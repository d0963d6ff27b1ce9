package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-roster-api/api/swagger"
	"github.com/noah-isme/sma-roster-api/internal/handler"
	"github.com/noah-isme/sma-roster-api/internal/middleware"
	"github.com/noah-isme/sma-roster-api/internal/repository"
	"github.com/noah-isme/sma-roster-api/internal/repository/memory"
	"github.com/noah-isme/sma-roster-api/internal/repository/postgres"
	"github.com/noah-isme/sma-roster-api/internal/repository/remote"
	"github.com/noah-isme/sma-roster-api/internal/service"
	"github.com/noah-isme/sma-roster-api/pkg/cache"
	"github.com/noah-isme/sma-roster-api/pkg/config"
	"github.com/noah-isme/sma-roster-api/pkg/database"
	"github.com/noah-isme/sma-roster-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-roster-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-roster-api/pkg/middleware/requestid"
)

// @title School Roster API
// @version 1.0.0
// @description Students, teachers, grades, attendance and the roster dashboard.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

// backend is the opened record store plus what readiness should check and
// what shutdown should release.
type backend struct {
	store   repository.Store
	checks  map[string]handler.Checker
	closers []func() error
}

func openStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*backend, error) {
	b := &backend{checks: map[string]handler.Checker{}}
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		b.store = postgres.NewStore(db)
		b.checks["database"] = db.PingContext
		b.closers = append(b.closers, db.Close)
	case config.StorageRemote:
		client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIKey, cfg.Remote.Timeout, logr.Named("remote"))
		b.store = remote.NewStore(client)
		b.checks["records_api"] = client.Ping
	default:
		db := memory.NewDB()
		if cfg.Storage.SeedFile != "" {
			if err := db.LoadSeedFile(cfg.Storage.SeedFile); err != nil {
				return nil, err
			}
		}
		b.store = memory.NewStore(db)
	}
	logr.Info("record store ready", zap.String("driver", cfg.Storage.Driver))
	return b, nil
}

func openCache(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger, b *backend) *service.CacheService {
	if !cfg.Cache.Enabled {
		return service.NewCacheService(nil, metrics, cfg.Cache.DefaultTTL, logr, false)
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		return service.NewCacheService(nil, metrics, cfg.Cache.DefaultTTL, logr, false)
	}
	repo := repository.NewCacheRepository(client, logr)
	b.checks["cache"] = repo.Ping
	b.closers = append(b.closers, repo.Close)
	return service.NewCacheService(repo, metrics, cfg.Cache.DefaultTTL, logr, true)
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openStore(ctx, cfg, logr)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	metrics := service.NewMetricsService()
	cacheSvc := openCache(ctx, cfg, metrics, logr, b)
	defer func() {
		for _, closeFn := range b.closers {
			if err := closeFn(); err != nil {
				logr.Warn("close failed", zap.Error(err))
			}
		}
	}()

	store := b.store
	handlers := handler.Handlers{
		Students: handler.NewStudentHandler(
			service.NewStudentService(store.Students, nil, cacheSvc, metrics, logr),
			service.NewReportService(store.Students, store.Grades, store.Attendance, metrics, logr),
			service.NewExportService(store.Students, store.Grades, store.Attendance, metrics, logr),
		),
		Teachers:   handler.NewTeacherHandler(service.NewTeacherService(store.Teachers, nil, metrics, logr)),
		Grades:     handler.NewGradeHandler(service.NewGradeService(store.Grades, nil, cacheSvc, metrics, logr)),
		Attendance: handler.NewAttendanceHandler(service.NewAttendanceService(store.Attendance, nil, cacheSvc, metrics, logr)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(service.DashboardServiceParams{
			Students:   store.Students,
			Grades:     store.Grades,
			Attendance: store.Attendance,
			Cache:      cacheSvc,
			Metrics:    metrics,
			Logger:     logr,
			Config: service.DashboardServiceConfig{
				CacheTTL:     cfg.Dashboard.CacheTTL,
				SubjectLimit: cfg.Dashboard.SubjectLimit,
			},
		})),
		Health: handler.NewHealthHandler(metrics, b.checks),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handlers, handler.RouterOptions{
		APIPrefix:  cfg.APIPrefix,
		EnableDocs: cfg.Env != config.EnvProduction,
		Middleware: []gin.HandlerFunc{
			reqidmiddleware.Middleware(),
			logger.GinMiddleware(logr),
			corsmiddleware.New(cfg.CORS.AllowedOrigins),
			middleware.Metrics(metrics),
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

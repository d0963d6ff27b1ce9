package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster-api/internal/dto"
	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
	"github.com/noah-isme/sma-roster-api/internal/stats"
)

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL     time.Duration
	SubjectLimit int
}

// DashboardService composes the roster dashboard.
type DashboardService struct {
	loader  snapshotLoader
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students   repository.StudentRepository
	Grades     repository.GradeRepository
	Attendance repository.AttendanceRepository
	Cache      *CacheService
	Metrics    *MetricsService
	Logger     *zap.Logger
	Config     DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.SubjectLimit <= 0 {
		cfg.SubjectLimit = 5
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		loader: snapshotLoader{
			students:   params.Students,
			grades:     params.Grades,
			attendance: params.Attendance,
			metrics:    params.Metrics,
		},
		cache:   params.Cache,
		metrics: params.Metrics,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
}

// Summary returns the dashboard for today and whether it came from cache.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, bool, error) {
	now := s.now()
	cacheKey := fmt.Sprintf("dash:summary:%s", models.Today(now))

	if cached, hit := s.tryCache(ctx, cacheKey); hit {
		return cached, true, nil
	}

	snap, err := s.loader.load(ctx, 0)
	if err != nil {
		return nil, false, storeError(err, "dashboard data not found", "failed to load dashboard data")
	}

	start := time.Now()
	computed := stats.ComputeDashboard(snap.students, snap.grades, snap.attendance, now)
	summary := dto.NewDashboardResponse(computed, snap.students, now, s.cfg.SubjectLimit)
	s.metrics.ObserveDashboardCompute(time.Since(start))

	s.persistCache(ctx, cacheKey, &summary)
	return &summary, false, nil
}

// tryCache treats lookup failures as misses so a broken cache only costs a
// recompute.
func (s *DashboardService) tryCache(ctx context.Context, key string) (*dto.DashboardResponse, bool) {
	if !s.cache.Enabled() {
		return nil, false
	}
	var cached dto.DashboardResponse
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil || !hit {
		return nil, false
	}
	return &cached, true
}

func (s *DashboardService) persistCache(ctx context.Context, key string, value *dto.DashboardResponse) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard", zap.String("key", key), zap.Error(err))
	}
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

// CreateGradeRequest holds payload for recording a grade. Date defaults to
// today.
type CreateGradeRequest struct {
	StudentID int64   `json:"student_id"`
	Subject   string  `json:"subject"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
	Date      string  `json:"date"`
	Term      string  `json:"term"`
}

// GradeService handles grade use-cases.
type GradeService struct {
	repo      repository.GradeRepository
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewGradeService constructs the grade service.
func NewGradeService(repo repository.GradeRepository, validate *validator.Validate, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, validator: validate, cache: cache, metrics: metrics, logger: logger, now: time.Now}
}

// List returns grades matching filter.
func (s *GradeService) List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error) {
	grades, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "grade not found", "failed to list grades")
	}
	return grades, nil
}

// Get returns a grade by id.
func (s *GradeService) Get(ctx context.Context, id int64) (*models.Grade, error) {
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "grade not found", "failed to load grade")
	}
	return grade, nil
}

// Create records a grade.
func (s *GradeService) Create(ctx context.Context, req CreateGradeRequest) (*models.Grade, error) {
	grade := &models.Grade{
		StudentID: req.StudentID,
		Subject:   strings.TrimSpace(req.Subject),
		Score:     req.Score,
		MaxScore:  req.MaxScore,
		Date:      req.Date,
		Term:      req.Term,
	}
	if grade.Date == "" {
		grade.Date = models.Today(s.now())
	}
	if err := s.validator.Struct(grade); err != nil {
		return nil, validationError(err, "invalid grade payload")
	}
	if err := s.repo.Create(ctx, grade); err != nil {
		return nil, storeError(err, "grade not found", "failed to create grade")
	}
	s.afterWrite(ctx, "create")
	return grade, nil
}

// Update applies a partial patch to a grade.
func (s *GradeService) Update(ctx context.Context, id int64, patch models.GradePatch) (*models.Grade, error) {
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "grade not found", "failed to load grade")
	}
	patch.Apply(grade)
	grade.ID = id
	if err := s.validator.Struct(grade); err != nil {
		return nil, validationError(err, "invalid grade payload")
	}
	if err := s.repo.Update(ctx, grade); err != nil {
		return nil, storeError(err, "grade not found", "failed to update grade")
	}
	s.afterWrite(ctx, "update")
	return grade, nil
}

// Delete removes a grade.
func (s *GradeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "grade not found", "failed to delete grade")
	}
	s.afterWrite(ctx, "delete")
	return nil
}

func (s *GradeService) afterWrite(ctx context.Context, op string) {
	s.metrics.RecordWrite("grade", op)
	s.cache.InvalidateDashboard(ctx)
}

package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
)

const attendanceTaken = "attendance already recorded for this student and date"

// CreateAttendanceRequest holds payload for recording attendance. Date
// defaults to today.
type CreateAttendanceRequest struct {
	StudentID int64                   `json:"student_id"`
	Date      string                  `json:"date"`
	Status    models.AttendanceStatus `json:"status"`
	Notes     string                  `json:"notes"`
}

// AttendanceService handles attendance use-cases.
type AttendanceService struct {
	repo      repository.AttendanceRepository
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, validate *validator.Validate, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, validator: validate, cache: cache, metrics: metrics, logger: logger, now: time.Now}
}

// List returns attendance records matching filter.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "attendance record not found", "failed to list attendance")
	}
	return records, nil
}

// Get returns an attendance record by id.
func (s *AttendanceService) Get(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "attendance record not found", "failed to load attendance")
	}
	return record, nil
}

func (s *AttendanceService) build(req CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{
		StudentID: req.StudentID,
		Date:      req.Date,
		Status:    req.Status,
		Notes:     req.Notes,
	}
	if record.Date == "" {
		record.Date = models.Today(s.now())
	}
	if err := s.validator.Struct(record); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	return record, nil
}

// Create records attendance. A second record for the same student and date
// is a conflict.
func (s *AttendanceService) Create(ctx context.Context, req CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	record, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, writeError(err, attendanceTaken, "attendance record not found", "failed to create attendance")
	}
	s.afterWrite(ctx, "create")
	return record, nil
}

// Mark upserts the record for the request's student and date. An existing
// record keeps its id and has its status and notes replaced. created reports
// whether a new record was stored.
func (s *AttendanceService) Mark(ctx context.Context, req CreateAttendanceRequest) (record *models.AttendanceRecord, created bool, err error) {
	record, err = s.build(req)
	if err != nil {
		return nil, false, err
	}
	created, err = s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, false, writeError(err, attendanceTaken, "attendance record not found", "failed to mark attendance")
	}
	if created {
		s.afterWrite(ctx, "create")
	} else {
		s.afterWrite(ctx, "update")
	}
	return record, created, nil
}

// Update applies a partial patch to an attendance record.
func (s *AttendanceService) Update(ctx context.Context, id int64, patch models.AttendancePatch) (*models.AttendanceRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "attendance record not found", "failed to load attendance")
	}
	patch.Apply(record)
	record.ID = id
	if err := s.validator.Struct(record); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, writeError(err, attendanceTaken, "attendance record not found", "failed to update attendance")
	}
	s.afterWrite(ctx, "update")
	return record, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "attendance record not found", "failed to delete attendance")
	}
	s.afterWrite(ctx, "delete")
	return nil
}

func (s *AttendanceService) afterWrite(ctx context.Context, op string) {
	s.metrics.RecordWrite("attendance", op)
	s.cache.InvalidateDashboard(ctx)
}

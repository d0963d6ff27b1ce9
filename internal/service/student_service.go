package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
	appErrors "github.com/noah-isme/sma-roster-api/pkg/errors"
)

// CreateStudentRequest holds payload for creating students. Enrollment date
// and status default to today and active.
type CreateStudentRequest struct {
	FirstName      string               `json:"first_name"`
	LastName       string               `json:"last_name"`
	StudentCode    string               `json:"student_code"`
	GradeLevel     int                  `json:"grade_level"`
	Section        string               `json:"section"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	PhotoURL       string               `json:"photo_url"`
	EnrollmentDate string               `json:"enrollment_date"`
	Status         models.StudentStatus `json:"status"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service. cache and metrics may be nil.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, cache: cache, metrics: metrics, logger: logger, now: time.Now}
}

// List returns a page of students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	filter.Page, filter.PageSize = models.Paginate(filter.Page, filter.PageSize)
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "student not found", "failed to list students")
	}
	return students, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// All returns every student matching filter without pagination.
func (s *StudentService) All(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	filter.Page, filter.PageSize = 0, 0
	students, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "student not found", "failed to list students")
	}
	return students, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "student not found", "failed to load student")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		StudentCode:    strings.TrimSpace(req.StudentCode),
		GradeLevel:     req.GradeLevel,
		Section:        req.Section,
		Email:          strings.TrimSpace(req.Email),
		Phone:          req.Phone,
		PhotoURL:       req.PhotoURL,
		EnrollmentDate: req.EnrollmentDate,
		Status:         req.Status,
	}
	if student.EnrollmentDate == "" {
		student.EnrollmentDate = models.Today(s.now())
	}
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}
	if err := s.prepare(ctx, student, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, writeError(err, "student code already used", "student not found", "failed to create student")
	}
	s.afterWrite(ctx, "create", student.ID)
	return student, nil
}

// Update applies a partial patch to an existing student.
func (s *StudentService) Update(ctx context.Context, id int64, patch models.StudentPatch) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "student not found", "failed to load student")
	}
	patch.Apply(student)
	student.ID = id
	if err := s.prepare(ctx, student, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, writeError(err, "student code already used", "student not found", "failed to update student")
	}
	s.afterWrite(ctx, "update", id)
	return student, nil
}

// Delete removes a student. Their grades and attendance stay behind and drop
// out of per-student views.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "student not found", "failed to delete student")
	}
	s.afterWrite(ctx, "delete", id)
	return nil
}

// prepare normalises and validates student, then checks the code is unique.
func (s *StudentService) prepare(ctx context.Context, student *models.Student, excludeID int64) error {
	student.Section = strings.ToUpper(strings.TrimSpace(student.Section))
	if err := s.validator.Struct(student); err != nil {
		return validationError(err, "invalid student payload")
	}
	exists, err := s.repo.ExistsByCode(ctx, student.StudentCode, excludeID)
	if err != nil {
		return storeError(err, "student not found", "failed to validate student code")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "student code already used")
	}
	return nil
}

func (s *StudentService) afterWrite(ctx context.Context, op string, id int64) {
	s.metrics.RecordWrite("student", op)
	s.cache.InvalidateDashboard(ctx)
	s.logger.Info("student "+op, zap.Int64("student_id", id))
}

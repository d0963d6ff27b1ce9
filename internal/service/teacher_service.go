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

// CreateTeacherRequest holds payload for creating teachers. Employment status
// defaults to full-time and hire date to today.
type CreateTeacherRequest struct {
	FirstName        string                  `json:"first_name"`
	LastName         string                  `json:"last_name"`
	Email            string                  `json:"email"`
	Phone            string                  `json:"phone"`
	Department       string                  `json:"department"`
	Specialization   string                  `json:"specialization"`
	Qualifications   string                  `json:"qualifications"`
	ExperienceYears  int                     `json:"experience_years"`
	HireDate         string                  `json:"hire_date"`
	EmploymentStatus models.EmploymentStatus `json:"employment_status"`
	PhotoURL         string                  `json:"photo_url"`
}

// TeacherService handles teacher use-cases.
type TeacherService struct {
	repo      repository.TeacherRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(repo repository.TeacherRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, metrics: metrics, logger: logger, now: time.Now}
}

// List returns a page of teachers.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	switch filter.Experience {
	case "", models.ExperienceJunior, models.ExperienceMid, models.ExperienceSenior:
	default:
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "experience must be one of 0-5, 5-10, 10+")
	}
	filter.Page, filter.PageSize = models.Paginate(filter.Page, filter.PageSize)
	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "teacher not found", "failed to list teachers")
	}
	return teachers, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "teacher not found", "failed to load teacher")
	}
	return teacher, nil
}

// Create registers a teacher.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	teacher := &models.Teacher{
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            strings.TrimSpace(req.Email),
		Phone:            req.Phone,
		Department:       req.Department,
		Specialization:   req.Specialization,
		Qualifications:   req.Qualifications,
		ExperienceYears:  req.ExperienceYears,
		HireDate:         req.HireDate,
		EmploymentStatus: req.EmploymentStatus,
		PhotoURL:         req.PhotoURL,
	}
	if teacher.EmploymentStatus == "" {
		teacher.EmploymentStatus = models.EmploymentFullTime
	}
	if teacher.HireDate == "" {
		teacher.HireDate = models.Today(s.now())
	}
	if err := s.validator.Struct(teacher); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, storeError(err, "teacher not found", "failed to create teacher")
	}
	s.metrics.RecordWrite("teacher", "create")
	return teacher, nil
}

// Update applies a partial patch to a teacher.
func (s *TeacherService) Update(ctx context.Context, id int64, patch models.TeacherPatch) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "teacher not found", "failed to load teacher")
	}
	patch.Apply(teacher)
	teacher.ID = id
	if err := s.validator.Struct(teacher); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, storeError(err, "teacher not found", "failed to update teacher")
	}
	s.metrics.RecordWrite("teacher", "update")
	return teacher, nil
}

// Delete removes a teacher.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "teacher not found", "failed to delete teacher")
	}
	s.metrics.RecordWrite("teacher", "delete")
	return nil
}

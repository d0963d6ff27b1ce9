// Package repository declares the storage contracts for roster entities.
// Implementations live in the memory, postgres and remote subpackages and are
// interchangeable behind these interfaces.
package repository

import (
	"context"
	"errors"

	"github.com/noah-isme/sma-roster-api/internal/models"
)

var (
	// ErrNotFound is returned when no record exists for the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would break a uniqueness rule.
	ErrConflict = errors.New("record already exists")
	// ErrUnavailable wraps failures of a backing service the caller cannot fix.
	ErrUnavailable = errors.New("record store unavailable")
)

// StudentRepository persists students. Create assigns the id.
type StudentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// TeacherRepository persists teachers. Create assigns the id.
type TeacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// GradeRepository persists grades. Listing is unpaginated.
type GradeRepository interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.Grade, error)
	FindByID(ctx context.Context, id int64) (*models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

// AttendanceRepository persists attendance records. Listing is unpaginated.
// A student has at most one record per date. Upsert writes status and notes
// onto that record, creating it when missing, and reports whether it did.
type AttendanceRepository interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	FindByID(ctx context.Context, id int64) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Upsert(ctx context.Context, record *models.AttendanceRecord) (created bool, err error)
	Update(ctx context.Context, record *models.AttendanceRecord) error
	Delete(ctx context.Context, id int64) error
}

// Store bundles one implementation of every repository.
type Store struct {
	Students   StudentRepository
	Teachers   TeacherRepository
	Grades     GradeRepository
	Attendance AttendanceRepository
}

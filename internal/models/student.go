package models

import (
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"
)

// StudentStatus is the enrollment state of a student.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusInactive StudentStatus = "inactive"
)

// Student represents a learner on the roster.
type Student struct {
	ID             int64         `db:"id" json:"id"`
	FirstName      string        `db:"first_name" json:"first_name" validate:"required,max=100"`
	LastName       string        `db:"last_name" json:"last_name" validate:"required,max=100"`
	StudentCode    string        `db:"student_code" json:"student_code" validate:"required,max=50"`
	GradeLevel     int           `db:"grade_level" json:"grade_level" validate:"min=1,max=12"`
	Section        string        `db:"section" json:"section" validate:"len=1,alpha"`
	Email          string        `db:"email" json:"email" validate:"omitempty,email"`
	Phone          string        `db:"phone" json:"phone" validate:"max=50"`
	PhotoURL       string        `db:"photo_url" json:"photo_url" validate:"max=500"`
	EnrollmentDate string        `db:"enrollment_date" json:"enrollment_date" validate:"required,datetime=2006-01-02"`
	Status         StudentStatus `db:"status" json:"status" validate:"oneof=active inactive"`
}

// FullName joins first and last name.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// StudentFilter encapsulates allowed search parameters for listing students.
// A PageSize of zero or less returns every matching student.
type StudentFilter struct {
	Search     string
	GradeLevel int
	Section    string
	Status     StudentStatus
	Page       int
	PageSize   int
}

// Matches reports whether s satisfies the filter, ignoring pagination.
// Search is a case-insensitive substring match over full name, student code,
// email, grade level and section.
func (f StudentFilter) Matches(s Student) bool {
	if f.GradeLevel > 0 && s.GradeLevel != f.GradeLevel {
		return false
	}
	if f.Section != "" && !strings.EqualFold(s.Section, f.Section) {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	return containsFold(needle,
		s.FullName(),
		s.StudentCode,
		s.Email,
		strconv.Itoa(s.GradeLevel),
		s.Section,
	)
}

// StudentPatch carries a partial update. Only fields that are set are applied;
// an explicit empty string is a valid overwrite.
type StudentPatch struct {
	FirstName      null.String `json:"first_name"`
	LastName       null.String `json:"last_name"`
	StudentCode    null.String `json:"student_code"`
	GradeLevel     null.Int    `json:"grade_level"`
	Section        null.String `json:"section"`
	Email          null.String `json:"email"`
	Phone          null.String `json:"phone"`
	PhotoURL       null.String `json:"photo_url"`
	EnrollmentDate null.String `json:"enrollment_date"`
	Status         null.String `json:"status"`
}

// Apply copies set fields onto s.
func (p StudentPatch) Apply(s *Student) {
	applyString(&s.FirstName, p.FirstName)
	applyString(&s.LastName, p.LastName)
	applyString(&s.StudentCode, p.StudentCode)
	if p.GradeLevel.Valid {
		s.GradeLevel = p.GradeLevel.Int
	}
	applyString(&s.Section, p.Section)
	applyString(&s.Email, p.Email)
	applyString(&s.Phone, p.Phone)
	applyString(&s.PhotoURL, p.PhotoURL)
	applyString(&s.EnrollmentDate, p.EnrollmentDate)
	if p.Status.Valid {
		s.Status = StudentStatus(p.Status.String)
	}
}

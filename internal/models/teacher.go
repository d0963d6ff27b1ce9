package models

import (
	"strings"

	"github.com/volatiletech/null/v8"
)

// EmploymentStatus describes a teacher's contract type.
type EmploymentStatus string

const (
	EmploymentFullTime EmploymentStatus = "full-time"
	EmploymentPartTime EmploymentStatus = "part-time"
)

// Teacher represents an instructor record.
type Teacher struct {
	ID               int64            `db:"id" json:"id"`
	FirstName        string           `db:"first_name" json:"first_name" validate:"required,max=100"`
	LastName         string           `db:"last_name" json:"last_name" validate:"required,max=100"`
	Email            string           `db:"email" json:"email" validate:"omitempty,email"`
	Phone            string           `db:"phone" json:"phone" validate:"max=50"`
	Department       string           `db:"department" json:"department" validate:"max=100"`
	Specialization   string           `db:"specialization" json:"specialization" validate:"max=200"`
	Qualifications   string           `db:"qualifications" json:"qualifications" validate:"max=1000"`
	ExperienceYears  int              `db:"experience_years" json:"experience_years" validate:"min=0,max=80"`
	HireDate         string           `db:"hire_date" json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	EmploymentStatus EmploymentStatus `db:"employment_status" json:"employment_status" validate:"oneof=full-time part-time"`
	PhotoURL         string           `db:"photo_url" json:"photo_url" validate:"max=500"`
}

// FullName joins first and last name.
func (t Teacher) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// Experience buckets accepted by TeacherFilter.Experience.
const (
	ExperienceJunior = "0-5"
	ExperienceMid    = "5-10"
	ExperienceSenior = "10+"
)

// TeacherFilter captures filtering options for listing teachers.
// A PageSize of zero or less returns every matching teacher.
type TeacherFilter struct {
	Search           string
	Department       string
	EmploymentStatus EmploymentStatus
	Experience       string
	Page             int
	PageSize         int
}

// Matches reports whether t satisfies the filter, ignoring pagination.
// Experience buckets share their boundaries: five years is both 0-5 and 5-10.
func (f TeacherFilter) Matches(t Teacher) bool {
	if f.Department != "" && !strings.EqualFold(t.Department, f.Department) {
		return false
	}
	if f.EmploymentStatus != "" && t.EmploymentStatus != f.EmploymentStatus {
		return false
	}
	switch f.Experience {
	case ExperienceJunior:
		if t.ExperienceYears > 5 {
			return false
		}
	case ExperienceMid:
		if t.ExperienceYears < 5 || t.ExperienceYears > 10 {
			return false
		}
	case ExperienceSenior:
		if t.ExperienceYears < 10 {
			return false
		}
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	return containsFold(needle, t.FullName(), t.Email, t.Department, t.Specialization)
}

// TeacherPatch carries a partial teacher update.
type TeacherPatch struct {
	FirstName        null.String `json:"first_name"`
	LastName         null.String `json:"last_name"`
	Email            null.String `json:"email"`
	Phone            null.String `json:"phone"`
	Department       null.String `json:"department"`
	Specialization   null.String `json:"specialization"`
	Qualifications   null.String `json:"qualifications"`
	ExperienceYears  null.Int    `json:"experience_years"`
	HireDate         null.String `json:"hire_date"`
	EmploymentStatus null.String `json:"employment_status"`
	PhotoURL         null.String `json:"photo_url"`
}

// Apply copies set fields onto t.
func (p TeacherPatch) Apply(t *Teacher) {
	applyString(&t.FirstName, p.FirstName)
	applyString(&t.LastName, p.LastName)
	applyString(&t.Email, p.Email)
	applyString(&t.Phone, p.Phone)
	applyString(&t.Department, p.Department)
	applyString(&t.Specialization, p.Specialization)
	applyString(&t.Qualifications, p.Qualifications)
	if p.ExperienceYears.Valid {
		t.ExperienceYears = p.ExperienceYears.Int
	}
	applyString(&t.HireDate, p.HireDate)
	if p.EmploymentStatus.Valid {
		t.EmploymentStatus = EmploymentStatus(p.EmploymentStatus.String)
	}
	applyString(&t.PhotoURL, p.PhotoURL)
}

package models

import "github.com/volatiletech/null/v8"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusLate, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one day's attendance mark for a student.
type AttendanceRecord struct {
	ID        int64            `db:"id" json:"id"`
	StudentID int64            `db:"student_id" json:"student_id" validate:"gt=0"`
	Date      string           `db:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Status    AttendanceStatus `db:"status" json:"status" validate:"oneof=present late absent"`
	Notes     string           `db:"notes" json:"notes" validate:"max=1000"`
}

// AttendanceFilter scopes attendance listings. Zero values match everything.
type AttendanceFilter struct {
	StudentID int64
	Date      string
	Status    AttendanceStatus
}

// Matches reports whether r satisfies the filter.
func (f AttendanceFilter) Matches(r AttendanceRecord) bool {
	if f.StudentID > 0 && r.StudentID != f.StudentID {
		return false
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

// AttendancePatch carries a partial attendance update.
type AttendancePatch struct {
	StudentID null.Int64  `json:"student_id"`
	Date      null.String `json:"date"`
	Status    null.String `json:"status"`
	Notes     null.String `json:"notes"`
}

// Apply copies set fields onto r.
func (p AttendancePatch) Apply(r *AttendanceRecord) {
	if p.StudentID.Valid {
		r.StudentID = p.StudentID.Int64
	}
	applyString(&r.Date, p.Date)
	if p.Status.Valid {
		r.Status = AttendanceStatus(p.Status.String)
	}
	applyString(&r.Notes, p.Notes)
}

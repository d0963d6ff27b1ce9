package dto

import (
	"time"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/stats"
)

// DashboardResponse captures the roster dashboard payload.
type DashboardResponse struct {
	Date              string                  `json:"date"`
	GeneratedAt       time.Time               `json:"generated_at"`
	Students          StudentCounts           `json:"students"`
	Grades            GradesSection           `json:"grades"`
	TodaysAttendance  TodaysAttendance        `json:"todays_attendance"`
	RecentAttendance  []RecentAttendanceEntry `json:"recent_attendance"`
	TopSubjects       []stats.SubjectRollup   `json:"top_subjects"`
	StudentsByGrade   []stats.GradeLevelCount `json:"students_by_grade"`
	StudentsBySection []stats.SectionCount    `json:"students_by_section"`
}

// StudentCounts summarises roster size.
type StudentCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// GradesSection summarises every recorded grade. Letter and Tier stay empty
// when there are no grades.
type GradesSection struct {
	Count        int                    `json:"count"`
	ClassAverage float64                `json:"class_average"`
	Rounded      int                    `json:"rounded"`
	Letter       stats.Letter           `json:"letter,omitempty"`
	Tier         stats.Tier             `json:"tier,omitempty"`
	Distribution []GradeDistributionBin `json:"distribution"`
}

// GradeDistributionBin captures one letter bucket.
type GradeDistributionBin struct {
	Letter stats.Letter `json:"letter"`
	Count  int          `json:"count"`
}

// TodaysAttendance is the present ratio for the current day.
type TodaysAttendance struct {
	Date         string     `json:"date"`
	PresentCount int        `json:"present_count"`
	TotalCount   int        `json:"total_count"`
	Rate         float64    `json:"rate"`
	Rounded      int        `json:"rounded"`
	Tier         stats.Tier `json:"tier"`
}

// RecentAttendanceEntry is one row of the recent attendance feed.
type RecentAttendanceEntry struct {
	ID          int64                   `json:"id"`
	StudentID   int64                   `json:"student_id"`
	StudentName string                  `json:"student_name"`
	StudentCode string                  `json:"student_code"`
	Date        string                  `json:"date"`
	Status      models.AttendanceStatus `json:"status"`
	Notes       string                  `json:"notes,omitempty"`
}

// NewDashboardResponse shapes computed stats for the API. subjectLimit caps
// TopSubjects when positive.
func NewDashboardResponse(s stats.DashboardStats, students []models.Student, now time.Time, subjectLimit int) DashboardResponse {
	distribution := make([]GradeDistributionBin, 0, len(stats.Letters))
	for _, l := range stats.Letters {
		distribution = append(distribution, GradeDistributionBin{Letter: l, Count: s.GradeDistribution[l]})
	}

	joined := stats.JoinRecentAttendance(s.RecentAttendance, students)
	recent := make([]RecentAttendanceEntry, 0, len(joined))
	for _, e := range joined {
		recent = append(recent, RecentAttendanceEntry{
			ID:          e.Record.ID,
			StudentID:   e.Student.ID,
			StudentName: e.Student.FullName(),
			StudentCode: e.Student.StudentCode,
			Date:        e.Record.Date,
			Status:      e.Record.Status,
			Notes:       e.Record.Notes,
		})
	}

	subjects := s.Subjects
	if subjectLimit > 0 && len(subjects) > subjectLimit {
		subjects = subjects[:subjectLimit]
	}

	grades := GradesSection{
		Count:        s.GradeCount,
		ClassAverage: s.ClassAverage,
		Rounded:      stats.RoundPercent(s.ClassAverage),
		Distribution: distribution,
	}
	if s.GradeCount > 0 {
		grades.Letter = stats.LetterFor(s.ClassAverage)
		grades.Tier = stats.GradeTierFor(s.ClassAverage)
	}

	return DashboardResponse{
		Date:        s.TodaysAttendance.Date,
		GeneratedAt: now.UTC(),
		Students:    StudentCounts{Total: s.TotalStudents, Active: s.ActiveStudents},
		Grades:      grades,
		TodaysAttendance: TodaysAttendance{
			Date:         s.TodaysAttendance.Date,
			PresentCount: s.TodaysAttendance.PresentCount,
			TotalCount:   s.TodaysAttendance.TotalCount,
			Rate:         s.TodaysAttendance.Rate,
			Rounded:      stats.RoundPercent(s.TodaysAttendance.Rate),
			Tier:         s.TodaysAttendance.Tier,
		},
		RecentAttendance:  recent,
		TopSubjects:       subjects,
		StudentsByGrade:   s.GradeLevels,
		StudentsBySection: s.Sections,
	}
}

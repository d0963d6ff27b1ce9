package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/sma-roster-api/internal/models"
)

const (
	// RecentAttendanceDays is the number of calendar days in the trailing
	// window, today included.
	RecentAttendanceDays = 7
	// RecentAttendanceLimit caps the recent attendance feed.
	RecentAttendanceLimit = 10
)

// DayAttendance is the attendance ratio for a single calendar day.
type DayAttendance struct {
	Date         string  `json:"date"`
	PresentCount int     `json:"present_count"`
	TotalCount   int     `json:"total_count"`
	Rate         float64 `json:"rate"`
	Tier         Tier    `json:"tier"`
}

// GradeLevelCount is the number of students in one grade level.
type GradeLevelCount struct {
	GradeLevel int `json:"grade_level"`
	Count      int `json:"count"`
}

// SectionCount is the number of students in one section.
type SectionCount struct {
	Section string `json:"section"`
	Count   int    `json:"count"`
}

// DashboardStats is the full rollup behind the dashboard.
type DashboardStats struct {
	TotalStudents     int                       `json:"total_students"`
	ActiveStudents    int                       `json:"active_students"`
	GradeCount        int                       `json:"grade_count"`
	ClassAverage      float64                   `json:"class_average"`
	TodaysAttendance  DayAttendance             `json:"todays_attendance"`
	GradeDistribution map[Letter]int            `json:"grade_distribution"`
	RecentAttendance  []models.AttendanceRecord `json:"recent_attendance"`
	Subjects          []SubjectRollup           `json:"subjects"`
	GradeLevels       []GradeLevelCount         `json:"grade_levels"`
	Sections          []SectionCount            `json:"sections"`
}

// ComputeDashboard derives every dashboard aggregate from full snapshots.
// now fixes "today" as its local calendar day.
func ComputeDashboard(students []models.Student, grades []models.Grade, attendance []models.AttendanceRecord, now time.Time) DashboardStats {
	return DashboardStats{
		TotalStudents:     len(students),
		ActiveStudents:    ActiveCount(students),
		GradeCount:        len(grades),
		ClassAverage:      ClassAverage(grades),
		TodaysAttendance:  AttendanceOnDay(attendance, models.Today(now)),
		GradeDistribution: GradeDistribution(grades),
		RecentAttendance:  RecentAttendance(attendance, now, RecentAttendanceDays, RecentAttendanceLimit),
		Subjects:          RollupBySubject(grades),
		GradeLevels:       CountByGradeLevel(students),
		Sections:          CountBySection(students),
	}
}

// ActiveCount counts students whose status is active.
func ActiveCount(students []models.Student) int {
	n := 0
	for _, s := range students {
		if s.Status == models.StudentStatusActive {
			n++
		}
	}
	return n
}

// AttendanceOnDay computes present/total over records dated day. The rate is
// 0 when no record matches.
func AttendanceOnDay(records []models.AttendanceRecord, day string) DayAttendance {
	out := DayAttendance{Date: day}
	for _, r := range records {
		if r.Date != day {
			continue
		}
		out.TotalCount++
		if r.Status == models.AttendanceStatusPresent {
			out.PresentCount++
		}
	}
	if out.TotalCount > 0 {
		out.Rate = float64(out.PresentCount) / float64(out.TotalCount) * 100
	}
	out.Tier = AttendanceTierFor(out.Rate)
	return out
}

// RecentAttendance returns records dated within the last days calendar days,
// today included, newest first (ties broken by higher id), at most limit long.
// Records with unparseable or future dates are left out.
func RecentAttendance(records []models.AttendanceRecord, now time.Time, days, limit int) []models.AttendanceRecord {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	earliest := today.AddDate(0, 0, -(days - 1))

	type dated struct {
		record models.AttendanceRecord
		day    time.Time
	}
	window := make([]dated, 0)
	for _, r := range records {
		day, err := time.ParseInLocation(models.DateLayout, r.Date, loc)
		if err != nil || day.Before(earliest) || day.After(today) {
			continue
		}
		window = append(window, dated{record: r, day: day})
	}

	sort.SliceStable(window, func(i, j int) bool {
		if !window[i].day.Equal(window[j].day) {
			return window[i].day.After(window[j].day)
		}
		return window[i].record.ID > window[j].record.ID
	})

	if limit > 0 && len(window) > limit {
		window = window[:limit]
	}
	out := make([]models.AttendanceRecord, len(window))
	for i, d := range window {
		out[i] = d.record
	}
	return out
}

// RecentEntry pairs an attendance record with the student it belongs to.
type RecentEntry struct {
	Record  models.AttendanceRecord `json:"record"`
	Student models.Student          `json:"student"`
}

// JoinRecentAttendance resolves each record's student. Records whose student
// is unknown are dropped silently.
func JoinRecentAttendance(records []models.AttendanceRecord, students []models.Student) []RecentEntry {
	byID := make(map[int64]models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}
	out := make([]RecentEntry, 0, len(records))
	for _, r := range records {
		s, ok := byID[r.StudentID]
		if !ok {
			continue
		}
		out = append(out, RecentEntry{Record: r, Student: s})
	}
	return out
}

// CountByGradeLevel counts students per grade level, ascending.
func CountByGradeLevel(students []models.Student) []GradeLevelCount {
	counts := make(map[int]int)
	for _, s := range students {
		counts[s.GradeLevel]++
	}
	out := make([]GradeLevelCount, 0, len(counts))
	for level, n := range counts {
		out = append(out, GradeLevelCount{GradeLevel: level, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GradeLevel < out[j].GradeLevel })
	return out
}

// CountBySection counts students per section, ascending. Sections compare
// case-insensitively and are reported upper-cased.
func CountBySection(students []models.Student) []SectionCount {
	counts := make(map[string]int)
	for _, s := range students {
		counts[strings.ToUpper(s.Section)]++
	}
	out := make([]SectionCount, 0, len(counts))
	for section, n := range counts {
		out = append(out, SectionCount{Section: section, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out
}

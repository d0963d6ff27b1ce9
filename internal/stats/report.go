package stats

import (
	"sort"

	"github.com/noah-isme/sma-roster-api/internal/models"
)

// GradePoint is one grade plotted on a subject series.
type GradePoint struct {
	GradeID    int64   `json:"grade_id"`
	Date       string  `json:"date"`
	Term       string  `json:"term"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`
	Rounded    int     `json:"rounded"`
}

// SubjectSeries is a student's grades in one subject, oldest first.
type SubjectSeries struct {
	SubjectRollup
	Points []GradePoint `json:"points"`
}

// StudentReport is the drill-down view of one student. Nil summaries mean
// there was no data to summarise.
type StudentReport struct {
	Student    models.Student            `json:"student"`
	Grades     *GradeSummary             `json:"grade_summary"`
	Attendance *AttendanceSummary        `json:"attendance_summary"`
	Subjects   []SubjectSeries           `json:"subjects"`
	Records    []models.AttendanceRecord `json:"attendance"`
}

// BuildStudentReport assembles the report for student. Grades and attendance
// belonging to other students are ignored, so callers may pass unfiltered
// snapshots.
func BuildStudentReport(student models.Student, grades []models.Grade, attendance []models.AttendanceRecord) StudentReport {
	own := make([]models.Grade, 0, len(grades))
	for _, g := range grades {
		if g.StudentID == student.ID {
			own = append(own, g)
		}
	}
	records := make([]models.AttendanceRecord, 0, len(attendance))
	for _, r := range attendance {
		if r.StudentID == student.ID {
			records = append(records, r)
		}
	}

	report := StudentReport{Student: student, Subjects: subjectSeries(own), Records: records}
	if summary, ok := ComputeGradeSummary(own); ok {
		report.Grades = &summary
	}
	if summary, ok := ComputeAttendanceSummary(records); ok {
		report.Attendance = &summary
	}
	sort.SliceStable(report.Records, func(i, j int) bool {
		if report.Records[i].Date != report.Records[j].Date {
			return report.Records[i].Date > report.Records[j].Date
		}
		return report.Records[i].ID > report.Records[j].ID
	})
	return report
}

func subjectSeries(grades []models.Grade) []SubjectSeries {
	rollups := RollupBySubject(grades)
	index := make(map[string]int, len(rollups))
	series := make([]SubjectSeries, len(rollups))
	for i, r := range rollups {
		index[r.Subject] = i
		series[i] = SubjectSeries{SubjectRollup: r, Points: []GradePoint{}}
	}
	for _, g := range grades {
		pct, ok := g.Percentage()
		if !ok {
			continue
		}
		i := index[g.Subject]
		series[i].Points = append(series[i].Points, GradePoint{
			GradeID:    g.ID,
			Date:       g.Date,
			Term:       g.Term,
			Score:      g.Score,
			MaxScore:   g.MaxScore,
			Percentage: pct,
			Rounded:    RoundPercent(pct),
		})
	}
	for i := range series {
		points := series[i].Points
		sort.SliceStable(points, func(a, b int) bool { return points[a].Date < points[b].Date })
	}
	return series
}

// GradesByStudent groups grades by owning student id.
func GradesByStudent(grades []models.Grade) map[int64][]models.Grade {
	out := make(map[int64][]models.Grade)
	for _, g := range grades {
		out[g.StudentID] = append(out[g.StudentID], g)
	}
	return out
}

// AttendanceByStudent groups attendance records by owning student id.
func AttendanceByStudent(records []models.AttendanceRecord) map[int64][]models.AttendanceRecord {
	out := make(map[int64][]models.AttendanceRecord)
	for _, r := range records {
		out[r.StudentID] = append(out[r.StudentID], r)
	}
	return out
}

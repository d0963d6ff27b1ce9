package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster-api/internal/repository"
	"github.com/noah-isme/sma-roster-api/internal/stats"
)

// ReportService builds per-student drill-down reports.
type ReportService struct {
	loader snapshotLoader
	logger *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(students repository.StudentRepository, grades repository.GradeRepository, attendance repository.AttendanceRepository, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		loader: snapshotLoader{students: students, grades: grades, attendance: attendance, metrics: metrics},
		logger: logger,
	}
}

// StudentReport returns grade and attendance detail for one student.
func (s *ReportService) StudentReport(ctx context.Context, studentID int64) (*stats.StudentReport, error) {
	snap, err := s.loader.load(ctx, studentID)
	if err != nil {
		return nil, storeError(err, "student not found", "failed to load student report")
	}
	report := stats.BuildStudentReport(snap.students[0], snap.grades, snap.attendance)
	return &report, nil
}

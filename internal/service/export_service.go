package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository"
	"github.com/noah-isme/sma-roster-api/internal/stats"
	appErrors "github.com/noah-isme/sma-roster-api/pkg/errors"
	"github.com/noah-isme/sma-roster-api/pkg/export"
)

// Export formats accepted by ExportService.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportResult is a rendered roster document.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the student roster with each student's grade and
// attendance summary.
type ExportService struct {
	loader    snapshotLoader
	renderers map[string]tableRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(students repository.StudentRepository, grades repository.GradeRepository, attendance repository.AttendanceRepository, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		loader: snapshotLoader{students: students, grades: grades, attendance: attendance, metrics: metrics},
		renderers: map[string]tableRenderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

var rosterColumns = []string{"ID", "Student Code", "Name", "Grade", "Section", "Status", "Average", "Letter", "Attendance"}

// Roster renders every student matching filter in format.
func (s *ExportService) Roster(ctx context.Context, filter models.StudentFilter, format string) (*ExportResult, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	snap, err := s.loader.load(ctx, 0)
	if err != nil {
		return nil, storeError(err, "roster not found", "failed to load roster")
	}

	grades := stats.GradesByStudent(snap.grades)
	attendance := stats.AttendanceByStudent(snap.attendance)
	filter.Page, filter.PageSize = 0, 0

	table := export.Table{Title: "Student Roster " + models.Today(s.now()), Columns: rosterColumns}
	for _, st := range snap.students {
		if !filter.Matches(st) {
			continue
		}
		average, letter := "No grades", ""
		if summary, ok := stats.ComputeGradeSummary(grades[st.ID]); ok {
			average = fmt.Sprintf("%d%%", summary.Rounded)
			letter = string(summary.Letter)
		}
		rate := "No data"
		if summary, ok := stats.ComputeAttendanceSummary(attendance[st.ID]); ok {
			rate = fmt.Sprintf("%d%%", summary.Rounded)
		}
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(st.ID, 10),
			st.StudentCode,
			st.FullName(),
			strconv.Itoa(st.GradeLevel),
			st.Section,
			string(st.Status),
			average,
			letter,
			rate,
		})
	}

	body, err := renderer.Render(table)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render roster")
	}
	s.logger.Info("roster exported", zap.String("format", format), zap.Int("rows", len(table.Rows)))
	return &ExportResult{
		Filename:    fmt.Sprintf("roster_%s.%s", s.now().Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster-api/internal/models"
	appErrors "github.com/noah-isme/sma-roster-api/pkg/errors"
)

func newExportService() *ExportService {
	store := seededStore()
	svc := NewExportService(store.Students, store.Grades, store.Attendance, nil, nil)
	svc.now = fixedClock
	return svc
}

func TestExportServiceRosterCSV(t *testing.T) {
	svc := newExportService()

	result, err := svc.Roster(context.Background(), models.StudentFilter{}, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "roster_20240315_093000.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(result.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, rosterColumns, rows[0])
	assert.Equal(t, []string{"1", "STU-001", "Emma Johnson", "10", "A", "active", "85%", "B", "100%"}, rows[1])
	assert.Equal(t, []string{"2", "STU-002", "Liam Smith", "11", "B", "inactive", "60%", "D", "0%"}, rows[2])
}

func TestExportServiceAppliesFilter(t *testing.T) {
	svc := newExportService()

	result, err := svc.Roster(context.Background(), models.StudentFilter{GradeLevel: 11}, ExportFormatCSV)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(result.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "STU-002", rows[1][1])
}

func TestExportServiceRosterPDF(t *testing.T) {
	svc := newExportService()

	result, err := svc.Roster(context.Background(), models.StudentFilter{}, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Body, []byte("%PDF")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportService()

	_, err := svc.Roster(context.Background(), models.StudentFilter{}, "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

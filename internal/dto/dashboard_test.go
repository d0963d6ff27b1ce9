package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/stats"
)

func TestNewDashboardResponse(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	students := []models.Student{{ID: 1, FirstName: "Emma", LastName: "Johnson", StudentCode: "STU-001", GradeLevel: 10, Section: "A", Status: models.StudentStatusActive}}
	grades := []models.Grade{
		{ID: 1, StudentID: 1, Subject: "Math", Score: 90, MaxScore: 100},
		{ID: 2, StudentID: 1, Subject: "Science", Score: 80, MaxScore: 100},
		{ID: 3, StudentID: 1, Subject: "History", Score: 70, MaxScore: 100},
	}
	attendance := []models.AttendanceRecord{
		{ID: 1, StudentID: 1, Date: "2024-03-15", Status: models.AttendanceStatusPresent},
		{ID: 2, StudentID: 42, Date: "2024-03-15", Status: models.AttendanceStatusAbsent},
	}

	resp := NewDashboardResponse(stats.ComputeDashboard(students, grades, attendance, now), students, now, 2)

	assert.Equal(t, "2024-03-15", resp.Date)
	assert.Equal(t, StudentCounts{Total: 1, Active: 1}, resp.Students)
	assert.Equal(t, 80, resp.Grades.Rounded)
	assert.Equal(t, stats.LetterB, resp.Grades.Letter)
	require.Len(t, resp.Grades.Distribution, 5)
	assert.Equal(t, stats.LetterA, resp.Grades.Distribution[0].Letter)
	assert.Equal(t, 1, resp.Grades.Distribution[0].Count)
	assert.Equal(t, 50, resp.TodaysAttendance.Rounded)
	require.Len(t, resp.RecentAttendance, 1)
	assert.Equal(t, "Emma Johnson", resp.RecentAttendance[0].StudentName)
	require.Len(t, resp.TopSubjects, 2)
	assert.Equal(t, "Math", resp.TopSubjects[0].Subject)
}

func TestNewDashboardResponseWithoutGrades(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	resp := NewDashboardResponse(stats.ComputeDashboard(nil, nil, nil, now), nil, now, 5)

	assert.Zero(t, resp.Grades.Count)
	assert.Empty(t, resp.Grades.Letter)
	assert.Empty(t, resp.Grades.Tier)
	require.Len(t, resp.Grades.Distribution, 5)

	raw, err := json.Marshal(resp.Grades)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotContains(t, body, "letter")
	assert.NotContains(t, body, "tier")
	assert.Contains(t, body, "class_average")
}

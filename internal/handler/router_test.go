package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/repository/memory"
	"github.com/noah-isme/sma-roster-api/internal/service"
)

type apiEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, checks map[string]Checker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := memory.NewDB()
	require.NoError(t, db.Load(memory.Seed{
		Students: []models.Student{
			{ID: 1, FirstName: "Emma", LastName: "Johnson", StudentCode: "STU-001", GradeLevel: 10, Section: "A", EnrollmentDate: "2023-08-15", Status: models.StudentStatusActive},
			{ID: 2, FirstName: "Liam", LastName: "Smith", StudentCode: "STU-002", GradeLevel: 11, Section: "B", EnrollmentDate: "2023-08-15", Status: models.StudentStatusActive},
		},
		Grades: []models.Grade{
			{ID: 1, StudentID: 1, Subject: "Math", Score: 92, MaxScore: 100, Date: "2024-03-01"},
		},
		Attendance: []models.AttendanceRecord{
			{ID: 1, StudentID: 1, Date: "2024-03-14", Status: models.AttendanceStatusPresent},
		},
	}))
	store := memory.NewStore(db)
	metrics := service.NewMetricsService()

	handlers := Handlers{
		Students: NewStudentHandler(
			service.NewStudentService(store.Students, nil, nil, metrics, nil),
			service.NewReportService(store.Students, store.Grades, store.Attendance, metrics, nil),
			service.NewExportService(store.Students, store.Grades, store.Attendance, metrics, nil),
		),
		Teachers:   NewTeacherHandler(service.NewTeacherService(store.Teachers, nil, metrics, nil)),
		Grades:     NewGradeHandler(service.NewGradeService(store.Grades, nil, nil, metrics, nil)),
		Attendance: NewAttendanceHandler(service.NewAttendanceService(store.Attendance, nil, nil, metrics, nil)),
		Dashboard: NewDashboardHandler(service.NewDashboardService(service.DashboardServiceParams{
			Students: store.Students, Grades: store.Grades, Attendance: store.Attendance, Metrics: metrics,
		})),
		Health: NewHealthHandler(metrics, checks),
	}
	return NewRouter(handlers, RouterOptions{APIPrefix: "/api/v1"})
}

func perform(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestStudentRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := perform(r, http.MethodGet, "/api/v1/students?grade_level=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, 1, env.Pagination.TotalCount)

	rec = perform(r, http.MethodPost, "/api/v1/students", map[string]any{
		"first_name": "Olivia", "last_name": "Brown", "student_code": "STU-003", "grade_level": 9, "section": "c",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Student
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "C", created.Section)
	assert.Equal(t, models.StudentStatusActive, created.Status)

	rec = perform(r, http.MethodPost, "/api/v1/students", map[string]any{
		"first_name": "Copy", "last_name": "Cat", "student_code": "STU-003", "grade_level": 9, "section": "C",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = perform(r, http.MethodPatch, "/api/v1/students/3", map[string]any{"email": "olivia@school.edu"})
	require.Equal(t, http.StatusOK, rec.Code)
	var patched models.Student
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &patched))
	assert.Equal(t, "olivia@school.edu", patched.Email)
	assert.Equal(t, "Olivia", patched.FirstName)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/v1/students/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/api/v1/students/99", nil).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/v1/students?page=x", nil).Code)

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodDelete, "/api/v1/students/3", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodDelete, "/api/v1/students/3", nil).Code)
}

func TestStudentReportRoute(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := perform(r, http.MethodGet, "/api/v1/students/1/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report map[string]any
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &report))
	summary := report["grade_summary"].(map[string]any)
	assert.Equal(t, "A", summary["letter"])

	rec = perform(r, http.MethodGet, "/api/v1/students/2/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &report))
	assert.Nil(t, report["grade_summary"])
	assert.Nil(t, report["attendance_summary"])
}

func TestStudentExportRoute(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := perform(r, http.MethodGet, "/api/v1/students/export?status=active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), `attachment; filename="roster_`))
	assert.Contains(t, rec.Body.String(), "Liam Smith")
	assert.Contains(t, rec.Body.String(), "No grades")

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/v1/students/export?format=docx", nil).Code)
}

func TestTeacherRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := perform(r, http.MethodPost, "/api/v1/teachers", map[string]any{"first_name": "Sarah", "last_name": "Wilson", "experience_years": 12})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = perform(r, http.MethodGet, "/api/v1/teachers?experience=10%2B", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode(t, rec).Pagination.TotalCount)

	rec = perform(r, http.MethodGet, "/api/v1/teachers?experience=ancient", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)
}

func TestGradeRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := perform(r, http.MethodPost, "/api/v1/grades", map[string]any{"student_id": 2, "subject": "Art", "score": 7, "max_score": 10, "date": "2024-03-10"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = perform(r, http.MethodGet, "/api/v1/grades?student_id=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var grades []models.Grade
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &grades))
	require.Len(t, grades, 1)
	assert.Equal(t, "Art", grades[0].Subject)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/api/v1/grades", "not an object").Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/v1/grades?student_id=two", nil).Code)
}

func TestAttendanceMarkRoute(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := perform(r, http.MethodPut, "/api/v1/attendance/mark", map[string]any{"student_id": 2, "date": "2024-03-14", "status": "late"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = perform(r, http.MethodPut, "/api/v1/attendance/mark", map[string]any{"student_id": 2, "date": "2024-03-14", "status": "present"})
	require.Equal(t, http.StatusOK, rec.Code)
	var record models.AttendanceRecord
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &record))
	assert.Equal(t, int64(2), record.ID)
	assert.Equal(t, models.AttendanceStatusPresent, record.Status)

	rec = perform(r, http.MethodGet, "/api/v1/attendance?date=2024-03-14", nil)
	var records []models.AttendanceRecord
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &records))
	assert.Len(t, records, 2)
}

func TestAttendanceCreateSameDayIsConflict(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := perform(r, http.MethodPost, "/api/v1/attendance", map[string]any{"student_id": 1, "date": "2024-03-14", "status": "late"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFLICT")

	rec = perform(r, http.MethodPost, "/api/v1/attendance", map[string]any{"student_id": 1, "date": "2024-03-13", "status": "late"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestDashboardRoute(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := perform(r, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, false, env.Meta["cache_hit"])
	var body map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &body))
	students := body["students"].(map[string]any)
	assert.Equal(t, float64(2), students["total"])
}

func TestHealthReadyAndMetrics(t *testing.T) {
	r := newTestRouter(t, map[string]Checker{
		"store": func(context.Context) error { return nil },
		"cache": func(context.Context) error { return errors.New("dial tcp: refused") },
	})

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/health", nil).Code)

	rec := perform(r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "dial tcp: refused")

	perform(r, http.MethodGet, "/api/v1/students", nil)
	rec = perform(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dashboard_compute_seconds")
}

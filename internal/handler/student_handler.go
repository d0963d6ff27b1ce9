package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-roster-api/internal/models"
	"github.com/noah-isme/sma-roster-api/internal/service"
	"github.com/noah-isme/sma-roster-api/pkg/response"
)

// StudentHandler exposes student endpoints, including the per-student report
// and roster export.
type StudentHandler struct {
	students *service.StudentService
	reports  *service.ReportService
	exports  *service.ExportService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, reports *service.ReportService, exports *service.ExportService) *StudentHandler {
	return &StudentHandler{students: students, reports: reports, exports: exports}
}

func studentFilter(c *gin.Context) (models.StudentFilter, bool) {
	filter := models.StudentFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Section: strings.TrimSpace(c.Query("section")),
		Status:  models.StudentStatus(strings.TrimSpace(c.Query("status"))),
	}
	var ok bool
	if filter.GradeLevel, ok = queryInt(c, "grade_level"); !ok {
		return filter, false
	}
	return filter, true
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by name, code, email, grade or section"
// @Param grade_level query int false "Filter by grade level"
// @Param section query string false "Filter by section"
// @Param status query string false "active or inactive"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter, ok := studentFilter(c)
	if !ok {
		return
	}
	if filter.Page, filter.PageSize, ok = paging(c); !ok {
		return
	}
	students, pagination, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Patch student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body models.StudentPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch models.StudentPatch
	if !bindJSON(c, &patch) {
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Param id path int true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Report godoc
// @Summary Student grade and attendance report
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/report [get]
func (h *StudentHandler) Report(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	report, err := h.reports.StudentReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Export godoc
// @Summary Export student roster
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param grade_level query int false "Filter by grade level"
// @Param section query string false "Filter by section"
// @Param status query string false "active or inactive"
// @Success 200 {file} file
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	filter, ok := studentFilter(c)
	if !ok {
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", service.ExportFormatCSV))
	result, err := h.exports.Roster(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}

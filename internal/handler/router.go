package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/sma-roster-api/internal/middleware"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Students   *StudentHandler
	Teachers   *TeacherHandler
	Grades     *GradeHandler
	Attendance *AttendanceHandler
	Dashboard  *DashboardHandler
	Health     *HealthHandler
}

// RouterOptions controls mounting.
type RouterOptions struct {
	APIPrefix  string
	EnableDocs bool
	// Middleware runs before routing, after recovery.
	Middleware []gin.HandlerFunc
}

// NewRouter mounts health and metrics at the root and the roster API under
// opts.APIPrefix.
func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(opts.Middleware...)

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", h.Health.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := opts.APIPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix, middleware.WithResponseMeta())

	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/export", h.Students.Export)
	students.GET("/:id", h.Students.Get)
	students.PATCH("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)
	students.GET("/:id/report", h.Students.Report)

	teachers := api.Group("/teachers")
	teachers.GET("", h.Teachers.List)
	teachers.POST("", h.Teachers.Create)
	teachers.GET("/:id", h.Teachers.Get)
	teachers.PATCH("/:id", h.Teachers.Update)
	teachers.DELETE("/:id", h.Teachers.Delete)

	grades := api.Group("/grades")
	grades.GET("", h.Grades.List)
	grades.POST("", h.Grades.Create)
	grades.GET("/:id", h.Grades.Get)
	grades.PATCH("/:id", h.Grades.Update)
	grades.DELETE("/:id", h.Grades.Delete)

	attendance := api.Group("/attendance")
	attendance.GET("", h.Attendance.List)
	attendance.POST("", h.Attendance.Create)
	attendance.PUT("/mark", h.Attendance.Mark)
	attendance.GET("/:id", h.Attendance.Get)
	attendance.PATCH("/:id", h.Attendance.Update)
	attendance.DELETE("/:id", h.Attendance.Delete)

	api.GET("/dashboard", h.Dashboard.Summary)

	return r
}

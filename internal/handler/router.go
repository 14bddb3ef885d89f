package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edu-report/report-card-api/internal/middleware"
)

// Handlers groups every route handler of the API.
type Handlers struct {
	Terms       *TermHandler
	Catalog     *CatalogHandler
	Grades      *GradeHandler
	Matrix      *MatrixHandler
	TestResults *TestResultHandler
	Reports     *ReportHandler
	Analytics   *AnalyticsHandler
	Exports     *ExportHandler
	Metrics     *MetricsHandler
}

// Register mounts all routes under the API prefix. Read endpoints are open;
// mutating endpoints require a valid access token.
func Register(r *gin.Engine, prefix, jwtSecret string, h Handlers) {
	api := r.Group(prefix)
	protected := api.Group("", middleware.JWT(jwtSecret))

	api.GET("/terms/resolve", h.Terms.Resolve)
	api.GET("/terms", h.Terms.ListTerms)
	api.GET("/academic-years", h.Terms.ListYears)
	api.GET("/academic-years/resolve", h.Terms.ResolveYear)
	protected.POST("/terms", h.Terms.CreateTerm)
	protected.POST("/academic-years", h.Terms.CreateYear)

	api.GET("/programs/:id/courses", h.Catalog.ProgramCourses)
	api.GET("/programs/:id/students", h.Catalog.ProgramStudents)
	api.GET("/students/:id", h.Catalog.Student)
	api.GET("/courses/:id", h.Catalog.Course)

	api.POST("/grades/validate", h.Grades.Validate)
	api.GET("/grading-scales/:id", h.Grades.Scale)
	api.GET("/grading-scales/:id/codes", h.Grades.Codes)

	api.GET("/courses/:id/matrix", h.Matrix.Build)

	api.GET("/test-results", h.TestResults.List)
	protected.POST("/test-results", h.TestResults.Create)

	api.GET("/student-reports/card", h.Reports.Card)
	api.GET("/student-reports/card/pdf", h.Exports.ReportCardPDF)
	api.GET("/student-reports/:id", h.Reports.Get)
	protected.POST("/student-reports", h.Reports.Create)
	protected.PUT("/student-reports/details/:detailId/grade", h.Reports.SetTermGrade)

	api.GET("/reports/course-summary", h.Reports.CourseSummary)
	api.GET("/reports/overall", h.Reports.Overall)

	protected.POST("/term-comments", h.Reports.CreateTermComment)
	protected.POST("/director-messages", h.Reports.CreateDirectorMessage)

	api.GET("/analytics/class-overview", h.Analytics.ClassOverview)
	api.GET("/analytics/class-overview/csv", h.Exports.ClassOverviewCSV)
	api.GET("/analytics/system", h.Analytics.System)

	r.GET("/metrics", h.Metrics.Scrape)
}

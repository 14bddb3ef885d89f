package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-report/report-card-api/internal/models"
	"github.com/edu-report/report-card-api/internal/service"
	"github.com/edu-report/report-card-api/pkg/response"
)

// AnalyticsHandler exposes the class overview and system metrics snapshot.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	metrics   *service.MetricsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, metrics *service.MetricsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, metrics: metrics}
}

// ClassOverview godoc
// @Summary Class test overview with grouped averages
// @Tags Analytics
// @Produce json
// @Param academicYearId query string true "Academic year ID"
// @Param programId query string false "Filter by program"
// @Param courseId query string false "Filter by course"
// @Param termId query string false "Filter by term"
// @Param testType query string false "Filter by test type"
// @Param studentId query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /analytics/class-overview [get]
func (h *AnalyticsHandler) ClassOverview(c *gin.Context) {
	overview, err := h.analytics.ClassOverview(c.Request.Context(), overviewFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// System godoc
// @Summary Aggregated runtime metrics snapshot
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/system [get]
func (h *AnalyticsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}

func overviewFilter(c *gin.Context) models.ClassOverviewFilter {
	return models.ClassOverviewFilter{
		AcademicYearID: c.Query("academicYearId"),
		ProgramID:      c.Query("programId"),
		CourseID:       c.Query("courseId"),
		TermID:         c.Query("termId"),
		TestType:       models.TestType(c.Query("testType")),
		StudentID:      c.Query("studentId"),
	}
}

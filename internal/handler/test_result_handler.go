package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-report/report-card-api/internal/models"
	"github.com/edu-report/report-card-api/internal/service"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
	"github.com/edu-report/report-card-api/pkg/response"
)

// TestResultHandler exposes test result endpoints.
type TestResultHandler struct {
	results *service.TestResultService
}

// NewTestResultHandler constructs handler.
func NewTestResultHandler(results *service.TestResultService) *TestResultHandler {
	return &TestResultHandler{results: results}
}

// Create godoc
// @Summary Record a graded test sheet
// @Tags TestResults
// @Accept json
// @Produce json
// @Param payload body service.CreateTestResultRequest true "Test result payload"
// @Success 201 {object} response.Envelope
// @Router /test-results [post]
func (h *TestResultHandler) Create(c *gin.Context) {
	var req service.CreateTestResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.results.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List test results
// @Tags TestResults
// @Produce json
// @Param studentId query string false "Filter by student"
// @Param courseId query string false "Filter by course"
// @Param programId query string false "Filter by program"
// @Param academicYearId query string false "Filter by academic year"
// @Param termId query string false "Filter by term"
// @Param testType query string false "Filter by test type"
// @Success 200 {object} response.Envelope
// @Router /test-results [get]
func (h *TestResultHandler) List(c *gin.Context) {
	filter := models.TestResultFilter{
		StudentID:      c.Query("studentId"),
		CourseID:       c.Query("courseId"),
		ProgramID:      c.Query("programId"),
		AcademicYearID: c.Query("academicYearId"),
		TermID:         c.Query("termId"),
		TestType:       models.TestType(c.Query("testType")),
	}
	results, err := h.results.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

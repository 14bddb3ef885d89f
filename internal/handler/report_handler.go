package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-report/report-card-api/internal/service"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
	"github.com/edu-report/report-card-api/pkg/response"
)

// ReportHandler exposes student report and report card endpoints.
type ReportHandler struct {
	reports    *service.ReportService
	aggregator *service.AggregationService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService, aggregator *service.AggregationService) *ReportHandler {
	return &ReportHandler{reports: reports, aggregator: aggregator}
}

// SetTermGradeRequest writes one term grade of a report detail row.
type SetTermGradeRequest struct {
	Term int    `json:"term"`
	Code string `json:"code"`
}

// Create godoc
// @Summary Open a student report for a course
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body service.CreateReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Router /student-reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req service.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	report, err := h.reports.CreateReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// Get godoc
// @Summary Get a student report with its detail rows
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /student-reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reports.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// SetTermGrade godoc
// @Summary Write one term grade of a report detail row
// @Tags Reports
// @Accept json
// @Produce json
// @Param detailId path string true "Report detail ID"
// @Param payload body SetTermGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /student-reports/details/{detailId}/grade [put]
func (h *ReportHandler) SetTermGrade(c *gin.Context) {
	var req SetTermGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	validation, err := h.reports.SetTermGrade(c.Request.Context(), c.Param("detailId"), req.Term, req.Code)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrInvalidGrade) {
			// The field was reset; the allowed codes travel with the error body.
			appErr := appErrors.FromError(err)
			c.JSON(appErr.Status, response.Envelope{Error: appErr, Data: validation})
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, validation, nil)
}

// Card godoc
// @Summary Assemble a student's full report card
// @Tags Reports
// @Produce json
// @Param studentId query string true "Student ID"
// @Param programId query string true "Program ID"
// @Param academicYearId query string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /student-reports/card [get]
func (h *ReportHandler) Card(c *gin.Context) {
	studentID, programID, yearID := c.Query("studentId"), c.Query("programId"), c.Query("academicYearId")
	if studentID == "" || programID == "" || yearID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId, programId and academicYearId are required"))
		return
	}
	card, err := h.reports.AssembleCard(c.Request.Context(), studentID, programID, yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card, nil)
}

// CourseSummary godoc
// @Summary Aggregate one student's course scores per term
// @Tags Reports
// @Produce json
// @Param studentId query string true "Student ID"
// @Param courseId query string true "Course ID"
// @Param programId query string true "Program ID"
// @Param academicYearId query string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /reports/course-summary [get]
func (h *ReportHandler) CourseSummary(c *gin.Context) {
	studentID, courseID := c.Query("studentId"), c.Query("courseId")
	programID, yearID := c.Query("programId"), c.Query("academicYearId")
	if studentID == "" || courseID == "" || programID == "" || yearID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId, courseId, programId and academicYearId are required"))
		return
	}
	summary, err := h.aggregator.CourseSummary(c.Request.Context(), studentID, courseID, programID, yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Overall godoc
// @Summary Average a student's trimester totals across all program courses
// @Tags Reports
// @Produce json
// @Param studentId query string true "Student ID"
// @Param programId query string true "Program ID"
// @Param academicYearId query string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /reports/overall [get]
func (h *ReportHandler) Overall(c *gin.Context) {
	studentID, programID, yearID := c.Query("studentId"), c.Query("programId"), c.Query("academicYearId")
	if studentID == "" || programID == "" || yearID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId, programId and academicYearId are required"))
		return
	}
	overall, err := h.aggregator.OverallTermAverages(c.Request.Context(), studentID, programID, yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overall, nil)
}

// CreateTermComment godoc
// @Summary Store a teacher's term comments for a student
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body service.CreateTermCommentRequest true "Comment payload"
// @Success 201 {object} response.Envelope
// @Router /term-comments [post]
func (h *ReportHandler) CreateTermComment(c *gin.Context) {
	var req service.CreateTermCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	comment, err := h.reports.CreateTermComment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// CreateDirectorMessage godoc
// @Summary Store the director's report card message for a program
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body service.CreateDirectorMessageRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Router /director-messages [post]
func (h *ReportHandler) CreateDirectorMessage(c *gin.Context) {
	var req service.CreateDirectorMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	message, err := h.reports.CreateDirectorMessage(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

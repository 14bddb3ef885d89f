package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/edu-report/report-card-api/internal/service"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
	"github.com/edu-report/report-card-api/pkg/response"
)

// ExportHandler streams rendered report card and overview documents.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ReportCardPDF godoc
// @Summary Download a student's report card as PDF
// @Tags Exports
// @Produce application/pdf
// @Param studentId query string true "Student ID"
// @Param programId query string true "Program ID"
// @Param academicYearId query string true "Academic year ID"
// @Success 200 {file} binary
// @Router /student-reports/card/pdf [get]
func (h *ExportHandler) ReportCardPDF(c *gin.Context) {
	studentID, programID, yearID := c.Query("studentId"), c.Query("programId"), c.Query("academicYearId")
	if studentID == "" || programID == "" || yearID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId, programId and academicYearId are required"))
		return
	}
	payload, err := h.exports.ReportCardPDF(c.Request.Context(), studentID, programID, yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeDownload(c, payload)
}

// ClassOverviewCSV godoc
// @Summary Download the class overview rows as CSV
// @Tags Exports
// @Produce text/csv
// @Param academicYearId query string true "Academic year ID"
// @Param programId query string false "Filter by program"
// @Param courseId query string false "Filter by course"
// @Param termId query string false "Filter by term"
// @Param testType query string false "Filter by test type"
// @Param studentId query string false "Filter by student"
// @Success 200 {file} binary
// @Router /analytics/class-overview/csv [get]
func (h *ExportHandler) ClassOverviewCSV(c *gin.Context) {
	payload, err := h.exports.ClassOverviewCSV(c.Request.Context(), overviewFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeDownload(c, payload)
}

func writeDownload(c *gin.Context, payload *service.ExportPayload) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename))
	c.Data(200, payload.ContentType, payload.Data)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-report/report-card-api/internal/service"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
	"github.com/edu-report/report-card-api/pkg/response"
)

// GradeHandler exposes grading scale endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs handler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// ValidateGradeRequest is the payload for grade code validation.
type ValidateGradeRequest struct {
	Code           string `json:"code"`
	GradingScaleID string `json:"grading_scale_id"`
}

// Validate godoc
// @Summary Validate a grade code against a grading scale
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body ValidateGradeRequest true "Validation payload"
// @Success 200 {object} response.Envelope
// @Router /grades/validate [post]
func (h *GradeHandler) Validate(c *gin.Context) {
	var req ValidateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.grades.ValidateGrade(c.Request.Context(), req.Code, req.GradingScaleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Scale godoc
// @Summary Get a grading scale with its intervals
// @Tags Grades
// @Produce json
// @Param id path string true "Grading scale ID"
// @Success 200 {object} response.Envelope
// @Router /grading-scales/{id} [get]
func (h *GradeHandler) Scale(c *gin.Context) {
	scale, err := h.grades.Scale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scale, nil)
}

// Codes godoc
// @Summary List the ordered grade codes of a scale
// @Tags Grades
// @Produce json
// @Param id path string true "Grading scale ID"
// @Success 200 {object} response.Envelope
// @Router /grading-scales/{id}/codes [get]
func (h *GradeHandler) Codes(c *gin.Context) {
	codes, err := h.grades.AllowedCodes(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, codes, nil)
}

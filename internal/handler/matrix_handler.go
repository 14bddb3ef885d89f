package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-report/report-card-api/internal/service"
	"github.com/edu-report/report-card-api/pkg/response"
)

// MatrixHandler exposes the course topic/competency matrix.
type MatrixHandler struct {
	matrix *service.MatrixService
}

// NewMatrixHandler constructs handler.
func NewMatrixHandler(matrix *service.MatrixService) *MatrixHandler {
	return &MatrixHandler{matrix: matrix}
}

// Build godoc
// @Summary Get the topic/competency matrix of a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/matrix [get]
func (h *MatrixHandler) Build(c *gin.Context) {
	matrix, err := h.matrix.Build(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matrix, nil)
}

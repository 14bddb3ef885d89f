package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-report/report-card-api/internal/service"
	"github.com/edu-report/report-card-api/pkg/response"
)

// CatalogHandler exposes the read-only lookup endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ProgramCourses godoc
// @Summary List the courses of a program
// @Tags Catalog
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} response.Envelope
// @Router /programs/{id}/courses [get]
func (h *CatalogHandler) ProgramCourses(c *gin.Context) {
	courses, err := h.catalog.ProgramCourses(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// ProgramStudents godoc
// @Summary List the students enrolled in a program for a year
// @Tags Catalog
// @Produce json
// @Param id path string true "Program ID"
// @Param academicYearId query string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /programs/{id}/students [get]
func (h *CatalogHandler) ProgramStudents(c *gin.Context) {
	enrollments, err := h.catalog.EnrolledStudents(c.Request.Context(), c.Param("id"), c.Query("academicYearId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}

// Student godoc
// @Summary Get a student
// @Tags Catalog
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *CatalogHandler) Student(c *gin.Context) {
	student, err := h.catalog.Student(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Course godoc
// @Summary Get a course
// @Tags Catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CatalogHandler) Course(c *gin.Context) {
	course, err := h.catalog.Course(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edu-report/report-card-api/internal/models"
	"github.com/edu-report/report-card-api/internal/service"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
	"github.com/edu-report/report-card-api/pkg/response"
)

// TermHandler exposes the academic calendar endpoints.
type TermHandler struct {
	terms *service.TermService
}

// NewTermHandler constructs handler.
func NewTermHandler(terms *service.TermService) *TermHandler {
	return &TermHandler{terms: terms}
}

// Resolve godoc
// @Summary Resolve a date to its academic term
// @Tags Terms
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param academicYearId query string false "Restrict to one academic year"
// @Success 200 {object} response.Envelope
// @Router /terms/resolve [get]
func (h *TermHandler) Resolve(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD"))
		return
	}
	term, err := h.terms.ResolveTerm(c.Request.Context(), date, c.Query("academicYearId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, term, nil)
}

// ResolveYear godoc
// @Summary Resolve a date to its academic year
// @Tags Terms
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /academic-years/resolve [get]
func (h *TermHandler) ResolveYear(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD"))
		return
	}
	year, err := h.terms.ResolveYear(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, year, nil)
}

// ListYears godoc
// @Summary List academic years
// @Tags Terms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /academic-years [get]
func (h *TermHandler) ListYears(c *gin.Context) {
	years, err := h.terms.ListYears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years, nil)
}

// CreateYear godoc
// @Summary Create an academic year
// @Tags Terms
// @Accept json
// @Produce json
// @Param payload body service.CreateYearRequest true "Year payload"
// @Success 201 {object} response.Envelope
// @Router /academic-years [post]
func (h *TermHandler) CreateYear(c *gin.Context) {
	var req service.CreateYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	year, err := h.terms.CreateYear(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, year)
}

// ListTerms godoc
// @Summary List academic terms
// @Tags Terms
// @Produce json
// @Param academicYearId query string false "Filter by academic year"
// @Success 200 {object} response.Envelope
// @Router /terms [get]
func (h *TermHandler) ListTerms(c *gin.Context) {
	terms, err := h.terms.ListTerms(c.Request.Context(), models.TermFilter{AcademicYearID: c.Query("academicYearId")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, terms, nil)
}

// CreateTerm godoc
// @Summary Create an academic term
// @Tags Terms
// @Accept json
// @Produce json
// @Param payload body service.CreateTermRequest true "Term payload"
// @Success 201 {object} response.Envelope
// @Router /terms [post]
func (h *TermHandler) CreateTerm(c *gin.Context) {
	var req service.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	term, err := h.terms.CreateTerm(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, term)
}

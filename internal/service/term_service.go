package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type academicRepo interface {
	ListYears(ctx context.Context) ([]models.AcademicYear, error)
	FindYearByID(ctx context.Context, id string) (*models.AcademicYear, error)
	CreateYear(ctx context.Context, year *models.AcademicYear) error
	YearOverlaps(ctx context.Context, start, end time.Time, excludeID string) (bool, error)
	ListTerms(ctx context.Context, filter models.TermFilter) ([]models.AcademicTerm, error)
	FindTermByID(ctx context.Context, id string) (*models.AcademicTerm, error)
	CreateTerm(ctx context.Context, term *models.AcademicTerm) error
	TermOverlaps(ctx context.Context, yearID string, start, end time.Time, excludeID string) (bool, error)
	OrdinalTaken(ctx context.Context, yearID string, ordinal int, excludeID string) (bool, error)
}

// CreateYearRequest describes payload for creating academic years.
type CreateYearRequest struct {
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// CreateTermRequest describes payload for creating academic terms.
type CreateTermRequest struct {
	AcademicYearID string    `json:"academic_year_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Ordinal        int       `json:"ordinal" validate:"required,min=1,max=3"`
	StartDate      time.Time `json:"start_date" validate:"required"`
	EndDate        time.Time `json:"end_date" validate:"required"`
}

// TermService resolves calendar dates to academic terms and years and
// maintains the term calendar.
type TermService struct {
	repo      academicRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTermService creates a new term service instance.
func NewTermService(repo academicRepo, validate *validator.Validate, logger *zap.Logger) *TermService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{repo: repo, validator: validate, logger: logger}
}

// ResolveTerm returns the academic term whose inclusive [start, end] range
// contains the date. When academicYearID is set the search is restricted to
// that year. A date outside every term yields ErrTermNotFound; a date outside
// every year yields ErrYearNotFound. Callers leave the derived field empty on
// either, never defaulting to a guessed term.
func (s *TermService) ResolveTerm(ctx context.Context, date time.Time, academicYearID string) (*models.AcademicTerm, error) {
	terms, err := s.repo.ListTerms(ctx, models.TermFilter{AcademicYearID: academicYearID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	for i := range terms {
		if containsDate(terms[i].StartDate, terms[i].EndDate, date) {
			return &terms[i], nil
		}
	}
	if academicYearID == "" {
		if _, err := s.ResolveYear(ctx, date); err != nil {
			return nil, err
		}
	}
	return nil, appErrors.Clone(appErrors.ErrTermNotFound, fmt.Sprintf("no academic term covers %s", date.Format("2006-01-02")))
}

// ResolveYear returns the academic year whose inclusive range contains the
// date, or ErrYearNotFound.
func (s *TermService) ResolveYear(ctx context.Context, date time.Time) (*models.AcademicYear, error) {
	years, err := s.repo.ListYears(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list years")
	}
	for i := range years {
		if containsDate(years[i].StartDate, years[i].EndDate, date) {
			return &years[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrYearNotFound, fmt.Sprintf("no academic year covers %s", date.Format("2006-01-02")))
}

// ListYears returns all academic years.
func (s *TermService) ListYears(ctx context.Context) ([]models.AcademicYear, error) {
	years, err := s.repo.ListYears(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list years")
	}
	return years, nil
}

// ListTerms returns terms, optionally scoped to one year.
func (s *TermService) ListTerms(ctx context.Context, filter models.TermFilter) ([]models.AcademicTerm, error) {
	terms, err := s.repo.ListTerms(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	return terms, nil
}

// CreateYear adds an academic year enforcing the no-overlap invariant.
func (s *TermService) CreateYear(ctx context.Context, req CreateYearRequest) (*models.AcademicYear, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid year payload")
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be before end_date")
	}
	overlaps, err := s.repo.YearOverlaps(ctx, req.StartDate, req.EndDate, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check year overlap")
	}
	if overlaps {
		return nil, appErrors.Clone(appErrors.ErrConflict, "academic year overlaps an existing year")
	}

	year := &models.AcademicYear{Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate}
	if err := s.repo.CreateYear(ctx, year); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create year")
	}
	return year, nil
}

// CreateTerm adds a term enforcing containment, contiguity-safe non-overlap
// and ordinal uniqueness within its year.
func (s *TermService) CreateTerm(ctx context.Context, req CreateTermRequest) (*models.AcademicTerm, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid term payload")
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be before end_date")
	}

	year, err := s.repo.FindYearByID(ctx, req.AcademicYearID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic year not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load year")
	}
	if req.StartDate.Before(year.StartDate) || req.EndDate.After(year.EndDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term range must lie within its academic year")
	}

	taken, err := s.repo.OrdinalTaken(ctx, req.AcademicYearID, req.Ordinal, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check term ordinal")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "term ordinal already used for this year")
	}

	overlaps, err := s.repo.TermOverlaps(ctx, req.AcademicYearID, req.StartDate, req.EndDate, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check term overlap")
	}
	if overlaps {
		return nil, appErrors.Clone(appErrors.ErrConflict, "term overlaps an existing term of this year")
	}

	term := &models.AcademicTerm{
		AcademicYearID: req.AcademicYearID,
		Name:           req.Name,
		Ordinal:        req.Ordinal,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}
	if err := s.repo.CreateTerm(ctx, term); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create term")
	}
	return term, nil
}

// containsDate checks the inclusive [start, end] range on calendar-day
// granularity.
func containsDate(start, end, date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(start.Truncate(24*time.Hour)) && !d.After(end.Truncate(24*time.Hour))
}

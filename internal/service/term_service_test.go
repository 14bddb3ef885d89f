package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type mockAcademicRepo struct {
	years []models.AcademicYear
	terms []models.AcademicTerm

	createdYears []models.AcademicYear
	createdTerms []models.AcademicTerm
}

func (m *mockAcademicRepo) ListYears(ctx context.Context) ([]models.AcademicYear, error) {
	return m.years, nil
}

func (m *mockAcademicRepo) FindYearByID(ctx context.Context, id string) (*models.AcademicYear, error) {
	for i := range m.years {
		if m.years[i].ID == id {
			return &m.years[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAcademicRepo) CreateYear(ctx context.Context, year *models.AcademicYear) error {
	m.createdYears = append(m.createdYears, *year)
	return nil
}

func (m *mockAcademicRepo) YearOverlaps(ctx context.Context, start, end time.Time, excludeID string) (bool, error) {
	for _, y := range m.years {
		if y.ID == excludeID {
			continue
		}
		if !start.After(y.EndDate) && !end.Before(y.StartDate) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAcademicRepo) ListTerms(ctx context.Context, filter models.TermFilter) ([]models.AcademicTerm, error) {
	if filter.AcademicYearID == "" {
		return m.terms, nil
	}
	var result []models.AcademicTerm
	for _, t := range m.terms {
		if t.AcademicYearID == filter.AcademicYearID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockAcademicRepo) FindTermByID(ctx context.Context, id string) (*models.AcademicTerm, error) {
	for i := range m.terms {
		if m.terms[i].ID == id {
			return &m.terms[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAcademicRepo) CreateTerm(ctx context.Context, term *models.AcademicTerm) error {
	m.createdTerms = append(m.createdTerms, *term)
	return nil
}

func (m *mockAcademicRepo) TermOverlaps(ctx context.Context, yearID string, start, end time.Time, excludeID string) (bool, error) {
	for _, t := range m.terms {
		if t.AcademicYearID != yearID || t.ID == excludeID {
			continue
		}
		if !start.After(t.EndDate) && !end.Before(t.StartDate) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAcademicRepo) OrdinalTaken(ctx context.Context, yearID string, ordinal int, excludeID string) (bool, error) {
	for _, t := range m.terms {
		if t.AcademicYearID == yearID && t.Ordinal == ordinal && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func calendarFixture() *mockAcademicRepo {
	return &mockAcademicRepo{
		years: []models.AcademicYear{
			{ID: "y1", Name: "2025-2026", StartDate: date(2025, 9, 1), EndDate: date(2026, 6, 30)},
		},
		terms: []models.AcademicTerm{
			{ID: "t1", AcademicYearID: "y1", Name: "Trimester 1", Ordinal: 1, StartDate: date(2025, 9, 1), EndDate: date(2025, 11, 30)},
			{ID: "t2", AcademicYearID: "y1", Name: "Trimester 2", Ordinal: 2, StartDate: date(2025, 12, 1), EndDate: date(2026, 3, 15)},
			{ID: "t3", AcademicYearID: "y1", Name: "Trimester 3", Ordinal: 3, StartDate: date(2026, 3, 16), EndDate: date(2026, 6, 30)},
		},
	}
}

func TestResolveTermInclusiveBounds(t *testing.T) {
	svc := NewTermService(calendarFixture(), nil, nil)

	term, err := svc.ResolveTerm(context.Background(), date(2025, 12, 1), "")
	require.NoError(t, err)
	assert.Equal(t, "t2", term.ID)

	term, err = svc.ResolveTerm(context.Background(), date(2026, 3, 15), "")
	require.NoError(t, err)
	assert.Equal(t, "t2", term.ID)

	term, err = svc.ResolveTerm(context.Background(), date(2026, 3, 16), "")
	require.NoError(t, err)
	assert.Equal(t, "t3", term.ID)
}

func TestResolveTermGapInsideYear(t *testing.T) {
	repo := calendarFixture()
	// Carve a gap between trimester 1 and 2.
	repo.terms[1].StartDate = date(2025, 12, 10)
	svc := NewTermService(repo, nil, nil)

	_, err := svc.ResolveTerm(context.Background(), date(2025, 12, 5), "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrTermNotFound))
}

func TestResolveTermOutsideEveryYear(t *testing.T) {
	svc := NewTermService(calendarFixture(), nil, nil)

	_, err := svc.ResolveTerm(context.Background(), date(2027, 1, 1), "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrYearNotFound))
}

func TestResolveTermScopedToYear(t *testing.T) {
	svc := NewTermService(calendarFixture(), nil, nil)

	term, err := svc.ResolveTerm(context.Background(), date(2025, 10, 15), "y1")
	require.NoError(t, err)
	assert.Equal(t, 1, term.Ordinal)

	// When the year is given explicitly a miss is always a term miss.
	_, err = svc.ResolveTerm(context.Background(), date(2027, 1, 1), "y1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrTermNotFound))
}

func TestCreateTermRejectsOrdinalReuse(t *testing.T) {
	svc := NewTermService(calendarFixture(), nil, nil)

	_, err := svc.CreateTerm(context.Background(), CreateTermRequest{
		AcademicYearID: "y1",
		Name:           "Extra",
		Ordinal:        2,
		StartDate:      date(2026, 4, 1),
		EndDate:        date(2026, 5, 1),
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestCreateTermRejectsRangeOutsideYear(t *testing.T) {
	repo := calendarFixture()
	repo.terms = nil
	svc := NewTermService(repo, nil, nil)

	_, err := svc.CreateTerm(context.Background(), CreateTermRequest{
		AcademicYearID: "y1",
		Name:           "Trimester 1",
		Ordinal:        1,
		StartDate:      date(2025, 8, 1),
		EndDate:        date(2025, 11, 30),
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCreateTermRejectsOverlap(t *testing.T) {
	svc := NewTermService(calendarFixture(), nil, nil)

	_, err := svc.CreateTerm(context.Background(), CreateTermRequest{
		AcademicYearID: "y1",
		Name:           "Overlapping",
		Ordinal:        3,
		StartDate:      date(2025, 11, 15),
		EndDate:        date(2025, 12, 15),
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestCreateYearRejectsOverlap(t *testing.T) {
	svc := NewTermService(calendarFixture(), nil, nil)

	_, err := svc.CreateYear(context.Background(), CreateYearRequest{
		Name:      "2026-2027",
		StartDate: date(2026, 6, 1),
		EndDate:   date(2027, 6, 30),
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestCreateTermSucceeds(t *testing.T) {
	repo := calendarFixture()
	repo.terms = repo.terms[:2]
	svc := NewTermService(repo, nil, nil)

	term, err := svc.CreateTerm(context.Background(), CreateTermRequest{
		AcademicYearID: "y1",
		Name:           "Trimester 3",
		Ordinal:        3,
		StartDate:      date(2026, 3, 16),
		EndDate:        date(2026, 6, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, term.Ordinal)
	require.Len(t, repo.createdTerms, 1)
}

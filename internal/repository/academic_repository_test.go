package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/edu-report/report-card-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAcademicRepositoryListTermsScoped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "academic_year_id", "name", "ordinal", "start_date", "end_date", "created_at", "updated_at"}).
		AddRow("t1", "y1", "Trimester 1", 1, now, now.AddDate(0, 3, 0), now, now).
		AddRow("t2", "y1", "Trimester 2", 2, now.AddDate(0, 3, 1), now.AddDate(0, 6, 0), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM academic_terms WHERE 1=1 AND academic_year_id = $1")).
		WithArgs("y1").
		WillReturnRows(rows)

	terms, err := repo.ListTerms(context.Background(), models.TermFilter{AcademicYearID: "y1"})
	require.NoError(t, err)
	require.Len(t, terms, 2)
	require.Equal(t, 1, terms[0].Ordinal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicRepositoryYearOverlaps(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicRepository(db)

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM academic_years")).
		WithArgs(start, end, "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	overlaps, err := repo.YearOverlaps(context.Background(), start, end, "")
	require.NoError(t, err)
	require.True(t, overlaps)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicRepositoryCreateTermAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO academic_terms")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	term := &models.AcademicTerm{
		AcademicYearID: "y1",
		Name:           "Trimester 1",
		Ordinal:        1,
		StartDate:      time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateTerm(context.Background(), term))
	require.NotEmpty(t, term.ID)
	require.False(t, term.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicRepositoryOrdinalTaken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAcademicRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM academic_terms")).
		WithArgs("y1", 2, "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := repo.OrdinalTaken(context.Background(), "y1", 2, "")
	require.NoError(t, err)
	require.False(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

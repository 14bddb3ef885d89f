package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edu-report/report-card-api/internal/models"
)

// AcademicRepository handles academic year and term persistence.
type AcademicRepository struct {
	db *sqlx.DB
}

// NewAcademicRepository creates a new academic calendar repository.
func NewAcademicRepository(db *sqlx.DB) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// ListYears returns all academic years ordered by start date.
func (r *AcademicRepository) ListYears(ctx context.Context) ([]models.AcademicYear, error) {
	const query = `SELECT id, name, start_date, end_date, created_at, updated_at
        FROM academic_years ORDER BY start_date`
	var years []models.AcademicYear
	if err := r.db.SelectContext(ctx, &years, query); err != nil {
		return nil, fmt.Errorf("list academic years: %w", err)
	}
	return years, nil
}

// FindYearByID returns a single academic year.
func (r *AcademicRepository) FindYearByID(ctx context.Context, id string) (*models.AcademicYear, error) {
	const query = `SELECT id, name, start_date, end_date, created_at, updated_at
        FROM academic_years WHERE id = $1`
	var year models.AcademicYear
	if err := r.db.GetContext(ctx, &year, query, id); err != nil {
		return nil, err
	}
	return &year, nil
}

// CreateYear inserts an academic year.
func (r *AcademicRepository) CreateYear(ctx context.Context, year *models.AcademicYear) error {
	if year.ID == "" {
		year.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	year.CreatedAt = now
	year.UpdatedAt = now
	const query = `INSERT INTO academic_years (id, name, start_date, end_date, created_at, updated_at)
        VALUES (:id, :name, :start_date, :end_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, year); err != nil {
		return fmt.Errorf("create academic year: %w", err)
	}
	return nil
}

// YearOverlaps reports whether any other year's range intersects [start, end].
func (r *AcademicRepository) YearOverlaps(ctx context.Context, start, end time.Time, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM academic_years
        WHERE start_date <= $2 AND end_date >= $1 AND id != $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, start, end, excludeID); err != nil {
		return false, fmt.Errorf("check year overlap: %w", err)
	}
	return exists, nil
}

// ListTerms returns terms, optionally scoped to one academic year, ordered by
// start date.
func (r *AcademicRepository) ListTerms(ctx context.Context, filter models.TermFilter) ([]models.AcademicTerm, error) {
	query := `SELECT id, academic_year_id, name, ordinal, start_date, end_date, created_at, updated_at
        FROM academic_terms WHERE 1=1`
	var args []interface{}
	if filter.AcademicYearID != "" {
		query += fmt.Sprintf(" AND academic_year_id = $%d", len(args)+1)
		args = append(args, filter.AcademicYearID)
	}
	query += " ORDER BY start_date"
	var terms []models.AcademicTerm
	if err := r.db.SelectContext(ctx, &terms, query, args...); err != nil {
		return nil, fmt.Errorf("list academic terms: %w", err)
	}
	return terms, nil
}

// FindTermByID returns a single academic term.
func (r *AcademicRepository) FindTermByID(ctx context.Context, id string) (*models.AcademicTerm, error) {
	const query = `SELECT id, academic_year_id, name, ordinal, start_date, end_date, created_at, updated_at
        FROM academic_terms WHERE id = $1`
	var term models.AcademicTerm
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}
	return &term, nil
}

// CreateTerm inserts an academic term.
func (r *AcademicRepository) CreateTerm(ctx context.Context, term *models.AcademicTerm) error {
	if term.ID == "" {
		term.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	term.CreatedAt = now
	term.UpdatedAt = now
	const query = `INSERT INTO academic_terms (id, academic_year_id, name, ordinal, start_date, end_date, created_at, updated_at)
        VALUES (:id, :academic_year_id, :name, :ordinal, :start_date, :end_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, term); err != nil {
		return fmt.Errorf("create academic term: %w", err)
	}
	return nil
}

// TermOverlaps reports whether another term of the same year intersects
// [start, end].
func (r *AcademicRepository) TermOverlaps(ctx context.Context, yearID string, start, end time.Time, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM academic_terms
        WHERE academic_year_id = $1 AND start_date <= $3 AND end_date >= $2 AND id != $4)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, yearID, start, end, excludeID); err != nil {
		return false, fmt.Errorf("check term overlap: %w", err)
	}
	return exists, nil
}

// OrdinalTaken reports whether the year already has a term with the ordinal.
func (r *AcademicRepository) OrdinalTaken(ctx context.Context, yearID string, ordinal int, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM academic_terms
        WHERE academic_year_id = $1 AND ordinal = $2 AND id != $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, yearID, ordinal, excludeID); err != nil {
		return false, fmt.Errorf("check term ordinal: %w", err)
	}
	return exists, nil
}

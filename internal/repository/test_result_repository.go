package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edu-report/report-card-api/internal/models"
)

// TestResultRepository handles test result persistence and score queries.
type TestResultRepository struct {
	db *sqlx.DB
}

// NewTestResultRepository creates a new test result repository.
func NewTestResultRepository(db *sqlx.DB) *TestResultRepository {
	return &TestResultRepository{db: db}
}

// Create inserts a test result with its detail rows in one transaction.
func (r *TestResultRepository) Create(ctx context.Context, result *models.TestResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	result.CreatedAt = now
	result.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `INSERT INTO test_results (id, course_id, program_id, academic_year_id, term_id, test_type, test_date, possible_mark, created_at, updated_at)
        VALUES (:id, :course_id, :program_id, :academic_year_id, :term_id, :test_type, :test_date, :possible_mark, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, result); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("insert test result: %w", err)
	}
	for i := range result.Details {
		if result.Details[i].ID == "" {
			result.Details[i].ID = uuid.NewString()
		}
		result.Details[i].TestResultID = result.ID
		const detailQuery = `INSERT INTO test_result_details (id, test_result_id, student_id, student_name, mark_earned)
            VALUES (:id, :test_result_id, :student_id, :student_name, :mark_earned)`
		if _, err := tx.NamedExecContext(ctx, detailQuery, result.Details[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert test result detail: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit test result: %w", err)
	}
	return nil
}

// List returns test results matching the filter, ordered by test date.
func (r *TestResultRepository) List(ctx context.Context, filter models.TestResultFilter) ([]models.TestResult, error) {
	query := `SELECT DISTINCT tr.id, tr.course_id, tr.program_id, tr.academic_year_id, tr.term_id,
            tr.test_type, tr.test_date, tr.possible_mark, tr.created_at, tr.updated_at
        FROM test_results tr`
	var args []interface{}
	if filter.StudentID != "" {
		query += " JOIN test_result_details trd ON trd.test_result_id = tr.id"
	}
	query += " WHERE 1=1"
	if filter.StudentID != "" {
		query += fmt.Sprintf(" AND trd.student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	if filter.CourseID != "" {
		query += fmt.Sprintf(" AND tr.course_id = $%d", len(args)+1)
		args = append(args, filter.CourseID)
	}
	if filter.ProgramID != "" {
		query += fmt.Sprintf(" AND tr.program_id = $%d", len(args)+1)
		args = append(args, filter.ProgramID)
	}
	if filter.AcademicYearID != "" {
		query += fmt.Sprintf(" AND tr.academic_year_id = $%d", len(args)+1)
		args = append(args, filter.AcademicYearID)
	}
	if filter.TermID != "" {
		query += fmt.Sprintf(" AND tr.term_id = $%d", len(args)+1)
		args = append(args, filter.TermID)
	}
	if filter.TestType != "" {
		query += fmt.Sprintf(" AND tr.test_type = $%d", len(args)+1)
		args = append(args, filter.TestType)
	}
	query += " ORDER BY tr.test_date"
	var results []models.TestResult
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("list test results: %w", err)
	}
	return results, nil
}

// ListScores returns the flattened score rows consumed by the aggregator:
// one row per (test, student) with the test's date, type and possible mark.
func (r *TestResultRepository) ListScores(ctx context.Context, filter models.TestResultFilter) ([]models.TestScore, error) {
	query := `SELECT tr.test_date, tr.term_id, tr.test_type, trd.mark_earned, tr.possible_mark
        FROM test_results tr
        JOIN test_result_details trd ON trd.test_result_id = tr.id
        WHERE 1=1`
	var args []interface{}
	if filter.StudentID != "" {
		query += fmt.Sprintf(" AND trd.student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	if filter.CourseID != "" {
		query += fmt.Sprintf(" AND tr.course_id = $%d", len(args)+1)
		args = append(args, filter.CourseID)
	}
	if filter.ProgramID != "" {
		query += fmt.Sprintf(" AND tr.program_id = $%d", len(args)+1)
		args = append(args, filter.ProgramID)
	}
	if filter.AcademicYearID != "" {
		query += fmt.Sprintf(" AND tr.academic_year_id = $%d", len(args)+1)
		args = append(args, filter.AcademicYearID)
	}
	if filter.TestType != "" {
		query += fmt.Sprintf(" AND tr.test_type = $%d", len(args)+1)
		args = append(args, filter.TestType)
	}
	query += " ORDER BY tr.test_date"
	var scores []models.TestScore
	if err := r.db.SelectContext(ctx, &scores, query, args...); err != nil {
		return nil, fmt.Errorf("list test scores: %w", err)
	}
	return scores, nil
}

// OverviewRows returns the detailed class overview rows.
func (r *TestResultRepository) OverviewRows(ctx context.Context, filter models.ClassOverviewFilter) ([]models.ClassOverviewRow, error) {
	query := `SELECT tr.id AS test_result_id, tr.program_id, tr.course_id, tr.term_id, tr.test_type,
            tr.possible_mark, trd.student_id, trd.student_name, trd.mark_earned, tr.test_date
        FROM test_results tr
        JOIN test_result_details trd ON trd.test_result_id = tr.id
        WHERE tr.academic_year_id = $1`
	args := []interface{}{filter.AcademicYearID}
	query, args = appendOverviewFilters(query, args, filter)
	query += " ORDER BY tr.course_id, tr.test_date, trd.student_name"
	var rows []models.ClassOverviewRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list overview rows: %w", err)
	}
	return rows, nil
}

// OverviewSummary returns grouped averages per program/course/term/test type.
func (r *TestResultRepository) OverviewSummary(ctx context.Context, filter models.ClassOverviewFilter) ([]models.ClassOverviewSummary, error) {
	query := `SELECT tr.program_id, tr.course_id, tr.term_id, tr.test_type,
            ROUND(AVG(tr.possible_mark)::numeric, 2) AS avg_possible,
            ROUND(AVG(trd.mark_earned)::numeric, 2) AS avg_earned,
            ROUND(AVG(trd.mark_earned / NULLIF(tr.possible_mark, 0) * 100)::numeric, 2) AS avg_percentage,
            COUNT(DISTINCT trd.student_id) AS student_count
        FROM test_results tr
        JOIN test_result_details trd ON trd.test_result_id = tr.id
        WHERE tr.academic_year_id = $1`
	args := []interface{}{filter.AcademicYearID}
	query, args = appendOverviewFilters(query, args, filter)
	query += ` GROUP BY tr.program_id, tr.course_id, tr.term_id, tr.test_type
        ORDER BY tr.program_id, tr.course_id`
	var rows []models.ClassOverviewSummary
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("summarize overview: %w", err)
	}
	return rows, nil
}

func appendOverviewFilters(query string, args []interface{}, filter models.ClassOverviewFilter) (string, []interface{}) {
	if filter.ProgramID != "" {
		query += fmt.Sprintf(" AND tr.program_id = $%d", len(args)+1)
		args = append(args, filter.ProgramID)
	}
	if filter.CourseID != "" {
		query += fmt.Sprintf(" AND tr.course_id = $%d", len(args)+1)
		args = append(args, filter.CourseID)
	}
	if filter.TermID != "" {
		query += fmt.Sprintf(" AND tr.term_id = $%d", len(args)+1)
		args = append(args, filter.TermID)
	}
	if filter.TestType != "" {
		query += fmt.Sprintf(" AND tr.test_type = $%d", len(args)+1)
		args = append(args, filter.TestType)
	}
	if filter.StudentID != "" {
		query += fmt.Sprintf(" AND trd.student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	return query, args
}

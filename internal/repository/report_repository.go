package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edu-report/report-card-api/internal/models"
)

// ReportRepository handles student report persistence.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new student report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a student report with its detail rows in one transaction.
func (r *ReportRepository) Create(ctx context.Context, report *models.StudentReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `INSERT INTO student_reports (id, student_id, student_name, program_id, course_id, academic_year_id, report_date, created_at, updated_at)
        VALUES (:id, :student_id, :student_name, :program_id, :course_id, :academic_year_id, :report_date, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, report); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("insert student report: %w", err)
	}
	for i := range report.Details {
		if report.Details[i].ID == "" {
			report.Details[i].ID = uuid.NewString()
		}
		report.Details[i].StudentReportID = report.ID
		const detailQuery = `INSERT INTO student_report_details (id, student_report_id, topic_id, topic_name, competency, grading_scale_id, term1, term2, term3)
            VALUES (:id, :student_report_id, :topic_id, :topic_name, :competency, :grading_scale_id, :term1, :term2, :term3)`
		if _, err := tx.NamedExecContext(ctx, detailQuery, report.Details[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert report detail: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student report: %w", err)
	}
	return nil
}

// FindByID returns a student report with its detail rows.
func (r *ReportRepository) FindByID(ctx context.Context, id string) (*models.StudentReport, error) {
	const query = `SELECT id, student_id, student_name, program_id, course_id, academic_year_id, report_date, created_at, updated_at
        FROM student_reports WHERE id = $1`
	var report models.StudentReport
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		return nil, err
	}
	details, err := r.listDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Details = details
	return &report, nil
}

// Exists reports whether a report already exists for the student/course/year.
func (r *ReportRepository) Exists(ctx context.Context, studentID, courseID, academicYearID, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM student_reports
        WHERE student_id = $1 AND course_id = $2 AND academic_year_id = $3 AND id != $4)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, studentID, courseID, academicYearID, excludeID); err != nil {
		return false, fmt.Errorf("check report uniqueness: %w", err)
	}
	return exists, nil
}

// ListByStudent returns all reports of a student for a program/year, detail
// rows included, ordered by course.
func (r *ReportRepository) ListByStudent(ctx context.Context, studentID, programID, academicYearID string) ([]models.StudentReport, error) {
	const query = `SELECT id, student_id, student_name, program_id, course_id, academic_year_id, report_date, created_at, updated_at
        FROM student_reports
        WHERE student_id = $1 AND program_id = $2 AND academic_year_id = $3
        ORDER BY course_id`
	var reports []models.StudentReport
	if err := r.db.SelectContext(ctx, &reports, query, studentID, programID, academicYearID); err != nil {
		return nil, fmt.Errorf("list student reports: %w", err)
	}
	for i := range reports {
		details, err := r.listDetails(ctx, reports[i].ID)
		if err != nil {
			return nil, err
		}
		reports[i].Details = details
	}
	return reports, nil
}

// FindDetailByID returns one report detail row.
func (r *ReportRepository) FindDetailByID(ctx context.Context, detailID string) (*models.StudentReportDetail, error) {
	const query = `SELECT id, student_report_id, topic_id, topic_name, competency, grading_scale_id, term1, term2, term3
        FROM student_report_details WHERE id = $1`
	var detail models.StudentReportDetail
	if err := r.db.GetContext(ctx, &detail, query, detailID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SetTermGrade writes one term grade field of a detail row. The write is a
// single-field update so validation outcomes apply atomically per field.
func (r *ReportRepository) SetTermGrade(ctx context.Context, detailID string, term int, code string) error {
	var column string
	switch term {
	case 1:
		column = "term1"
	case 2:
		column = "term2"
	case 3:
		column = "term3"
	default:
		return fmt.Errorf("invalid term ordinal %d", term)
	}
	query := fmt.Sprintf("UPDATE student_report_details SET %s = $1 WHERE id = $2", column)
	if _, err := r.db.ExecContext(ctx, query, code, detailID); err != nil {
		return fmt.Errorf("set term grade: %w", err)
	}
	return nil
}

func (r *ReportRepository) listDetails(ctx context.Context, reportID string) ([]models.StudentReportDetail, error) {
	const query = `SELECT id, student_report_id, topic_id, topic_name, competency, grading_scale_id, term1, term2, term3
        FROM student_report_details WHERE student_report_id = $1 ORDER BY topic_name, id`
	var details []models.StudentReportDetail
	if err := r.db.SelectContext(ctx, &details, query, reportID); err != nil {
		return nil, fmt.Errorf("list report details: %w", err)
	}
	return details, nil
}

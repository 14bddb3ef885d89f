package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edu-report/report-card-api/internal/models"
)

// CommentRepository handles term comments and director messages.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// FindTermComment returns the term comment for a student/program/year.
func (r *CommentRepository) FindTermComment(ctx context.Context, studentID, programID, academicYearID string) (*models.TermComment, error) {
	const query = `SELECT id, student_id, program_id, academic_year_id, teacher_name,
            term1_comment, term2_comment, term3_comment, created_at, updated_at
        FROM term_comments
        WHERE student_id = $1 AND program_id = $2 AND academic_year_id = $3`
	var comment models.TermComment
	if err := r.db.GetContext(ctx, &comment, query, studentID, programID, academicYearID); err != nil {
		return nil, err
	}
	return &comment, nil
}

// TermCommentExists reports whether a comment already exists for the scope.
func (r *CommentRepository) TermCommentExists(ctx context.Context, studentID, programID, academicYearID, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM term_comments
        WHERE student_id = $1 AND program_id = $2 AND academic_year_id = $3 AND id != $4)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, studentID, programID, academicYearID, excludeID); err != nil {
		return false, fmt.Errorf("check term comment uniqueness: %w", err)
	}
	return exists, nil
}

// CreateTermComment inserts a term comment.
func (r *CommentRepository) CreateTermComment(ctx context.Context, comment *models.TermComment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	const query = `INSERT INTO term_comments (id, student_id, program_id, academic_year_id, teacher_name,
            term1_comment, term2_comment, term3_comment, created_at, updated_at)
        VALUES (:id, :student_id, :program_id, :academic_year_id, :teacher_name,
            :term1_comment, :term2_comment, :term3_comment, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("create term comment: %w", err)
	}
	return nil
}

// FindDirectorMessage returns the director message for a program/year.
func (r *CommentRepository) FindDirectorMessage(ctx context.Context, programID, academicYearID string) (*models.DirectorMessage, error) {
	const query = `SELECT id, program_id, academic_year_id, director_name,
            introduction_fr, introduction_en, conclusion_fr, conclusion_en,
            term1_comment, term2_comment, term3_comment, created_at, updated_at
        FROM director_messages
        WHERE program_id = $1 AND academic_year_id = $2`
	var message models.DirectorMessage
	if err := r.db.GetContext(ctx, &message, query, programID, academicYearID); err != nil {
		return nil, err
	}
	return &message, nil
}

// DirectorMessageExists reports whether a message already exists for the scope.
func (r *CommentRepository) DirectorMessageExists(ctx context.Context, programID, academicYearID, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM director_messages
        WHERE program_id = $1 AND academic_year_id = $2 AND id != $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, programID, academicYearID, excludeID); err != nil {
		return false, fmt.Errorf("check director message uniqueness: %w", err)
	}
	return exists, nil
}

// CreateDirectorMessage inserts a director message.
func (r *CommentRepository) CreateDirectorMessage(ctx context.Context, message *models.DirectorMessage) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	message.CreatedAt = now
	message.UpdatedAt = now
	const query = `INSERT INTO director_messages (id, program_id, academic_year_id, director_name,
            introduction_fr, introduction_en, conclusion_fr, conclusion_en,
            term1_comment, term2_comment, term3_comment, created_at, updated_at)
        VALUES (:id, :program_id, :academic_year_id, :director_name,
            :introduction_fr, :introduction_en, :conclusion_fr, :conclusion_en,
            :term1_comment, :term2_comment, :term3_comment, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("create director message: %w", err)
	}
	return nil
}

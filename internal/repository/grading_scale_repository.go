package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edu-report/report-card-api/internal/models"
)

// GradingScaleRepository reads grading scales and their interval bands.
type GradingScaleRepository struct {
	db *sqlx.DB
}

// NewGradingScaleRepository creates a new grading scale repository.
func NewGradingScaleRepository(db *sqlx.DB) *GradingScaleRepository {
	return &GradingScaleRepository{db: db}
}

// FindByID returns a grading scale with its intervals in display order.
func (r *GradingScaleRepository) FindByID(ctx context.Context, id string) (*models.GradingScale, error) {
	const query = `SELECT id, name, created_at, updated_at FROM grading_scales WHERE id = $1`
	var scale models.GradingScale
	if err := r.db.GetContext(ctx, &scale, query, id); err != nil {
		return nil, err
	}

	const intervalQuery = `SELECT id, grading_scale_id, grade_code, label, threshold, sort_order
        FROM grade_intervals WHERE grading_scale_id = $1 ORDER BY sort_order`
	if err := r.db.SelectContext(ctx, &scale.Intervals, intervalQuery, id); err != nil {
		return nil, fmt.Errorf("list grade intervals: %w", err)
	}
	return &scale, nil
}

// ListCodes returns the ordered grade codes of a scale.
func (r *GradingScaleRepository) ListCodes(ctx context.Context, scaleID string) ([]string, error) {
	const query = `SELECT grade_code FROM grade_intervals
        WHERE grading_scale_id = $1 ORDER BY sort_order`
	var codes []string
	if err := r.db.SelectContext(ctx, &codes, query, scaleID); err != nil {
		return nil, fmt.Errorf("list grade codes: %w", err)
	}
	return codes, nil
}

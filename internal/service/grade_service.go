package service

import (
	"context"
	"database/sql"
	"sort"

	"go.uber.org/zap"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type gradingScaleRepo interface {
	FindByID(ctx context.Context, id string) (*models.GradingScale, error)
	ListCodes(ctx context.Context, scaleID string) ([]string, error)
}

// GradeService validates grade codes against grading scales and maps marks
// into scale bands.
type GradeService struct {
	scales gradingScaleRepo
	logger *zap.Logger
}

// NewGradeService constructs GradeService.
func NewGradeService(scales gradingScaleRepo, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{scales: scales, logger: logger}
}

// ValidateGrade checks a candidate grade code against a grading scale. An
// empty code is always valid: it clears the field. A non-empty code must be a
// case-sensitive exact match to one of the scale's codes. A row without a
// grading scale never accepts a non-empty code; that guards against silently
// accepting grades on ungraded rows. On failure the result carries the
// scale's ordered codes and the caller must reset the field to empty.
func (s *GradeService) ValidateGrade(ctx context.Context, code, gradingScaleID string) (models.GradeValidation, error) {
	if code == "" {
		return models.GradeValidation{OK: true}, nil
	}
	if gradingScaleID == "" {
		return models.GradeValidation{OK: false}, nil
	}

	codes, err := s.scales.ListCodes(ctx, gradingScaleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.GradeValidation{}, appErrors.Clone(appErrors.ErrNotFound, "grading scale not found")
		}
		return models.GradeValidation{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade codes")
	}
	for _, allowed := range codes {
		if allowed == code {
			return models.GradeValidation{OK: true}, nil
		}
	}
	return models.GradeValidation{OK: false, Allowed: codes}, nil
}

// AllowedCodes returns the ordered grade codes of a scale.
func (s *GradeService) AllowedCodes(ctx context.Context, gradingScaleID string) ([]string, error) {
	codes, err := s.scales.ListCodes(ctx, gradingScaleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade codes")
	}
	return codes, nil
}

// Scale returns a grading scale with its intervals.
func (s *GradeService) Scale(ctx context.Context, gradingScaleID string) (*models.GradingScale, error) {
	scale, err := s.scales.FindByID(ctx, gradingScaleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grading scale not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grading scale")
	}
	return scale, nil
}

// GradeForMark maps a mark into the scale band it earns: the code of the
// highest-threshold interval whose threshold the mark meets. The scale owns
// the band boundaries; no numeric interpolation happens here. A mark below
// every threshold earns no code.
func (s *GradeService) GradeForMark(scale *models.GradingScale, mark float64) string {
	if scale == nil || len(scale.Intervals) == 0 {
		return ""
	}
	intervals := make([]models.GradeInterval, len(scale.Intervals))
	copy(intervals, scale.Intervals)
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Threshold > intervals[j].Threshold
	})
	for _, interval := range intervals {
		if mark >= interval.Threshold {
			return interval.GradeCode
		}
	}
	return ""
}

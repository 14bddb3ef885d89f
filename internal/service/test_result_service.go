package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type testResultRepo interface {
	Create(ctx context.Context, result *models.TestResult) error
	List(ctx context.Context, filter models.TestResultFilter) ([]models.TestResult, error)
}

type enrollmentChecker interface {
	IsEnrolled(ctx context.Context, studentID, programID, academicYearID string) (bool, error)
	ProgramHasCourse(ctx context.Context, programID, courseID string) (bool, error)
}

// TestScoreItem is one student's score within a test result payload.
type TestScoreItem struct {
	StudentID   string  `json:"student_id" validate:"required"`
	StudentName string  `json:"student_name"`
	MarkEarned  float64 `json:"mark_earned"`
}

// CreateTestResultRequest describes a graded test sheet submission.
type CreateTestResultRequest struct {
	CourseID       string          `json:"course_id" validate:"required"`
	ProgramID      string          `json:"program_id" validate:"required"`
	AcademicYearID string          `json:"academic_year_id" validate:"required"`
	TestType       models.TestType `json:"test_type" validate:"required"`
	TestDate       time.Time       `json:"test_date" validate:"required"`
	PossibleMark   float64         `json:"possible_mark" validate:"required,gt=0"`
	Details        []TestScoreItem `json:"details" validate:"required,min=1,dive"`
}

// TestResultService validates and stores graded test sheets. The term is
// always derived from the test date through the resolver, never entered.
type TestResultService struct {
	results     testResultRepo
	enrollments enrollmentChecker
	terms       termResolver
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTestResultService constructs TestResultService.
func NewTestResultService(results testResultRepo, enrollments enrollmentChecker, terms termResolver, validate *validator.Validate, logger *zap.Logger) *TestResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestResultService{
		results:     results,
		enrollments: enrollments,
		terms:       terms,
		validator:   validate,
		logger:      logger,
	}
}

// Create validates a test sheet and persists it with the resolved term.
func (s *TestResultService) Create(ctx context.Context, req CreateTestResultRequest) (*models.TestResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid test result payload")
	}
	if !req.TestType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown test type %q", req.TestType))
	}

	seen := make(map[string]bool, len(req.Details))
	for i, item := range req.Details {
		if seen[item.StudentID] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicated student %s", item.StudentID))
		}
		seen[item.StudentID] = true
		if item.MarkEarned < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("mark earned cannot be negative at row %d", i+1))
		}
		if item.MarkEarned > req.PossibleMark {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("mark earned cannot exceed possible mark at row %d", i+1))
		}
	}

	hasCourse, err := s.enrollments.ProgramHasCourse(ctx, req.ProgramID, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check program course")
	}
	if !hasCourse {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course is not associated with the program")
	}

	for _, item := range req.Details {
		enrolled, err := s.enrollments.IsEnrolled(ctx, item.StudentID, req.ProgramID, req.AcademicYearID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
		}
		if !enrolled {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("student %s is not enrolled in the program", item.StudentID))
		}
	}

	// The stored term must always equal the resolver's output for the test
	// date; a date outside every term rejects the sheet.
	term, err := s.terms.ResolveTerm(ctx, req.TestDate, req.AcademicYearID)
	if err != nil {
		return nil, err
	}

	result := &models.TestResult{
		CourseID:       req.CourseID,
		ProgramID:      req.ProgramID,
		AcademicYearID: req.AcademicYearID,
		TermID:         term.ID,
		TestType:       req.TestType,
		TestDate:       req.TestDate,
		PossibleMark:   req.PossibleMark,
		Details:        make([]models.TestResultDetail, 0, len(req.Details)),
	}
	for _, item := range req.Details {
		result.Details = append(result.Details, models.TestResultDetail{
			StudentID:   item.StudentID,
			StudentName: item.StudentName,
			MarkEarned:  item.MarkEarned,
		})
	}

	if err := s.results.Create(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create test result")
	}
	return result, nil
}

// List returns test results matching the filter.
func (s *TestResultService) List(ctx context.Context, filter models.TestResultFilter) ([]models.TestResult, error) {
	results, err := s.results.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list test results")
	}
	return results, nil
}

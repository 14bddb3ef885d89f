package service

import (
	"context"
	"database/sql"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

// Fixed component weights of a trimester total. These are part of the
// aggregation contract, not runtime configuration.
const (
	WeightCoursework = 0.20
	WeightUnitTest   = 0.30
	WeightExam       = 0.50
)

type scoreReader interface {
	ListScores(ctx context.Context, filter models.TestResultFilter) ([]models.TestScore, error)
}

type termResolver interface {
	ResolveTerm(ctx context.Context, date time.Time, academicYearID string) (*models.AcademicTerm, error)
}

type courseReader interface {
	ListProgramCourses(ctx context.Context, programID string) ([]models.Course, error)
	CourseScaleID(ctx context.Context, courseID string) (string, error)
}

type gradeMapper interface {
	Scale(ctx context.Context, gradingScaleID string) (*models.GradingScale, error)
	GradeForMark(scale *models.GradingScale, mark float64) string
}

// AggregationService derives course summaries and overall term averages from
// raw test scores. Every call recomputes from source rows; results are pure
// functions of the stored data and are never cached.
type AggregationService struct {
	scores   scoreReader
	terms    termResolver
	courses  courseReader
	grades   gradeMapper
	logger   *zap.Logger
	rounding func(float64) float64
}

// NewAggregationService constructs AggregationService.
func NewAggregationService(scores scoreReader, terms termResolver, courses courseReader, grades gradeMapper, logger *zap.Logger) *AggregationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AggregationService{
		scores:   scores,
		terms:    terms,
		courses:  courses,
		grades:   grades,
		logger:   logger,
		rounding: round2,
	}
}

// CourseSummary aggregates a student's test scores for one course into
// per-term weighted percentages and a yearly result.
//
// Per term and test type the percentage is sum(earned)/sum(possible)*100
// rounded to two decimals. A zero denominator yields 0: no data means zero
// credit, not a missing value. The trimester total is the 20/30/50 weighted
// sum of the three component percentages; the yearly average always divides
// the three trimester totals by three.
func (s *AggregationService) CourseSummary(ctx context.Context, studentID, courseID, programID, academicYearID string) (*models.CourseSummary, error) {
	scores, err := s.scores.ListScores(ctx, models.TestResultFilter{
		StudentID:      studentID,
		CourseID:       courseID,
		ProgramID:      programID,
		AcademicYearID: academicYearID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load test scores")
	}

	type bucket struct {
		earned   float64
		possible float64
	}
	var buckets [models.TermCount]map[models.TestType]*bucket
	for i := range buckets {
		buckets[i] = map[models.TestType]*bucket{
			models.TestTypeCoursework: {},
			models.TestTypeUnitTest:   {},
			models.TestTypeExam:       {},
		}
	}
	var hasScores [models.TermCount]bool

	for _, score := range scores {
		term, err := s.terms.ResolveTerm(ctx, score.TestDate, academicYearID)
		if err != nil {
			// The test date falls outside every configured term; the row is
			// inconsistent and contributes to no bucket.
			s.logger.Warn("test score outside configured terms",
				zap.String("student_id", studentID),
				zap.String("course_id", courseID),
				zap.Time("test_date", score.TestDate))
			continue
		}
		if term.Ordinal < 1 || term.Ordinal > models.TermCount {
			continue
		}
		b, ok := buckets[term.Ordinal-1][score.TestType]
		if !ok {
			continue
		}
		b.earned += score.MarkEarned
		b.possible += score.PossibleMark
		hasScores[term.Ordinal-1] = true
	}

	summary := &models.CourseSummary{
		StudentID:      studentID,
		CourseID:       courseID,
		ProgramID:      programID,
		AcademicYearID: academicYearID,
		Terms:          make([]models.TermSummary, models.TermCount),
	}

	totalSum := 0.0
	for i := 0; i < models.TermCount; i++ {
		coursework := s.percentage(buckets[i][models.TestTypeCoursework].earned, buckets[i][models.TestTypeCoursework].possible)
		unitTest := s.percentage(buckets[i][models.TestTypeUnitTest].earned, buckets[i][models.TestTypeUnitTest].possible)
		exam := s.percentage(buckets[i][models.TestTypeExam].earned, buckets[i][models.TestTypeExam].possible)
		total := s.rounding(WeightCoursework*coursework + WeightUnitTest*unitTest + WeightExam*exam)
		summary.Terms[i] = models.TermSummary{
			Term:           i + 1,
			Coursework:     coursework,
			UnitTest:       unitTest,
			Exam:           exam,
			TrimesterTotal: total,
			HasScores:      hasScores[i],
		}
		totalSum += total
	}

	summary.YearlyAverage = s.rounding(totalSum / models.TermCount)
	summary.YearlyGrade = s.yearlyGrade(ctx, courseID, summary.YearlyAverage)
	return summary, nil
}

// OverallTermAverages averages trimester totals across every course of the
// student's program for the year. Courses without any test data contribute 0
// per term, matching the zero-credit policy; the yearly value is the mean of
// the three term averages.
func (s *AggregationService) OverallTermAverages(ctx context.Context, studentID, programID, academicYearID string) (*models.OverallTermAverage, error) {
	courses, err := s.courses.ListProgramCourses(ctx, programID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list program courses")
	}

	overall := &models.OverallTermAverage{
		StudentID:      studentID,
		ProgramID:      programID,
		AcademicYearID: academicYearID,
		TermAverages:   make([]float64, models.TermCount),
		CourseCount:    len(courses),
	}
	if len(courses) == 0 {
		return overall, nil
	}

	var termSums [models.TermCount]float64
	for _, course := range courses {
		summary, err := s.CourseSummary(ctx, studentID, course.ID, programID, academicYearID)
		if err != nil {
			return nil, err
		}
		for i, term := range summary.Terms {
			termSums[i] += term.TrimesterTotal
		}
	}

	yearlySum := 0.0
	for i := 0; i < models.TermCount; i++ {
		avg := s.rounding(termSums[i] / float64(len(courses)))
		overall.TermAverages[i] = avg
		yearlySum += avg
	}
	overall.YearlyAverage = s.rounding(yearlySum / models.TermCount)
	return overall, nil
}

func (s *AggregationService) percentage(earned, possible float64) float64 {
	if possible == 0 {
		return 0
	}
	return s.rounding(earned / possible * 100)
}

// yearlyGrade looks the yearly average up in the course's grading scale. A
// course without letter-graded competencies has no scale and no yearly grade.
func (s *AggregationService) yearlyGrade(ctx context.Context, courseID string, average float64) string {
	scaleID, err := s.courses.CourseScaleID(ctx, courseID)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("failed to resolve course grading scale", zap.String("course_id", courseID), zap.Error(err))
		}
		return ""
	}
	scale, err := s.grades.Scale(ctx, scaleID)
	if err != nil {
		s.logger.Warn("failed to load grading scale", zap.String("grading_scale_id", scaleID), zap.Error(err))
		return ""
	}
	return s.grades.GradeForMark(scale, average)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

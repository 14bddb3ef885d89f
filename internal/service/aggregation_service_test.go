package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-report/report-card-api/internal/models"
)

type mockScoreReader struct {
	scores map[string][]models.TestScore
}

func (m *mockScoreReader) ListScores(ctx context.Context, filter models.TestResultFilter) ([]models.TestScore, error) {
	return m.scores[filter.CourseID], nil
}

type calendarResolver struct {
	terms []models.AcademicTerm
}

func (r *calendarResolver) ResolveTerm(ctx context.Context, d time.Time, academicYearID string) (*models.AcademicTerm, error) {
	for i := range r.terms {
		if !d.Before(r.terms[i].StartDate) && !d.After(r.terms[i].EndDate) {
			return &r.terms[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockCourseReader struct {
	courses  []models.Course
	scaleIDs map[string]string
}

func (m *mockCourseReader) ListProgramCourses(ctx context.Context, programID string) ([]models.Course, error) {
	return m.courses, nil
}

func (m *mockCourseReader) CourseScaleID(ctx context.Context, courseID string) (string, error) {
	if id, ok := m.scaleIDs[courseID]; ok {
		return id, nil
	}
	return "", sql.ErrNoRows
}

func threeTermResolver() *calendarResolver {
	return &calendarResolver{terms: []models.AcademicTerm{
		{ID: "t1", Ordinal: 1, StartDate: date(2025, 9, 1), EndDate: date(2025, 11, 30)},
		{ID: "t2", Ordinal: 2, StartDate: date(2025, 12, 1), EndDate: date(2026, 3, 15)},
		{ID: "t3", Ordinal: 3, StartDate: date(2026, 3, 16), EndDate: date(2026, 6, 30)},
	}}
}

func mathScores() []models.TestScore {
	return []models.TestScore{
		{TestDate: date(2025, 9, 20), TestType: models.TestTypeCoursework, MarkEarned: 45, PossibleMark: 50},
		{TestDate: date(2025, 10, 5), TestType: models.TestTypeUnitTest, MarkEarned: 150, PossibleMark: 180},
		{TestDate: date(2025, 11, 2), TestType: models.TestTypeUnitTest, MarkEarned: 100, PossibleMark: 120},
		{TestDate: date(2025, 11, 20), TestType: models.TestTypeExam, MarkEarned: 160, PossibleMark: 200},
		{TestDate: date(2026, 4, 10), TestType: models.TestTypeExam, MarkEarned: 90, PossibleMark: 100},
	}
}

func newAggregationFixture(scaleIDs map[string]string, courses ...models.Course) *AggregationService {
	return NewAggregationService(
		&mockScoreReader{scores: map[string][]models.TestScore{"math": mathScores()}},
		threeTermResolver(),
		&mockCourseReader{courses: courses, scaleIDs: scaleIDs},
		NewGradeService(letterScale(), nil),
		nil,
	)
}

func TestCourseSummaryWeightedTerms(t *testing.T) {
	svc := newAggregationFixture(nil, models.Course{ID: "math", Name: "Mathematics"})

	summary, err := svc.CourseSummary(context.Background(), "stu", "math", "prog", "y1")
	require.NoError(t, err)
	require.Len(t, summary.Terms, 3)

	term1 := summary.Terms[0]
	assert.InDelta(t, 90.00, term1.Coursework, 1e-9)
	// 250 earned over 300 possible, pooled across both unit tests.
	assert.InDelta(t, 83.33, term1.UnitTest, 1e-9)
	assert.InDelta(t, 80.00, term1.Exam, 1e-9)
	// 0.2*90 + 0.3*83.33 + 0.5*80 = 82.999, rounded half away from zero.
	assert.InDelta(t, 83.00, term1.TrimesterTotal, 1e-9)
	assert.True(t, term1.HasScores)
}

func TestCourseSummaryZeroCreditForEmptyTerm(t *testing.T) {
	svc := newAggregationFixture(nil, models.Course{ID: "math", Name: "Mathematics"})

	summary, err := svc.CourseSummary(context.Background(), "stu", "math", "prog", "y1")
	require.NoError(t, err)

	term2 := summary.Terms[1]
	assert.Zero(t, term2.Coursework)
	assert.Zero(t, term2.UnitTest)
	assert.Zero(t, term2.Exam)
	assert.Zero(t, term2.TrimesterTotal)
	assert.False(t, term2.HasScores)

	term3 := summary.Terms[2]
	assert.InDelta(t, 90.00, term3.Exam, 1e-9)
	assert.InDelta(t, 45.00, term3.TrimesterTotal, 1e-9)
	assert.True(t, term3.HasScores)
}

func TestCourseSummaryYearlyAverageDividesByThree(t *testing.T) {
	svc := newAggregationFixture(nil, models.Course{ID: "math", Name: "Mathematics"})

	summary, err := svc.CourseSummary(context.Background(), "stu", "math", "prog", "y1")
	require.NoError(t, err)

	// (83.00 + 0 + 45.00) / 3, empty terms still count.
	assert.InDelta(t, 42.67, summary.YearlyAverage, 1e-9)
	assert.Equal(t, "", summary.YearlyGrade)
}

func TestCourseSummaryYearlyGradeFromScale(t *testing.T) {
	scores := map[string][]models.TestScore{"sci": {
		{TestDate: date(2025, 10, 1), TestType: models.TestTypeCoursework, MarkEarned: 95, PossibleMark: 100},
		{TestDate: date(2025, 10, 15), TestType: models.TestTypeUnitTest, MarkEarned: 92, PossibleMark: 100},
		{TestDate: date(2025, 11, 10), TestType: models.TestTypeExam, MarkEarned: 90, PossibleMark: 100},
		{TestDate: date(2026, 1, 10), TestType: models.TestTypeCoursework, MarkEarned: 95, PossibleMark: 100},
		{TestDate: date(2026, 1, 20), TestType: models.TestTypeUnitTest, MarkEarned: 92, PossibleMark: 100},
		{TestDate: date(2026, 2, 10), TestType: models.TestTypeExam, MarkEarned: 90, PossibleMark: 100},
		{TestDate: date(2026, 4, 10), TestType: models.TestTypeCoursework, MarkEarned: 95, PossibleMark: 100},
		{TestDate: date(2026, 4, 20), TestType: models.TestTypeUnitTest, MarkEarned: 92, PossibleMark: 100},
		{TestDate: date(2026, 5, 10), TestType: models.TestTypeExam, MarkEarned: 90, PossibleMark: 100},
	}}
	svc := NewAggregationService(
		&mockScoreReader{scores: scores},
		threeTermResolver(),
		&mockCourseReader{scaleIDs: map[string]string{"sci": "scale-1"}},
		NewGradeService(letterScale(), nil),
		nil,
	)

	summary, err := svc.CourseSummary(context.Background(), "stu", "sci", "prog", "y1")
	require.NoError(t, err)

	// Each term totals 0.2*95 + 0.3*92 + 0.5*90 = 91.60.
	assert.InDelta(t, 91.60, summary.YearlyAverage, 1e-9)
	assert.Equal(t, "A", summary.YearlyGrade)
}

func TestCourseSummarySkipsUnresolvableDates(t *testing.T) {
	scores := map[string][]models.TestScore{"math": {
		{TestDate: date(2025, 10, 1), TestType: models.TestTypeExam, MarkEarned: 80, PossibleMark: 100},
		{TestDate: date(2027, 1, 1), TestType: models.TestTypeExam, MarkEarned: 10, PossibleMark: 100},
	}}
	svc := NewAggregationService(
		&mockScoreReader{scores: scores},
		threeTermResolver(),
		&mockCourseReader{},
		NewGradeService(letterScale(), nil),
		nil,
	)

	summary, err := svc.CourseSummary(context.Background(), "stu", "math", "prog", "y1")
	require.NoError(t, err)
	assert.InDelta(t, 80.00, summary.Terms[0].Exam, 1e-9)
	assert.Zero(t, summary.Terms[1].Exam)
	assert.Zero(t, summary.Terms[2].Exam)
}

func TestOverallTermAveragesAcrossCourses(t *testing.T) {
	svc := newAggregationFixture(nil,
		models.Course{ID: "math", Name: "Mathematics"},
		models.Course{ID: "art", Name: "Art"},
	)

	overall, err := svc.OverallTermAverages(context.Background(), "stu", "prog", "y1")
	require.NoError(t, err)
	require.Len(t, overall.TermAverages, 3)
	assert.Equal(t, 2, overall.CourseCount)

	// Art has no scores and contributes 0 per term.
	assert.InDelta(t, 41.50, overall.TermAverages[0], 1e-9)
	assert.Zero(t, overall.TermAverages[1])
	assert.InDelta(t, 22.50, overall.TermAverages[2], 1e-9)
	assert.InDelta(t, 21.33, overall.YearlyAverage, 1e-9)
}

func TestOverallTermAveragesWithoutCourses(t *testing.T) {
	svc := newAggregationFixture(nil)

	overall, err := svc.OverallTermAverages(context.Background(), "stu", "prog", "y1")
	require.NoError(t, err)
	assert.Zero(t, overall.YearlyAverage)
	assert.Equal(t, 0, overall.CourseCount)
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.InDelta(t, 83.00, round2(82.999), 1e-9)
	assert.InDelta(t, 83.33, round2(83.333333), 1e-9)
	assert.InDelta(t, -83.00, round2(-82.999), 1e-9)
	assert.InDelta(t, 0.0, round2(0), 1e-9)
}

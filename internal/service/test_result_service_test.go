package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type mockTestResultRepo struct {
	created []models.TestResult
	listed  []models.TestResult
}

func (m *mockTestResultRepo) Create(ctx context.Context, result *models.TestResult) error {
	m.created = append(m.created, *result)
	return nil
}

func (m *mockTestResultRepo) List(ctx context.Context, filter models.TestResultFilter) ([]models.TestResult, error) {
	return m.listed, nil
}

type mockEnrollments struct {
	enrolled map[string]bool
	courses  map[string]bool
}

func (m *mockEnrollments) IsEnrolled(ctx context.Context, studentID, programID, academicYearID string) (bool, error) {
	return m.enrolled[studentID], nil
}

func (m *mockEnrollments) ProgramHasCourse(ctx context.Context, programID, courseID string) (bool, error) {
	return m.courses[courseID], nil
}

func testSheetFixture() (*mockTestResultRepo, *TestResultService) {
	repo := &mockTestResultRepo{}
	svc := NewTestResultService(repo,
		&mockEnrollments{
			enrolled: map[string]bool{"stu1": true, "stu2": true},
			courses:  map[string]bool{"math": true},
		},
		threeTermResolver(), nil, nil)
	return repo, svc
}

func validSheet() CreateTestResultRequest {
	return CreateTestResultRequest{
		CourseID:       "math",
		ProgramID:      "prog",
		AcademicYearID: "y1",
		TestType:       models.TestTypeUnitTest,
		TestDate:       date(2025, 10, 10),
		PossibleMark:   100,
		Details: []TestScoreItem{
			{StudentID: "stu1", StudentName: "Alice", MarkEarned: 80},
			{StudentID: "stu2", StudentName: "Bob", MarkEarned: 95},
		},
	}
}

func TestCreateTestResultStampsResolvedTerm(t *testing.T) {
	repo, svc := testSheetFixture()

	result, err := svc.Create(context.Background(), validSheet())
	require.NoError(t, err)
	assert.Equal(t, "t1", result.TermID)
	require.Len(t, repo.created, 1)
	assert.Len(t, repo.created[0].Details, 2)
}

func TestCreateTestResultRejectsDateOutsideTerms(t *testing.T) {
	_, svc := testSheetFixture()

	req := validSheet()
	req.TestDate = date(2027, 1, 1)
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestCreateTestResultRejectsDuplicateStudents(t *testing.T) {
	_, svc := testSheetFixture()

	req := validSheet()
	req.Details = append(req.Details, TestScoreItem{StudentID: "stu1", MarkEarned: 10})
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCreateTestResultRejectsMarkAbovePossible(t *testing.T) {
	_, svc := testSheetFixture()

	req := validSheet()
	req.Details[0].MarkEarned = 101
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCreateTestResultRejectsNegativeMark(t *testing.T) {
	_, svc := testSheetFixture()

	req := validSheet()
	req.Details[1].MarkEarned = -1
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCreateTestResultRejectsUnknownCourse(t *testing.T) {
	_, svc := testSheetFixture()

	req := validSheet()
	req.CourseID = "history"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCreateTestResultRejectsUnenrolledStudent(t *testing.T) {
	_, svc := testSheetFixture()

	req := validSheet()
	req.Details[0].StudentID = "ghost"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCreateTestResultRejectsZeroPossibleMark(t *testing.T) {
	_, svc := testSheetFixture()

	req := validSheet()
	req.PossibleMark = 0
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

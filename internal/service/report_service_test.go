package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type mockReportRepo struct {
	reports map[string]*models.StudentReport
	details map[string]*models.StudentReportDetail

	created    []models.StudentReport
	gradeCalls []struct {
		DetailID string
		Term     int
		Code     string
	}
}

func (m *mockReportRepo) Create(ctx context.Context, report *models.StudentReport) error {
	report.ID = "rep1"
	m.created = append(m.created, *report)
	return nil
}

func (m *mockReportRepo) FindByID(ctx context.Context, id string) (*models.StudentReport, error) {
	if r, ok := m.reports[id]; ok {
		return r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockReportRepo) Exists(ctx context.Context, studentID, courseID, academicYearID, excludeID string) (bool, error) {
	for _, r := range m.reports {
		if r.StudentID == studentID && r.CourseID == courseID && r.AcademicYearID == academicYearID && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReportRepo) ListByStudent(ctx context.Context, studentID, programID, academicYearID string) ([]models.StudentReport, error) {
	var result []models.StudentReport
	for _, r := range m.reports {
		if r.StudentID == studentID && r.ProgramID == programID && r.AcademicYearID == academicYearID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReportRepo) FindDetailByID(ctx context.Context, detailID string) (*models.StudentReportDetail, error) {
	if d, ok := m.details[detailID]; ok {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockReportRepo) SetTermGrade(ctx context.Context, detailID string, term int, code string) error {
	m.gradeCalls = append(m.gradeCalls, struct {
		DetailID string
		Term     int
		Code     string
	}{detailID, term, code})
	if d, ok := m.details[detailID]; ok {
		switch term {
		case 1:
			d.Term1 = code
		case 2:
			d.Term2 = code
		case 3:
			d.Term3 = code
		}
	}
	return nil
}

type mockCommentRepo struct {
	termComment     *models.TermComment
	directorMessage *models.DirectorMessage
}

func (m *mockCommentRepo) FindTermComment(ctx context.Context, studentID, programID, academicYearID string) (*models.TermComment, error) {
	if m.termComment == nil {
		return nil, sql.ErrNoRows
	}
	return m.termComment, nil
}

func (m *mockCommentRepo) TermCommentExists(ctx context.Context, studentID, programID, academicYearID, excludeID string) (bool, error) {
	return m.termComment != nil, nil
}

func (m *mockCommentRepo) CreateTermComment(ctx context.Context, comment *models.TermComment) error {
	m.termComment = comment
	return nil
}

func (m *mockCommentRepo) FindDirectorMessage(ctx context.Context, programID, academicYearID string) (*models.DirectorMessage, error) {
	if m.directorMessage == nil {
		return nil, sql.ErrNoRows
	}
	return m.directorMessage, nil
}

func (m *mockCommentRepo) DirectorMessageExists(ctx context.Context, programID, academicYearID, excludeID string) (bool, error) {
	return m.directorMessage != nil, nil
}

func (m *mockCommentRepo) CreateDirectorMessage(ctx context.Context, message *models.DirectorMessage) error {
	m.directorMessage = message
	return nil
}

type mockStudentCatalog struct {
	students map[string]*models.Student
	courses  map[string]*models.Course
}

func (m *mockStudentCatalog) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentCatalog) FindCourse(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentCatalog) IsEnrolled(ctx context.Context, studentID, programID, academicYearID string) (bool, error) {
	_, ok := m.students[studentID]
	return ok, nil
}

func (m *mockStudentCatalog) ProgramHasCourse(ctx context.Context, programID, courseID string) (bool, error) {
	_, ok := m.courses[courseID]
	return ok, nil
}

type mockAggregator struct {
	summary *models.CourseSummary
	overall *models.OverallTermAverage
}

func (m *mockAggregator) CourseSummary(ctx context.Context, studentID, courseID, programID, academicYearID string) (*models.CourseSummary, error) {
	return m.summary, nil
}

func (m *mockAggregator) OverallTermAverages(ctx context.Context, studentID, programID, academicYearID string) (*models.OverallTermAverage, error) {
	return m.overall, nil
}

func reportFixture() (*mockReportRepo, *mockCommentRepo, *ReportService) {
	scaleID := "scale-1"
	competency := "Reads fluently"
	reports := &mockReportRepo{
		reports: map[string]*models.StudentReport{},
		details: map[string]*models.StudentReportDetail{
			"det1": {ID: "det1", StudentReportID: "rep1", TopicID: "top1", TopicName: "Reading", Competency: &competency, GradingScaleID: &scaleID},
			"det2": {ID: "det2", StudentReportID: "rep1", TopicID: "top2", TopicName: "Writing"},
		},
	}
	comments := &mockCommentRepo{}
	catalog := &mockStudentCatalog{
		students: map[string]*models.Student{"stu1": {ID: "stu1", Name: "Alice"}},
		courses:  map[string]*models.Course{"french": {ID: "french", Name: "French"}},
	}
	matrix := NewMatrixService(&mockTopicReader{
		topics: map[string][]models.Topic{
			"french": {
				{ID: "top1", CourseID: "french", Name: "Reading", SortOrder: 1},
				{ID: "top2", CourseID: "french", Name: "Writing", SortOrder: 2},
			},
		},
		competencies: map[string]map[string]models.Competency{
			"french": {"top1": {ID: "comp1", TopicID: "top1", Description: "Reads fluently", GradingScaleID: "scale-1"}},
		},
	}, nil)
	aggregator := &mockAggregator{
		summary: &models.CourseSummary{CourseID: "french", YearlyAverage: 85.5},
		overall: &models.OverallTermAverage{YearlyAverage: 85.5, CourseCount: 1},
	}
	svc := NewReportService(reports, comments, catalog, matrix, NewGradeService(letterScale(), nil), aggregator, nil, nil)
	return reports, comments, svc
}

func TestCreateReportPrefillsMatrixRows(t *testing.T) {
	repo, _, svc := reportFixture()

	report, err := svc.CreateReport(context.Background(), CreateReportRequest{
		StudentID:      "stu1",
		ProgramID:      "prog",
		CourseID:       "french",
		AcademicYearID: "y1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", report.StudentName)
	require.Len(t, report.Details, 2)

	require.NotNil(t, report.Details[0].Competency)
	assert.Equal(t, "Reads fluently", *report.Details[0].Competency)
	assert.Empty(t, report.Details[0].Term1)
	assert.Nil(t, report.Details[1].GradingScaleID)
	require.Len(t, repo.created, 1)
}

func TestCreateReportRejectsDuplicate(t *testing.T) {
	repo, _, svc := reportFixture()
	repo.reports["rep1"] = &models.StudentReport{ID: "rep1", StudentID: "stu1", CourseID: "french", AcademicYearID: "y1", ProgramID: "prog"}

	_, err := svc.CreateReport(context.Background(), CreateReportRequest{
		StudentID:      "stu1",
		ProgramID:      "prog",
		CourseID:       "french",
		AcademicYearID: "y1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestCreateReportRejectsCourseWithoutTopics(t *testing.T) {
	reports := &mockReportRepo{reports: map[string]*models.StudentReport{}}
	catalog := &mockStudentCatalog{
		students: map[string]*models.Student{"stu1": {ID: "stu1", Name: "Alice"}},
		courses:  map[string]*models.Course{"empty": {ID: "empty", Name: "Empty"}},
	}
	svc := NewReportService(reports, &mockCommentRepo{}, catalog,
		NewMatrixService(&mockTopicReader{}, nil),
		NewGradeService(letterScale(), nil),
		&mockAggregator{}, nil, nil)

	_, err := svc.CreateReport(context.Background(), CreateReportRequest{
		StudentID:      "stu1",
		ProgramID:      "prog",
		CourseID:       "empty",
		AcademicYearID: "y1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoTopics))
}

func TestSetTermGradeWritesValidCode(t *testing.T) {
	repo, _, svc := reportFixture()

	validation, err := svc.SetTermGrade(context.Background(), "det1", 1, "B")
	require.NoError(t, err)
	assert.True(t, validation.OK)
	assert.Equal(t, "B", repo.details["det1"].Term1)
}

func TestSetTermGradeResetsInvalidCode(t *testing.T) {
	repo, _, svc := reportFixture()
	repo.details["det1"].Term2 = "B"

	validation, err := svc.SetTermGrade(context.Background(), "det1", 2, "Z")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidGrade))
	assert.False(t, validation.OK)
	assert.Equal(t, []string{"A", "B", "C", "D"}, validation.Allowed)
	// The stale grade is cleared, not left behind.
	assert.Equal(t, "", repo.details["det1"].Term2)
}

func TestSetTermGradeRejectsCodeWithoutScale(t *testing.T) {
	repo, _, svc := reportFixture()

	validation, err := svc.SetTermGrade(context.Background(), "det2", 1, "A")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidGrade))
	assert.False(t, validation.OK)
	assert.Empty(t, validation.Allowed)
	assert.Equal(t, "", repo.details["det2"].Term1)
}

func TestSetTermGradeClearsWithEmptyCode(t *testing.T) {
	repo, _, svc := reportFixture()
	repo.details["det1"].Term3 = "A"

	validation, err := svc.SetTermGrade(context.Background(), "det1", 3, "")
	require.NoError(t, err)
	assert.True(t, validation.OK)
	assert.Equal(t, "", repo.details["det1"].Term3)
}

func TestSetTermGradeRejectsBadOrdinal(t *testing.T) {
	_, _, svc := reportFixture()

	_, err := svc.SetTermGrade(context.Background(), "det1", 4, "A")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAssembleCard(t *testing.T) {
	repo, comments, svc := reportFixture()
	repo.reports["rep1"] = &models.StudentReport{
		ID: "rep1", StudentID: "stu1", StudentName: "Alice",
		ProgramID: "prog", CourseID: "french", AcademicYearID: "y1",
		Details: []models.StudentReportDetail{{ID: "det1", TopicName: "Reading", Term1: "B"}},
	}
	comments.termComment = &models.TermComment{StudentID: "stu1", TeacherName: "Mr. Smith", Term1Comment: "Good start"}

	card, err := svc.AssembleCard(context.Background(), "stu1", "prog", "y1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", card.StudentName)
	require.Len(t, card.Courses, 1)
	assert.Equal(t, "French", card.Courses[0].CourseName)
	require.Len(t, card.Courses[0].Rows, 1)
	require.NotNil(t, card.Courses[0].Summary)
	assert.InDelta(t, 85.5, card.Courses[0].Summary.YearlyAverage, 1e-9)
	require.NotNil(t, card.Overall)
	require.NotNil(t, card.TeacherComment)
	assert.Equal(t, "Mr. Smith", card.TeacherComment.TeacherName)
	assert.Nil(t, card.DirectorMessage)
}

func TestCreateTermCommentRejectsDuplicate(t *testing.T) {
	_, comments, svc := reportFixture()
	comments.termComment = &models.TermComment{ID: "c1", StudentID: "stu1"}

	_, err := svc.CreateTermComment(context.Background(), CreateTermCommentRequest{
		StudentID:      "stu1",
		ProgramID:      "prog",
		AcademicYearID: "y1",
		TeacherName:    "Mr. Smith",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestCreateDirectorMessage(t *testing.T) {
	_, comments, svc := reportFixture()

	message, err := svc.CreateDirectorMessage(context.Background(), CreateDirectorMessageRequest{
		ProgramID:      "prog",
		AcademicYearID: "y1",
		DirectorName:   "Dr. Jones",
		IntroductionEN: "Welcome",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Jones", message.DirectorName)
	assert.NotNil(t, comments.directorMessage)
}

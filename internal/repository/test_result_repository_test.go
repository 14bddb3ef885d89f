package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/edu-report/report-card-api/internal/models"
)

func TestTestResultRepositoryListScores(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTestResultRepository(db)

	testDate := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"test_date", "term_id", "test_type", "mark_earned", "possible_mark"}).
		AddRow(testDate, "t1", "UNIT_TEST", 80.0, 100.0).
		AddRow(testDate, "t1", "EXAM", 160.0, 200.0)
	mock.ExpectQuery(regexp.QuoteMeta("JOIN test_result_details trd ON trd.test_result_id = tr.id")).
		WithArgs("stu1", "math", "y1").
		WillReturnRows(rows)

	scores, err := repo.ListScores(context.Background(), models.TestResultFilter{
		StudentID:      "stu1",
		CourseID:       "math",
		AcademicYearID: "y1",
	})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.Equal(t, models.TestTypeUnitTest, scores[0].TestType)
	require.InDelta(t, 160.0, scores[1].MarkEarned, 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTestResultRepositoryCreateTransactional(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTestResultRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO test_results")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO test_result_details")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO test_result_details")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result := &models.TestResult{
		CourseID:       "math",
		ProgramID:      "prog",
		AcademicYearID: "y1",
		TermID:         "t1",
		TestType:       models.TestTypeExam,
		TestDate:       time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
		PossibleMark:   200,
		Details: []models.TestResultDetail{
			{StudentID: "stu1", StudentName: "Alice", MarkEarned: 160},
			{StudentID: "stu2", StudentName: "Bob", MarkEarned: 180},
		},
	}
	require.NoError(t, repo.Create(context.Background(), result))
	require.NotEmpty(t, result.ID)
	require.Equal(t, result.ID, result.Details[0].TestResultID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTestResultRepositoryOverviewSummary(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTestResultRepository(db)

	rows := sqlmock.NewRows([]string{"program_id", "course_id", "term_id", "test_type", "avg_possible", "avg_earned", "avg_percentage", "student_count"}).
		AddRow("prog", "math", "t1", "EXAM", 200.0, 170.0, 85.0, 2)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY tr.program_id, tr.course_id, tr.term_id, tr.test_type")).
		WithArgs("y1", "math").
		WillReturnRows(rows)

	summary, err := repo.OverviewSummary(context.Background(), models.ClassOverviewFilter{
		AcademicYearID: "y1",
		CourseID:       "math",
	})
	require.NoError(t, err)
	require.Len(t, summary, 1)
	require.InDelta(t, 85.0, summary[0].AvgPercentage, 1e-9)
	require.Equal(t, 2, summary[0].StudentCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

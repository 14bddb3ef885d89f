package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type reportRepo interface {
	Create(ctx context.Context, report *models.StudentReport) error
	FindByID(ctx context.Context, id string) (*models.StudentReport, error)
	Exists(ctx context.Context, studentID, courseID, academicYearID, excludeID string) (bool, error)
	ListByStudent(ctx context.Context, studentID, programID, academicYearID string) ([]models.StudentReport, error)
	FindDetailByID(ctx context.Context, detailID string) (*models.StudentReportDetail, error)
	SetTermGrade(ctx context.Context, detailID string, term int, code string) error
}

type commentRepo interface {
	FindTermComment(ctx context.Context, studentID, programID, academicYearID string) (*models.TermComment, error)
	TermCommentExists(ctx context.Context, studentID, programID, academicYearID, excludeID string) (bool, error)
	CreateTermComment(ctx context.Context, comment *models.TermComment) error
	FindDirectorMessage(ctx context.Context, programID, academicYearID string) (*models.DirectorMessage, error)
	DirectorMessageExists(ctx context.Context, programID, academicYearID, excludeID string) (bool, error)
	CreateDirectorMessage(ctx context.Context, message *models.DirectorMessage) error
}

type studentReader interface {
	FindStudent(ctx context.Context, id string) (*models.Student, error)
	FindCourse(ctx context.Context, id string) (*models.Course, error)
	IsEnrolled(ctx context.Context, studentID, programID, academicYearID string) (bool, error)
	ProgramHasCourse(ctx context.Context, programID, courseID string) (bool, error)
}

type matrixBuilder interface {
	Build(ctx context.Context, courseID string) (*models.MatrixResult, error)
}

type gradeValidator interface {
	ValidateGrade(ctx context.Context, code, gradingScaleID string) (models.GradeValidation, error)
}

type cardAggregator interface {
	CourseSummary(ctx context.Context, studentID, courseID, programID, academicYearID string) (*models.CourseSummary, error)
	OverallTermAverages(ctx context.Context, studentID, programID, academicYearID string) (*models.OverallTermAverage, error)
}

// CreateReportRequest opens a report record for one student/course/year.
type CreateReportRequest struct {
	StudentID      string    `json:"student_id" validate:"required"`
	ProgramID      string    `json:"program_id" validate:"required"`
	CourseID       string    `json:"course_id" validate:"required"`
	AcademicYearID string    `json:"academic_year_id" validate:"required"`
	ReportDate     time.Time `json:"report_date"`
}

// CreateTermCommentRequest stores a teacher's per-term comments for a student.
type CreateTermCommentRequest struct {
	StudentID      string `json:"student_id" validate:"required"`
	ProgramID      string `json:"program_id" validate:"required"`
	AcademicYearID string `json:"academic_year_id" validate:"required"`
	TeacherName    string `json:"teacher_name" validate:"required"`
	Term1Comment   string `json:"term1_comment"`
	Term2Comment   string `json:"term2_comment"`
	Term3Comment   string `json:"term3_comment"`
}

// CreateDirectorMessageRequest stores the director's report card texts for a
// program/year.
type CreateDirectorMessageRequest struct {
	ProgramID      string `json:"program_id" validate:"required"`
	AcademicYearID string `json:"academic_year_id" validate:"required"`
	DirectorName   string `json:"director_name" validate:"required"`
	IntroductionFR string `json:"introduction_fr"`
	IntroductionEN string `json:"introduction_en"`
	ConclusionFR   string `json:"conclusion_fr"`
	ConclusionEN   string `json:"conclusion_en"`
	Term1Comment   string `json:"term1_comment"`
	Term2Comment   string `json:"term2_comment"`
	Term3Comment   string `json:"term3_comment"`
}

// ReportService creates student reports, guards their term grade writes and
// assembles full report cards.
type ReportService struct {
	reports    reportRepo
	comments   commentRepo
	catalog    studentReader
	matrix     matrixBuilder
	grades     gradeValidator
	aggregator cardAggregator
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewReportService constructs ReportService.
func NewReportService(reports reportRepo, comments commentRepo, catalog studentReader, matrix matrixBuilder, grades gradeValidator, aggregator cardAggregator, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reports:    reports,
		comments:   comments,
		catalog:    catalog,
		matrix:     matrix,
		grades:     grades,
		aggregator: aggregator,
		validator:  validate,
		logger:     logger,
	}
}

// CreateReport opens the report record and prefills one detail row per course
// topic from the matrix. A course without topics cannot carry a report.
func (s *ReportService) CreateReport(ctx context.Context, req CreateReportRequest) (*models.StudentReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}

	hasCourse, err := s.catalog.ProgramHasCourse(ctx, req.ProgramID, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check program course")
	}
	if !hasCourse {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course is not associated with the program")
	}
	enrolled, err := s.catalog.IsEnrolled(ctx, req.StudentID, req.ProgramID, req.AcademicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if !enrolled {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student is not enrolled in the program")
	}

	exists, err := s.reports.Exists(ctx, req.StudentID, req.CourseID, req.AcademicYearID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check report uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a report already exists for this student, course and academic year")
	}

	matrix, err := s.matrix.Build(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if matrix.Status == models.MatrixNoTopics {
		return nil, appErrors.Clone(appErrors.ErrNoTopics, "course has no topics to report on")
	}

	student, err := s.catalog.FindStudent(ctx, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	reportDate := req.ReportDate
	if reportDate.IsZero() {
		reportDate = time.Now().UTC()
	}

	report := &models.StudentReport{
		StudentID:      req.StudentID,
		StudentName:    student.Name,
		ProgramID:      req.ProgramID,
		CourseID:       req.CourseID,
		AcademicYearID: req.AcademicYearID,
		ReportDate:     reportDate,
		Details:        make([]models.StudentReportDetail, 0, len(matrix.Rows)),
	}
	for _, row := range matrix.Rows {
		report.Details = append(report.Details, models.StudentReportDetail{
			TopicID:        row.TopicID,
			TopicName:      row.TopicName,
			Competency:     row.Competency,
			GradingScaleID: row.GradingScaleID,
		})
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create report")
	}
	return report, nil
}

// GetReport returns a student report with its detail rows.
func (s *ReportService) GetReport(ctx context.Context, id string) (*models.StudentReport, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	return report, nil
}

// SetTermGrade validates and writes one term grade of a detail row. An invalid
// code resets the stored field to empty and the returned validation carries
// the scale's allowed codes, so a rejected write never leaves a stale grade
// behind.
func (s *ReportService) SetTermGrade(ctx context.Context, detailID string, term int, code string) (models.GradeValidation, error) {
	if term < 1 || term > models.TermCount {
		return models.GradeValidation{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("term must be between 1 and %d", models.TermCount))
	}
	detail, err := s.reports.FindDetailByID(ctx, detailID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.GradeValidation{}, appErrors.Clone(appErrors.ErrNotFound, "report detail not found")
		}
		return models.GradeValidation{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report detail")
	}

	scaleID := ""
	if detail.GradingScaleID != nil {
		scaleID = *detail.GradingScaleID
	}
	validation, err := s.grades.ValidateGrade(ctx, code, scaleID)
	if err != nil {
		return models.GradeValidation{}, err
	}
	if !validation.OK {
		if err := s.reports.SetTermGrade(ctx, detailID, term, ""); err != nil {
			return validation, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset term grade")
		}
		return validation, appErrors.Clone(appErrors.ErrInvalidGrade, fmt.Sprintf("grade %q is not part of the row's grading scale", code))
	}

	if err := s.reports.SetTermGrade(ctx, detailID, term, code); err != nil {
		return validation, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set term grade")
	}
	return validation, nil
}

// AssembleCard builds the full report card payload for one student: the
// per-course detail rows and summaries, the overall averages and the comment
// blocks. Missing comments leave their section empty rather than failing.
func (s *ReportService) AssembleCard(ctx context.Context, studentID, programID, academicYearID string) (*models.ReportCard, error) {
	student, err := s.catalog.FindStudent(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	reports, err := s.reports.ListByStudent(ctx, studentID, programID, academicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}

	card := &models.ReportCard{
		StudentID:      studentID,
		StudentName:    student.Name,
		ProgramID:      programID,
		AcademicYearID: academicYearID,
		Courses:        make([]models.CourseSection, 0, len(reports)),
	}

	for _, report := range reports {
		section := models.CourseSection{
			CourseID: report.CourseID,
			Rows:     report.Details,
		}
		course, err := s.catalog.FindCourse(ctx, report.CourseID)
		if err != nil {
			if err != sql.ErrNoRows {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
			}
		} else {
			section.CourseName = course.Name
		}
		summary, err := s.aggregator.CourseSummary(ctx, studentID, report.CourseID, programID, academicYearID)
		if err != nil {
			return nil, err
		}
		section.Summary = summary
		card.Courses = append(card.Courses, section)
	}

	overall, err := s.aggregator.OverallTermAverages(ctx, studentID, programID, academicYearID)
	if err != nil {
		return nil, err
	}
	card.Overall = overall

	comment, err := s.comments.FindTermComment(ctx, studentID, programID, academicYearID)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term comment")
	}
	card.TeacherComment = comment

	message, err := s.comments.FindDirectorMessage(ctx, programID, academicYearID)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load director message")
	}
	card.DirectorMessage = message

	return card, nil
}

// CreateTermComment stores the teacher comments for one student/program/year.
func (s *ReportService) CreateTermComment(ctx context.Context, req CreateTermCommentRequest) (*models.TermComment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid term comment payload")
	}
	exists, err := s.comments.TermCommentExists(ctx, req.StudentID, req.ProgramID, req.AcademicYearID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check term comment uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a term comment already exists for this student, program and academic year")
	}
	comment := &models.TermComment{
		StudentID:      req.StudentID,
		ProgramID:      req.ProgramID,
		AcademicYearID: req.AcademicYearID,
		TeacherName:    req.TeacherName,
		Term1Comment:   req.Term1Comment,
		Term2Comment:   req.Term2Comment,
		Term3Comment:   req.Term3Comment,
	}
	if err := s.comments.CreateTermComment(ctx, comment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create term comment")
	}
	return comment, nil
}

// CreateDirectorMessage stores the director message for one program/year.
func (s *ReportService) CreateDirectorMessage(ctx context.Context, req CreateDirectorMessageRequest) (*models.DirectorMessage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid director message payload")
	}
	exists, err := s.comments.DirectorMessageExists(ctx, req.ProgramID, req.AcademicYearID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check director message uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a director message already exists for this program and academic year")
	}
	message := &models.DirectorMessage{
		ProgramID:      req.ProgramID,
		AcademicYearID: req.AcademicYearID,
		DirectorName:   req.DirectorName,
		IntroductionFR: req.IntroductionFR,
		IntroductionEN: req.IntroductionEN,
		ConclusionFR:   req.ConclusionFR,
		ConclusionEN:   req.ConclusionEN,
		Term1Comment:   req.Term1Comment,
		Term2Comment:   req.Term2Comment,
		Term3Comment:   req.Term3Comment,
	}
	if err := s.comments.CreateDirectorMessage(ctx, message); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create director message")
	}
	return message, nil
}

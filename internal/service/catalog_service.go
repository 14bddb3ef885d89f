package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type catalogReader interface {
	ListProgramCourses(ctx context.Context, programID string) ([]models.Course, error)
	ListEnrolledStudents(ctx context.Context, programID, academicYearID string) ([]models.Enrollment, error)
	FindStudent(ctx context.Context, id string) (*models.Student, error)
	FindCourse(ctx context.Context, id string) (*models.Course, error)
}

// CatalogService serves the read-only lookup surfaces over records owned by
// the admissions subsystem.
type CatalogService struct {
	catalog catalogReader
	logger  *zap.Logger
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(catalog catalogReader, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{catalog: catalog, logger: logger}
}

// ProgramCourses lists the courses associated with a program.
func (s *CatalogService) ProgramCourses(ctx context.Context, programID string) ([]models.Course, error) {
	courses, err := s.catalog.ListProgramCourses(ctx, programID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list program courses")
	}
	return courses, nil
}

// EnrolledStudents lists the students enrolled in a program for a year.
func (s *CatalogService) EnrolledStudents(ctx context.Context, programID, academicYearID string) ([]models.Enrollment, error) {
	if academicYearID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "academicYearId is required")
	}
	enrollments, err := s.catalog.ListEnrolledStudents(ctx, programID, academicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrolled students")
	}
	return enrollments, nil
}

// Student returns one student projection.
func (s *CatalogService) Student(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.catalog.FindStudent(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Course returns one course projection.
func (s *CatalogService) Course(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.catalog.FindCourse(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

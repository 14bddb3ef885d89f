package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edu-report/report-card-api/internal/models"
)

// CatalogRepository reads programs, courses, topics, competencies and
// enrollments. These records are owned by the admissions subsystem; this
// service only queries them.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListProgramCourses returns the courses associated with a program.
func (r *CatalogRepository) ListProgramCourses(ctx context.Context, programID string) ([]models.Course, error) {
	const query = `SELECT c.id, c.name FROM courses c
        JOIN program_courses pc ON pc.course_id = c.id
        WHERE pc.program_id = $1 ORDER BY c.name`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, programID); err != nil {
		return nil, fmt.Errorf("list program courses: %w", err)
	}
	return courses, nil
}

// ProgramHasCourse reports whether the course belongs to the program.
func (r *CatalogRepository) ProgramHasCourse(ctx context.Context, programID, courseID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM program_courses WHERE program_id = $1 AND course_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, programID, courseID); err != nil {
		return false, fmt.Errorf("check program course: %w", err)
	}
	return exists, nil
}

// ListTopics returns the topics of a course in display order.
func (r *CatalogRepository) ListTopics(ctx context.Context, courseID string) ([]models.Topic, error) {
	const query = `SELECT id, course_id, name, sort_order FROM topics
        WHERE course_id = $1 ORDER BY sort_order, name`
	var topics []models.Topic
	if err := r.db.SelectContext(ctx, &topics, query, courseID); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// CompetenciesByCourse returns the course's competencies keyed by topic ID.
func (r *CatalogRepository) CompetenciesByCourse(ctx context.Context, courseID string) (map[string]models.Competency, error) {
	const query = `SELECT co.id, co.topic_id, co.description, co.grading_scale_id
        FROM competencies co
        JOIN topics t ON t.id = co.topic_id
        WHERE t.course_id = $1`
	var competencies []models.Competency
	if err := r.db.SelectContext(ctx, &competencies, query, courseID); err != nil {
		return nil, fmt.Errorf("list competencies: %w", err)
	}
	result := make(map[string]models.Competency, len(competencies))
	for _, competency := range competencies {
		result[competency.TopicID] = competency
	}
	return result, nil
}

// CourseScaleID returns the grading scale used by the course's competencies,
// taking the first competency in topic order. sql.ErrNoRows means the course
// has no letter-graded competency.
func (r *CatalogRepository) CourseScaleID(ctx context.Context, courseID string) (string, error) {
	const query = `SELECT co.grading_scale_id
        FROM competencies co
        JOIN topics t ON t.id = co.topic_id
        WHERE t.course_id = $1
        ORDER BY t.sort_order, t.name
        LIMIT 1`
	var scaleID string
	if err := r.db.GetContext(ctx, &scaleID, query, courseID); err != nil {
		return "", err
	}
	return scaleID, nil
}

// ListEnrolledStudents returns the students enrolled in a program for a year.
func (r *CatalogRepository) ListEnrolledStudents(ctx context.Context, programID, academicYearID string) ([]models.Enrollment, error) {
	const query = `SELECT e.id, e.student_id, s.name AS student_name, e.program_id, e.academic_year_id, e.created_at
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        WHERE e.program_id = $1 AND e.academic_year_id = $2
        ORDER BY s.name`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, programID, academicYearID); err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}
	return enrollments, nil
}

// IsEnrolled reports whether the student is enrolled in the program/year.
func (r *CatalogRepository) IsEnrolled(ctx context.Context, studentID, programID, academicYearID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM enrollments
        WHERE student_id = $1 AND program_id = $2 AND academic_year_id = $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, studentID, programID, academicYearID); err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return exists, nil
}

// FindStudent returns a student projection.
func (r *CatalogRepository) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, name FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindCourse returns a course projection.
func (r *CatalogRepository) FindCourse(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, name FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

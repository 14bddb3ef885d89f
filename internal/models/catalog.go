package models

import "time"

// Student is a minimal projection of the student record.
type Student struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Program groups the courses a cohort of students follows (a grade level).
type Program struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Course is a teachable subject. Courses are attached to programs through
// the program_courses association.
type Course struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Topic belongs to a course and optionally carries one competency. A topic
// without a competency is assessed by numeric tests only, never by a letter
// grade.
type Topic struct {
	ID        string `db:"id" json:"id"`
	CourseID  string `db:"course_id" json:"course_id"`
	Name      string `db:"name" json:"name"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// Competency is a gradable criterion attached to a topic, validated and
// displayed through its grading scale.
type Competency struct {
	ID             string `db:"id" json:"id"`
	TopicID        string `db:"topic_id" json:"topic_id"`
	Description    string `db:"description" json:"description"`
	GradingScaleID string `db:"grading_scale_id" json:"grading_scale_id"`
}

// Enrollment ties a student to a program for one academic year.
type Enrollment struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	StudentName    string    `db:"student_name" json:"student_name"`
	ProgramID      string    `db:"program_id" json:"program_id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

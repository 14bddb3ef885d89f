package models

import "time"

// StudentReport is the persisted per student/course/year report record. At
// most one exists per (student, course, academic year).
type StudentReport struct {
	ID             string                `db:"id" json:"id"`
	StudentID      string                `db:"student_id" json:"student_id"`
	StudentName    string                `db:"student_name" json:"student_name"`
	ProgramID      string                `db:"program_id" json:"program_id"`
	CourseID       string                `db:"course_id" json:"course_id"`
	AcademicYearID string                `db:"academic_year_id" json:"academic_year_id"`
	ReportDate     time.Time             `db:"report_date" json:"report_date"`
	CreatedAt      time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time             `db:"updated_at" json:"updated_at"`
	Details        []StudentReportDetail `json:"details,omitempty"`
}

// StudentReportDetail is one topic/competency row of a student report. Term
// grade codes must belong to the row's grading scale when one is set; rows
// without a scale never accept a grade.
type StudentReportDetail struct {
	ID              string  `db:"id" json:"id"`
	StudentReportID string  `db:"student_report_id" json:"student_report_id"`
	TopicID         string  `db:"topic_id" json:"topic_id"`
	TopicName       string  `db:"topic_name" json:"topic_name"`
	Competency      *string `db:"competency" json:"competency,omitempty"`
	GradingScaleID  *string `db:"grading_scale_id" json:"grading_scale_id,omitempty"`
	Term1           string  `db:"term1" json:"term1"`
	Term2           string  `db:"term2" json:"term2"`
	Term3           string  `db:"term3" json:"term3"`
}

// TermSummary carries one term's weighted component percentages. Component
// values are percentages of the possible marks; a term or type without any
// recorded test yields 0 (zero-credit policy), with HasScores exposing row
// presence for callers that must tell "no data" from "scored zero".
type TermSummary struct {
	Term           int     `json:"term"`
	Coursework     float64 `json:"coursework"`
	UnitTest       float64 `json:"unit_test"`
	Exam           float64 `json:"exam"`
	TrimesterTotal float64 `json:"trimester_total"`
	HasScores      bool    `json:"has_scores"`
}

// CourseSummary is the derived per student/course aggregation. It is computed
// on demand from test results and never persisted or cached.
type CourseSummary struct {
	StudentID      string        `json:"student_id"`
	CourseID       string        `json:"course_id"`
	ProgramID      string        `json:"program_id"`
	AcademicYearID string        `json:"academic_year_id"`
	Terms          []TermSummary `json:"terms"`
	YearlyAverage  float64       `json:"yearly_average"`
	YearlyGrade    string        `json:"yearly_grade,omitempty"`
}

// OverallTermAverage is the derived per student/program/year aggregation:
// one average per term across all enrolled courses plus the yearly mean.
type OverallTermAverage struct {
	StudentID      string    `json:"student_id"`
	ProgramID      string    `json:"program_id"`
	AcademicYearID string    `json:"academic_year_id"`
	TermAverages   []float64 `json:"term_averages"`
	YearlyAverage  float64   `json:"yearly_average"`
	CourseCount    int       `json:"course_count"`
}

// MatrixStatus tells callers how to render a course's topic matrix.
type MatrixStatus string

const (
	// MatrixNoTopics means the course has no topics at all.
	MatrixNoTopics MatrixStatus = "no_topics"
	// MatrixNumericOnly means topics exist but none carries a competency.
	MatrixNumericOnly MatrixStatus = "numeric_only"
	// MatrixCompetencies means at least one topic is letter-graded.
	MatrixCompetencies MatrixStatus = "competencies"
)

// MatrixRow is one topic row of the matrix with its optional competency and
// grading scale.
type MatrixRow struct {
	TopicID        string  `json:"topic_id"`
	TopicName      string  `json:"topic_name"`
	Competency     *string `json:"competency,omitempty"`
	GradingScaleID *string `json:"grading_scale_id,omitempty"`
}

// MatrixResult is the topic/competency matrix of a course.
type MatrixResult struct {
	Status MatrixStatus `json:"status"`
	Rows   []MatrixRow  `json:"rows"`
}

// CourseSection is one course's block in an assembled report card.
type CourseSection struct {
	CourseID   string                `json:"course_id"`
	CourseName string                `json:"course_name"`
	Rows       []StudentReportDetail `json:"rows"`
	Summary    *CourseSummary        `json:"summary,omitempty"`
}

// ReportCard is the full assembled payload handed to presentation surfaces.
type ReportCard struct {
	StudentID       string              `json:"student_id"`
	StudentName     string              `json:"student_name"`
	ProgramID       string              `json:"program_id"`
	AcademicYearID  string              `json:"academic_year_id"`
	Courses         []CourseSection     `json:"courses"`
	Overall         *OverallTermAverage `json:"overall,omitempty"`
	TeacherComment  *TermComment        `json:"teacher_comment,omitempty"`
	DirectorMessage *DirectorMessage    `json:"director_message,omitempty"`
}

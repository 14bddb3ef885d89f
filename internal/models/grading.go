package models

import "time"

// TestType is one of the three weighted test categories.
type TestType string

const (
	TestTypeCoursework TestType = "COURSEWORK"
	TestTypeUnitTest   TestType = "UNIT_TEST"
	TestTypeExam       TestType = "EXAM"
)

// TestTypes lists the categories in weighting order.
var TestTypes = []TestType{TestTypeCoursework, TestTypeUnitTest, TestTypeExam}

// Valid reports whether the value is a known test type.
func (t TestType) Valid() bool {
	switch t {
	case TestTypeCoursework, TestTypeUnitTest, TestTypeExam:
		return true
	}
	return false
}

// GradingScale is an ordered set of grade codes with numeric band thresholds.
// Codes are unique within a scale.
type GradingScale struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
	Intervals []GradeInterval `json:"intervals,omitempty"`
}

// GradeInterval maps a threshold band to a grade code. A mark earns the code
// of the highest band whose threshold it meets.
type GradeInterval struct {
	ID             string  `db:"id" json:"id"`
	GradingScaleID string  `db:"grading_scale_id" json:"grading_scale_id"`
	GradeCode      string  `db:"grade_code" json:"grade_code"`
	Label          string  `db:"label" json:"label"`
	Threshold      float64 `db:"threshold" json:"threshold"`
	SortOrder      int     `db:"sort_order" json:"sort_order"`
}

// TestResult is a graded test sheet entered by a teacher. The term is derived
// from the test date, never free text: it must always equal the term
// resolver's output for the date.
type TestResult struct {
	ID             string             `db:"id" json:"id"`
	CourseID       string             `db:"course_id" json:"course_id"`
	ProgramID      string             `db:"program_id" json:"program_id"`
	AcademicYearID string             `db:"academic_year_id" json:"academic_year_id"`
	TermID         string             `db:"term_id" json:"term_id"`
	TestType       TestType           `db:"test_type" json:"test_type"`
	TestDate       time.Time          `db:"test_date" json:"test_date"`
	PossibleMark   float64            `db:"possible_mark" json:"possible_mark"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updated_at"`
	Details        []TestResultDetail `json:"details,omitempty"`
}

// TestResultDetail is one student's score row within a test result.
type TestResultDetail struct {
	ID           string  `db:"id" json:"id"`
	TestResultID string  `db:"test_result_id" json:"test_result_id"`
	StudentID    string  `db:"student_id" json:"student_id"`
	StudentName  string  `db:"student_name" json:"student_name"`
	MarkEarned   float64 `db:"mark_earned" json:"mark_earned"`
}

// TestScore is a flattened score row used by the aggregator: one student's
// earned mark against a test's possible mark, with the test's date and type.
type TestScore struct {
	TestDate     time.Time `db:"test_date" json:"test_date"`
	TermID       string    `db:"term_id" json:"term_id"`
	TestType     TestType  `db:"test_type" json:"test_type"`
	MarkEarned   float64   `db:"mark_earned" json:"mark_earned"`
	PossibleMark float64   `db:"possible_mark" json:"possible_mark"`
}

// TestResultFilter defines filters supported by test result queries.
type TestResultFilter struct {
	StudentID      string
	CourseID       string
	ProgramID      string
	AcademicYearID string
	TermID         string
	TestType       TestType
}

// GradeValidation is the outcome of checking a grade code against a scale.
// Allowed carries the scale's ordered codes when validation fails.
type GradeValidation struct {
	OK      bool     `json:"ok"`
	Allowed []string `json:"allowed,omitempty"`
}

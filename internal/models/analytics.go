package models

import "time"

// ClassOverviewFilter scopes the class test overview report. Academic year is
// mandatory, everything else optional.
type ClassOverviewFilter struct {
	AcademicYearID string   `json:"academic_year_id"`
	ProgramID      string   `json:"program_id"`
	CourseID       string   `json:"course_id"`
	TermID         string   `json:"term_id"`
	TestType       TestType `json:"test_type"`
	StudentID      string   `json:"student_id"`
}

// ClassOverviewRow is one student's score on one test.
type ClassOverviewRow struct {
	TestResultID string    `db:"test_result_id" json:"test_result_id"`
	ProgramID    string    `db:"program_id" json:"program_id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	TermID       string    `db:"term_id" json:"term_id"`
	TestType     TestType  `db:"test_type" json:"test_type"`
	PossibleMark float64   `db:"possible_mark" json:"possible_mark"`
	StudentID    string    `db:"student_id" json:"student_id"`
	StudentName  string    `db:"student_name" json:"student_name"`
	MarkEarned   float64   `db:"mark_earned" json:"mark_earned"`
	TestDate     time.Time `db:"test_date" json:"test_date"`
}

// ClassOverviewSummary is one grouped average per program/course/term/type.
type ClassOverviewSummary struct {
	ProgramID     string   `db:"program_id" json:"program_id"`
	CourseID      string   `db:"course_id" json:"course_id"`
	TermID        string   `db:"term_id" json:"term_id"`
	TestType      TestType `db:"test_type" json:"test_type"`
	AvgPossible   float64  `db:"avg_possible" json:"avg_possible"`
	AvgEarned     float64  `db:"avg_earned" json:"avg_earned"`
	AvgPercentage float64  `db:"avg_percentage" json:"avg_percentage"`
	StudentCount  int      `db:"student_count" json:"student_count"`
}

// ClassOverview bundles the detailed rows with their grouped averages.
type ClassOverview struct {
	Details []ClassOverviewRow     `json:"details"`
	Summary []ClassOverviewSummary `json:"summary"`
}

// SystemMetrics is a lightweight aggregate of runtime counters exposed on the
// analytics surface alongside the Prometheus endpoint.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

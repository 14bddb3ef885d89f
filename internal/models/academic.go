package models

import "time"

// AcademicYear models one school year of the institution calendar.
// Year ranges must not overlap.
type AcademicYear struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TermCount is the number of grading periods in an academic year.
const TermCount = 3

// AcademicTerm is one of three grading periods within an academic year.
// Term ranges lie within the owning year and do not overlap; the ordinal
// (1..3) is unique per year.
type AcademicTerm struct {
	ID             string    `db:"id" json:"id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	Name           string    `db:"name" json:"name"`
	Ordinal        int       `db:"ordinal" json:"ordinal"`
	StartDate      time.Time `db:"start_date" json:"start_date"`
	EndDate        time.Time `db:"end_date" json:"end_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TermFilter defines filters supported by term list endpoints.
type TermFilter struct {
	AcademicYearID string
}

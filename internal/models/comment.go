package models

import "time"

// TermComment holds a teacher's per-term comments for one student. At most
// one record exists per (student, program, academic year).
type TermComment struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	ProgramID      string    `db:"program_id" json:"program_id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	TeacherName    string    `db:"teacher_name" json:"teacher_name"`
	Term1Comment   string    `db:"term1_comment" json:"term1_comment"`
	Term2Comment   string    `db:"term2_comment" json:"term2_comment"`
	Term3Comment   string    `db:"term3_comment" json:"term3_comment"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DirectorMessage is the school director's bilingual introduction and
// conclusion printed on report cards. At most one record exists per
// (program, academic year).
type DirectorMessage struct {
	ID             string    `db:"id" json:"id"`
	ProgramID      string    `db:"program_id" json:"program_id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	DirectorName   string    `db:"director_name" json:"director_name"`
	IntroductionFR string    `db:"introduction_fr" json:"introduction_fr"`
	IntroductionEN string    `db:"introduction_en" json:"introduction_en"`
	ConclusionFR   string    `db:"conclusion_fr" json:"conclusion_fr"`
	ConclusionEN   string    `db:"conclusion_en" json:"conclusion_en"`
	Term1Comment   string    `db:"term1_comment" json:"term1_comment"`
	Term2Comment   string    `db:"term2_comment" json:"term2_comment"`
	Term3Comment   string    `db:"term3_comment" json:"term3_comment"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

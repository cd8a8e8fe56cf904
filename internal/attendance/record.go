package attendance

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Status is the attendance mark of a single class session.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
)

// Record is one student's mark for one course on one date.
// Student fields are a snapshot taken when the record was created.
type Record struct {
	ID           string      `db:"id" json:"id"`
	StudentID    string      `db:"student_id" json:"student_id"`
	EnrollmentNo string      `db:"enrollment_no" json:"enrollment_no"`
	StudentName  string      `db:"student_name" json:"student_name"`
	ContactNo    string      `db:"contact_no" json:"contact_no"`
	Department   string      `db:"department" json:"department"`
	School       string      `db:"school" json:"school"`
	Year         int         `db:"year" json:"year"`
	Section      string      `db:"section" json:"section"`
	Course       string      `db:"course" json:"course"`
	FacultyID    null.String `db:"faculty_id" json:"faculty_id"`
	FacultyName  string      `db:"faculty_name" json:"faculty_name"`
	Date         time.Time   `db:"date" json:"date"`
	Status       Status      `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// Filter narrows the record set a report is computed over.
// Search matches enrollment number, student name, department, contact number or school.
type Filter struct {
	Search     string
	School     string
	Department string
	From       *time.Time
	To         *time.Time
}

// MarkEntry is one row of a faculty attendance submission.
type MarkEntry struct {
	StudentID string `json:"student_id" validate:"notblank"`
	Course    string `json:"course" validate:"notblank,max=100"`
	Date      string `json:"date" validate:"required,date"`
	Status    string `json:"status" validate:"omitempty,oneof=present absent late"`
}

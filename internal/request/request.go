package request

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// ErrNotFound is returned when no request matches the lookup.
var ErrNotFound = errors.New("application request not found")

// Status is the review state of a request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusInProcess Status = "in_process"
)

// Request is a student's administrative request.
// Student and contact fields are a snapshot taken at submission.
type Request struct {
	ID              string      `db:"id" json:"id"`
	StudentID       string      `db:"student_id" json:"student_id"`
	ApplicationType string      `db:"application_type" json:"application_type"`
	StudentName     string      `db:"student_name" json:"student_name"`
	EnrollmentNo    string      `db:"enrollment_no" json:"enrollment_no"`
	Department      string      `db:"department" json:"department"`
	Course          null.String `db:"course" json:"course"`
	Semester        null.String `db:"semester" json:"semester"`
	Mobile          string      `db:"mobile" json:"mobile"`
	Email           string      `db:"email" json:"email"`
	Reason          null.String `db:"reason" json:"reason"`
	CustomReason    null.String `db:"custom_reason" json:"custom_reason"`
	FromDate        null.Time   `db:"from_date" json:"from_date"`
	ToDate          null.Time   `db:"to_date" json:"to_date"`
	ExtraNote       null.String `db:"extra_note" json:"extra_note"`
	Status          Status      `db:"status" json:"status"`
	ReviewedBy      null.String `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt      null.Time   `db:"reviewed_at" json:"reviewed_at"`
	AdminNotes      null.String `db:"admin_notes" json:"admin_notes"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// Submission is the student input for a new request. Fields a category does not use stay empty.
type Submission struct {
	ApplicationType string `json:"application_type" validate:"required"`
	Course          string `json:"course" validate:"max=100"`
	Semester        string `json:"semester" validate:"max=20"`
	Reason          string `json:"reason" validate:"notblank,max=200"`
	CustomReason    string `json:"custom_reason" validate:"max=500"`
	FromDate        string `json:"from_date" validate:"omitempty,date"`
	ToDate          string `json:"to_date" validate:"omitempty,date"`
	ExtraNote       string `json:"extra_note" validate:"max=2000"`
}

// Review moves a request out of pending.
type Review struct {
	Status     string  `json:"status" validate:"required,oneof=approved rejected in_process"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=2000"`
}

// Prefill is the caller's profile data shown on a request form.
type Prefill struct {
	StudentName  string `json:"student_name"`
	EnrollmentNo string `json:"enrollment_no"`
	Department   string `json:"department"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email"`
	Year         int    `json:"year,omitempty"`
	Section      string `json:"section,omitempty"`
}

// FormOptions is everything needed to render the form of one category.
type FormOptions struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Reasons []string `json:"reasons"`
	Prefill Prefill  `json:"prefill"`
}

package placement

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	ErrPostingNotFound      = errors.New("placement posting not found")
	ErrApplicationNotFound  = errors.New("placement application not found")
	ErrDuplicateApplication = errors.New("already applied to this placement")
	ErrAlreadyDecided       = errors.New("placement posting already decided")
)

// PostingStatus is the approval state of a posting.
type PostingStatus string

const (
	PostingPending  PostingStatus = "pending"
	PostingApproved PostingStatus = "approved"
	PostingRejected PostingStatus = "rejected"
)

// Mode is where a drive takes place.
type Mode string

const (
	OnCampus  Mode = "on-campus"
	OffCampus Mode = "off-campus"
)

// ApplicationStatus tracks a student through a drive. Any value may follow any other.
type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationSelected    ApplicationStatus = "selected"
)

// Posting is a placement drive announced by the placement cell.
type Posting struct {
	ID              string        `db:"id" json:"id"`
	CompanyName     string        `db:"company_name" json:"company_name"`
	Role            string        `db:"role" json:"role"`
	Package         float64       `db:"package" json:"package"`
	EligibilityCGPA null.Float64  `db:"eligibility_cgpa" json:"eligibility_cgpa"`
	BranchesAllowed string        `db:"branches_allowed" json:"branches_allowed"`
	LastDate        time.Time     `db:"last_date" json:"last_date"`
	DriveDate       time.Time     `db:"drive_date" json:"drive_date"`
	JobLocation     string        `db:"job_location" json:"job_location"`
	Mode            Mode          `db:"mode" json:"mode"`
	Description     string        `db:"description" json:"description"`
	Status          PostingStatus `db:"status" json:"status"`
	CreatedBy       null.String   `db:"created_by" json:"created_by"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	ApprovedBy      null.String   `db:"approved_by" json:"approved_by"`
	ApprovedAt      null.Time     `db:"approved_at" json:"approved_at"`
}

// Application is a student's application to a posting.
// Student fields are a snapshot taken when the application was made.
type Application struct {
	ID           string            `db:"id" json:"id"`
	PostingID    string            `db:"posting_id" json:"posting_id"`
	StudentID    string            `db:"student_id" json:"student_id"`
	EnrollmentNo string            `db:"enrollment_no" json:"enrollment_no"`
	StudentName  string            `db:"student_name" json:"student_name"`
	Department   string            `db:"department" json:"department"`
	CGPA         null.Float64      `db:"cgpa" json:"cgpa"`
	Status       ApplicationStatus `db:"status" json:"status"`
	Notes        string            `db:"notes" json:"notes"`
	AppliedAt    time.Time         `db:"applied_at" json:"applied_at"`
	CompanyName  string            `db:"company_name" json:"company_name,omitempty"`
	PostingRole  string            `db:"posting_role" json:"posting_role,omitempty"`
}

// PostingInput holds the editable fields of a posting.
type PostingInput struct {
	CompanyName     string   `json:"company_name" validate:"notblank,max=200"`
	Role            string   `json:"role" validate:"notblank,max=200"`
	Package         float64  `json:"package" validate:"gt=0"`
	EligibilityCGPA *float64 `json:"eligibility_cgpa" validate:"omitempty,gte=0,lte=10"`
	BranchesAllowed string   `json:"branches_allowed" validate:"notblank,max=500"`
	LastDate        string   `json:"last_date" validate:"required,date"`
	DriveDate       string   `json:"drive_date" validate:"required,date"`
	JobLocation     string   `json:"job_location" validate:"notblank,max=200"`
	Mode            string   `json:"mode" validate:"omitempty,oneof=on-campus off-campus"`
	Description     string   `json:"description" validate:"notblank"`
}

// Decision is an approver's verdict on a pending posting.
type Decision struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

// ApplyInput is the optional data a student adds to an application.
type ApplyInput struct {
	CGPA  *float64 `json:"cgpa" validate:"omitempty,gte=0,lte=10"`
	Notes string   `json:"notes" validate:"max=2000"`
}

// ApplicationUpdate moves an application to a new status.
type ApplicationUpdate struct {
	Status string  `json:"status" validate:"required,oneof=applied shortlisted rejected selected"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

// StatusCounts tallies postings per status.
type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Dashboard is the placement cell overview.
type Dashboard struct {
	Postings           []Posting     `json:"postings"`
	Counts             StatusCounts  `json:"counts"`
	RecentApplications []Application `json:"recent_applications"`
}

// Board is what a student sees: approved drives and the ones they applied to.
type Board struct {
	Postings          []Posting `json:"postings"`
	AppliedPostingIDs []string  `json:"applied_posting_ids"`
}

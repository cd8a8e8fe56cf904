package profile

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// ErrNotFound is returned when no profile matches the lookup.
var ErrNotFound = errors.New("profile not found")

// Role is the portal a profile belongs to. Roles are carried, not enforced.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDean    Role = "dean"
	RoleHOD     Role = "hod"
	RoleFaculty Role = "faculty"
	RoleCRC     Role = "crc"
	RoleStudent Role = "student"
)

// AllRoles lists every known role.
var AllRoles = []Role{RoleAdmin, RoleDean, RoleHOD, RoleFaculty, RoleCRC, RoleStudent}

// Profile is the academic and contact data attached to a user.
type Profile struct {
	ID           string      `db:"id" json:"id"`
	Username     string      `db:"username" json:"username"`
	FirstName    string      `db:"first_name" json:"first_name"`
	LastName     string      `db:"last_name" json:"last_name"`
	Email        string      `db:"email" json:"email"`
	EnrollmentNo null.String `db:"enrollment_no" json:"enrollment_no"`
	ContactNo    string      `db:"contact_no" json:"contact_no"`
	Department   string      `db:"department" json:"department"`
	School       string      `db:"school" json:"school"`
	Year         null.Int    `db:"year" json:"year"`
	Section      string      `db:"section" json:"section"`
	Role         Role        `db:"role" json:"role"`
	CollegeName  string      `db:"college_name" json:"college_name"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// FullName returns "first last", falling back to the username.
func (p Profile) FullName() string {
	if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
		return name
	}
	return p.Username
}

// NewProfile is the input for creating a profile.
type NewProfile struct {
	Username     string `json:"username" validate:"notblank,max=150"`
	FirstName    string `json:"first_name" validate:"max=150"`
	LastName     string `json:"last_name" validate:"max=150"`
	Email        string `json:"email" validate:"omitempty,email"`
	EnrollmentNo string `json:"enrollment_no" validate:"max=50"`
	ContactNo    string `json:"contact_no" validate:"max=15"`
	Department   string `json:"department" validate:"max=100"`
	School       string `json:"school" validate:"max=100"`
	Year         int    `json:"year" validate:"gte=0,lte=8"`
	Section      string `json:"section" validate:"max=10"`
	Role         string `json:"role" validate:"omitempty,oneof=admin dean hod faculty crc student"`
	CollegeName  string `json:"college_name" validate:"max=200"`
}

// DepartmentMatch is a distinct department/school pair found by search.
type DepartmentMatch struct {
	Department string `db:"department" json:"department"`
	School     string `db:"school" json:"school"`
}

// SearchResult groups the admin search matches.
type SearchResult struct {
	Students    []Profile         `json:"students"`
	Departments []DepartmentMatch `json:"departments"`
	HODs        []Profile         `json:"hods"`
	Colleges    []string          `json:"colleges"`
}

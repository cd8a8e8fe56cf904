package orgstructure

import (
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// ErrNotFound is returned when no org unit matches the id.
var ErrNotFound = errors.New("org unit not found")

// DegreeType classifies a program.
type DegreeType string

const (
	Bachelor    DegreeType = "bachelor"
	Master      DegreeType = "master"
	PhD         DegreeType = "phd"
	Diploma     DegreeType = "diploma"
	Certificate DegreeType = "certificate"
)

// GoverningBody is a university-level office such as the chancellor.
type GoverningBody struct {
	ID          string `db:"id" json:"id"`
	BodyType    string `db:"body_type" json:"body_type"`
	Name        string `db:"name" json:"name"`
	Designation string `db:"designation" json:"designation"`
	Description string `db:"description" json:"description"`
	Icon        string `db:"icon" json:"icon"`
	Color       string `db:"color" json:"color"`
	IsActive    bool   `db:"is_active" json:"is_active"`
}

// School groups departments under a dean.
type School struct {
	ID          string      `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	ShortName   string      `db:"short_name" json:"short_name"`
	Icon        string      `db:"icon" json:"icon"`
	Color       string      `db:"color" json:"color"`
	Description string      `db:"description" json:"description"`
	DeanID      null.String `db:"dean_id" json:"dean_id"`
	IsActive    bool        `db:"is_active" json:"is_active"`
}

// Department belongs to a school and is headed by a HOD.
type Department struct {
	ID          string      `db:"id" json:"id"`
	SchoolID    string      `db:"school_id" json:"school_id"`
	Name        string      `db:"name" json:"name"`
	ShortName   string      `db:"short_name" json:"short_name"`
	Description string      `db:"description" json:"description"`
	HODID       null.String `db:"hod_id" json:"hod_id"`
	IsActive    bool        `db:"is_active" json:"is_active"`
}

// Program is a degree offered by a department.
type Program struct {
	ID            string     `db:"id" json:"id"`
	DepartmentID  string     `db:"department_id" json:"department_id"`
	Name          string     `db:"name" json:"name"`
	DegreeType    DegreeType `db:"degree_type" json:"degree_type"`
	DurationYears int        `db:"duration_years" json:"duration_years"`
	IsActive      bool       `db:"is_active" json:"is_active"`
}

// AcademicSection is an administrative cell such as the examination cell.
type AcademicSection struct {
	ID          string      `db:"id" json:"id"`
	SectionType string      `db:"section_type" json:"section_type"`
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description"`
	InchargeID  null.String `db:"incharge_id" json:"incharge_id"`
	IsActive    bool        `db:"is_active" json:"is_active"`
}

// SupportCell is a student-support committee.
type SupportCell struct {
	ID            string      `db:"id" json:"id"`
	CellType      string      `db:"cell_type" json:"cell_type"`
	Name          string      `db:"name" json:"name"`
	Description   string      `db:"description" json:"description"`
	CoordinatorID null.String `db:"coordinator_id" json:"coordinator_id"`
	IsActive      bool        `db:"is_active" json:"is_active"`
}

// ProgramNode is a program as shown in the structure tree.
type ProgramNode struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	DegreeType DegreeType `json:"degree_type"`
}

// DepartmentNode is a department with its active programs.
type DepartmentNode struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	ShortName string        `json:"short_name"`
	HODID     null.String   `json:"hod_id"`
	Programs  []ProgramNode `json:"programs"`
}

// SchoolNode is a school with its active departments.
type SchoolNode struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	ShortName   string           `json:"short_name"`
	Icon        string           `json:"icon"`
	Color       string           `json:"color"`
	Departments []DepartmentNode `json:"departments"`
}

// Structure is the active university structure.
// Inactive units are omitted together with everything beneath them.
type Structure struct {
	GoverningBodies  []GoverningBody   `json:"governing_bodies"`
	Schools          []SchoolNode      `json:"schools"`
	AcademicSections []AcademicSection `json:"academic_sections"`
	SupportCells     []SupportCell     `json:"support_cells"`
}

// Counts is the number of rows of each org-structure table.
type Counts struct {
	GoverningBodies  int `db:"governing_bodies" json:"governing_bodies"`
	Schools          int `db:"schools" json:"schools"`
	Departments      int `db:"departments" json:"departments"`
	Programs         int `db:"programs" json:"programs"`
	AcademicSections int `db:"academic_sections" json:"academic_sections"`
	SupportCells     int `db:"support_cells" json:"support_cells"`
}

// SchoolCount is the number of active departments and programs of a school.
type SchoolCount struct {
	School      string `db:"school" json:"school"`
	Departments int    `db:"departments" json:"departments"`
	Programs    int    `db:"programs" json:"programs"`
}

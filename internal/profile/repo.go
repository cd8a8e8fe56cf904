package profile

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"erp/internal/store"
)

const profileColumns = `id, username, first_name, last_name, email, enrollment_no, contact_no,
	department, school, year, section, role, college_name, created_at`

// Repository persists profiles.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a repo.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new profile.
func (r *Repository) Insert(ctx context.Context, p Profile) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), p.ID, p.Username, p.FirstName, p.LastName, p.Email, p.EnrollmentNo, p.ContactNo,
		p.Department, p.School, p.Year, p.Section, p.Role, p.CollegeName, p.CreatedAt)
	return errors.Wrap(err, "insert profile")
}

// Get returns a profile by id.
func (r *Repository) Get(ctx context.Context, id string) (Profile, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUsername returns a profile by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (Profile, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEnrollment returns a profile by enrollment number.
func (r *Repository) GetByEnrollment(ctx context.Context, enrollmentNo string) (Profile, error) {
	return r.getBy(ctx, "enrollment_no", enrollmentNo)
}

func (r *Repository) getBy(ctx context.Context, column, value string) (Profile, error) {
	var p Profile
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT `+profileColumns+` FROM profiles WHERE `+column+` = ?`), value)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, errors.Wrapf(err, "get profile by %s", column)
}

// SearchStudents matches students on enrollment number, names or contact number.
func (r *Repository) SearchStudents(ctx context.Context, q string, limit int) ([]Profile, error) {
	pattern := store.ContainsPattern(q)
	var out []Profile
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+profileColumns+` FROM profiles
		WHERE role = ? AND (
			LOWER(COALESCE(enrollment_no, '')) LIKE ? ESCAPE '\'
			OR LOWER(first_name) LIKE ? ESCAPE '\'
			OR LOWER(last_name) LIKE ? ESCAPE '\'
			OR LOWER(contact_no) LIKE ? ESCAPE '\'
		)
		ORDER BY username
		LIMIT ?
	`), RoleStudent, pattern, pattern, pattern, pattern, limit)
	return out, errors.Wrap(err, "search students")
}

// SearchDepartments returns distinct department/school pairs whose department matches q.
func (r *Repository) SearchDepartments(ctx context.Context, q string, limit int) ([]DepartmentMatch, error) {
	var out []DepartmentMatch
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT DISTINCT department, school FROM profiles
		WHERE department <> '' AND LOWER(department) LIKE ? ESCAPE '\'
		ORDER BY department, school
		LIMIT ?
	`), store.ContainsPattern(q), limit)
	return out, errors.Wrap(err, "search departments")
}

// SearchHODs matches heads of department on name or department.
func (r *Repository) SearchHODs(ctx context.Context, q string, limit int) ([]Profile, error) {
	pattern := store.ContainsPattern(q)
	var out []Profile
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+profileColumns+` FROM profiles
		WHERE role = ? AND (
			LOWER(first_name) LIKE ? ESCAPE '\'
			OR LOWER(last_name) LIKE ? ESCAPE '\'
			OR LOWER(department) LIKE ? ESCAPE '\'
		)
		ORDER BY username
		LIMIT ?
	`), RoleHOD, pattern, pattern, pattern, limit)
	return out, errors.Wrap(err, "search hods")
}

// SearchColleges returns distinct college names matching q.
func (r *Repository) SearchColleges(ctx context.Context, q string, limit int) ([]string, error) {
	var out []string
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT DISTINCT college_name FROM profiles
		WHERE college_name <> '' AND LOWER(college_name) LIKE ? ESCAPE '\'
		ORDER BY college_name
		LIMIT ?
	`), store.ContainsPattern(q), limit)
	return out, errors.Wrap(err, "search colleges")
}

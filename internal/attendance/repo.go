package attendance

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"erp/internal/store"
)

const recordColumns = `id, student_id, enrollment_no, student_name, contact_no, department, school,
	year, section, course, faculty_id, faculty_name, date, status, created_at`

// Repository persists attendance records.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a repo.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// InsertBatch writes records in a single transaction.
func (r *Repository) InsertBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	return store.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		q := tx.Rebind(`INSERT INTO attendance_records (` + recordColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		for _, rec := range records {
			if _, err := tx.ExecContext(ctx, q,
				rec.ID, rec.StudentID, rec.EnrollmentNo, rec.StudentName, rec.ContactNo, rec.Department,
				rec.School, rec.Year, rec.Section, rec.Course, rec.FacultyID, rec.FacultyName, rec.Date,
				rec.Status, rec.CreatedAt,
			); err != nil {
				return errors.Wrap(err, "insert attendance record")
			}
		}
		return nil
	})
}

// List returns records matching f, newest date first then by student name.
func (r *Repository) List(ctx context.Context, f Filter) ([]Record, error) {
	var (
		clauses []string
		args    []interface{}
	)
	if q := strings.TrimSpace(f.Search); q != "" {
		pattern := store.ContainsPattern(q)
		clauses = append(clauses, `(LOWER(enrollment_no) LIKE ? ESCAPE '\'
			OR LOWER(student_name) LIKE ? ESCAPE '\'
			OR LOWER(department) LIKE ? ESCAPE '\'
			OR LOWER(contact_no) LIKE ? ESCAPE '\'
			OR LOWER(school) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if f.School != "" {
		clauses = append(clauses, "school = ?")
		args = append(args, f.School)
	}
	if f.Department != "" {
		clauses = append(clauses, "department = ?")
		args = append(args, f.Department)
	}
	if f.From != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		clauses = append(clauses, "date <= ?")
		args = append(args, *f.To)
	}

	query := `SELECT ` + recordColumns + ` FROM attendance_records`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY date DESC, student_name"

	var out []Record
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "list attendance records")
	}
	return out, nil
}

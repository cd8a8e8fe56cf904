package request

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const requestColumns = `id, student_id, application_type, student_name, enrollment_no, department,
	course, semester, mobile, email, reason, custom_reason, from_date, to_date, extra_note, status,
	reviewed_by, reviewed_at, admin_notes, created_at, updated_at`

// Repository persists application requests.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a repo.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new request.
func (r *Repository) Insert(ctx context.Context, req Request) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO application_requests (`+requestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), req.ID, req.StudentID, req.ApplicationType, req.StudentName, req.EnrollmentNo, req.Department,
		req.Course, req.Semester, req.Mobile, req.Email, req.Reason, req.CustomReason, req.FromDate,
		req.ToDate, req.ExtraNote, req.Status, req.ReviewedBy, req.ReviewedAt, req.AdminNotes,
		req.CreatedAt, req.UpdatedAt)
	return errors.Wrap(err, "insert application request")
}

// Get returns a request by id.
func (r *Repository) Get(ctx context.Context, id string) (Request, error) {
	var req Request
	err := r.db.GetContext(ctx, &req, r.db.Rebind(`SELECT `+requestColumns+` FROM application_requests WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, errors.Wrap(err, "get application request")
}

// ListByStudent returns a student's requests, newest first.
func (r *Repository) ListByStudent(ctx context.Context, studentID string) ([]Request, error) {
	var out []Request
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+requestColumns+` FROM application_requests
		WHERE student_id = ?
		ORDER BY created_at DESC
	`), studentID)
	return out, errors.Wrap(err, "list application requests")
}

// ListByStatus returns requests in status, oldest first so reviewers work in arrival order.
func (r *Repository) ListByStatus(ctx context.Context, status Status) ([]Request, error) {
	var out []Request
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+requestColumns+` FROM application_requests
		WHERE status = ?
		ORDER BY created_at
	`), status)
	return out, errors.Wrap(err, "list application requests by status")
}

// UpdateReview stores the outcome of a review.
func (r *Repository) UpdateReview(ctx context.Context, req Request) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE application_requests
		SET status = ?, reviewed_by = ?, reviewed_at = ?, admin_notes = ?, updated_at = ?
		WHERE id = ?
	`), req.Status, req.ReviewedBy, req.ReviewedAt, req.AdminNotes, req.UpdatedAt, req.ID)
	if err != nil {
		return errors.Wrap(err, "review application request")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "review application request")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

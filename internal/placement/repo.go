package placement

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"erp/internal/store"
)

const (
	postingColumns = `id, company_name, role, package, eligibility_cgpa, branches_allowed, last_date,
		drive_date, job_location, mode, description, status, created_by, created_at, approved_by, approved_at`

	applicationColumns = `a.id, a.posting_id, a.student_id, a.enrollment_no, a.student_name, a.department,
		a.cgpa, a.status, a.notes, a.applied_at, p.company_name, p.role AS posting_role`

	applicationFrom = ` FROM placement_applications a JOIN placement_postings p ON p.id = a.posting_id`
)

// Repository persists postings and applications.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a repo.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// InsertPosting writes a new posting.
func (r *Repository) InsertPosting(ctx context.Context, p Posting) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO placement_postings (`+postingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), p.ID, p.CompanyName, p.Role, p.Package, p.EligibilityCGPA, p.BranchesAllowed, p.LastDate,
		p.DriveDate, p.JobLocation, p.Mode, p.Description, p.Status, p.CreatedBy, p.CreatedAt,
		p.ApprovedBy, p.ApprovedAt)
	return errors.Wrap(err, "insert posting")
}

// UpdatePosting rewrites the editable fields of a posting.
func (r *Repository) UpdatePosting(ctx context.Context, p Posting) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE placement_postings
		SET company_name = ?, role = ?, package = ?, eligibility_cgpa = ?, branches_allowed = ?,
			last_date = ?, drive_date = ?, job_location = ?, mode = ?, description = ?
		WHERE id = ?
	`), p.CompanyName, p.Role, p.Package, p.EligibilityCGPA, p.BranchesAllowed, p.LastDate,
		p.DriveDate, p.JobLocation, p.Mode, p.Description, p.ID)
	if err != nil {
		return errors.Wrap(err, "update posting")
	}
	return expectOne(res, ErrPostingNotFound)
}

// GetPosting returns a posting by id.
func (r *Repository) GetPosting(ctx context.Context, id string) (Posting, error) {
	var p Posting
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT `+postingColumns+` FROM placement_postings WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Posting{}, ErrPostingNotFound
	}
	return p, errors.Wrap(err, "get posting")
}

// DecidePosting moves a pending posting to status, stamping the approver.
// It returns ErrAlreadyDecided when the posting is no longer pending.
func (r *Repository) DecidePosting(ctx context.Context, id string, status PostingStatus, approver string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE placement_postings SET status = ?, approved_by = ?, approved_at = ?
		WHERE id = ? AND status = ?
	`), status, null.NewString(approver, approver != ""), at, id, PostingPending)
	if err != nil {
		return errors.Wrap(err, "decide posting")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "decide posting")
	} else if n == 1 {
		return nil
	}
	if _, err := r.GetPosting(ctx, id); err != nil {
		return err
	}
	return ErrAlreadyDecided
}

// ListPostings returns postings, optionally of one status.
// Approved postings are ordered by approval time, everything else by creation time, newest first.
func (r *Repository) ListPostings(ctx context.Context, status PostingStatus) ([]Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM placement_postings`
	var args []interface{}
	switch status {
	case "":
		query += ` ORDER BY created_at DESC`
	case PostingApproved:
		query += ` WHERE status = ? ORDER BY approved_at DESC, created_at DESC`
		args = append(args, status)
	default:
		query += ` WHERE status = ? ORDER BY created_at DESC`
		args = append(args, status)
	}
	var out []Posting
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...)
	return out, errors.Wrap(err, "list postings")
}

// CountPostings tallies postings per status.
func (r *Repository) CountPostings(ctx context.Context) (StatusCounts, error) {
	var rows []struct {
		Status PostingStatus `db:"status"`
		N      int           `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS n FROM placement_postings GROUP BY status`); err != nil {
		return StatusCounts{}, errors.Wrap(err, "count postings")
	}
	var c StatusCounts
	for _, row := range rows {
		c.Total += row.N
		switch row.Status {
		case PostingPending:
			c.Pending = row.N
		case PostingApproved:
			c.Approved = row.N
		case PostingRejected:
			c.Rejected = row.N
		}
	}
	return c, nil
}

// InsertApplication writes an application. The (posting, student) pair is unique in the store.
func (r *Repository) InsertApplication(ctx context.Context, a Application) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO placement_applications
			(id, posting_id, student_id, enrollment_no, student_name, department, cgpa, status, notes, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), a.ID, a.PostingID, a.StudentID, a.EnrollmentNo, a.StudentName, a.Department, a.CGPA, a.Status,
		a.Notes, a.AppliedAt)
	if store.IsUniqueViolation(err) {
		return ErrDuplicateApplication
	}
	return errors.Wrap(err, "insert application")
}

// HasApplied reports whether student already applied to posting.
func (r *Repository) HasApplied(ctx context.Context, postingID, studentID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`
		SELECT COUNT(*) FROM placement_applications WHERE posting_id = ? AND student_id = ?
	`), postingID, studentID)
	return n > 0, errors.Wrap(err, "check application")
}

// GetApplication returns an application by id.
func (r *Repository) GetApplication(ctx context.Context, id string) (Application, error) {
	var a Application
	err := r.db.GetContext(ctx, &a, r.db.Rebind(`SELECT `+applicationColumns+applicationFrom+` WHERE a.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrApplicationNotFound
	}
	return a, errors.Wrap(err, "get application")
}

// UpdateApplication stores a new status and notes.
func (r *Repository) UpdateApplication(ctx context.Context, id string, status ApplicationStatus, notes string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE placement_applications SET status = ?, notes = ? WHERE id = ?`),
		status, notes, id)
	if err != nil {
		return errors.Wrap(err, "update application")
	}
	return expectOne(res, ErrApplicationNotFound)
}

// ListApplicationsByPosting returns the applications of a posting, newest first.
func (r *Repository) ListApplicationsByPosting(ctx context.Context, postingID string) ([]Application, error) {
	return r.listApplications(ctx, ` WHERE a.posting_id = ? ORDER BY a.applied_at DESC`, postingID)
}

// ListApplicationsByStudent returns the applications of a student, newest first.
func (r *Repository) ListApplicationsByStudent(ctx context.Context, studentID string) ([]Application, error) {
	return r.listApplications(ctx, ` WHERE a.student_id = ? ORDER BY a.applied_at DESC`, studentID)
}

// ListRecentApplications returns the latest applications across all postings.
func (r *Repository) ListRecentApplications(ctx context.Context, limit int) ([]Application, error) {
	return r.listApplications(ctx, ` ORDER BY a.applied_at DESC LIMIT ?`, limit)
}

func (r *Repository) listApplications(ctx context.Context, tail string, args ...interface{}) ([]Application, error) {
	var out []Application
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`SELECT `+applicationColumns+applicationFrom+tail), args...)
	return out, errors.Wrap(err, "list applications")
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

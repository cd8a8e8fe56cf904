package placement

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"erp/internal/logger"
	"erp/internal/metrics"
	"erp/internal/profile"
	"erp/internal/validation"
)

// recentApplicationsLimit bounds the dashboard's latest-applications list.
const recentApplicationsLimit = 20

// Store is the persistence surface used by Service.
type Store interface {
	InsertPosting(ctx context.Context, p Posting) error
	UpdatePosting(ctx context.Context, p Posting) error
	GetPosting(ctx context.Context, id string) (Posting, error)
	DecidePosting(ctx context.Context, id string, status PostingStatus, approver string, at time.Time) error
	ListPostings(ctx context.Context, status PostingStatus) ([]Posting, error)
	CountPostings(ctx context.Context) (StatusCounts, error)
	InsertApplication(ctx context.Context, a Application) error
	HasApplied(ctx context.Context, postingID, studentID string) (bool, error)
	GetApplication(ctx context.Context, id string) (Application, error)
	UpdateApplication(ctx context.Context, id string, status ApplicationStatus, notes string) error
	ListApplicationsByPosting(ctx context.Context, postingID string) ([]Application, error)
	ListApplicationsByStudent(ctx context.Context, studentID string) ([]Application, error)
	ListRecentApplications(ctx context.Context, limit int) ([]Application, error)
}

// Service runs the posting approval and application workflows.
type Service struct {
	repo Store
	log  logger.Logger
	now  func() time.Time
}

// NewService creates a service backed by a repository.
func NewService(repo Store, log logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

func (in PostingInput) apply(p *Posting) error {
	lastDate, err := validation.ParseDate(in.LastDate)
	if err != nil {
		return validation.Field("last_date", "must be a date formatted as YYYY-MM-DD")
	}
	driveDate, err := validation.ParseDate(in.DriveDate)
	if err != nil {
		return validation.Field("drive_date", "must be a date formatted as YYYY-MM-DD")
	}
	p.CompanyName = strings.TrimSpace(in.CompanyName)
	p.Role = strings.TrimSpace(in.Role)
	p.Package = in.Package
	p.EligibilityCGPA = null.Float64FromPtr(in.EligibilityCGPA)
	p.BranchesAllowed = strings.TrimSpace(in.BranchesAllowed)
	p.LastDate = lastDate
	p.DriveDate = driveDate
	p.JobLocation = strings.TrimSpace(in.JobLocation)
	p.Mode = Mode(in.Mode)
	if p.Mode == "" {
		p.Mode = OnCampus
	}
	p.Description = in.Description
	return nil
}

// CreatePosting records a new drive announced by actor. New postings always start pending.
func (s *Service) CreatePosting(ctx context.Context, actor profile.Profile, in PostingInput) (Posting, error) {
	if err := validation.Struct(in); err != nil {
		return Posting{}, err
	}
	p := Posting{
		ID:        uuid.NewString(),
		Status:    PostingPending,
		CreatedAt: s.now().UTC(),
	}
	if actor.ID != "" {
		p.CreatedBy = null.StringFrom(actor.ID)
	}
	if err := in.apply(&p); err != nil {
		return Posting{}, err
	}
	if err := s.repo.InsertPosting(ctx, p); err != nil {
		return Posting{}, err
	}
	return p, nil
}

// UpdatePosting edits the company details of a posting. Its status is left untouched.
func (s *Service) UpdatePosting(ctx context.Context, id string, in PostingInput) (Posting, error) {
	if err := validation.Struct(in); err != nil {
		return Posting{}, err
	}
	p, err := s.repo.GetPosting(ctx, id)
	if err != nil {
		return Posting{}, err
	}
	if err := in.apply(&p); err != nil {
		return Posting{}, err
	}
	if err := s.repo.UpdatePosting(ctx, p); err != nil {
		return Posting{}, err
	}
	return p, nil
}

// Decide approves or rejects a pending posting on behalf of actor.
func (s *Service) Decide(ctx context.Context, actor profile.Profile, id string, d Decision) (Posting, error) {
	if err := validation.Struct(d); err != nil {
		return Posting{}, err
	}
	status := PostingApproved
	if d.Action == "reject" {
		status = PostingRejected
	}
	if err := s.repo.DecidePosting(ctx, id, status, actor.ID, s.now().UTC()); err != nil {
		return Posting{}, err
	}
	metrics.PostingsDecided.WithLabelValues(string(status)).Inc()
	return s.repo.GetPosting(ctx, id)
}

// GetPosting returns a posting by id.
func (s *Service) GetPosting(ctx context.Context, id string) (Posting, error) {
	return s.repo.GetPosting(ctx, id)
}

// Pending lists postings awaiting a decision, newest first.
func (s *Service) Pending(ctx context.Context) []Posting {
	out, err := s.repo.ListPostings(ctx, PostingPending)
	if err != nil {
		s.degrade("pending_postings", err)
		return []Posting{}
	}
	return nonNil(out)
}

// Board lists approved postings, most recently approved first, with the ids actor applied to.
func (s *Service) Board(ctx context.Context, actor profile.Profile) Board {
	b := Board{Postings: []Posting{}, AppliedPostingIDs: []string{}}
	postings, err := s.repo.ListPostings(ctx, PostingApproved)
	if err != nil {
		s.degrade("placement_board", err)
		return b
	}
	b.Postings = nonNil(postings)
	apps, err := s.repo.ListApplicationsByStudent(ctx, actor.ID)
	if err != nil {
		s.degrade("placement_board", err)
		return b
	}
	for _, a := range apps {
		b.AppliedPostingIDs = append(b.AppliedPostingIDs, a.PostingID)
	}
	return b
}

// Dashboard returns every posting with status counts and the latest applications.
func (s *Service) Dashboard(ctx context.Context) Dashboard {
	d := Dashboard{Postings: []Posting{}, RecentApplications: []Application{}}
	postings, err := s.repo.ListPostings(ctx, "")
	if err != nil {
		s.degrade("placement_dashboard", err)
		return d
	}
	d.Postings = nonNil(postings)
	if d.Counts, err = s.repo.CountPostings(ctx); err != nil {
		s.degrade("placement_dashboard", err)
	}
	recent, err := s.repo.ListRecentApplications(ctx, recentApplicationsLimit)
	if err != nil {
		s.degrade("placement_dashboard", err)
	}
	d.RecentApplications = nonNil(recent)
	return d
}

// Apply records actor's application to an approved posting.
// A posting that is missing or not approved is reported as not found.
func (s *Service) Apply(ctx context.Context, actor profile.Profile, postingID string, in ApplyInput) (Application, error) {
	if err := validation.Struct(in); err != nil {
		return Application{}, err
	}
	p, err := s.repo.GetPosting(ctx, postingID)
	if err != nil {
		return Application{}, err
	}
	if p.Status != PostingApproved {
		return Application{}, ErrPostingNotFound
	}
	applied, err := s.repo.HasApplied(ctx, postingID, actor.ID)
	if err != nil {
		return Application{}, err
	}
	if applied {
		metrics.PlacementApplications.WithLabelValues("duplicate").Inc()
		return Application{}, ErrDuplicateApplication
	}

	a := Application{
		ID:           uuid.NewString(),
		PostingID:    p.ID,
		StudentID:    actor.ID,
		EnrollmentNo: actor.EnrollmentNo.String,
		StudentName:  actor.FullName(),
		Department:   actor.Department,
		CGPA:         null.Float64FromPtr(in.CGPA),
		Status:       ApplicationApplied,
		Notes:        in.Notes,
		AppliedAt:    s.now().UTC(),
		CompanyName:  p.CompanyName,
		PostingRole:  p.Role,
	}
	if err := s.repo.InsertApplication(ctx, a); err != nil {
		if err == ErrDuplicateApplication {
			metrics.PlacementApplications.WithLabelValues("duplicate").Inc()
		}
		return Application{}, err
	}
	metrics.PlacementApplications.WithLabelValues("applied").Inc()
	return a, nil
}

// ApplicationsForPosting lists the applications of a posting, newest first.
// Only a missing posting is an error; a failing store yields an empty list.
func (s *Service) ApplicationsForPosting(ctx context.Context, postingID string) ([]Application, error) {
	if _, err := s.repo.GetPosting(ctx, postingID); errors.Is(err, ErrPostingNotFound) {
		return nil, err
	} else if err != nil {
		s.degrade("posting_applications", err)
		return []Application{}, nil
	}
	out, err := s.repo.ListApplicationsByPosting(ctx, postingID)
	if err != nil {
		s.degrade("posting_applications", err)
		return []Application{}, nil
	}
	return nonNil(out), nil
}

// UpdateApplication sets the status of an application and, when given, its notes.
func (s *Service) UpdateApplication(ctx context.Context, id string, upd ApplicationUpdate) (Application, error) {
	if err := validation.Struct(upd); err != nil {
		return Application{}, err
	}
	a, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return Application{}, err
	}
	a.Status = ApplicationStatus(upd.Status)
	if upd.Notes != nil {
		a.Notes = *upd.Notes
	}
	if err := s.repo.UpdateApplication(ctx, id, a.Status, a.Notes); err != nil {
		return Application{}, err
	}
	return a, nil
}

// MyApplications lists actor's applications, newest first.
func (s *Service) MyApplications(ctx context.Context, actor profile.Profile) []Application {
	out, err := s.repo.ListApplicationsByStudent(ctx, actor.ID)
	if err != nil {
		s.degrade("my_applications", err)
		return []Application{}
	}
	return nonNil(out)
}

func (s *Service) degrade(report string, err error) {
	metrics.ReportFallbacks.WithLabelValues(report).Inc()
	s.log.Warn("placement store unavailable, returning empty result", report, err)
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

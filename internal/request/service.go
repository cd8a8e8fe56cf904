package request

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"erp/internal/logger"
	"erp/internal/metrics"
	"erp/internal/profile"
	"erp/internal/validation"
)

// Store is the persistence surface used by Service.
type Store interface {
	Insert(ctx context.Context, req Request) error
	Get(ctx context.Context, id string) (Request, error)
	ListByStudent(ctx context.Context, studentID string) ([]Request, error)
	ListByStatus(ctx context.Context, status Status) ([]Request, error)
	UpdateReview(ctx context.Context, req Request) error
}

// Service runs the application request workflow.
type Service struct {
	repo    Store
	catalog *Catalog
	log     logger.Logger
	now     func() time.Time
}

// NewService creates a service backed by a repository and the request catalog.
func NewService(repo Store, catalog *Catalog, log logger.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, log: log, now: time.Now}
}

// Catalog returns the categories offered to students.
func (s *Service) Catalog() []Type {
	return s.catalog.Types()
}

// Form returns the reasons of a category and the caller's prefilled profile fields.
func (s *Service) Form(actor profile.Profile, code string) (FormOptions, error) {
	t, ok := s.catalog.Lookup(code)
	if !ok {
		return FormOptions{}, validation.Field("application_type", "unknown application type")
	}
	return FormOptions{
		Type:    t.Code,
		Name:    t.Name,
		Reasons: s.catalog.Reasons(code),
		Prefill: prefill(actor),
	}, nil
}

func prefill(p profile.Profile) Prefill {
	out := Prefill{
		StudentName:  p.FullName(),
		EnrollmentNo: p.EnrollmentNo.String,
		Department:   p.Department,
		Mobile:       p.ContactNo,
		Email:        p.Email,
		Section:      p.Section,
	}
	if p.Year.Valid {
		out.Year = p.Year.Int
	}
	return out
}

func (s *Service) check(sub Submission) error {
	if err := validation.Struct(sub); err != nil {
		return err
	}
	if _, ok := s.catalog.Lookup(sub.ApplicationType); !ok {
		return validation.Field("application_type", "unknown application type")
	}
	reason := strings.TrimSpace(sub.Reason)
	if reason == OtherReason {
		if strings.TrimSpace(sub.CustomReason) == "" {
			return validation.Field("custom_reason", "a custom reason is required when the reason is Other")
		}
	} else if !s.catalog.AllowsReason(sub.ApplicationType, reason) {
		return validation.Field("reason", "not a valid reason for this application type")
	}
	if sub.FromDate != "" && sub.ToDate != "" && sub.ToDate < sub.FromDate {
		return validation.Field("to_date", "must not be before from_date")
	}
	return nil
}

func optional(s string) null.String {
	s = strings.TrimSpace(s)
	return null.NewString(s, s != "")
}

func optionalDate(s string) null.Time {
	d, err := validation.ParseOptionalDate(s)
	if err != nil || d == nil {
		return null.Time{}
	}
	return null.TimeFrom(*d)
}

// Submit validates sub and files it as a pending request of actor.
func (s *Service) Submit(ctx context.Context, actor profile.Profile, sub Submission) (Request, error) {
	if err := s.check(sub); err != nil {
		return Request{}, err
	}
	now := s.now().UTC()
	req := Request{
		ID:              uuid.NewString(),
		StudentID:       actor.ID,
		ApplicationType: sub.ApplicationType,
		StudentName:     actor.FullName(),
		EnrollmentNo:    actor.EnrollmentNo.String,
		Department:      actor.Department,
		Course:          optional(sub.Course),
		Semester:        optional(sub.Semester),
		Mobile:          actor.ContactNo,
		Email:           actor.Email,
		Reason:          optional(sub.Reason),
		CustomReason:    optional(sub.CustomReason),
		FromDate:        optionalDate(sub.FromDate),
		ToDate:          optionalDate(sub.ToDate),
		ExtraNote:       optional(sub.ExtraNote),
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Insert(ctx, req); err != nil {
		return Request{}, err
	}
	metrics.RequestsSubmitted.WithLabelValues(req.ApplicationType).Inc()
	return req, nil
}

// Get returns a request by id.
func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	return s.repo.Get(ctx, id)
}

// Mine lists actor's requests, newest first.
func (s *Service) Mine(ctx context.Context, actor profile.Profile) []Request {
	out, err := s.repo.ListByStudent(ctx, actor.ID)
	if err != nil {
		metrics.ReportFallbacks.WithLabelValues("my_requests").Inc()
		s.log.Warn("request store unavailable, returning empty result", err)
		return []Request{}
	}
	if out == nil {
		return []Request{}
	}
	return out
}

// Queue lists requests in status for reviewers, oldest first. An empty status means pending.
func (s *Service) Queue(ctx context.Context, status string) ([]Request, error) {
	st := Status(status)
	switch st {
	case "":
		st = StatusPending
	case StatusPending, StatusApproved, StatusRejected, StatusInProcess:
	default:
		return nil, validation.Field("status", "unknown status")
	}
	out, err := s.repo.ListByStatus(ctx, st)
	if err != nil {
		metrics.ReportFallbacks.WithLabelValues("request_queue").Inc()
		s.log.Warn("request store unavailable, returning empty result", err)
		return []Request{}, nil
	}
	if out == nil {
		return []Request{}, nil
	}
	return out, nil
}

// Review records actor's decision on a request.
func (s *Service) Review(ctx context.Context, actor profile.Profile, id string, rv Review) (Request, error) {
	if err := validation.Struct(rv); err != nil {
		return Request{}, err
	}
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		return Request{}, err
	}
	now := s.now().UTC()
	req.Status = Status(rv.Status)
	req.ReviewedBy = null.NewString(actor.ID, actor.ID != "")
	req.ReviewedAt = null.TimeFrom(now)
	req.UpdatedAt = now
	if rv.AdminNotes != nil {
		req.AdminNotes = optional(*rv.AdminNotes)
	}
	if err := s.repo.UpdateReview(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

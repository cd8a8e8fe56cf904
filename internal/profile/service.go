package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"erp/internal/logger"
	"erp/internal/metrics"
	"erp/internal/store"
	"erp/internal/validation"
)

// searchLimit caps every admin search bucket.
const searchLimit = 10

// Store is the persistence surface used by Service.
type Store interface {
	Insert(ctx context.Context, p Profile) error
	Get(ctx context.Context, id string) (Profile, error)
	GetByUsername(ctx context.Context, username string) (Profile, error)
	GetByEnrollment(ctx context.Context, enrollmentNo string) (Profile, error)
	SearchStudents(ctx context.Context, q string, limit int) ([]Profile, error)
	SearchDepartments(ctx context.Context, q string, limit int) ([]DepartmentMatch, error)
	SearchHODs(ctx context.Context, q string, limit int) ([]Profile, error)
	SearchColleges(ctx context.Context, q string, limit int) ([]string, error)
}

// Service manages profiles and the admin search.
type Service struct {
	repo Store
	log  logger.Logger
	now  func() time.Time
}

// NewService creates a service backed by a repository.
func NewService(repo Store, log logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Create validates np and persists a new profile.
func (s *Service) Create(ctx context.Context, np NewProfile) (Profile, error) {
	if err := validation.Struct(np); err != nil {
		return Profile{}, err
	}
	p := Profile{
		ID:          uuid.NewString(),
		Username:    strings.TrimSpace(np.Username),
		FirstName:   strings.TrimSpace(np.FirstName),
		LastName:    strings.TrimSpace(np.LastName),
		Email:       strings.TrimSpace(np.Email),
		ContactNo:   np.ContactNo,
		Department:  np.Department,
		School:      np.School,
		Section:     np.Section,
		Role:        Role(np.Role),
		CollegeName: np.CollegeName,
		CreatedAt:   s.now().UTC(),
	}
	if p.Role == "" {
		p.Role = RoleStudent
	}
	if enrollment := strings.TrimSpace(np.EnrollmentNo); enrollment != "" {
		p.EnrollmentNo = null.StringFrom(enrollment)
	}
	if np.Year > 0 {
		p.Year = null.IntFrom(np.Year)
	}

	if _, err := s.repo.GetByUsername(ctx, p.Username); err == nil {
		return Profile{}, validation.Field("username", "username already taken")
	} else if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}
	if p.EnrollmentNo.Valid {
		if _, err := s.repo.GetByEnrollment(ctx, p.EnrollmentNo.String); err == nil {
			return Profile{}, validation.Field("enrollment_no", "enrollment number already registered")
		} else if !errors.Is(err, ErrNotFound) {
			return Profile{}, err
		}
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		if store.IsUniqueViolation(err) {
			return Profile{}, validation.New(errors.New("profile already exists"))
		}
		return Profile{}, err
	}
	return p, nil
}

// Get returns the profile with id.
func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	return s.repo.Get(ctx, id)
}

// GetByUsername returns the profile registered under username.
func (s *Service) GetByUsername(ctx context.Context, username string) (Profile, error) {
	return s.repo.GetByUsername(ctx, strings.TrimSpace(username))
}

// Search looks q up across students, departments, HODs and colleges.
// An empty query returns empty buckets, and so does a failing store.
func (s *Service) Search(ctx context.Context, q string) SearchResult {
	res := SearchResult{
		Students:    []Profile{},
		Departments: []DepartmentMatch{},
		HODs:        []Profile{},
		Colleges:    []string{},
	}
	if strings.TrimSpace(q) == "" {
		return res
	}
	students, err := s.repo.SearchStudents(ctx, q, searchLimit)
	if err != nil {
		s.degrade(err)
		return res
	}
	depts, err := s.repo.SearchDepartments(ctx, q, searchLimit)
	if err != nil {
		s.degrade(err)
		return res
	}
	hods, err := s.repo.SearchHODs(ctx, q, searchLimit)
	if err != nil {
		s.degrade(err)
		return res
	}
	colleges, err := s.repo.SearchColleges(ctx, q, searchLimit)
	if err != nil {
		s.degrade(err)
		return res
	}
	return SearchResult{
		Students:    nonNil(students),
		Departments: nonNil(depts),
		HODs:        nonNil(hods),
		Colleges:    nonNil(colleges),
	}
}

func (s *Service) degrade(err error) {
	metrics.ReportFallbacks.WithLabelValues("admin_search").Inc()
	s.log.Warn("profile store unavailable, returning empty search", err)
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

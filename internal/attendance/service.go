package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"erp/internal/logger"
	"erp/internal/metrics"
	"erp/internal/profile"
	"erp/internal/store"
	"erp/internal/validation"
)

// Store is the persistence surface used by Service.
type Store interface {
	InsertBatch(ctx context.Context, records []Record) error
	List(ctx context.Context, f Filter) ([]Record, error)
}

// Profiles resolves students when marking attendance.
type Profiles interface {
	Get(ctx context.Context, id string) (profile.Profile, error)
}

// AdminReport is the university-wide attendance rollup.
type AdminReport struct {
	Search      string      `json:"search"`
	SchoolWise  []GroupStat `json:"school_wise"`
	DeptWise    []GroupStat `json:"dept_wise"`
	YearWise    []GroupStat `json:"year_wise"`
	SectionWise []GroupStat `json:"section_wise"`
	CourseWise  []GroupStat `json:"course_wise"`
	FacultyWise []GroupStat `json:"faculty_wise"`
	Overall     Summary     `json:"overall"`
}

// DeanReport is the rollup of one school.
type DeanReport struct {
	School       string      `json:"school"`
	DeptWise     []GroupStat `json:"dept_wise"`
	SemesterWise []GroupStat `json:"semester_wise"`
	Overall      Summary     `json:"overall"`
	Shortages    []Shortage  `json:"shortages"`
}

// HODReport is the rollup of one department.
type HODReport struct {
	Department  string      `json:"department"`
	BatchWise   []GroupStat `json:"batch_wise"`
	SubjectWise []GroupStat `json:"subject_wise"`
	Shortages   []Shortage  `json:"shortages"`
	Windows
}

// Service records attendance and computes the dashboards.
type Service struct {
	repo     Store
	profiles Profiles
	log      logger.Logger
	now      func() time.Time
}

// NewService creates a service backed by a repository.
func NewService(repo Store, profiles Profiles, log logger.Logger) *Service {
	return &Service{repo: repo, profiles: profiles, log: log, now: time.Now}
}

// Mark validates every entry, snapshots each student's profile and writes the batch.
// The caller is recorded as the faculty member who took attendance.
func (s *Service) Mark(ctx context.Context, actor profile.Profile, entries []MarkEntry) ([]Record, error) {
	if len(entries) == 0 {
		return nil, validation.Field("entries", "at least one entry is required")
	}

	var fieldErrs []validation.FieldError
	records := make([]Record, 0, len(entries))
	createdAt := s.now().UTC()
	for i, e := range entries {
		prefix := fmt.Sprintf("entries[%d].", i)
		if err := validation.Struct(e); err != nil {
			verr, ok := validation.As(err)
			if !ok {
				return nil, err
			}
			for _, f := range verr.Fields {
				fieldErrs = append(fieldErrs, validation.FieldError{Field: prefix + f.Field, Error: f.Error})
			}
			continue
		}
		student, err := s.profiles.Get(ctx, e.StudentID)
		if errors.Is(err, profile.ErrNotFound) {
			fieldErrs = append(fieldErrs, validation.FieldError{Field: prefix + "student_id", Error: "unknown student"})
			continue
		} else if err != nil {
			return nil, err
		}
		date, _ := validation.ParseDate(e.Date)
		records = append(records, newRecord(student, actor, e, date, createdAt))
	}
	if len(fieldErrs) > 0 {
		return nil, validation.New(validation.ErrInvalidInput, fieldErrs...)
	}

	if err := s.repo.InsertBatch(ctx, records); err != nil {
		return nil, err
	}
	for _, rec := range records {
		metrics.AttendanceMarked.WithLabelValues(string(rec.Status)).Inc()
	}
	return records, nil
}

func newRecord(student, faculty profile.Profile, e MarkEntry, date, createdAt time.Time) Record {
	rec := Record{
		ID:           uuid.NewString(),
		StudentID:    student.ID,
		EnrollmentNo: student.EnrollmentNo.String,
		StudentName:  student.FullName(),
		ContactNo:    student.ContactNo,
		Department:   student.Department,
		School:       student.School,
		Year:         1,
		Section:      student.Section,
		Course:       e.Course,
		Date:         date,
		Status:       Status(e.Status),
		CreatedAt:    createdAt,
	}
	if student.Year.Valid {
		rec.Year = student.Year.Int
	}
	if rec.Status == "" {
		rec.Status = StatusAbsent
	}
	if faculty.ID != "" {
		rec.FacultyID = null.StringFrom(faculty.ID)
		rec.FacultyName = faculty.FullName()
	}
	return rec
}

// records loads the record set for a report, degrading to an empty set when the store fails.
func (s *Service) records(ctx context.Context, report string, f Filter) []Record {
	recs, err := s.repo.List(ctx, f)
	if err == nil {
		return recs
	}
	metrics.ReportFallbacks.WithLabelValues(report).Inc()
	if store.IsUndefinedTable(err) {
		s.log.Warn("attendance table missing, reporting empty result", report)
	} else {
		s.log.Warn("attendance store unavailable, reporting empty result", report, err)
	}
	return nil
}

// AdminDashboard rolls up every record matching search along all dimensions.
func (s *Service) AdminDashboard(ctx context.Context, search string) AdminReport {
	recs := s.records(ctx, "admin", Filter{Search: search})
	return AdminReport{
		Search:      search,
		SchoolWise:  Group(recs, BySchool),
		DeptWise:    Group(recs, ByDepartment),
		YearWise:    Group(recs, ByYear),
		SectionWise: Group(recs, BySection),
		CourseWise:  Group(recs, ByCourse),
		FacultyWise: Group(recs, ByFaculty),
		Overall:     Summarize(recs),
	}
}

// DeanDashboard rolls up one school. An empty school falls back to the caller's own school.
func (s *Service) DeanDashboard(ctx context.Context, actor profile.Profile, school string) (DeanReport, error) {
	if school == "" {
		school = actor.School
	}
	if school == "" {
		return DeanReport{}, validation.Field("school", "school is required")
	}
	recs := s.records(ctx, "dean", Filter{School: school})
	return DeanReport{
		School:       school,
		DeptWise:     Group(recs, ByDepartment),
		SemesterWise: Group(recs, ByYear),
		Overall:      Summarize(recs),
		Shortages:    Shortages(recs, ScopeDepartment),
	}, nil
}

// HODDashboard rolls up one department. An empty department falls back to the caller's own.
func (s *Service) HODDashboard(ctx context.Context, actor profile.Profile, department string) (HODReport, error) {
	if department == "" {
		department = actor.Department
	}
	if department == "" {
		return HODReport{}, validation.Field("department", "department is required")
	}
	recs := s.records(ctx, "hod", Filter{Department: department})
	return HODReport{
		Department:  department,
		BatchWise:   Group(recs, BySection),
		SubjectWise: Group(recs, ByCourse),
		Shortages:   Shortages(recs, ScopeSection),
		Windows:     WindowsFor(recs, s.now().UTC()),
	}, nil
}

package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp/internal/logger"
	"erp/internal/profile"
	"erp/internal/store/storetest"
	"erp/internal/validation"
)

type fixture struct {
	svc      *Service
	profiles *profile.Service
	faculty  profile.Profile
	students []profile.Profile
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := storetest.NewDB(t)
	profiles := profile.NewService(profile.NewRepository(db), logger.Discard())
	ctx := context.Background()

	faculty, err := profiles.Create(ctx, profile.NewProfile{Username: "iyer", FirstName: "Dr.", LastName: "Iyer", Role: "faculty"})
	require.NoError(t, err)

	var students []profile.Profile
	for _, np := range []profile.NewProfile{
		{Username: "s1", FirstName: "Asha", EnrollmentNo: "EN1", Department: "CSE", School: "Engineering", Year: 2, Section: "A", ContactNo: "900"},
		{Username: "s2", FirstName: "Ravi", EnrollmentNo: "EN2", Department: "CSE", School: "Engineering", Year: 2, Section: "B"},
		{Username: "s3", FirstName: "Neha", EnrollmentNo: "EN3", Department: "ME", School: "Engineering"},
	} {
		p, err := profiles.Create(ctx, np)
		require.NoError(t, err)
		students = append(students, p)
	}

	svc := NewService(NewRepository(db), profiles, logger.Discard())
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC) }
	return fixture{svc: svc, profiles: profiles, faculty: faculty, students: students}
}

func TestMarkSnapshotsProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	recs, err := f.svc.Mark(ctx, f.faculty, []MarkEntry{
		{StudentID: f.students[0].ID, Course: "DBMS", Date: "2026-10-14", Status: "present"},
		{StudentID: f.students[2].ID, Course: "Thermo", Date: "2026-10-13"},
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "EN1", recs[0].EnrollmentNo)
	assert.Equal(t, "Asha", recs[0].StudentName)
	assert.Equal(t, 2, recs[0].Year)
	assert.Equal(t, "Dr. Iyer", recs[0].FacultyName)
	assert.Equal(t, f.faculty.ID, recs[0].FacultyID.String)
	assert.Equal(t, StatusAbsent, recs[1].Status, "status defaults to absent")
	assert.Equal(t, 1, recs[1].Year, "year defaults to 1")

	stored, err := f.svc.repo.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "DBMS", stored[0].Course, "newest date first")
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), Day(stored[0].Date))
}

func TestMarkValidatesWholeBatch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Mark(ctx, f.faculty, []MarkEntry{
		{StudentID: f.students[0].ID, Course: "DBMS", Date: "2026-10-14", Status: "present"},
		{StudentID: "ghost", Course: "DBMS", Date: "2026-10-14"},
		{StudentID: f.students[1].ID, Course: "DBMS", Date: "14-10-2026", Status: "excused"},
	})
	verr, ok := validation.As(err)
	require.True(t, ok, "got %v", err)
	fields := verr.FieldMap()
	assert.Contains(t, fields, "entries[1].student_id")
	assert.Contains(t, fields, "entries[2].date")
	assert.Contains(t, fields, "entries[2].status")

	stored, err := f.svc.repo.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, stored, "no partial write")

	_, err = f.svc.Mark(ctx, f.faculty, nil)
	_, ok = validation.As(err)
	assert.True(t, ok)
}

func TestDashboards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	s1, s2, s3 := f.students[0].ID, f.students[1].ID, f.students[2].ID

	_, err := f.svc.Mark(ctx, f.faculty, []MarkEntry{
		{StudentID: s1, Course: "DBMS", Date: "2026-10-12", Status: "present"},
		{StudentID: s1, Course: "DBMS", Date: "2026-10-13", Status: "present"},
		{StudentID: s1, Course: "OS", Date: "2026-10-14", Status: "present"},
		{StudentID: s2, Course: "DBMS", Date: "2026-10-12", Status: "absent"},
		{StudentID: s2, Course: "DBMS", Date: "2026-10-13", Status: "late"},
		{StudentID: s2, Course: "OS", Date: "2026-10-14", Status: "present"},
		{StudentID: s3, Course: "Thermo", Date: "2026-10-14", Status: "present"},
	})
	require.NoError(t, err)

	admin := f.svc.AdminDashboard(ctx, "")
	assert.Equal(t, Summary{TotalRecords: 7, TotalPresent: 5, TotalAbsent: 1, Percentage: 71.43}, admin.Overall)
	require.Len(t, admin.DeptWise, 2)
	assert.Len(t, admin.SchoolWise, 1)
	assert.Len(t, admin.FacultyWise, 1)

	searched := f.svc.AdminDashboard(ctx, "ravi")
	assert.Equal(t, 3, searched.Overall.TotalRecords)
	byContact := f.svc.AdminDashboard(ctx, "900")
	assert.Equal(t, 3, byContact.Overall.TotalRecords)

	dean, err := f.svc.DeanDashboard(ctx, profile.Profile{School: "Engineering"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", dean.School)
	require.Len(t, dean.Shortages, 1)
	assert.Equal(t, s2, dean.Shortages[0].StudentID)
	assert.Equal(t, 33.33, dean.Shortages[0].Percentage)

	hod, err := f.svc.HODDashboard(ctx, profile.Profile{}, "CSE")
	require.NoError(t, err)
	assert.Len(t, hod.BatchWise, 2)
	assert.Len(t, hod.SubjectWise, 2)
	assert.Equal(t, 2, hod.Daily.TotalRecords)
	assert.Equal(t, 6, hod.Weekly.TotalRecords)
	require.Len(t, hod.Shortages, 1)
	assert.Equal(t, "B", hod.Shortages[0].Section)

	_, err = f.svc.HODDashboard(ctx, profile.Profile{}, "")
	_, ok := validation.As(err)
	assert.True(t, ok)
}

type failingStore struct{ err error }

func (f failingStore) InsertBatch(context.Context, []Record) error { return f.err }
func (f failingStore) List(context.Context, Filter) ([]Record, error) {
	return nil, f.err
}

func TestDashboardsDegradeWhenStoreFails(t *testing.T) {
	svc := NewService(failingStore{err: errors.New("no such table: attendance_records")}, nil, logger.Discard())

	admin := svc.AdminDashboard(context.Background(), "x")
	assert.Empty(t, admin.DeptWise)
	assert.Equal(t, Summary{}, admin.Overall)

	svc.repo = failingStore{err: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")}
	hod, err := svc.HODDashboard(context.Background(), profile.Profile{Department: "CSE"}, "")
	require.NoError(t, err)
	assert.Empty(t, hod.Shortages)
	assert.Equal(t, Summary{}, hod.Weekly)
}

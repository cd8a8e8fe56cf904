package profile

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp/internal/logger"
	"erp/internal/store/storetest"
	"erp/internal/validation"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepository(storetest.NewDB(t)), logger.Discard())
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, NewProfile{
		Username:     "asha",
		FirstName:    "Asha",
		LastName:     "Verma",
		Email:        "asha@example.edu",
		EnrollmentNo: "EN2024001",
		Department:   "Computer Science Engineering",
		School:       "School of Engineering",
		Year:         2,
		Section:      "A",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, p.Role)
	assert.Equal(t, "Asha Verma", p.FullName())

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "EN2024001", got.EnrollmentNo.String)
	assert.Equal(t, 2, got.Year.Int)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRejectsDuplicates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, NewProfile{Username: "ravi", EnrollmentNo: "EN1"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		in    NewProfile
		field string
	}{
		{name: "username", in: NewProfile{Username: "ravi"}, field: "username"},
		{name: "enrollment", in: NewProfile{Username: "ravi2", EnrollmentNo: "EN1"}, field: "enrollment_no"},
		{name: "blank username", in: NewProfile{Username: " "}, field: "username"},
		{name: "bad role", in: NewProfile{Username: "x", Role: "janitor"}, field: "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			verr, ok := validation.As(err)
			require.True(t, ok, "got %v", err)
			assert.Contains(t, verr.FieldMap(), tt.field)
		})
	}
}

func TestProfilesWithoutEnrollmentCoexist(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, NewProfile{Username: "faculty1", Role: "faculty"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewProfile{Username: "faculty2", Role: "faculty"})
	require.NoError(t, err)

	// whitespace-only enrollment numbers are stored as absent
	p, err := svc.Create(ctx, NewProfile{Username: "faculty3", Role: "faculty", EnrollmentNo: "  "})
	require.NoError(t, err)
	assert.False(t, p.EnrollmentNo.Valid)
	_, err = svc.Create(ctx, NewProfile{Username: "faculty4", Role: "faculty", EnrollmentNo: " "})
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.EnrollmentNo.Valid)
}

func TestSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, np := range []NewProfile{
		{Username: "s1", FirstName: "Meera", EnrollmentNo: "CSE001", Department: "CSE", School: "Engineering", CollegeName: "City College"},
		{Username: "s2", FirstName: "Kabir", EnrollmentNo: "ME002", Department: "ME", School: "Engineering", ContactNo: "98765"},
		{Username: "h1", FirstName: "Dr. Rao", Department: "CSE", Role: "hod"},
	} {
		_, err := svc.Create(ctx, np)
		require.NoError(t, err)
	}

	res := svc.Search(ctx, "cse")
	require.Len(t, res.Students, 1)
	assert.Equal(t, "s1", res.Students[0].Username)
	assert.Equal(t, []DepartmentMatch{{Department: "CSE", School: ""}, {Department: "CSE", School: "Engineering"}}, res.Departments)
	require.Len(t, res.HODs, 1)
	assert.Equal(t, []string{}, res.Colleges)

	res = svc.Search(ctx, "9876")
	require.Len(t, res.Students, 1)
	assert.Equal(t, "s2", res.Students[0].Username)

	res = svc.Search(ctx, "city")
	assert.Equal(t, []string{"City College"}, res.Colleges)

	for _, q := range []string{"", "nomatch"} {
		res = svc.Search(ctx, q)
		assert.Equal(t, []Profile{}, res.Students, q)
		assert.Equal(t, []DepartmentMatch{}, res.Departments, q)
		assert.Equal(t, []Profile{}, res.HODs, q)
		assert.Equal(t, []string{}, res.Colleges, q)
	}
}

type failingStore struct{ Store }

func (failingStore) SearchStudents(context.Context, string, int) ([]Profile, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestSearchDegradesWhenStoreFails(t *testing.T) {
	svc := NewService(failingStore{}, logger.Discard())

	res := svc.Search(context.Background(), "cse")
	assert.Equal(t, SearchResult{
		Students:    []Profile{},
		Departments: []DepartmentMatch{},
		HODs:        []Profile{},
		Colleges:    []string{},
	}, res)
}

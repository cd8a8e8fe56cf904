package request

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp/internal/logger"
	"erp/internal/profile"
	"erp/internal/store/storetest"
	"erp/internal/validation"
)

func setup(t *testing.T) (*Service, profile.Profile, profile.Profile) {
	t.Helper()
	db := storetest.NewDB(t)
	profiles := profile.NewService(profile.NewRepository(db), logger.Discard())
	ctx := context.Background()

	student, err := profiles.Create(ctx, profile.NewProfile{
		Username: "s1", FirstName: "Asha", EnrollmentNo: "EN1", Department: "CSE",
		ContactNo: "9000000000", Email: "asha@example.edu", Year: 3, Section: "B",
	})
	require.NoError(t, err)
	admin, err := profiles.Create(ctx, profile.NewProfile{Username: "admin", Role: "admin"})
	require.NoError(t, err)

	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	svc := NewService(NewRepository(db), catalog, logger.Discard())
	clock := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc, student, admin
}

func TestSubmitLeave(t *testing.T) {
	svc, student, _ := setup(t)
	ctx := context.Background()

	req, err := svc.Submit(ctx, student, Submission{
		ApplicationType: "leave",
		Reason:          "Fever / Illness",
		FromDate:        "2026-10-05",
		ToDate:          "2026-10-07",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, "Asha", req.StudentName)
	assert.Equal(t, "9000000000", req.Mobile)
	assert.Equal(t, "asha@example.edu", req.Email)

	got, err := svc.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC), got.FromDate.Time.UTC())
	assert.False(t, got.Course.Valid, "unused fields stay null")
	assert.False(t, got.ReviewedAt.Valid)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitValidation(t *testing.T) {
	svc, student, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		sub   Submission
		field string
	}{
		{name: "unknown type", sub: Submission{ApplicationType: "parking", Reason: "Other", CustomReason: "x"}, field: "application_type"},
		{name: "reason from another type", sub: Submission{ApplicationType: "bonafide", Reason: "Fever / Illness"}, field: "reason"},
		{name: "other without custom reason", sub: Submission{ApplicationType: "bonafide", Reason: "Other"}, field: "custom_reason"},
		{name: "missing reason", sub: Submission{ApplicationType: "bonafide"}, field: "reason"},
		{name: "bad date", sub: Submission{ApplicationType: "leave", Reason: "Injury", FromDate: "05/10/2026"}, field: "from_date"},
		{name: "inverted range", sub: Submission{ApplicationType: "leave", Reason: "Injury", FromDate: "2026-10-07", ToDate: "2026-10-05"}, field: "to_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, student, tt.sub)
			verr, ok := validation.As(err)
			require.True(t, ok, "got %v", err)
			assert.Contains(t, verr.FieldMap(), tt.field)
		})
	}

	assert.Empty(t, svc.Mine(ctx, student), "nothing persisted")

	_, err := svc.Submit(ctx, student, Submission{ApplicationType: "bonafide", Reason: "Other", CustomReason: "Gym membership"})
	assert.NoError(t, err)
}

func TestMineNewestFirstAndReview(t *testing.T) {
	svc, student, admin := setup(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, student, Submission{ApplicationType: "id_card", Reason: "ID Card Lost"})
	require.NoError(t, err)
	second, err := svc.Submit(ctx, student, Submission{ApplicationType: "marksheet", Reason: "Job Interview", Semester: "5"})
	require.NoError(t, err)

	mine := svc.Mine(ctx, student)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	queue, err := svc.Queue(ctx, "")
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, first.ID, queue[0].ID, "oldest first")

	notes := "collect from office"
	reviewed, err := svc.Review(ctx, admin, first.ID, Review{Status: "approved", AdminNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, reviewed.Status)
	assert.Equal(t, admin.ID, reviewed.ReviewedBy.String)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)
	assert.Equal(t, notes, got.AdminNotes.String)
	assert.True(t, got.ReviewedAt.Valid)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	_, err = svc.Review(ctx, admin, first.ID, Review{Status: "pending"})
	_, ok := validation.As(err)
	assert.True(t, ok)

	_, err = svc.Review(ctx, admin, "missing", Review{Status: "rejected"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Queue(ctx, "bogus")
	_, ok = validation.As(err)
	assert.True(t, ok)
}

func TestForm(t *testing.T) {
	svc, student, _ := setup(t)

	form, err := svc.Form(student, "event_permission")
	require.NoError(t, err)
	assert.Equal(t, "Event Participation Permission", form.Name)
	assert.Len(t, form.Reasons, 5)
	assert.Equal(t, Prefill{
		StudentName: "Asha", EnrollmentNo: "EN1", Department: "CSE",
		Mobile: "9000000000", Email: "asha@example.edu", Year: 3, Section: "B",
	}, form.Prefill)

	_, err = svc.Form(student, "nope")
	assert.Error(t, err)
	assert.Len(t, svc.Catalog(), 10)
}

type failingStore struct{ Store }

func (failingStore) ListByStudent(context.Context, string) ([]Request, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func (failingStore) ListByStatus(context.Context, Status) ([]Request, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestListingsDegradeWhenStoreFails(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	svc := NewService(failingStore{}, catalog, logger.Discard())
	ctx := context.Background()

	assert.Equal(t, []Request{}, svc.Mine(ctx, profile.Profile{ID: "s1"}))

	queue, err := svc.Queue(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []Request{}, queue)

	_, err = svc.Queue(ctx, "archived")
	_, ok := validation.As(err)
	assert.True(t, ok, "unknown status is still rejected")
}

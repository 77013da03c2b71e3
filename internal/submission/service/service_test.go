package service

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submetrics "merididi/internal/submission/metrics"
	"merididi/internal/submission/models"
	"merididi/internal/submission/store"
	dErrors "merididi/pkg/domain-errors"
)

func newService(t *testing.T, opts ...Option) (*Service, *store.InMemory) {
	t.Helper()
	st := store.NewInMemory()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return New(st, logger, opts...), st
}

func validContact() *models.ContactRequest {
	return &models.ContactRequest{
		Name:    "Ravi Sharma",
		Email:   "ravi@example.com",
		Phone:   "9876543210",
		Service: "cleaning",
		Message: "Need a deep clean next week.",
	}
}

func validWorker() *models.WorkerRequest {
	return &models.WorkerRequest{
		Name:         "Asha Kumari",
		Email:        "asha@example.com",
		Phone:        "9876543210",
		Address:      "12 MG Road, Andheri East",
		City:         "mumbai",
		Gender:       "female",
		ServiceType:  "cleaning",
		Experience:   "3",
		Availability: "full-time",
		IDType:       "aadhar",
		IDNumber:     "123456789012",
		DOB:          "1992-06-15",
		Bio:          "Five years of housekeeping experience with working families.",
	}
}

func TestSubmitContact_StoresWithTimestamp(t *testing.T) {
	fixed := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)
	svc, st := newService(t, WithClock(func() time.Time { return fixed }))

	stored, err := svc.SubmitContact(context.Background(), validContact())
	require.NoError(t, err)

	assert.Equal(t, 1, stored.ID)
	assert.Equal(t, "2026-08-14T10:30:00Z", stored.CreatedAt)
	assert.Equal(t, 1, st.ContactCount(context.Background()))
}

func TestSubmitContact_ValidationFailureStoresNothing(t *testing.T) {
	svc, st := newService(t)

	req := validContact()
	req.Email = "not-an-email"

	_, err := svc.SubmitContact(context.Background(), req)
	require.Error(t, err)

	var dErr *dErrors.Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, dErrors.CodeValidation, dErr.Code)
	assert.Equal(t, MsgInvalidSubmission, dErr.Message)
	require.Len(t, dErr.Fields, 1)
	assert.Equal(t, "email", dErr.Fields[0].Field)
	assert.Equal(t, 0, st.ContactCount(context.Background()))
}

func TestRegisterWorker_ReferenceMatchesPattern(t *testing.T) {
	svc, _ := newService(t)

	stored, ref, err := svc.RegisterWorker(context.Background(), validWorker(), nil, nil)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^WRK-\d{6}$`), ref)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.NotEmpty(t, stored.CreatedAt)
}

func TestRegisterWorker_ReferenceRangeBounds(t *testing.T) {
	t.Run("lowest draw", func(t *testing.T) {
		svc, _ := newService(t, WithReferenceSource(func(int) int { return 0 }))
		_, ref, err := svc.RegisterWorker(context.Background(), validWorker(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "WRK-100000", ref)
	})

	t.Run("highest draw", func(t *testing.T) {
		svc, _ := newService(t, WithReferenceSource(func(n int) int { return n - 1 }))
		_, ref, err := svc.RegisterWorker(context.Background(), validWorker(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "WRK-999999", ref)
	})
}

func TestRegisterWorker_RecordsAttachmentNames(t *testing.T) {
	svc, _ := newService(t)

	stored, _, err := svc.RegisterWorker(context.Background(), validWorker(),
		&models.Attachment{Filename: "aadhar.pdf", Size: 52000},
		&models.Attachment{Filename: "photo.jpg", Size: 180000},
	)
	require.NoError(t, err)

	assert.Equal(t, "aadhar.pdf", stored.IDDocumentName)
	assert.Equal(t, "photo.jpg", stored.PhotoName)
}

func TestRegisterWorker_MissingBioRejected(t *testing.T) {
	svc, st := newService(t)

	req := validWorker()
	req.Bio = "too short"

	_, _, err := svc.RegisterWorker(context.Background(), req, nil, nil)
	require.Error(t, err)

	var dErr *dErrors.Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, MsgInvalidRegistration, dErr.Message)
	require.Len(t, dErr.Fields, 1)
	assert.Equal(t, "bio", dErr.Fields[0].Field)
	assert.Equal(t, 0, st.WorkerCount(context.Background()))
}

func TestMetrics_CountAcceptedAndRejected(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := submetrics.New(reg)
	svc, _ := newService(t, WithMetrics(m))
	ctx := context.Background()

	_, err := svc.SubmitContact(ctx, validContact())
	require.NoError(t, err)

	bad := validWorker()
	bad.Bio = ""
	_, _, err = svc.RegisterWorker(ctx, bad, nil, nil)
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Accepted.WithLabelValues(FormContact)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Rejected.WithLabelValues(FormWorker)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FieldFailures.WithLabelValues(FormWorker, "bio")))
}

func TestCounts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.SubmitContact(ctx, validContact())
	require.NoError(t, err)
	_, _, err = svc.RegisterWorker(ctx, validWorker(), nil, nil)
	require.NoError(t, err)

	contacts, workers := svc.Counts(ctx)
	assert.Equal(t, 1, contacts)
	assert.Equal(t, 1, workers)
	assert.Len(t, svc.ListContacts(ctx), 1)
	assert.Len(t, svc.ListWorkers(ctx), 1)
}

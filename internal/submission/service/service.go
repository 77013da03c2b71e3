// Package service orchestrates the submission pipeline: validate, stamp,
// store, and hand back what the transport layer needs to respond.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	submetrics "merididi/internal/submission/metrics"
	"merididi/internal/submission/models"
	"merididi/internal/submission/validate"
	dErrors "merididi/pkg/domain-errors"
)

// Form labels used in logs and metrics.
const (
	FormContact = "contact"
	FormWorker  = "worker"
)

// Top-level messages returned with validation failures. The website
// surfaces these verbatim, so their wording is part of the API contract.
const (
	MsgInvalidSubmission   = "Invalid submission data"
	MsgInvalidRegistration = "Invalid registration data"
)

// Store is the persistence surface the service needs.
type Store interface {
	CreateContact(ctx context.Context, c *models.ContactSubmission) *models.ContactSubmission
	CreateWorker(ctx context.Context, w *models.WorkerRegistration) *models.WorkerRegistration
	ListContacts(ctx context.Context) []*models.ContactSubmission
	ListWorkers(ctx context.Context) []*models.WorkerRegistration
	ContactCount(ctx context.Context) int
	WorkerCount(ctx context.Context) int
}

// Service validates and stores submissions.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *submetrics.Metrics
	tracer  trace.Tracer
	now     func() time.Time
	randInt func(n int) int
}

// Option configures a Service.
type Option func(s *Service)

// WithMetrics attaches submission metrics.
func WithMetrics(m *submetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source. Tests use this to pin createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithReferenceSource overrides the random source behind reference codes.
func WithReferenceSource(randInt func(n int) int) Option {
	return func(s *Service) { s.randInt = randInt }
}

// New creates a Service backed by the given store.
func New(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:   store,
		logger:  logger,
		tracer:  otel.Tracer("merididi/submission"),
		now:     time.Now,
		randInt: rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitContact validates a contact request and stores it with a
// server-side creation timestamp.
func (s *Service) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.ContactSubmission, error) {
	ctx, span := s.tracer.Start(ctx, "submission.contact")
	defer span.End()

	s.countReceived(FormContact)

	if errs := validate.Record(req); len(errs) > 0 {
		s.countRejected(FormContact, errs)
		return nil, validate.Error(MsgInvalidSubmission, errs)
	}

	record := req.Record()
	record.CreatedAt = s.now().UTC().Format(time.RFC3339)
	stored := s.store.CreateContact(ctx, record)

	span.SetAttributes(attribute.Int("submission.id", stored.ID))
	s.countAccepted(FormContact)
	s.logger.InfoContext(ctx, "contact submission stored",
		"id", stored.ID,
		"service", stored.Service,
	)
	return stored, nil
}

// RegisterWorker validates a normalized worker request, stores it with
// status pending, and returns the stored record plus a human-readable
// reference code. The attachments are recorded by name and size only.
func (s *Service) RegisterWorker(ctx context.Context, req *models.WorkerRequest, idDoc, photo *models.Attachment) (*models.WorkerRegistration, string, error) {
	ctx, span := s.tracer.Start(ctx, "submission.register_worker")
	defer span.End()

	s.countReceived(FormWorker)

	if errs := validate.Record(req); len(errs) > 0 {
		s.countRejected(FormWorker, errs)
		return nil, "", validate.Error(MsgInvalidRegistration, errs)
	}

	record := req.Record()
	record.Status = models.StatusPending
	record.CreatedAt = s.now().UTC().Format(time.RFC3339)
	if idDoc != nil {
		record.IDDocumentName = idDoc.Filename
	}
	if photo != nil {
		record.PhotoName = photo.Filename
	}
	stored := s.store.CreateWorker(ctx, record)

	reference := s.newReference()
	span.SetAttributes(
		attribute.Int("registration.id", stored.ID),
		attribute.String("registration.service_type", stored.ServiceType),
	)
	s.countAccepted(FormWorker)
	s.logger.InfoContext(ctx, "worker registration stored",
		"id", stored.ID,
		"reference", reference,
		"service_type", stored.ServiceType,
		"city", stored.City,
		"id_document", attachmentSummary(idDoc),
		"photo", attachmentSummary(photo),
	)
	return stored, reference, nil
}

// ListContacts returns all stored contact submissions.
func (s *Service) ListContacts(ctx context.Context) []*models.ContactSubmission {
	return s.store.ListContacts(ctx)
}

// ListWorkers returns all stored worker registrations.
func (s *Service) ListWorkers(ctx context.Context) []*models.WorkerRegistration {
	return s.store.ListWorkers(ctx)
}

// Counts returns the number of stored records per kind.
func (s *Service) Counts(ctx context.Context) (contacts, workers int) {
	return s.store.ContactCount(ctx), s.store.WorkerCount(ctx)
}

// newReference builds the reference code shown to the applicant:
// "WRK-" followed by a 6-digit number in [100000, 999999]. Distinct from
// the internal record id.
func (s *Service) newReference() string {
	return fmt.Sprintf("WRK-%d", 100000+s.randInt(900000))
}

func attachmentSummary(a *models.Attachment) string {
	if a == nil {
		return "none"
	}
	return fmt.Sprintf("%s (%d bytes)", a.Filename, a.Size)
}

func (s *Service) countReceived(form string) {
	if s.metrics != nil {
		s.metrics.IncrementReceived(form)
	}
}

func (s *Service) countAccepted(form string) {
	if s.metrics != nil {
		s.metrics.IncrementAccepted(form)
	}
}

func (s *Service) countRejected(form string, errs []dErrors.FieldError) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementRejected(form)
	for _, fe := range errs {
		s.metrics.IncrementFieldFailure(form, fe.Field)
	}
}

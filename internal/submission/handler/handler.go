// Package handler is the thin HTTP layer over the submission service.
// It decodes JSON and multipart payloads, delegates to the service, and
// renders the response envelopes the website expects.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"merididi/internal/submission/models"
	"merididi/internal/submission/normalize"
	dErrors "merididi/pkg/domain-errors"
	"merididi/pkg/platform/httputil"
	"merididi/pkg/requestcontext"
)

// Service defines the submission operations the handlers delegate to.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.ContactSubmission, error)
	RegisterWorker(ctx context.Context, req *models.WorkerRequest, idDoc, photo *models.Attachment) (*models.WorkerRegistration, string, error)
	ListContacts(ctx context.Context) []*models.ContactSubmission
	ListWorkers(ctx context.Context) []*models.WorkerRegistration
	Counts(ctx context.Context) (contacts, workers int)
}

type Handler struct {
	service        Service
	logger         *slog.Logger
	maxUploadBytes int64
}

func New(service Service, logger *slog.Logger, maxUploadBytes int64) *Handler {
	return &Handler{service: service, logger: logger, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/api/contact", h.HandleContact)
	r.Post("/api/register-worker", h.HandleRegisterWorker)
	r.Get("/api/admin/submissions", h.HandleListSubmissions)
}

// HandleContact accepts a contact form message.
func (h *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeJSON[models.ContactRequest](w, r, h.logger)
	if !ok {
		return
	}

	stored, err := h.service.SubmitContact(ctx, req)
	if err != nil {
		h.writeFailure(ctx, w, "contact submission failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &ContactCreatedResponse{
		Message: "Contact submission received",
		Data:    stored,
	})
}

// HandleRegisterWorker accepts a worker registration as multipart form
// data (the website path, with id_document and photo file parts) or as a
// plain JSON body (API clients). Field names may use the legacy aliases;
// normalization resolves them before validation.
func (h *Handler) HandleRegisterWorker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var fields map[string]string
	var idDoc, photo *models.Attachment

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			h.logger.WarnContext(ctx, "failed to parse multipart form",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body"))
			return
		}
		fields = formFields(r)
		idDoc = attachment(r, "id_document")
		photo = attachment(r, "photo")
	} else {
		body, ok := httputil.DecodeJSON[map[string]any](w, r, h.logger)
		if !ok {
			return
		}
		fields = stringFields(*body)
	}

	req := normalize.Worker(fields)
	req.Sanitize()

	h.logger.InfoContext(ctx, "worker registration received",
		"request_id", requestcontext.RequestID(ctx),
		"channel", channelSummary(requestcontext.UserAgent(ctx)),
	)

	stored, reference, err := h.service.RegisterWorker(ctx, &req, idDoc, photo)
	if err != nil {
		h.writeFailure(ctx, w, "worker registration failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &WorkerCreatedResponse{
		Message:     "Worker registration submitted successfully",
		Data:        stored,
		ReferenceID: reference,
	})
}

// HandleListSubmissions returns stored records and counts. The original
// site had no back office; this read-only listing is the minimal
// operational view onto the in-memory stores.
func (h *Handler) HandleListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contacts, workers := h.service.Counts(ctx)

	httputil.WriteJSON(w, http.StatusOK, &SubmissionListResponse{
		Contacts:       contacts,
		Workers:        workers,
		ContactRecords: h.service.ListContacts(ctx),
		WorkerRecords:  h.service.ListWorkers(ctx),
	})
}

// writeFailure renders validation errors as-is and collapses everything
// else to a generic 500.
func (h *Handler) writeFailure(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.HasCode(err, dErrors.CodeValidation) {
		h.logger.WarnContext(ctx, msg,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "Internal server error"))
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/")
}

// formFields flattens multipart values to the first occurrence per key.
func formFields(r *http.Request) map[string]string {
	fields := make(map[string]string, len(r.MultipartForm.Value))
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields
}

// stringFields keeps the string-valued entries of a decoded JSON object.
// Submission fields are all strings; anything else is dropped and left
// for validation to report as missing.
func stringFields(body map[string]any) map[string]string {
	fields := make(map[string]string, len(body))
	for key, value := range body {
		if s, ok := value.(string); ok {
			fields[key] = s
		}
	}
	return fields
}

// attachment reads the metadata of an uploaded file part. The bytes are
// not persisted; file storage is out of scope for this service.
func attachment(r *http.Request, field string) *models.Attachment {
	if r.MultipartForm == nil {
		return nil
	}
	parts := r.MultipartForm.File[field]
	if len(parts) == 0 {
		return nil
	}
	return &models.Attachment{
		Filename: filepath.Base(parts[0].Filename),
		Size:     parts[0].Size,
	}
}

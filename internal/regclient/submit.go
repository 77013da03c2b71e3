package regclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"merididi/internal/submission/models"
	dErrors "merididi/pkg/domain-errors"
)

// Receipt is the outcome of a successful submission.
type Receipt struct {
	Reference    string                     `json:"reference"`
	Registration *models.WorkerRegistration `json:"registration,omitempty"`
	SubmittedAt  time.Time                  `json:"submittedAt"`
}

// AttachmentRef records where an attachment lives locally and what was
// sent about it. File contents are never cached, only this metadata.
type AttachmentRef struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// PendingSubmission is what gets cached when a submission fails on the
// network, so the user can resubmit later without retyping.
type PendingSubmission struct {
	Data       models.WorkerRequest `json:"data"`
	IDDocument AttachmentRef        `json:"idDocument"`
	Photo      AttachmentRef        `json:"photo"`
	FailedAt   time.Time            `json:"failedAt"`
}

// serverEnvelope mirrors the API's success and error response bodies.
type serverEnvelope struct {
	Message     string                     `json:"message"`
	Data        *models.WorkerRegistration `json:"data"`
	ReferenceID string                     `json:"referenceId"`
	Errors      []dErrors.FieldError       `json:"errors"`
}

// Submit sends the registration from the documents step. Both
// attachments must be present and only one submission may be in flight.
// On HTTP success the receipt is cached under KeyLastSubmission and the
// form reaches its terminal state. On a network or timeout failure the
// payload (minus file bytes) is cached under KeyPendingSubmission and
// the form stays on the documents step.
func (f *Form) Submit(ctx context.Context) (*Receipt, error) {
	f.mu.Lock()
	if f.succeeded {
		f.mu.Unlock()
		return nil, ErrAlreadySucceeded
	}
	if f.step != StepDocuments {
		f.mu.Unlock()
		return nil, ErrWrongStep
	}
	if f.idDocPath == "" || f.photoPath == "" {
		f.mu.Unlock()
		return nil, ErrMissingAttachment
	}
	if f.inFlight {
		f.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	f.inFlight = true
	f.Answers.Sanitize()
	answers := f.Answers
	idDocPath, photoPath := f.idDocPath, f.photoPath
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
	}()

	receipt, err := f.send(ctx, answers, idDocPath, photoPath)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.succeeded = true
	f.reference = receipt.Reference
	f.mu.Unlock()
	return receipt, nil
}

// Resubmit replays a previously failed submission from the pending
// cache. The pending key is cleared on success. Manual only: nothing in
// this package retries on its own.
func (f *Form) Resubmit(ctx context.Context) (*Receipt, error) {
	var pending PendingSubmission
	found, err := f.cache.Get(KeyPendingSubmission, &pending)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoPendingSubmission
	}

	f.mu.Lock()
	f.Answers = pending.Data
	f.idDocPath = pending.IDDocument.Path
	f.photoPath = pending.Photo.Path
	f.step = StepDocuments
	f.succeeded = false
	f.mu.Unlock()

	receipt, err := f.Submit(ctx)
	if err != nil {
		return nil, err
	}
	if err := f.cache.Delete(KeyPendingSubmission); err != nil {
		return nil, fmt.Errorf("clear pending submission: %w", err)
	}
	return receipt, nil
}

func (f *Form) send(ctx context.Context, answers models.WorkerRequest, idDocPath, photoPath string) (*Receipt, error) {
	body, contentType, refs, err := buildMultipart(answers, idDocPath, photoPath)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/api/register-worker", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := f.client.Do(req)
	if err != nil {
		f.cachePending(answers, refs)
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, rejection(resp)
	}

	receipt := &Receipt{SubmittedAt: time.Now().UTC()}
	var envelope serverEnvelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.ReferenceID != "" {
		receipt.Reference = envelope.ReferenceID
		receipt.Registration = envelope.Data
	} else {
		// The server accepted the registration but the reference could
		// not be read. Synthesize one so the user always has something
		// to quote.
		receipt.Reference = fallbackReference()
	}

	// Best effort backup of the successful attempt. A cache failure must
	// not turn a successful submission into an error.
	_ = f.cache.Put(KeyLastSubmission, struct {
		Data        models.WorkerRequest `json:"data"`
		Reference   string               `json:"reference"`
		SubmittedAt time.Time            `json:"submittedAt"`
	}{Data: answers, Reference: receipt.Reference, SubmittedAt: receipt.SubmittedAt})

	return receipt, nil
}

// cachePending is best effort: the classified error is what the caller
// acts on, a cache write failure must not mask it.
func (f *Form) cachePending(answers models.WorkerRequest, refs [2]AttachmentRef) {
	_ = f.cache.Put(KeyPendingSubmission, PendingSubmission{
		Data:       answers,
		IDDocument: refs[0],
		Photo:      refs[1],
		FailedAt:   time.Now().UTC(),
	})
}

// buildMultipart assembles the request body: every canonical field plus
// the two file parts.
func buildMultipart(answers models.WorkerRequest, idDocPath, photoPath string) (io.Reader, string, [2]AttachmentRef, error) {
	var refs [2]AttachmentRef
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":         answers.Name,
		"email":        answers.Email,
		"phone":        answers.Phone,
		"address":      answers.Address,
		"city":         answers.City,
		"gender":       answers.Gender,
		"serviceType":  answers.ServiceType,
		"experience":   answers.Experience,
		"availability": answers.Availability,
		"idType":       answers.IDType,
		"idNumber":     answers.IDNumber,
		"dob":          answers.DOB,
		"bio":          answers.Bio,
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return nil, "", refs, err
		}
	}

	var err error
	if refs[0], err = writeFilePart(mw, "id_document", idDocPath); err != nil {
		return nil, "", refs, err
	}
	if refs[1], err = writeFilePart(mw, "photo", photoPath); err != nil {
		return nil, "", refs, err
	}
	if err := mw.Close(); err != nil {
		return nil, "", refs, err
	}
	return &buf, mw.FormDataContentType(), refs, nil
}

func writeFilePart(mw *multipart.Writer, field, path string) (AttachmentRef, error) {
	file, err := os.Open(path)
	if err != nil {
		return AttachmentRef{}, fmt.Errorf("open %s: %w", field, err)
	}
	defer file.Close()

	part, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return AttachmentRef{}, err
	}
	size, err := io.Copy(part, file)
	if err != nil {
		return AttachmentRef{}, fmt.Errorf("read %s: %w", field, err)
	}
	return AttachmentRef{Path: path, Filename: filepath.Base(path), Size: size}, nil
}

// classify sorts a transport error into the timeout / unreachable /
// unknown buckets, each with its own user message.
func classify(err error) *SubmitError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &SubmitError{Kind: FailureTimeout, Message: msgTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &SubmitError{Kind: FailureTimeout, Message: msgTimeout, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &SubmitError{Kind: FailureUnreachable, Message: msgUnreachable, Err: err}
	}
	return &SubmitError{Kind: FailureUnknown, Message: msgGeneric, Err: err}
}

// rejection turns a 4xx/5xx response into a SubmitError, preferring the
// server's own message when the body parses.
func rejection(resp *http.Response) *SubmitError {
	subErr := &SubmitError{
		Kind:    FailureRejected,
		Message: msgGeneric,
		Err:     fmt.Errorf("server returned %s", resp.Status),
	}
	var envelope serverEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
		subErr.Message = envelope.Message
		subErr.Fields = envelope.Errors
	}
	return subErr
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// fallbackReference builds the client-side stand-in reference:
// "REF-" plus 8 random base36 characters.
func fallbackReference() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return "REF-" + string(b)
}

package regclient

import (
	"errors"

	dErrors "merididi/pkg/domain-errors"
)

// Sentinel errors for form misuse. These indicate a bug in the caller,
// not a failed submission.
var (
	ErrWrongStep           = errors.New("submission only allowed from the documents step")
	ErrSubmissionInFlight  = errors.New("a submission is already in flight")
	ErrAlreadySucceeded    = errors.New("this form was already submitted successfully")
	ErrMissingAttachment   = errors.New("both the ID document and the photo are required")
	ErrNoPendingSubmission = errors.New("no pending submission to resubmit")
)

// FailureKind classifies a failed submission for user messaging.
type FailureKind string

const (
	// FailureTimeout: the request hit the submission deadline.
	FailureTimeout FailureKind = "timeout"
	// FailureUnreachable: the server could not be reached at all.
	FailureUnreachable FailureKind = "network"
	// FailureRejected: the server answered with a 4xx/5xx.
	FailureRejected FailureKind = "rejected"
	// FailureUnknown: anything else.
	FailureUnknown FailureKind = "unknown"
)

// User-facing messages per failure classification.
const (
	msgTimeout     = "The request timed out. Please check your connection and try again."
	msgUnreachable = "Could not reach the server. Your submission was saved and can be resent."
	msgGeneric     = "Something went wrong while submitting your registration. Please try again."
)

// SubmitError is a classified submission failure. Message is safe to
// show to the user; for rejected submissions, Fields carries the
// server's per-field validation errors.
type SubmitError struct {
	Kind    FailureKind
	Message string
	Fields  []dErrors.FieldError
	Err     error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

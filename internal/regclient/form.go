// Package regclient implements the worker registration flow as a client
// of the submission API: a three-step form controller with step-gated
// validation, multipart submission under a hard deadline, failure
// classification, and a local cache of attempts so a user can resubmit
// after a network failure. Validation uses the same schemas the server
// enforces, so a step that advances locally will not bounce server-side.
package regclient

import (
	"net/http"
	"sync"
	"time"

	"merididi/internal/submission/models"
	"merididi/internal/submission/validate"
	dErrors "merididi/pkg/domain-errors"
)

// Step identifies a position in the registration form.
type Step int

const (
	StepPersonal Step = iota + 1
	StepProfessional
	StepDocuments
)

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal info"
	case StepProfessional:
		return "professional details"
	case StepDocuments:
		return "documents"
	default:
		return "unknown"
	}
}

// Field groups validated when leaving each step. Names are struct field
// names; the resulting errors reference the json names.
var (
	personalFields     = []string{"Name", "Email", "Phone", "Address", "City", "Gender", "DOB"}
	professionalFields = []string{"ServiceType", "Experience", "Availability", "IDType", "IDNumber", "Bio"}
)

// DefaultTimeout is the hard deadline on the submission request.
const DefaultTimeout = 30 * time.Second

// Form drives one worker registration. It is not safe for concurrent
// use; the single concurrency rule it enforces is one in-flight
// submission at a time.
type Form struct {
	// Answers holds the applicant's input. Callers fill it directly as
	// the user progresses through the steps.
	Answers models.WorkerRequest

	baseURL string
	cache   Cache
	client  *http.Client
	timeout time.Duration

	mu        sync.Mutex
	step      Step
	inFlight  bool
	succeeded bool
	reference string

	idDocPath string
	photoPath string
}

// Option configures a Form.
type Option func(f *Form)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) { f.client = c }
}

// WithTimeout overrides the submission deadline.
func WithTimeout(d time.Duration) Option {
	return func(f *Form) { f.timeout = d }
}

// New creates a form targeting the API at baseURL, caching attempts in
// the given cache.
func New(baseURL string, cache Cache, opts ...Option) *Form {
	f := &Form{
		baseURL: baseURL,
		cache:   cache,
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		step:    StepPersonal,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Step returns the current form step.
func (f *Form) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Succeeded reports whether the form reached the terminal success state.
func (f *Form) Succeeded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.succeeded
}

// Reference returns the reference code from a successful submission.
func (f *Form) Reference() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reference
}

// Next validates the current step's fields and advances on success.
// On failure the form stays put and the violations are returned; no
// network call happens here. Calling Next on the documents step is a
// no-op: leaving it goes through Submit.
func (f *Form) Next() []dErrors.FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Answers.Sanitize()
	switch f.step {
	case StepPersonal:
		if errs := validate.Partial(&f.Answers, personalFields...); len(errs) > 0 {
			return errs
		}
		f.step = StepProfessional
	case StepProfessional:
		if errs := validate.Partial(&f.Answers, professionalFields...); len(errs) > 0 {
			return errs
		}
		f.step = StepDocuments
	}
	return nil
}

// Back moves one step back. It never fails; already-entered answers are kept.
func (f *Form) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step > StepPersonal {
		f.step--
	}
}

// AttachIDDocument sets the path of the ID document to upload.
func (f *Form) AttachIDDocument(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idDocPath = path
}

// AttachPhoto sets the path of the applicant photo to upload.
func (f *Form) AttachPhoto(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photoPath = path
}

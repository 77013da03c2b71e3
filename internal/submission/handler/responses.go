package handler

import "merididi/internal/submission/models"

// ContactCreatedResponse is the 201 envelope for an accepted contact
// submission.
type ContactCreatedResponse struct {
	Message string                    `json:"message"`
	Data    *models.ContactSubmission `json:"data"`
}

// WorkerCreatedResponse is the 201 envelope for an accepted worker
// registration. ReferenceID is the human-readable code shown to the
// applicant, distinct from the record id.
type WorkerCreatedResponse struct {
	Message     string                     `json:"message"`
	Data        *models.WorkerRegistration `json:"data"`
	ReferenceID string                     `json:"referenceId"`
}

// SubmissionListResponse is the read-only operational view of the stores.
type SubmissionListResponse struct {
	Contacts       int                          `json:"contacts"`
	Workers        int                          `json:"workers"`
	ContactRecords []*models.ContactSubmission  `json:"contactRecords"`
	WorkerRecords  []*models.WorkerRegistration `json:"workerRecords"`
}

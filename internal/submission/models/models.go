// Package models defines the submission records and request shapes shared
// by the HTTP handlers, the service layer, and the registration client.
package models

// Worker registration statuses. Every registration is created as
// StatusPending; review happens outside this service, so no code path
// here transitions the field.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ContactSubmission is a stored contact form message. Records are
// immutable after creation and live only for the process lifetime.
type ContactSubmission struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Service   string `json:"service"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// WorkerRegistration is a stored worker application. The uploaded ID
// document and photo are kept as filename strings only; file bytes are
// not persisted by this service.
type WorkerRegistration struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Gender         string `json:"gender"`
	ServiceType    string `json:"serviceType"`
	Experience     string `json:"experience"`
	Availability   string `json:"availability"`
	IDType         string `json:"idType"`
	IDNumber       string `json:"idNumber"`
	DOB            string `json:"dob"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	IDDocumentName string `json:"idDocumentName,omitempty"`
	PhotoName      string `json:"photoName,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

// Attachment describes an uploaded file part. The server records the
// name and size; the bytes themselves are handled (or discarded) by the
// file collaborator, not stored here.
type Attachment struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

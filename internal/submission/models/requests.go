package models

import "strings"

// ContactRequest is the contact form payload. Validation rules mirror
// the shared schema used by the website form.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Service string `json:"service" validate:"required,notblank"`
	Message string `json:"message" validate:"required,notblank"`
}

// Sanitize trims surrounding whitespace from all fields.
func (r *ContactRequest) Sanitize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Service = strings.TrimSpace(r.Service)
	r.Message = strings.TrimSpace(r.Message)
}

// WorkerRequest is the worker registration payload after alias
// normalization. Field names in validation errors follow the json tags.
//
// The city list on the website is a dropdown, but the authoritative
// schema only requires a non-blank name so new cities can launch without
// a server release.
type WorkerRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=10"`
	Address      string `json:"address" validate:"required,min=5"`
	City         string `json:"city" validate:"required,min=2"`
	Gender       string `json:"gender" validate:"required,oneof=male female other"`
	ServiceType  string `json:"serviceType" validate:"required,oneof=cleaning cooking childcare eldercare gardening other"`
	Experience   string `json:"experience" validate:"required,notblank"`
	Availability string `json:"availability" validate:"required,oneof=full-time part-time weekends"`
	IDType       string `json:"idType" validate:"required,oneof=aadhar pan passport driving-license"`
	IDNumber     string `json:"idNumber" validate:"required,min=5"`
	DOB          string `json:"dob" validate:"required,dob"`
	Bio          string `json:"bio" validate:"required,min=20"`
}

// Sanitize trims surrounding whitespace from all fields.
func (r *WorkerRequest) Sanitize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.Gender = strings.TrimSpace(r.Gender)
	r.ServiceType = strings.TrimSpace(r.ServiceType)
	r.Experience = strings.TrimSpace(r.Experience)
	r.Availability = strings.TrimSpace(r.Availability)
	r.IDType = strings.TrimSpace(r.IDType)
	r.IDNumber = strings.TrimSpace(r.IDNumber)
	r.DOB = strings.TrimSpace(r.DOB)
	r.Bio = strings.TrimSpace(r.Bio)
}

// Record builds the registration stored for an accepted request.
// Status and CreatedAt are stamped by the service.
func (r *WorkerRequest) Record() *WorkerRegistration {
	return &WorkerRegistration{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		City:         r.City,
		Gender:       r.Gender,
		ServiceType:  r.ServiceType,
		Experience:   r.Experience,
		Availability: r.Availability,
		IDType:       r.IDType,
		IDNumber:     r.IDNumber,
		DOB:          r.DOB,
		Bio:          r.Bio,
	}
}

// Record builds the submission stored for an accepted contact request.
func (r *ContactRequest) Record() *ContactSubmission {
	return &ContactSubmission{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Service: r.Service,
		Message: r.Message,
	}
}

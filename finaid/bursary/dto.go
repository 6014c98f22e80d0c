package bursary

import (
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// CreateAdvertRequest - DTO for creating a new bursary advert. The advert PDF
// arrives as a multipart upload alongside the form fields.
type CreateAdvertRequest struct {
	Year        string    `json:"year" validate:"required"`
	Description string    `json:"description,omitempty"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	IsVisible   bool      `json:"is_visible"`

	AdvertFileName string `json:"-"`
	AdvertFileSize int64  `json:"-"`
	AdvertData     []byte `json:"-"`
}

// SubmitApplicationRequest - DTO for submitting a bursary application. The
// supporting document pack arrives as a multipart upload.
type SubmitApplicationRequest struct {
	BursaryID        kernel.BursaryID   `json:"bursary_id" validate:"required"`
	FirstName        string             `json:"first_name" validate:"required"`
	MiddleName       string             `json:"middle_name,omitempty"`
	LastName         string             `json:"last_name" validate:"required"`
	IDNumber         string             `json:"id_number" validate:"required"`
	DateOfBirth      time.Time          `json:"date_of_birth" validate:"required"`
	Email            kernel.Email       `json:"email" validate:"required,email"`
	PrimaryContact   kernel.PhoneNumber `json:"primary_contact" validate:"required"`
	SecondaryContact kernel.PhoneNumber `json:"secondary_contact,omitempty"`
	MotivationLetter string             `json:"motivation_letter,omitempty"`

	DocumentsFileName string `json:"-"`
	DocumentsFileSize int64  `json:"-"`
	DocumentsData     []byte `json:"-"`
}

// ReviewApplicationRequest - DTO for the reviewer's decision
type ReviewApplicationRequest struct {
	Status   ApplicationStatus `json:"status" validate:"required"`
	Comments string            `json:"comments,omitempty"`
}

// Response type aliases for paginated results
type PaginatedAdvertsResponse = kernel.Paginated[Advert]
type PaginatedApplicationsResponse = kernel.Paginated[Application]

package application

import (
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// SubmitApplicationRequest - DTO for submitting an application. The CV file
// arrives as a multipart upload alongside the form fields.
type SubmitApplicationRequest struct {
	VacancyID        kernel.VacancyID   `json:"vacancy_id" validate:"required"`
	FirstName        string             `json:"first_name" validate:"required"`
	MiddleName       string             `json:"middle_name,omitempty"`
	LastName         string             `json:"last_name" validate:"required"`
	Email            kernel.Email       `json:"email" validate:"required,email"`
	PrimaryContact   kernel.PhoneNumber `json:"primary_contact" validate:"required"`
	SecondaryContact kernel.PhoneNumber `json:"secondary_contact,omitempty"`
	DateOfBirth      time.Time          `json:"date_of_birth" validate:"required"`
	Answers          []AnswerRequest    `json:"answers,omitempty"`

	CVFileName string `json:"-"`
	CVFileSize int64  `json:"-"`
	CVData     []byte `json:"-"`
}

// AnswerRequest - an answer to a vacancy screening question
type AnswerRequest struct {
	RequirementID kernel.RequirementID `json:"requirement_id" validate:"required"`
	Answer        string               `json:"answer"`
}

// ReviewApplicationRequest - DTO for the reviewer's decision
type ReviewApplicationRequest struct {
	Status   ApplicationStatus `json:"status" validate:"required"`
	Comments string            `json:"comments,omitempty"`
}

// ApplicationWithAnswersResponse - application plus its screening answers
type ApplicationWithAnswersResponse struct {
	Application Application         `json:"application"`
	Answers     []RequirementAnswer `json:"answers"`
}

// Response type alias for paginated applications
type PaginatedApplicationsResponse = kernel.Paginated[Application]

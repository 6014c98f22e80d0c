package application

import (
	"strings"
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "submitted" // Initial submission
	ApplicationStatusAccepted  ApplicationStatus = "accepted"  // Accepted by a reviewer
	ApplicationStatusRejected  ApplicationStatus = "rejected"  // Rejected by a reviewer
)

// MinimumApplicantAge is the youngest age at which a vacancy application is
// accepted.
const MinimumApplicantAge = 18

type Application struct {
	ID               kernel.ApplicationID `db:"id" json:"id"`
	VacancyID        kernel.VacancyID     `db:"vacancy_id" json:"vacancy_id"`
	Status           ApplicationStatus    `db:"status" json:"status"`
	FirstName        string               `db:"first_name" json:"first_name"`
	MiddleName       string               `db:"middle_name" json:"middle_name,omitempty"`
	LastName         string               `db:"last_name" json:"last_name"`
	Email            kernel.Email         `db:"email" json:"email"`
	PrimaryContact   kernel.PhoneNumber   `db:"primary_contact" json:"primary_contact"`
	SecondaryContact kernel.PhoneNumber   `db:"secondary_contact" json:"secondary_contact,omitempty"`
	DateOfBirth      time.Time            `db:"date_of_birth" json:"date_of_birth"`
	CVPath           kernel.BucketURL     `db:"cv_path" json:"cv_path"`
	ReviewedBy       *kernel.UserID       `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time           `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewComments   string               `db:"review_comments" json:"review_comments,omitempty"`
	SubmittedAt      time.Time            `db:"submitted_at" json:"submitted_at"`
	UpdatedAt        time.Time            `db:"updated_at" json:"updated_at"`
}

// RequirementAnswer is an applicant's answer to a vacancy screening question.
type RequirementAnswer struct {
	ApplicationID kernel.ApplicationID `db:"application_id" json:"application_id"`
	RequirementID kernel.RequirementID `db:"requirement_id" json:"requirement_id"`
	Answer        string               `db:"answer" json:"answer"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// FullName joins the applicant's name parts, skipping an empty middle name.
func (a *Application) FullName() string {
	parts := []string{a.FirstName}
	if a.MiddleName != "" {
		parts = append(parts, a.MiddleName)
	}
	parts = append(parts, a.LastName)
	return strings.Join(parts, " ")
}

// AgeAt computes the age in whole years at t.
func AgeAt(dateOfBirth, t time.Time) int {
	age := t.Year() - dateOfBirth.Year()
	anniversary := time.Date(t.Year(), dateOfBirth.Month(), dateOfBirth.Day(), 0, 0, 0, 0, time.UTC)
	if anniversary.After(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)) {
		age--
	}
	return age
}

// Age computes the applicant's current age in whole years.
func (a *Application) Age() int {
	return AgeAt(a.DateOfBirth, time.Now())
}

// CanBeReviewed checks if the application can still be reviewed
func (a *Application) CanBeReviewed() bool {
	return a.Status == ApplicationStatusSubmitted
}

// Review records the reviewer's decision. Only submitted applications can be
// reviewed, and only accepted or rejected are valid outcomes.
func (a *Application) Review(newStatus ApplicationStatus, reviewer kernel.UserID, comments string) error {
	if !a.CanBeReviewed() {
		return ErrApplicationAlreadyReviewed().
			WithDetail("current_status", a.Status)
	}
	if newStatus != ApplicationStatusAccepted && newStatus != ApplicationStatusRejected {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", a.Status).
			WithDetail("new_status", newStatus)
	}

	now := time.Now()
	a.Status = newStatus
	a.ReviewedBy = &reviewer
	a.ReviewedAt = &now
	a.ReviewComments = comments
	a.UpdatedAt = now
	return nil
}

// Accept accepts the application
func (a *Application) Accept(reviewer kernel.UserID, comments string) error {
	return a.Review(ApplicationStatusAccepted, reviewer, comments)
}

// Reject rejects the application
func (a *Application) Reject(reviewer kernel.UserID, comments string) error {
	return a.Review(ApplicationStatusRejected, reviewer, comments)
}

package bursary

import (
	"strings"
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// ApplicationStatus represents the status of a bursary application
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// MinimumApplicantAge is the youngest age at which a bursary application is
// accepted.
const MinimumApplicantAge = 16

// Advert is the yearly bursary announcement with its application form pack.
type Advert struct {
	ID          kernel.BursaryID `db:"id" json:"id"`
	Year        string           `db:"year" json:"year"`
	AdvertPath  kernel.BucketURL `db:"advert_path" json:"advert_path"`
	Description string           `db:"description" json:"description"`
	Deadline    time.Time        `db:"deadline" json:"deadline"`
	IsVisible   bool             `db:"is_visible" json:"is_visible"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// Application is a student's bursary application for a given advert year.
type Application struct {
	ID               kernel.BursaryApplicationID `db:"id" json:"id"`
	BursaryID        kernel.BursaryID            `db:"bursary_id" json:"bursary_id"`
	Status           ApplicationStatus           `db:"status" json:"status"`
	FirstName        string                      `db:"first_name" json:"first_name"`
	MiddleName       string                      `db:"middle_name" json:"middle_name,omitempty"`
	LastName         string                      `db:"last_name" json:"last_name"`
	IDNumber         string                      `db:"id_number" json:"id_number"`
	DateOfBirth      time.Time                   `db:"date_of_birth" json:"date_of_birth"`
	Email            kernel.Email                `db:"email" json:"email"`
	PrimaryContact   kernel.PhoneNumber          `db:"primary_contact" json:"primary_contact"`
	SecondaryContact kernel.PhoneNumber          `db:"secondary_contact" json:"secondary_contact,omitempty"`
	DocumentsPath    kernel.BucketURL            `db:"documents_path" json:"documents_path"`
	MotivationLetter string                      `db:"motivation_letter" json:"motivation_letter,omitempty"`
	ReviewedBy       *kernel.UserID              `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time                  `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewComments   string                      `db:"review_comments" json:"review_comments,omitempty"`
	CreatedAt        time.Time                   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time                   `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// DeadlinePassed reports whether the advert stopped accepting applications at t.
func (a *Advert) DeadlinePassed(t time.Time) bool {
	return !a.Deadline.After(t)
}

// Publish makes the advert visible on the portal.
func (a *Advert) Publish() error {
	if a.IsVisible {
		return ErrAdvertAlreadyPublished()
	}
	a.IsVisible = true
	a.UpdatedAt = time.Now()
	return nil
}

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

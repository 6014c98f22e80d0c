package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/portal/pkg/kernel"
)

func TestAgeAt(t *testing.T) {
	dob := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	// Day before the birthday
	assert.Equal(t, 17, AgeAt(dob, time.Date(2018, time.June, 14, 0, 0, 0, 0, time.UTC)))
	// On the birthday
	assert.Equal(t, 18, AgeAt(dob, time.Date(2018, time.June, 15, 0, 0, 0, 0, time.UTC)))
	// Later in the year
	assert.Equal(t, 18, AgeAt(dob, time.Date(2018, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFullName(t *testing.T) {
	a := &Application{FirstName: "Thabo", LastName: "Nkosi"}
	assert.Equal(t, "Thabo Nkosi", a.FullName())

	a.MiddleName = "Sipho"
	assert.Equal(t, "Thabo Sipho Nkosi", a.FullName())
}

func TestReviewAcceptsSubmittedApplication(t *testing.T) {
	a := &Application{Status: ApplicationStatusSubmitted}

	err := a.Review(ApplicationStatusAccepted, kernel.UserID("u1"), "strong candidate")

	require.NoError(t, err)
	assert.Equal(t, ApplicationStatusAccepted, a.Status)
	require.NotNil(t, a.ReviewedBy)
	assert.Equal(t, kernel.UserID("u1"), *a.ReviewedBy)
	assert.NotNil(t, a.ReviewedAt)
	assert.Equal(t, "strong candidate", a.ReviewComments)
}

func TestAcceptThenRejectFails(t *testing.T) {
	a := &Application{Status: ApplicationStatusSubmitted}

	require.NoError(t, a.Accept(kernel.UserID("u1"), "meets all criteria"))
	assert.Equal(t, ApplicationStatusAccepted, a.Status)
	assert.Equal(t, "meets all criteria", a.ReviewComments)

	err := a.Reject(kernel.UserID("u2"), "changed my mind")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrApplicationAlreadyReviewed())
	assert.Equal(t, ApplicationStatusAccepted, a.Status)
}

func TestRejectRecordsReviewer(t *testing.T) {
	a := &Application{Status: ApplicationStatusSubmitted}

	require.NoError(t, a.Reject(kernel.UserID("u1"), "missing driver licence"))

	assert.Equal(t, ApplicationStatusRejected, a.Status)
	require.NotNil(t, a.ReviewedBy)
	assert.Equal(t, kernel.UserID("u1"), *a.ReviewedBy)
	assert.Equal(t, "missing driver licence", a.ReviewComments)
}

func TestReviewRejectsAlreadyReviewed(t *testing.T) {
	a := &Application{Status: ApplicationStatusAccepted}

	err := a.Review(ApplicationStatusRejected, kernel.UserID("u1"), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrApplicationAlreadyReviewed())
	assert.Equal(t, ApplicationStatusAccepted, a.Status)
}

func TestReviewRejectsInvalidTargetStatus(t *testing.T) {
	a := &Application{Status: ApplicationStatusSubmitted}

	err := a.Review(ApplicationStatusSubmitted, kernel.UserID("u1"), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition())
	assert.True(t, a.CanBeReviewed())
}

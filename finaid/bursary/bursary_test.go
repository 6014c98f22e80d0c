package bursary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/portal/pkg/kernel"
)

func TestAdvertDeadlinePassed(t *testing.T) {
	advert := &Advert{Deadline: time.Date(2026, 10, 31, 23, 59, 0, 0, time.UTC)}

	assert.False(t, advert.DeadlinePassed(time.Date(2026, 10, 31, 12, 0, 0, 0, time.UTC)))
	assert.True(t, advert.DeadlinePassed(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, advert.DeadlinePassed(advert.Deadline))
}

func TestAdvertPublish(t *testing.T) {
	advert := &Advert{Year: "2026"}

	require.NoError(t, advert.Publish())
	assert.True(t, advert.IsVisible)

	err := advert.Publish()
	require.Error(t, err)
}

func TestApplicationFullName(t *testing.T) {
	app := &Application{FirstName: "Naledi", MiddleName: "Grace", LastName: "Mokoena"}
	assert.Equal(t, "Naledi Grace Mokoena", app.FullName())

	app.MiddleName = ""
	assert.Equal(t, "Naledi Mokoena", app.FullName())
}

func TestAgeAtAroundBirthday(t *testing.T) {
	dob := time.Date(2010, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 15, AgeAt(dob, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 16, AgeAt(dob, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 16, AgeAt(dob, time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)))
}

func TestApplicationReview(t *testing.T) {
	app := &Application{Status: ApplicationStatusSubmitted}
	reviewer := kernel.UserID("staff-1")

	require.NoError(t, app.Review(ApplicationStatusAccepted, reviewer, "meets criteria"))

	assert.Equal(t, ApplicationStatusAccepted, app.Status)
	require.NotNil(t, app.ReviewedBy)
	assert.Equal(t, reviewer, *app.ReviewedBy)
	require.NotNil(t, app.ReviewedAt)
	assert.Equal(t, "meets criteria", app.ReviewComments)
}

func TestApplicationReviewTwiceFails(t *testing.T) {
	app := &Application{Status: ApplicationStatusSubmitted}
	require.NoError(t, app.Review(ApplicationStatusRejected, kernel.UserID("staff-1"), ""))

	err := app.Review(ApplicationStatusAccepted, kernel.UserID("staff-2"), "")
	require.Error(t, err)
	assert.Equal(t, ApplicationStatusRejected, app.Status)
}

func TestApplicationReviewInvalidTarget(t *testing.T) {
	app := &Application{Status: ApplicationStatusSubmitted}

	err := app.Review(ApplicationStatusSubmitted, kernel.UserID("staff-1"), "")
	require.Error(t, err)
	assert.True(t, app.CanBeReviewed())
}

package vacancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/portal/pkg/kernel"
)

func TestDeriveSlug(t *testing.T) {
	slug := DeriveSlug("Senior Field Officer", kernel.VacancyID("abc-123"))
	assert.Equal(t, kernel.Slug("senior-field-officer-abc-123"), slug)
}

func TestDeriveSlugStripsPunctuation(t *testing.T) {
	slug := DeriveSlug("Clerk (Grade II) & Typist", kernel.VacancyID("id1"))
	assert.NotContains(t, string(slug), "(")
	assert.NotContains(t, string(slug), "&")
	assert.NotContains(t, string(slug), " ")
}

func TestVacancyIsOpen(t *testing.T) {
	now := time.Now()
	v := &Vacancy{Deadline: now.Add(24 * time.Hour)}

	assert.True(t, v.IsOpen(now))
	assert.False(t, v.DeadlinePassed(now))

	v.Deadline = now.Add(-time.Minute)
	assert.False(t, v.IsOpen(now))
	assert.True(t, v.DeadlinePassed(now))
}

func TestVacancyIsVisible(t *testing.T) {
	v := &Vacancy{IsPublic: true, IsPublished: false}
	assert.False(t, v.IsVisible())

	v.IsPublished = true
	assert.True(t, v.IsVisible())

	v.IsPublic = false
	assert.False(t, v.IsVisible())
}

func TestVacancyPublish(t *testing.T) {
	v := &Vacancy{}

	require.NoError(t, v.Publish())
	assert.True(t, v.IsPublished)

	err := v.Publish()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVacancyAlreadyPublished())
}

func TestVacancyUpdateDetailsKeepsSlug(t *testing.T) {
	v := &Vacancy{
		Title: "Old Title",
		Slug:  "old-title-id1",
	}

	v.UpdateDetails("New Title", "desc", "", "B4")

	assert.Equal(t, kernel.VacancyTitle("New Title"), v.Title)
	assert.Equal(t, kernel.Slug("old-title-id1"), v.Slug)
	assert.Equal(t, kernel.PayGrade("B4"), v.PayGrade)
}

func TestVacancyTypeIsValid(t *testing.T) {
	for _, vt := range AllVacancyTypes {
		assert.True(t, vt.IsValid(), string(vt))
	}
	assert.False(t, VacancyType("freelance").IsValid())
}

package vacancy

import (
	"fmt"
	"time"

	goslug "github.com/gosimple/slug"

	"github.com/talentgate/portal/pkg/kernel"
)

// VacancyType categorizes a vacancy for filtering and subscriptions.
type VacancyType string

const (
	VacancyTypeInternship VacancyType = "internship"
	VacancyTypePermanent  VacancyType = "permanent"
	VacancyTypePartTime   VacancyType = "part_time"
	VacancyTypeContract   VacancyType = "contract"
	VacancyTypeGraduate   VacancyType = "graduate"
	VacancyTypeVolunteer  VacancyType = "volunteer"
)

// AllVacancyTypes lists every valid vacancy type.
var AllVacancyTypes = []VacancyType{
	VacancyTypeInternship,
	VacancyTypePermanent,
	VacancyTypePartTime,
	VacancyTypeContract,
	VacancyTypeGraduate,
	VacancyTypeVolunteer,
}

// IsValid reports whether t is a known vacancy type.
func (t VacancyType) IsValid() bool {
	for _, known := range AllVacancyTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Vacancy struct {
	ID          kernel.VacancyID          `db:"id" json:"id"`
	Title       kernel.VacancyTitle       `db:"title" json:"title"`
	Type        VacancyType               `db:"vacancy_type" json:"vacancy_type"`
	PayGrade    kernel.PayGrade           `db:"pay_grade" json:"pay_grade"`
	Description kernel.VacancyDescription `db:"description" json:"description"`
	Remarks     kernel.VacancyDescription `db:"remarks" json:"remarks"`
	TownIDs     []kernel.TownID           `db:"-" json:"town_ids"`
	Deadline    time.Time                 `db:"deadline" json:"deadline"`
	IsPublic    bool                      `db:"is_public" json:"is_public"`
	IsPublished bool                      `db:"is_published" json:"is_published"`
	Slug        kernel.Slug               `db:"slug" json:"slug"`
	CreatedAt   time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time                 `db:"updated_at" json:"updated_at"`
}

// QuestionType is the answer kind a minimum requirement expects.
type QuestionType string

const (
	QuestionTypeText    QuestionType = "text"
	QuestionTypeBoolean QuestionType = "boolean"
)

// MinimumRequirement is a screening question attached to a vacancy.
type MinimumRequirement struct {
	ID           kernel.RequirementID `db:"id" json:"id"`
	VacancyID    kernel.VacancyID     `db:"vacancy_id" json:"vacancy_id"`
	Title        string               `db:"title" json:"title"`
	QuestionType QuestionType         `db:"question_type" json:"question_type"`
	IsRequired   bool                 `db:"is_required" json:"is_required"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// DeriveSlug computes the unique slug from the vacancy title and id.
func DeriveSlug(title kernel.VacancyTitle, id kernel.VacancyID) kernel.Slug {
	return kernel.Slug(goslug.Make(fmt.Sprintf("%s-%s", title, id)))
}

// IsOpen reports whether the vacancy still accepts applications at t.
func (v *Vacancy) IsOpen(t time.Time) bool {
	return v.Deadline.After(t)
}

// DeadlinePassed reports whether the deadline has passed at t.
func (v *Vacancy) DeadlinePassed(t time.Time) bool {
	return !v.Deadline.After(t)
}

// IsVisible reports whether the vacancy appears on the public listing.
func (v *Vacancy) IsVisible() bool {
	return v.IsPublic && v.IsPublished
}

// Publish marks the vacancy as published.
func (v *Vacancy) Publish() error {
	if v.IsPublished {
		return ErrVacancyAlreadyPublished()
	}
	v.IsPublished = true
	v.UpdatedAt = time.Now()
	return nil
}

// Unpublish withdraws the vacancy from publication.
func (v *Vacancy) Unpublish() {
	v.IsPublished = false
	v.UpdatedAt = time.Now()
}

// UpdateDetails applies any non-empty field updates. The slug is not
// regenerated: published application links must stay stable.
func (v *Vacancy) UpdateDetails(title kernel.VacancyTitle, description, remarks kernel.VacancyDescription, payGrade kernel.PayGrade) {
	if title != "" {
		v.Title = title
	}
	if description != "" {
		v.Description = description
	}
	if remarks != "" {
		v.Remarks = remarks
	}
	if payGrade != "" {
		v.PayGrade = payGrade
	}
	v.UpdatedAt = time.Now()
}

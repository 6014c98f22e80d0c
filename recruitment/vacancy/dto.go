package vacancy

import (
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// CreateVacancyRequest - DTO for creating a new vacancy
type CreateVacancyRequest struct {
	Title       kernel.VacancyTitle       `json:"title" validate:"required"`
	Type        VacancyType               `json:"vacancy_type" validate:"required"`
	PayGrade    kernel.PayGrade           `json:"pay_grade,omitempty"`
	Description kernel.VacancyDescription `json:"description" validate:"required"`
	Remarks     kernel.VacancyDescription `json:"remarks,omitempty"`
	TownIDs     []kernel.TownID           `json:"town_ids,omitempty"`
	Deadline    time.Time                 `json:"deadline" validate:"required"`
	IsPublic    bool                      `json:"is_public"`
	IsPublished bool                      `json:"is_published"`
}

// UpdateVacancyRequest - DTO for updating an existing vacancy
type UpdateVacancyRequest struct {
	Title       *kernel.VacancyTitle       `json:"title,omitempty"`
	PayGrade    *kernel.PayGrade           `json:"pay_grade,omitempty"`
	Description *kernel.VacancyDescription `json:"description,omitempty"`
	Remarks     *kernel.VacancyDescription `json:"remarks,omitempty"`
	Deadline    *time.Time                 `json:"deadline,omitempty"`
	IsPublic    *bool                      `json:"is_public,omitempty"`
}

// AddRequirementRequest - DTO for attaching a minimum requirement
type AddRequirementRequest struct {
	Title        string       `json:"title" validate:"required"`
	QuestionType QuestionType `json:"question_type" validate:"required"`
	IsRequired   bool         `json:"is_required"`
}

// Response type alias for paginated vacancies
type PaginatedVacanciesResponse = kernel.Paginated[Vacancy]

// VacancyWithRequirementsResponse - vacancy plus its screening questions
type VacancyWithRequirementsResponse struct {
	Vacancy      Vacancy              `json:"vacancy"`
	Requirements []MinimumRequirement `json:"requirements"`
}

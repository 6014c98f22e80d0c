package vacancy

import "github.com/talentgate/portal/notification"

// CreatedEvent builds the event emitted when a vacancy becomes visible.
func CreatedEvent(v *Vacancy) notification.VacancyCreated {
	return notification.VacancyCreated{
		Base:         notification.Now(),
		VacancyID:    v.ID,
		VacancySlug:  v.Slug,
		VacancyTitle: v.Title,
		VacancyType:  string(v.Type),
		Deadline:     v.Deadline,
	}
}

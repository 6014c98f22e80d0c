package subscriber

import (
	"time"

	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// Subscriber is a person receiving mail-outs for new vacancies of the types
// they picked.
type Subscriber struct {
	ID             kernel.SubscriberID   `db:"id" json:"id"`
	Email          kernel.Email          `db:"email" json:"email"`
	VacancyTypes   []vacancy.VacancyType `db:"-" json:"vacancy_types"`
	Subscribed     bool                  `db:"subscribed" json:"subscribed"`
	SubscribedAt   time.Time             `db:"subscribed_at" json:"subscribed_at"`
	UnsubscribedAt *time.Time            `db:"unsubscribed_at" json:"unsubscribed_at,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive reports whether the subscriber should receive mail-outs.
func (s *Subscriber) IsActive() bool {
	return s.Subscribed
}

// WantsType reports whether the subscriber opted into a vacancy type.
func (s *Subscriber) WantsType(t vacancy.VacancyType) bool {
	for _, vt := range s.VacancyTypes {
		if vt == t {
			return true
		}
	}
	return false
}

// Unsubscribe deactivates the subscription.
func (s *Subscriber) Unsubscribe() error {
	if !s.Subscribed {
		return ErrAlreadyUnsubscribed()
	}
	now := time.Now()
	s.Subscribed = false
	s.UnsubscribedAt = &now
	return nil
}

// Resubscribe reactivates a previously unsubscribed address.
func (s *Subscriber) Resubscribe(types []vacancy.VacancyType) {
	s.Subscribed = true
	s.UnsubscribedAt = nil
	s.SubscribedAt = time.Now()
	if len(types) > 0 {
		s.VacancyTypes = types
	}
}

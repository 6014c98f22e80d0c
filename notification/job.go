package notification

import (
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// Channel names a delivery mechanism.
type Channel string

const (
	ChannelEmail     Channel = "email"
	ChannelSMS       Channel = "sms"
	ChannelBroadcast Channel = "broadcast"
)

// DeliveryJob is one outbound message on one channel. Jobs are serialized
// onto the Redis queue and consumed by the worker pool. A job that fails is
// re-queued with backoff until MaxAttempts is reached, then dropped with a
// log line; delivery never feeds back into the lifecycle operation that
// produced it.
type DeliveryJob struct {
	ID      kernel.JobID `json:"id"`
	Channel Channel      `json:"channel"`
	Kind    EventKind    `json:"kind"`

	// Email fields. Recipients carries one address for direct messages and
	// many for subscriber fan-out batches.
	Recipients []string `json:"recipients,omitempty"`
	Subject    string   `json:"subject,omitempty"`
	Body       string   `json:"body,omitempty"`

	// SMS fields
	PhoneNumber string `json:"phone_number,omitempty"`
	Message     string `json:"message,omitempty"`

	// Broadcast fields. Payload carries the event-specific identifiers the
	// portal UI needs to deep-link (vacancy_id/vacancy_slug/vacancy_title,
	// application_id, ...).
	Group    Group             `json:"group,omitempty"`
	ObjectID string            `json:"object_id,omitempty"`
	Payload  map[string]string `json:"payload,omitempty"`

	AttemptCount int       `json:"attempt_count"`
	MaxAttempts  int       `json:"max_attempts"`
	CreatedAt    time.Time `json:"created_at"`
}

// Exhausted reports whether the job has used up its delivery attempts.
func (j *DeliveryJob) Exhausted() bool {
	return j.AttemptCount >= j.MaxAttempts
}

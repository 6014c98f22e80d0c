package notification

import (
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// Group is a staff audience for in-portal notifications and websocket
// broadcasts.
type Group string

const (
	GroupStaff     Group = "staff-notifications"
	GroupAdmin     Group = "admin-notifications"
	GroupRecruiter Group = "recruiter-notifications"
	GroupFinaid    Group = "finaid-notifications"
)

// IsValid reports whether g names a known audience.
func (g Group) IsValid() bool {
	switch g {
	case GroupStaff, GroupAdmin, GroupRecruiter, GroupFinaid:
		return true
	}
	return false
}

// StaffNotification is a persistent in-portal notification for a staff
// audience.
type StaffNotification struct {
	ID        kernel.NotificationID `db:"id" json:"id"`
	Group     Group                 `db:"recipient_group" json:"group"`
	Kind      EventKind             `db:"kind" json:"kind"`
	ObjectID  string                `db:"object_id" json:"object_id,omitempty"`
	Subject   string                `db:"subject" json:"subject"`
	Body      string                `db:"body" json:"body"`
	Read      bool                  `db:"read" json:"read"`
	CreatedAt time.Time             `db:"created_at" json:"created_at"`
	ReadAt    *time.Time            `db:"read_at" json:"read_at,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// MarkRead stamps the notification as read. Marking twice is a no-op.
func (n *StaffNotification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
}

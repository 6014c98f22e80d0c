package notification

import (
	"context"
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// Store persists staff notifications.
type Store interface {
	// Create persists a new staff notification
	Create(ctx context.Context, n *StaffNotification) error

	// GetByID retrieves a notification by ID
	GetByID(ctx context.Context, id kernel.NotificationID) (*StaffNotification, error)

	// MarkRead stamps a notification as read
	MarkRead(ctx context.Context, id kernel.NotificationID) error

	// ListByGroup retrieves a group's notifications, newest first
	ListByGroup(ctx context.Context, group Group, pagination kernel.PaginationOptions) (*kernel.Paginated[StaffNotification], error)

	// CountUnread counts a group's unread notifications
	CountUnread(ctx context.Context, group Group) (int64, error)
}

// JobQueue is the delivery queue between the dispatcher and the worker pool.
type JobQueue interface {
	// Enqueue adds a job to the ready queue
	Enqueue(ctx context.Context, job *DeliveryJob) error

	// EnqueueDelayed schedules a job for later processing (retries)
	EnqueueDelayed(ctx context.Context, job *DeliveryJob, delay time.Duration) error

	// Dequeue pops a job, blocking up to timeout. Returns nil when the queue
	// stays empty.
	Dequeue(ctx context.Context, timeout time.Duration) (*DeliveryJob, error)

	// MoveDelayedToReady moves due delayed jobs onto the ready queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Size returns the number of ready jobs
	Size(ctx context.Context) (int64, error)

	// DelayedSize returns the number of delayed jobs
	DelayedSize(ctx context.Context) (int64, error)
}

// EmailSender delivers email to one or more recipients.
type EmailSender interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// SMSSender delivers a short text message.
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// Broadcaster pushes a message to every connected portal session of a group.
// Best-effort: a slow or absent session is skipped, never waited on.
type Broadcaster interface {
	Broadcast(group Group, payload []byte)
}

package notificationsrv

import (
	"context"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/errx"
	"github.com/talentgate/portal/pkg/kernel"
)

// NotificationService provides read and acknowledge operations over staff
// notifications.
type NotificationService struct {
	store notification.Store
}

// NewNotificationService creates a new instance of the notification service
func NewNotificationService(store notification.Store) *NotificationService {
	return &NotificationService{
		store: store,
	}
}

// ListNotifications retrieves a group's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, group notification.Group, pagination kernel.PaginationOptions) (*kernel.Paginated[notification.StaffNotification], error) {
	if !group.IsValid() {
		return nil, notification.ErrInvalidGroup().WithDetail("group", group)
	}

	notifications, err := s.store.ListByGroup(ctx, group, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list notifications", errx.TypeInternal)
	}
	return notifications, nil
}

// CountUnread counts a group's unread notifications.
func (s *NotificationService) CountUnread(ctx context.Context, group notification.Group) (int64, error) {
	if !group.IsValid() {
		return 0, notification.ErrInvalidGroup().WithDetail("group", group)
	}

	count, err := s.store.CountUnread(ctx, group)
	if err != nil {
		return 0, errx.Wrap(err, "failed to count unread notifications", errx.TypeInternal)
	}
	return count, nil
}

// MarkRead acknowledges a single notification.
func (s *NotificationService) MarkRead(ctx context.Context, id kernel.NotificationID) (*notification.StaffNotification, error) {
	n, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, notification.ErrNotificationNotFound().WithDetail("notification_id", id.String())
	}

	if n.Read {
		return n, nil
	}

	if err := s.store.MarkRead(ctx, id); err != nil {
		return nil, errx.Wrap(err, "failed to mark notification read", errx.TypeInternal)
	}

	n.MarkRead()
	return n, nil
}

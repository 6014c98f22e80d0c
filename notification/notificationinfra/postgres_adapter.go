package notificationinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/kernel"
)

// PostgresNotificationStore implements notification.Store using PostgreSQL
type PostgresNotificationStore struct {
	db *sqlx.DB
}

// NewPostgresNotificationStore creates a new PostgreSQL notification store
func NewPostgresNotificationStore(db *sqlx.DB) *PostgresNotificationStore {
	return &PostgresNotificationStore{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type notificationModel struct {
	ID             string     `db:"id"`
	RecipientGroup string     `db:"recipient_group"`
	Kind           string     `db:"kind"`
	ObjectID       string     `db:"object_id"`
	Subject        string     `db:"subject"`
	Body           string     `db:"body"`
	Read           bool       `db:"read"`
	CreatedAt      time.Time  `db:"created_at"`
	ReadAt         *time.Time `db:"read_at"`
}

func (m *notificationModel) toEntity() *notification.StaffNotification {
	return &notification.StaffNotification{
		ID:        kernel.NotificationID(m.ID),
		Group:     notification.Group(m.RecipientGroup),
		Kind:      notification.EventKind(m.Kind),
		ObjectID:  m.ObjectID,
		Subject:   m.Subject,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
		ReadAt:    m.ReadAt,
	}
}

func fromEntity(n *notification.StaffNotification) *notificationModel {
	return &notificationModel{
		ID:             string(n.ID),
		RecipientGroup: string(n.Group),
		Kind:           string(n.Kind),
		ObjectID:       n.ObjectID,
		Subject:        n.Subject,
		Body:           n.Body,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
		ReadAt:         n.ReadAt,
	}
}

// ============================================================================
// Store Implementation
// ============================================================================

// Create persists a new staff notification
func (s *PostgresNotificationStore) Create(ctx context.Context, n *notification.StaffNotification) error {
	model := fromEntity(n)

	query := `
		INSERT INTO staff_notifications (
			id, recipient_group, kind, object_id, subject, body, read, created_at, read_at
		) VALUES (
			:id, :recipient_group, :kind, :object_id, :subject, :body, :read, :created_at, :read_at
		)
	`

	if _, err := s.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// GetByID retrieves a notification by ID
func (s *PostgresNotificationStore) GetByID(ctx context.Context, id kernel.NotificationID) (*notification.StaffNotification, error) {
	query := `
		SELECT id, recipient_group, kind, object_id, subject, body, read, created_at, read_at
		FROM staff_notifications
		WHERE id = $1
	`

	var model notificationModel
	err := s.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, notification.ErrNotificationNotFound()
		}
		return nil, fmt.Errorf("failed to get notification by id: %w", err)
	}

	return model.toEntity(), nil
}

// MarkRead stamps a notification as read
func (s *PostgresNotificationStore) MarkRead(ctx context.Context, id kernel.NotificationID) error {
	query := `
		UPDATE staff_notifications
		SET read = true, read_at = $2
		WHERE id = $1 AND read = false
	`

	result, err := s.db.ExecContext(ctx, query, string(id), time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		// already read or missing; distinguish for the caller
		var exists bool
		if err := s.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM staff_notifications WHERE id = $1)`, string(id)); err != nil {
			return fmt.Errorf("failed to check notification existence: %w", err)
		}
		if !exists {
			return notification.ErrNotificationNotFound()
		}
	}

	return nil
}

// ListByGroup retrieves a group's notifications, newest first
func (s *PostgresNotificationStore) ListByGroup(ctx context.Context, group notification.Group, pagination kernel.PaginationOptions) (*kernel.Paginated[notification.StaffNotification], error) {
	pagination = pagination.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM staff_notifications WHERE recipient_group = $1`
	if err := s.db.GetContext(ctx, &total, countQuery, string(group)); err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, recipient_group, kind, object_id, subject, body, read, created_at, read_at
		FROM staff_notifications
		WHERE recipient_group = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []notificationModel
	err := s.db.SelectContext(ctx, &models, query, string(group), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	entities := make([]notification.StaffNotification, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// CountUnread counts a group's unread notifications
func (s *PostgresNotificationStore) CountUnread(ctx context.Context, group notification.Group) (int64, error) {
	query := `SELECT COUNT(*) FROM staff_notifications WHERE recipient_group = $1 AND read = false`

	var count int64
	err := s.db.GetContext(ctx, &count, query, string(group))
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

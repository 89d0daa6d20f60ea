package store

import (
	"context"
	"fmt"
	"time"

	"drishti/internal/utils"
	"drishti/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notificationTableName = "drishti.notifications"

var notificationColumns = utils.StructTagValues(types.Notification{})

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) NotificationsByRecipient(ctx context.Context, recipientID string) ([]*types.Notification, error) {
	query, args, err := psql().
		Select(notificationColumns...).
		From(notificationTableName).
		Where(sq.Eq{"recipient_id": recipientID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate notifications query: %w", err)
	}

	var notifications = make([]*types.Notification, 0)
	err = pgxscan.Select(ctx, r.pool, &notifications, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, nil
}

func (r *NotificationRepository) Create(ctx context.Context, notification *types.Notification) error {
	if notification.ID == "" {
		notification.ID = utils.NanoID()
	}
	notification.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(notificationTableName).
		SetMap(utils.StructToMap(notification)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create notification query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create notification")
}

// MarkRead flips is_read for a notification owned by recipientID. Scoping
// by recipient keeps one user from acknowledging another's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	query, args, err := psql().
		Update(notificationTableName).
		Set("is_read", true).
		Where(sq.Eq{"id": notificationID, "recipient_id": recipientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate mark read query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrNotificationNotFound
	}

	return nil
}

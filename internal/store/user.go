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

const userTableName = "drishti.users"

var userColumns = utils.StructTagValues(types.User{})

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) User(ctx context.Context, userID string) (*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var user types.User
	err = pgxscan.Get(ctx, r.pool, &user, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user-by-email query: %w", err)
	}

	var user types.User
	err = pgxscan.Get(ctx, r.pool, &user, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	return &user, nil
}

// PendingNGOs returns users holding the given role id whose verification is
// still pending, newest first.
func (r *UserRepository) PendingNGOs(ctx context.Context, ngoRoleID string) ([]*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"role_id": ngoRoleID, "verification": types.VerificationPending}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pending ngos query: %w", err)
	}

	var users = make([]*types.User, 0)
	err = pgxscan.Select(ctx, r.pool, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending ngos: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *types.User) error {
	now := time.Now()
	if user.ID == "" {
		user.ID = utils.NanoID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	query, args, err := psql().
		Insert(userTableName).
		SetMap(utils.StructToMap(user)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create user query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create user")
}

func (r *UserRepository) Update(ctx context.Context, userID string, user *types.User) error {
	user.ID = userID
	user.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(userTableName).
		SetMap(utils.StructToMap(user)).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update user query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update user")
}

// UpdateNGOStatus applies an administrative decision to an account and
// queues the notification for it in the same transaction, so the status
// change and the message to the user land together or not at all.
// Approved and rejected adjust the vetting state; frozen locks the account.
func (r *UserRepository) UpdateNGOStatus(ctx context.Context, userID, status string, notification *types.Notification) error {
	now := time.Now()

	builder := psql().
		Update(userTableName).
		Set("updated_at", now).
		Where(sq.Eq{"id": userID})

	switch status {
	case string(types.VerificationApproved), string(types.VerificationRejected):
		builder = builder.Set("verification", status)
	case string(types.UserStatusFrozen):
		builder = builder.Set("status", status)
	default:
		return types.ErrInvalidStatus
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate ngo status update query: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin ngo status transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update ngo status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrUserNotFound
	}

	notification.ID = utils.NanoID()
	notification.RecipientID = userID
	notification.CreatedAt = now

	insertNotification, args, err := psql().
		Insert(notificationTableName).
		SetMap(utils.StructToMap(notification)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate status notification insert: %w", err)
	}

	if _, err = tx.Exec(ctx, insertNotification, args...); err != nil {
		return fmt.Errorf("failed to create status notification: %w", err)
	}

	return utils.ErrorWrapOrNil(tx.Commit(ctx), "failed to commit ngo status update")
}

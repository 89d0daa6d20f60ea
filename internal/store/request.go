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

const requestTableName = "drishti.requests"

var requestColumns = utils.StructTagValues(types.Request{})

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Request(ctx context.Context, requestID string) (*types.Request, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request query: %w", err)
	}

	var request types.Request
	err = pgxscan.Get(ctx, r.pool, &request, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}

	return &request, nil
}

func (r *RequestRepository) PendingRequests(ctx context.Context) ([]*types.Request, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestTableName).
		Where(sq.Eq{"status": types.RequestStatusPending}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pending requests query: %w", err)
	}

	var requests = make([]*types.Request, 0)
	err = pgxscan.Select(ctx, r.pool, &requests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending requests: %w", err)
	}

	return requests, nil
}

// PendingByEmail reports whether an undecided request already claims the
// given email address.
func (r *RequestRepository) PendingByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := psql().
		Select("count(*)").
		From(requestTableName).
		Where(sq.Eq{"email": email, "status": types.RequestStatusPending}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate pending-by-email query: %w", err)
	}

	var count int64
	err = pgxscan.Get(ctx, r.pool, &count, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to count pending requests by email: %w", err)
	}

	return count > 0, nil
}

func (r *RequestRepository) Create(ctx context.Context, request *types.Request) error {
	if request.ID == "" {
		request.ID = utils.NanoID()
	}
	request.Status = types.RequestStatusPending
	request.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(requestTableName).
		SetMap(utils.StructToMap(request)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create request")
}

// Approve performs the terminal pending -> approved transition inside a
// single transaction: the NGO user is created, the request is linked to it,
// and the approval notification is queued. The request update is guarded by
// a status predicate so a request can never be decided twice, even under
// concurrent retries.
func (r *RequestRepository) Approve(ctx context.Context, requestID string, user *types.User, notification *types.Notification) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin approve transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	insertUser, args, err := psql().
		Insert(userTableName).
		SetMap(utils.StructToMap(user)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate approve user insert: %w", err)
	}

	if _, err = tx.Exec(ctx, insertUser, args...); err != nil {
		// The applicant may have registered an account with the same
		// email between submission and approval.
		if isUniqueViolation(err) {
			return types.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user during approval: %w", err)
	}

	updateRequest, args, err := psql().
		Update(requestTableName).
		Set("status", types.RequestStatusApproved).
		Set("approved_user_id", user.ID).
		Set("decided_at", now).
		Where(sq.Eq{"id": requestID, "status": types.RequestStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate approve request update: %w", err)
	}

	tag, err := tx.Exec(ctx, updateRequest, args...)
	if err != nil {
		return fmt.Errorf("failed to update request during approval: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return r.decidedOrMissing(ctx, requestID)
	}

	notification.ID = utils.NanoID()
	notification.RecipientID = user.ID
	notification.CreatedAt = now

	insertNotification, args, err := psql().
		Insert(notificationTableName).
		SetMap(utils.StructToMap(notification)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate approval notification insert: %w", err)
	}

	if _, err = tx.Exec(ctx, insertNotification, args...); err != nil {
		return fmt.Errorf("failed to create approval notification: %w", err)
	}

	return utils.ErrorWrapOrNil(tx.Commit(ctx), "failed to commit approval")
}

// Reject performs the terminal pending -> rejected transition. Like Approve
// it refuses to re-decide a request that already left the pending state.
func (r *RequestRepository) Reject(ctx context.Context, requestID string) error {
	query, args, err := psql().
		Update(requestTableName).
		Set("status", types.RequestStatusRejected).
		Set("decided_at", time.Now()).
		Where(sq.Eq{"id": requestID, "status": types.RequestStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate reject request update: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to reject request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return r.decidedOrMissing(ctx, requestID)
	}

	return nil
}

func (r *RequestRepository) decidedOrMissing(ctx context.Context, requestID string) error {
	_, err := r.Request(ctx, requestID)
	if err != nil {
		return err
	}
	return types.ErrRequestAlreadyDecided
}

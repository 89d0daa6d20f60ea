package store

import (
	"context"
	"fmt"
	"time"

	"drishti/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// Statistics runs the fixed set of police dashboard counts concurrently
// and joins on all of them. Any single failing count fails the whole
// aggregation; there is no partial-result policy.
func (r *StatsRepository) Statistics(ctx context.Context) (*types.StatisticsData, error) {
	var stats types.StatisticsData

	g, ctx := errgroup.WithContext(ctx)

	g.Go(r.countInto(ctx, &stats.TotalReports, nil))
	g.Go(r.countInto(ctx, &stats.Found, sq.Eq{"status": types.ReportStatusFound}))
	g.Go(r.countInto(ctx, &stats.StillMissing, sq.NotEq{"status": types.ReportStatusFound}))
	g.Go(r.countInto(ctx, &stats.Children, sq.Lt{"age": 18}))
	g.Go(r.countInto(ctx, &stats.Male, sq.Eq{"gender": "male"}))
	g.Go(r.countInto(ctx, &stats.Female, sq.Eq{"gender": "female"}))
	g.Go(r.countInto(ctx, &stats.Other, sq.NotEq{"gender": []string{"male", "female"}}))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate statistics: %w", err)
	}

	return &stats, nil
}

// NGODashboard counts a single volunteer's activity bounded to the current
// UTC day. All counts are concurrent, fail-fast, and never null.
func (r *StatsRepository) NGODashboard(ctx context.Context, ngoUserID string) (*types.NGODashboardStats, error) {
	var stats types.NGODashboardStats

	dayStart, dayEnd := utcDayBounds(time.Now())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query, args, err := psql().
			Select("count(*)").
			From(reportTableName).
			Where(sq.Eq{"reviewed_by_ngo": ngoUserID}).
			Where(sq.GtOrEq{"reviewed_at": dayStart}).
			Where(sq.Lt{"reviewed_at": dayEnd}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate photos reviewed query: %w", err)
		}
		return pgxscan.Get(ctx, r.pool, &stats.PhotosReviewedToday, query, args...)
	})

	g.Go(func() error {
		query, args, err := psql().
			Select("count(*)").
			From(matchCheckTableName).
			Where(sq.Eq{"checked_by": ngoUserID}).
			Where(sq.GtOrEq{"checked_at": dayStart}).
			Where(sq.Lt{"checked_at": dayEnd}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate match checks query: %w", err)
		}
		return pgxscan.Get(ctx, r.pool, &stats.AIMatchesChecked, query, args...)
	})

	g.Go(func() error {
		query, args, err := psql().
			Select("count(*)").
			From(reportTableName).
			Where(sq.Eq{"found_by_ngo": ngoUserID}).
			Where(sq.GtOrEq{"found_at": dayStart}).
			Where(sq.Lt{"found_at": dayEnd}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate reports sent query: %w", err)
		}
		return pgxscan.Get(ctx, r.pool, &stats.ReportsSent, query, args...)
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate ngo dashboard: %w", err)
	}

	return &stats, nil
}

func (r *StatsRepository) countInto(ctx context.Context, dest *int64, where sq.Sqlizer) func() error {
	return func() error {
		builder := psql().
			Select("count(*)").
			From(reportTableName)
		if where != nil {
			builder = builder.Where(where)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate count query: %w", err)
		}

		return pgxscan.Get(ctx, r.pool, dest, query, args...)
	}
}

// utcDayBounds returns the half-open [start, end) interval of the UTC day
// containing t. Day boundaries are always UTC, never server-local time.
func utcDayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

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

const (
	reportTableName     = "drishti.missing_reports"
	matchCheckTableName = "drishti.match_checks"
)

var reportColumns = utils.StructTagValues(types.MissingReport{})

type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) Report(ctx context.Context, reportID string) (*types.MissingReport, error) {
	query, args, err := psql().
		Select(reportColumns...).
		From(reportTableName).
		Where(sq.Eq{"id": reportID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report query: %w", err)
	}

	var report types.MissingReport
	err = pgxscan.Get(ctx, r.pool, &report, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	return &report, nil
}

func (r *ReportRepository) ReportsByStatus(ctx context.Context, status types.ReportStatus) ([]*types.MissingReport, error) {
	query, args, err := psql().
		Select(reportColumns...).
		From(reportTableName).
		Where(sq.Eq{"status": status}).
		OrderBy("reported_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reports-by-status query: %w", err)
	}

	var reports = make([]*types.MissingReport, 0)
	err = pgxscan.Select(ctx, r.pool, &reports, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports by status: %w", err)
	}

	return reports, nil
}

func (r *ReportRepository) ReportsByReporter(ctx context.Context, reporterID string) ([]*types.MissingReport, error) {
	query, args, err := psql().
		Select(reportColumns...).
		From(reportTableName).
		Where(sq.Eq{"reporter_id": reporterID}).
		OrderBy("reported_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reports-by-reporter query: %w", err)
	}

	var reports = make([]*types.MissingReport, 0)
	err = pgxscan.Select(ctx, r.pool, &reports, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports by reporter: %w", err)
	}

	return reports, nil
}

func (r *ReportRepository) Create(ctx context.Context, report *types.MissingReport) error {
	if report.ID == "" {
		report.ID = utils.NanoID()
	}
	report.Status = types.ReportStatusPendingVerification
	report.ReportedAt = time.Now()

	query, args, err := psql().
		Insert(reportTableName).
		SetMap(utils.StructToMap(report)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create report query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create report")
}

// Transition moves a report from its current status to next, stamping the
// reviewer columns that belong to the transition. The update is guarded by
// the source status so concurrent reviewers cannot double-decide a report.
func (r *ReportRepository) Transition(ctx context.Context, reportID, actorID string, from, to types.ReportStatus) error {
	now := time.Now()

	builder := psql().
		Update(reportTableName).
		Set("status", to).
		Where(sq.Eq{"id": reportID, "status": from})

	switch to {
	case types.ReportStatusVerified, types.ReportStatusRejected:
		builder = builder.Set("reviewed_by_ngo", actorID).Set("reviewed_at", now)
	case types.ReportStatusFound:
		builder = builder.Set("found_by_ngo", actorID).Set("found_at", now)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate report transition query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to transition report: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.Report(ctx, reportID); err != nil {
			return err
		}
		return types.ErrInvalidTransition
	}

	return nil
}

func (r *ReportRepository) CreateMatchCheck(ctx context.Context, check *types.MatchCheck) error {
	if check.ID == "" {
		check.ID = utils.NanoID()
	}
	check.CheckedAt = time.Now()

	query, args, err := psql().
		Insert(matchCheckTableName).
		SetMap(utils.StructToMap(check)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create match check query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create match check")
}

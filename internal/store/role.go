package store

import (
	"context"
	"fmt"

	"drishti/internal/utils"
	"drishti/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roleTableName = "drishti.roles"

var roleColumns = utils.StructTagValues(types.Role{})

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) RoleByName(ctx context.Context, name types.RoleName) (*types.Role, error) {
	query, args, err := psql().
		Select(roleColumns...).
		From(roleTableName).
		Where(sq.Eq{"name": string(name)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate role query: %w", err)
	}

	var role types.Role
	err = pgxscan.Get(ctx, r.pool, &role, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}

	return &role, nil
}

func (r *RoleRepository) RoleByID(ctx context.Context, roleID string) (*types.Role, error) {
	query, args, err := psql().
		Select(roleColumns...).
		From(roleTableName).
		Where(sq.Eq{"id": roleID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate role query: %w", err)
	}

	var role types.Role
	err = pgxscan.Get(ctx, r.pool, &role, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}

	return &role, nil
}

// EnsureRole inserts a role if it does not exist yet. Role names are static
// reference data, created once and never mutated.
func (r *RoleRepository) EnsureRole(ctx context.Context, name types.RoleName) error {
	query, args, err := psql().
		Insert(roleTableName).
		Columns("id", "name").
		Values(utils.NanoID(), string(name)).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate ensure role query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to ensure role")
}

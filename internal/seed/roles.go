package seed

import (
	"context"
	"fmt"

	"drishti/internal/store"
	"drishti/pkg/types"

	"github.com/k0kubun/pp/v3"
)

var roleNames = []types.RoleName{
	types.RoleFamily,
	types.RoleNGO,
	types.RolePolice,
}

// SeedRoles inserts the static role rows. Safe to run repeatedly; existing
// roles are left untouched.
func SeedRoles(ctx context.Context, roleRepo *store.RoleRepository) error {
	for _, name := range roleNames {
		if err := roleRepo.EnsureRole(ctx, name); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}

		role, err := roleRepo.RoleByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to fetch seeded role %s: %w", name, err)
		}

		pp.Println(role)
	}

	return nil
}

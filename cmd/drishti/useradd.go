package main

import (
	"context"
	"fmt"
	"strings"

	"drishti/internal/db"
	"drishti/internal/store"
	"drishti/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

// Police and family accounts have no self-service registration flow, so
// they are created from the command line.
var userAddCommand = &cli.Command{
	Name:  "user-add",
	Usage: "Create a user account directly",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "display name", Required: true},
		&cli.StringFlag{Name: "email", Required: true},
		&cli.StringFlag{Name: "password", Required: true},
		&cli.StringFlag{Name: "role", Usage: "family, ngo or police", Value: string(types.RolePolice)},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		roleRepo := store.NewRoleRepository(pool)
		userRepo := store.NewUserRepository(pool)

		roleName := strings.ToLower(strings.TrimSpace(c.String("role")))
		role, err := roleRepo.RoleByName(ctx, types.RoleName(roleName))
		if err != nil {
			return fmt.Errorf("failed to resolve role %q, has seed been run: %w", roleName, err)
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(c.String("password")), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &types.User{
			Name:         strings.TrimSpace(c.String("name")),
			Email:        strings.ToLower(strings.TrimSpace(c.String("email"))),
			PasswordHash: string(passwordHash),
			RoleID:       role.ID,
			Status:       types.UserStatusActive,
			Verification: types.VerificationApproved,
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"role":    role.Name,
		}).Info("User created")

		return nil
	},
}

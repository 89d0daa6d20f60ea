package main

import (
	"context"
	"fmt"

	"drishti/internal/db"
	"drishti/internal/seed"
	"drishti/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with reference data",
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

		logrus.Info("Connected to database")

		roleRepo := store.NewRoleRepository(pool)

		logrus.Info("Seeding roles...")
		if err := seed.SeedRoles(ctx, roleRepo); err != nil {
			return fmt.Errorf("failed to seed roles: %w", err)
		}

		logrus.Info("Roles seeded successfully")

		return nil
	},
}

package main

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/treedoctor/treedoctor-api/internal/database"
)

// migrationsSourceDir is where new migration files are created, relative to the repo root
const migrationsSourceDir = "internal/database/migrations"

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, status, create <name>)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, status, create")
	}

	// create needs no database connection
	if args[0] == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}
		goose.SetSequential(true)
		return goose.Create(nil, migrationsSourceDir, args[1], "sql")
	}

	ctx := context.Background()
	PrintInfo("Connecting to database: %s", redactPassword(dbURL()))
	pool, err := database.NewPool(ctx, devPoolConfig())
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		version, err := database.Migrate(ctx, pool)
		if err != nil {
			return err
		}
		PrintSuccess("Schema at version %d", version)
		return nil
	case "status":
		return database.MigrationStatus(ctx, pool)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

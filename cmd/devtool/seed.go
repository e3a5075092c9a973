package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/treedoctor/treedoctor-api/internal/bootstrap"
	"github.com/treedoctor/treedoctor-api/internal/config"
	"github.com/treedoctor/treedoctor-api/internal/database"
	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/server"
)

// devServices wires the real services over Postgres without an event bus
func devServices(ctx context.Context) (*pgxpool.Pool, server.Services, error) {
	PrintInfo("Connecting to database: %s", redactPassword(dbURL()))
	pool, err := database.NewPool(ctx, devPoolConfig())
	if err != nil {
		return nil, server.Services{}, err
	}

	cfg := &config.Config{
		LedgerBackend:     config.LedgerBackendPostgres,
		BadgeWateringMode: getEnv("BADGE_WATERING_MODE", config.WateringModeLegacy),
		BadgeTimeZone:     getEnv("BADGE_TIMEZONE", "UTC"),
		MaxTreesPerUser:   config.DefaultMaxTreesPerUser,
	}
	repos, err := bootstrap.InitializeRepositories(ctx, cfg, pool)
	if err != nil {
		pool.Close()
		return nil, server.Services{}, err
	}
	catalog, err := bootstrap.LoadBadgeCatalog(getEnv("BADGE_CATALOG_PATH", ""))
	if err != nil {
		pool.Close()
		return nil, server.Services{}, err
	}
	svcs, err := bootstrap.InitializeServices(cfg, repos, catalog, nil)
	if err != nil {
		pool.Close()
		return nil, server.Services{}, err
	}
	return pool, svcs, nil
}

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Register a demo student with trees and activity [username]"
}

func (c *SeedCommand) Run(args []string) error {
	username := "demo-student"
	if len(args) > 0 {
		username = args[0]
	}

	ctx := context.Background()
	pool, svcs, err := devServices(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintHeader("Seeding demo data")

	student, err := svcs.Students.Register(ctx, domain.RegisterStudentInput{
		Username: username,
		Email:    username + "@example.com",
		TimeZone: "UTC",
	})
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		PrintWarning("Student %s already exists, nothing to do", username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("register student: %w", err)
	}
	PrintSuccess("Registered %s (%s)", student.Username, student.ID)

	seedTrees := []domain.PlantTreeInput{
		{Name: "Oakley", Species: "english oak", Height: 40, Diameter: 1.2, Capsule: "Planted on the first day of spring."},
		{Name: "Maple", Species: "sugar maple", Height: 55, Diameter: 1.5},
	}
	for _, input := range seedTrees {
		tree, err := svcs.Trees.PlantTree(ctx, student.ID, input)
		if err != nil {
			return fmt.Errorf("plant %s: %w", input.Name, err)
		}
		for i := 0; i < 3; i++ {
			if _, err := svcs.Trees.WaterTree(ctx, student.ID, tree.ID); err != nil {
				return fmt.Errorf("water %s: %w", tree.Name, err)
			}
		}
		if _, err := svcs.Trees.LogMeasurement(ctx, student.ID, tree.ID, domain.MeasurementInput{
			Height:       input.Height + 12,
			Diameter:     input.Diameter + 0.3,
			HealthStatus: domain.HealthHealthy,
			Note:         "First growth check",
		}); err != nil {
			return fmt.Errorf("measure %s: %w", tree.Name, err)
		}
		PrintSuccess("Planted %s (%s)", tree.Name, tree.Species)
	}

	result, err := svcs.Badges.CheckAndAward(ctx, student.ID)
	if err != nil {
		return fmt.Errorf("evaluate badges: %w", err)
	}
	PrintSuccess("Awarded %d badge(s)", len(result.Awarded))
	return nil
}

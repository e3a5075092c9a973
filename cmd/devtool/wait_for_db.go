package main

import (
	"context"
	"fmt"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/database"
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")
	return waitForDB(context.Background(), dbRetries, dbRetryBackoff)
}

func waitForDB(ctx context.Context, retries int, backoff time.Duration) error {
	var lastErr error
	for i := 0; i < retries; i++ {
		pool, err := database.NewPool(ctx, devPoolConfig())
		if err == nil {
			pool.Close()
			PrintSuccess("Database is ready")
			return nil
		}
		lastErr = err

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, retries, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", retries, lastErr)
}

package repository

import (
	"context"
	"time"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

// Trees defines the interface for tree record persistence.
// Waterings and measurement log entries are append-only.
type Trees interface {
	ListTrees(ctx context.Context, userID string) ([]domain.Tree, error)
	GetTree(ctx context.Context, userID, treeID string) (*domain.Tree, error)
	// CreateTree inserts the tree and its first log entry. It returns
	// domain.ErrTreeLimitReached when the user already owns maxPerUser trees.
	CreateTree(ctx context.Context, tree *domain.Tree, maxPerUser int) error
	AddWatering(ctx context.Context, userID, treeID string, at time.Time) error
	AddMeasurement(ctx context.Context, userID, treeID string, m domain.Measurement) error
}

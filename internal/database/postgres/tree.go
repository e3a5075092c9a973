package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// TreeRepository implements repository.Trees on PostgreSQL.
// Waterings and measurements live in their own append-only tables.
type TreeRepository struct {
	db *pgxpool.Pool
}

var _ repository.Trees = (*TreeRepository)(nil)

// NewTreeRepository creates a new TreeRepository
func NewTreeRepository(db *pgxpool.Pool) *TreeRepository {
	return &TreeRepository{db: db}
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ListTrees returns the user's trees with their full watering and measurement history
func (r *TreeRepository) ListTrees(ctx context.Context, userID string) ([]domain.Tree, error) {
	uid, ok := parseID(userID)
	if !ok {
		return []domain.Tree{}, nil
	}

	rows, err := r.db.Query(ctx, sqlSelectTreesByUser, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTrees, err)
	}
	trees, err := pgx.CollectRows(rows, scanTree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTrees, err)
	}
	if err := loadHistory(ctx, r.db, trees); err != nil {
		return nil, err
	}
	return trees, nil
}

// GetTree returns domain.ErrTreeNotFound unless the tree exists and belongs to userID
func (r *TreeRepository) GetTree(ctx context.Context, userID, treeID string) (*domain.Tree, error) {
	uid, ok := parseID(userID)
	if !ok {
		return nil, domain.ErrTreeNotFound
	}
	tid, ok := parseID(treeID)
	if !ok {
		return nil, domain.ErrTreeNotFound
	}

	rows, err := r.db.Query(ctx, sqlSelectTree, uid, tid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTrees, err)
	}
	tree, err := pgx.CollectExactlyOneRow(rows, scanTree)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTreeNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTrees, err)
	}

	trees := []domain.Tree{tree}
	if err := loadHistory(ctx, r.db, trees); err != nil {
		return nil, err
	}
	return &trees[0], nil
}

// CreateTree inserts the tree with its initial history. The per-user count check
// runs under an advisory lock so concurrent plants cannot exceed maxPerUser.
func (r *TreeRepository) CreateTree(ctx context.Context, tree *domain.Tree, maxPerUser int) error {
	uid, ok := parseID(tree.UserID)
	if !ok {
		return domain.ErrUserNotFound
	}
	tid, ok := parseID(tree.ID)
	if !ok {
		return fmt.Errorf("%w: tree id must be a uuid", domain.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, sqlAdvisoryLock, advisoryKey(TreeLockNamespace+tree.UserID)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAcquireLock, err)
	}

	var count int
	if err := tx.QueryRow(ctx, sqlCountTrees, uid).Scan(&count); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCountTrees, err)
	}
	if count >= maxPerUser {
		return domain.ErrTreeLimitReached
	}

	photos := tree.PhotoRefs
	if photos == nil {
		photos = []string{}
	}
	_, err = tx.Exec(ctx, sqlInsertTree, tid, uid, tree.Name, tree.Species, tree.Capsule, photos,
		tree.PlantedAt, tree.InitialHeight, tree.InitialDiameter)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertTree, err)
	}

	batch := &pgx.Batch{}
	for _, w := range tree.Waterings {
		batch.Queue(sqlInsertWatering, uid, tid, w)
	}
	for _, m := range tree.MeasurementLog {
		batch.Queue(sqlInsertMeasurement, uid, tid, m.Timestamp, m.Height, m.Diameter,
			string(m.HealthStatus), m.Note, m.PhotoRef)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToInsertMeasurement, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// AddWatering appends a watering timestamp
func (r *TreeRepository) AddWatering(ctx context.Context, userID, treeID string, at time.Time) error {
	uid, tid, ok := parseIDs(userID, treeID)
	if !ok {
		return domain.ErrTreeNotFound
	}
	tag, err := r.db.Exec(ctx, sqlInsertWatering, uid, tid, at)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertWatering, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTreeNotFound
	}
	return nil
}

// AddMeasurement appends a measurement log entry
func (r *TreeRepository) AddMeasurement(ctx context.Context, userID, treeID string, m domain.Measurement) error {
	uid, tid, ok := parseIDs(userID, treeID)
	if !ok {
		return domain.ErrTreeNotFound
	}
	tag, err := r.db.Exec(ctx, sqlInsertMeasurement, uid, tid, m.Timestamp, m.Height, m.Diameter,
		string(m.HealthStatus), m.Note, m.PhotoRef)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertMeasurement, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTreeNotFound
	}
	return nil
}

func scanTree(row pgx.CollectableRow) (domain.Tree, error) {
	var (
		t        domain.Tree
		tid, uid uuid.UUID
	)
	err := row.Scan(&tid, &uid, &t.Name, &t.Species, &t.Capsule, &t.PhotoRefs,
		&t.PlantedAt, &t.InitialHeight, &t.InitialDiameter)
	if err != nil {
		return t, err
	}
	t.ID = tid.String()
	t.UserID = uid.String()
	t.PlantedAt = t.PlantedAt.UTC()
	t.Waterings = []time.Time{}
	t.MeasurementLog = []domain.Measurement{}
	return t, nil
}

// loadHistory fills Waterings and MeasurementLog in insertion order
func loadHistory(ctx context.Context, q querier, trees []domain.Tree) error {
	if len(trees) == 0 {
		return nil
	}

	ids := make([]string, len(trees))
	index := make(map[uuid.UUID]int, len(trees))
	for i, t := range trees {
		ids[i] = t.ID
		index[uuid.MustParse(t.ID)] = i
	}

	rows, err := q.Query(ctx, sqlSelectWaterings, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToListWaterings, err)
	}
	var (
		treeID uuid.UUID
		at     time.Time
	)
	_, err = pgx.ForEachRow(rows, []any{&treeID, &at}, func() error {
		i := index[treeID]
		trees[i].Waterings = append(trees[i].Waterings, at.UTC())
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToListWaterings, err)
	}

	rows, err = q.Query(ctx, sqlSelectMeasurements, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToListMeasurements, err)
	}
	var (
		m      domain.Measurement
		status string
		photo  *string
	)
	_, err = pgx.ForEachRow(rows, []any{&treeID, &m.Timestamp, &m.Height, &m.Diameter, &status, &m.Note, &photo}, func() error {
		entry := m
		entry.Timestamp = m.Timestamp.UTC()
		entry.HealthStatus = domain.HealthStatus(status)
		entry.PhotoRef = photo
		i := index[treeID]
		trees[i].MeasurementLog = append(trees[i].MeasurementLog, entry)
		photo = nil
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToListMeasurements, err)
	}
	return nil
}

func parseIDs(userID, treeID string) (uuid.UUID, uuid.UUID, bool) {
	uid, ok := parseID(userID)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	tid, ok := parseID(treeID)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return uid, tid, true
}

package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

func newTestTree(userID string, planted time.Time) *domain.Tree {
	return &domain.Tree{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            "Oakley",
		Species:         "Oak",
		Capsule:         "see you in ten years",
		PhotoRefs:       []string{"photos/1.jpg"},
		PlantedAt:       planted,
		InitialHeight:   12,
		InitialDiameter: 1,
		Waterings:       []time.Time{},
		MeasurementLog: []domain.Measurement{{
			Timestamp:    planted,
			Height:       12,
			Diameter:     1,
			HealthStatus: domain.HealthHealthy,
			Note:         "Initial planting measurements",
		}},
	}
}

func TestTreeRepository_CreateAndGet(t *testing.T) {
	pool := requirePool(t)
	students := NewStudentRepository(pool)
	repo := NewTreeRepository(pool)
	ctx := context.Background()

	student := createTestStudent(t, students)
	planted := time.Now().UTC().Truncate(time.Microsecond)
	tree := newTestTree(student.ID, planted)

	require.NoError(t, repo.CreateTree(ctx, tree, 3))

	got, err := repo.GetTree(ctx, student.ID, tree.ID)
	require.NoError(t, err)
	assert.Equal(t, tree.Name, got.Name)
	assert.Equal(t, tree.PhotoRefs, got.PhotoRefs)
	assert.Equal(t, planted, got.PlantedAt)
	assert.Empty(t, got.Waterings)
	require.Len(t, got.MeasurementLog, 1)
	assert.Equal(t, domain.HealthHealthy, got.MeasurementLog[0].HealthStatus)
	assert.Nil(t, got.MeasurementLog[0].PhotoRef)
}

func TestTreeRepository_AppendHistory(t *testing.T) {
	pool := requirePool(t)
	repo := NewTreeRepository(pool)
	ctx := context.Background()

	student := createTestStudent(t, NewStudentRepository(pool))
	base := time.Now().UTC().Truncate(time.Microsecond)
	tree := newTestTree(student.ID, base)
	require.NoError(t, repo.CreateTree(ctx, tree, 3))

	// Appended out of time order; storage order is preserved
	require.NoError(t, repo.AddWatering(ctx, student.ID, tree.ID, base.Add(2*time.Hour)))
	require.NoError(t, repo.AddWatering(ctx, student.ID, tree.ID, base.Add(time.Hour)))

	photo := "photos/2.jpg"
	require.NoError(t, repo.AddMeasurement(ctx, student.ID, tree.ID, domain.Measurement{
		Timestamp:    base.Add(3 * time.Hour),
		Height:       20,
		Diameter:     2,
		HealthStatus: domain.HealthDamaged,
		Note:         "wind",
		PhotoRef:     &photo,
	}))

	trees, err := repo.ListTrees(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, trees, 1)

	got := trees[0]
	assert.Equal(t, []time.Time{base.Add(2 * time.Hour), base.Add(time.Hour)}, got.Waterings)
	require.Len(t, got.MeasurementLog, 2)
	assert.Equal(t, 20.0, got.MeasurementLog[1].Height)
	require.NotNil(t, got.MeasurementLog[1].PhotoRef)
	assert.Equal(t, photo, *got.MeasurementLog[1].PhotoRef)
	assert.Nil(t, got.MeasurementLog[0].PhotoRef)
}

func TestTreeRepository_OwnershipIsEnforced(t *testing.T) {
	pool := requirePool(t)
	students := NewStudentRepository(pool)
	repo := NewTreeRepository(pool)
	ctx := context.Background()

	owner := createTestStudent(t, students)
	other := createTestStudent(t, students)
	tree := newTestTree(owner.ID, time.Now().UTC())
	require.NoError(t, repo.CreateTree(ctx, tree, 3))

	_, err := repo.GetTree(ctx, other.ID, tree.ID)
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)
	assert.ErrorIs(t, repo.AddWatering(ctx, other.ID, tree.ID, time.Now()), domain.ErrTreeNotFound)
	assert.ErrorIs(t, repo.AddMeasurement(ctx, owner.ID, uuid.NewString(), domain.Measurement{HealthStatus: domain.HealthHealthy}), domain.ErrTreeNotFound)
	assert.ErrorIs(t, repo.AddWatering(ctx, owner.ID, "garbage", time.Now()), domain.ErrTreeNotFound)

	trees, err := repo.ListTrees(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, trees)
}

func TestTreeRepository_UnknownStudent(t *testing.T) {
	repo := NewTreeRepository(requirePool(t))
	err := repo.CreateTree(context.Background(), newTestTree(uuid.NewString(), time.Now().UTC()), 3)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTreeRepository_ConcurrentCreateRespectsLimit(t *testing.T) {
	pool := requirePool(t)
	repo := NewTreeRepository(pool)
	ctx := context.Background()
	student := createTestStudent(t, NewStudentRepository(pool))

	const attempts = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		limited int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.CreateTree(ctx, newTestTree(student.ID, time.Now().UTC()), 3)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, domain.ErrTreeLimitReached):
				limited++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, created)
	assert.Equal(t, attempts-3, limited)

	trees, err := repo.ListTrees(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, trees, 3)
}

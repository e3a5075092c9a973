package bootstrap

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treedoctor/treedoctor-api/internal/badge"
	"github.com/treedoctor/treedoctor-api/internal/config"
	"github.com/treedoctor/treedoctor-api/internal/worker"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2024-03-01_10-00-00.log",
		"session_2024-03-02_10-00-00.log",
		"session_2024-03-03_10-00-00.log",
		"session_2024-03-04_10-00-00.log",
		"notes.txt",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"session_2024-03-03_10-00-00.log",
		"session_2024-03-04_10-00-00.log",
		"notes.txt",
	}, left)
}

func TestSetupLogger_CreatesSessionFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := &config.Config{LogDir: dir, LogLevel: "debug", LogFormat: "json", Environment: "test"}
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Contains(t, info.Name(), "session_")
	assert.FileExists(t, filepath.Join(dir, info.Name()))
}

func TestLoadBadgeCatalog(t *testing.T) {
	t.Run("embedded when path empty", func(t *testing.T) {
		catalog, err := LoadBadgeCatalog("")
		require.NoError(t, err)
		assert.Equal(t, badge.DefaultCatalog().Version(), catalog.Version())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadBadgeCatalog(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": ""}`), 0o600))
		_, err := LoadBadgeCatalog(path)
		assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)
	})
}

func TestInitializeEventSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deadletter.jsonl")
	cfg := &config.Config{EventDeadLetterPath: path, EventRetryDelay: 10 * time.Millisecond}

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NotNil(t, publisher)
	assert.DirExists(t, filepath.Dir(path))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, publisher.Shutdown(ctx))
}

func TestInitializeServices_RejectsUnknownWateringMode(t *testing.T) {
	cfg := &config.Config{BadgeWateringMode: "sometimes", BadgeTimeZone: "UTC", MaxTreesPerUser: 3}

	_, err := InitializeServices(cfg, &Repositories{}, badge.DefaultCatalog(), nil)
	assert.ErrorContains(t, err, ErrMsgInvalidWatering)
}

func TestInitializeServices_WiresAllServices(t *testing.T) {
	cfg := &config.Config{BadgeWateringMode: config.WateringModeClamped, BadgeTimeZone: "UTC", MaxTreesPerUser: 3}

	svcs, err := InitializeServices(cfg, &Repositories{}, badge.DefaultCatalog(), nil)
	require.NoError(t, err)
	assert.NotNil(t, svcs.Students)
	assert.NotNil(t, svcs.Trees)
	assert.NotNil(t, svcs.Badges)
	assert.NotNil(t, svcs.Calendar)
}

func TestGracefulShutdown_SkipsMissingComponents(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()

	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{WorkerPool: pool})
	})
	assert.False(t, pool.TryEnqueue(worker.JobFunc(func(context.Context) error { return nil })))
}

package config

import "time"

// Defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "treedoctor-api"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultBadgeSweepInterval  = 1 * time.Hour
	DefaultBadgeLedgerCacheTTL = 1 * time.Minute

	DefaultShutdownTimeout = 15 * time.Second

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"

	DefaultWorkerCount     = 4
	DefaultWorkerQueueSize = 100
	DefaultMaxTreesPerUser = 3
)

// Ledger backends
const (
	LedgerBackendPostgres = "postgres"
	LedgerBackendRedis    = "redis"
)

// Watering count modes, see badge.WateringCountMode
const (
	WateringModeLegacy  = "legacy"
	WateringModeClamped = "clamped"
	WateringModeRaw     = "raw"
)

package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept at startup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingTreeDoctor  = "Starting TreeDoctor API"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgDatabaseConnected = "Database connected"
	LogMsgMigrationsSkipped = "Migrations skipped (MIGRATE_ON_START=false)"
	LogMsgLedgerBackend     = "Badge ledger initialized"

	ErrMsgFailedConnectDatabase = "failed to connect to database"
	ErrMsgFailedMigrate         = "failed to apply migrations"
	ErrMsgFailedConnectRedis    = "failed to connect to redis ledger"

	// Readiness dependency names reported by /readyz
	ReadinessDatabase = "database"
	ReadinessRedis    = "redis"

	// RedisKeyPrefix namespaces the ledger keys when Redis is shared
	RedisKeyPrefix = "treedoctor:badges:"
)

// =============================================================================
// Badge Catalog
// =============================================================================

const (
	LogMsgCatalogLoaded     = "Badge catalog loaded"
	ErrMsgFailedLoadCatalog = "failed to load badge catalog"
	ErrMsgInvalidWatering   = "invalid watering count mode"
	CatalogSourceEmbedded   = "embedded"
)

// =============================================================================
// Event Handlers and Jobs
// =============================================================================

const (
	LogMsgBadgeHandlerRegistered     = "Badge event handler registered"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgSweepScheduled             = "Badge sweep scheduled"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"

	// JobNameBadgeSweep names the periodic EvaluateAll job in scheduler logs
	JobNameBadgeSweep = "badge_sweep"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShutdownSignal             = "Shutdown signal received"
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownWorkers        = "Stopping scheduler and worker pool..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgRedisCloseFailed           = "Redis client close failed"
)

package badge

import "time"

// Secret predicate parameters
const (
	EarlyBirdStartHour = 5
	EarlyBirdEndHour   = 7 // exclusive

	TreeWhispererStreakDays = 5

	GreenGuardianMinTrees = 2

	GrowthSpurtWindow    = 7 * 24 * time.Hour
	GrowthSpurtMinGainCM = 10.0 // gain must be strictly greater
)

// Secret badge ids with a registered predicate
const (
	BadgeEarlyBird     = "early_bird"
	BadgeTreeWhisperer = "tree_whisperer"
	BadgeGreenGuardian = "green_guardian"
	BadgeGrowthSpurt   = "growth_spurt"
)

const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 1 * time.Minute

	// CatalogSchemaName identifies the embedded catalog JSON schema
	CatalogSchemaName = "https://treedoctor.dev/schemas/badge-catalog.json"

	// SecretPlaceholder replaces the description of an unearned secret badge
	SecretPlaceholder = "???"
)

// Log messages
const (
	LogMsgEvaluationStarted   = "Badge evaluation started"
	LogMsgEvaluationCompleted = "Badge evaluation completed"
	LogMsgEvaluationAborted   = "Badge evaluation aborted: store read failed"
	LogMsgAwardFailed         = "Failed to persist badge award, continuing"
	LogMsgBadgeAwarded        = "Badge awarded"
	LogMsgPublishFailed       = "Failed to publish badge awarded event"
	LogMsgSweepStarted        = "Badge sweep started"
	LogMsgSweepCompleted      = "Badge sweep completed"
	LogMsgSweepUserFailed     = "Badge sweep failed for user"
	LogMsgEvaluationQueued    = "Badge evaluation queued"
	LogMsgEvaluationQueueFull = "Badge evaluation not queued"
	LogMsgCatalogLoaded       = "Badge catalog loaded"
)

// Error message formats
const (
	ErrMsgReadCatalogFailed  = "failed to read badge catalog: %w"
	ErrMsgParseCatalogFailed = "failed to parse badge catalog: %w"
	ErrMsgSchemaUnavailable  = "badge catalog schema unavailable: %w"
	ErrMsgListTreesFailed    = "%w: list trees for %s: %v"
	ErrMsgListLedgerFailed   = "%w: list earned badges for %s: %v"
	ErrMsgListStudentsFailed = "failed to list students for sweep: %w"
	ErrMsgNoStudentStore     = "badge sweep requires a student store"
)

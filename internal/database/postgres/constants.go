package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeForeignKeyViolation is raised when a referenced row is missing
	PgErrorCodeForeignKeyViolation = "23503"
)

// Hash Constants
const (
	// HashMaskPositiveInt64 keeps advisory lock keys positive
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF

	// TreeLockNamespace prefixes the advisory lock key that serialises tree creation per user
	TreeLockNamespace = "trees:"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToAcquireLock       = "failed to acquire advisory lock"
	ErrMsgFailedToRollback          = "Failed to rollback transaction"
)

// Error Messages - Student Operations
const (
	ErrMsgFailedToInsertStudent = "failed to insert student"
	ErrMsgFailedToGetStudent    = "failed to get student"
	ErrMsgFailedToListStudents  = "failed to list students"
)

// Error Messages - Tree Operations
const (
	ErrMsgFailedToCountTrees        = "failed to count trees"
	ErrMsgFailedToInsertTree        = "failed to insert tree"
	ErrMsgFailedToListTrees         = "failed to list trees"
	ErrMsgFailedToListWaterings     = "failed to list waterings"
	ErrMsgFailedToListMeasurements  = "failed to list measurements"
	ErrMsgFailedToInsertWatering    = "failed to insert watering"
	ErrMsgFailedToInsertMeasurement = "failed to insert measurement"
)

// Error Messages - Badge Ledger Operations
const (
	ErrMsgFailedToListBadges = "failed to list earned badges"
	ErrMsgFailedToAwardBadge = "failed to award badge"
)

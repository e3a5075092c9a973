package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidMonth          = "month must use the YYYY-MM format"

	// Student operations
	ErrMsgRegisterStudentFailed = "Failed to register student"
	ErrMsgGetStudentFailed      = "Failed to get student"

	// Tree operations
	ErrMsgPlantTreeFailed      = "Failed to plant tree"
	ErrMsgWaterTreeFailed      = "Failed to record watering"
	ErrMsgLogMeasurementFailed = "Failed to log measurement"
	ErrMsgListTreesFailed      = "Failed to list trees"

	// Badge operations
	ErrMsgGetBadgesFailed     = "Failed to get badges"
	ErrMsgEvaluateBadgeFailed = "Failed to evaluate badges"

	// Calendar operations
	ErrMsgGetCalendarFailed  = "Failed to build calendar"
	ErrMsgGetDashboardFailed = "Failed to build dashboard"
)

// Log messages
const (
	LogMsgRequestDecodeFailed = "Failed to decode request"
	LogMsgRequestFailed       = "Request failed"
	LogMsgEncodeFailed        = "Failed to encode JSON response"
	LogMsgWriteFailed         = "Failed to write response buffer"
	LogMsgReadinessFailed     = "Readiness check failed"
)

// MaxRequestBodyBytes caps JSON request bodies
const MaxRequestBodyBytes = 64 << 10

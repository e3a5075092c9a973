package student

// Username limits
const (
	MinUsernameLength    = 3
	MaxUsernameLength    = 32
	MaxDisplayNameLength = 64
)

// Log messages
const (
	LogMsgStudentRegistered = "Student registered"
	LogMsgPublishFailed     = "Failed to publish student event"
)

// Error message formats
const (
	ErrMsgCreateStudentFailed = "failed to create student: %w"
	ErrMsgGetStudentFailed    = "failed to get student: %w"
)

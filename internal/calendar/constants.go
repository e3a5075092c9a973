package calendar

// MonthLayout is the accepted month format, e.g. 2024-06
const MonthLayout = "2006-01"

// DateKeyLayout keys calendar days in the student's local time
const DateKeyLayout = "2006-01-02"

// Log messages
const (
	LogMsgCalendarBuilt  = "Calendar built"
	LogMsgDashboardBuilt = "Dashboard built"
)

// Error message formats
const (
	ErrMsgListTreesFailed    = "failed to list trees: %w"
	ErrMsgBadgeSummaryFailed = "failed to load badge summary: %w"
	ErrMsgLookupStudent      = "failed to look up student: %w"
)

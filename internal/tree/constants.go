package tree

// Limits on student-supplied tree data
const (
	MaxNameLength    = 50
	MaxSpeciesLength = 80
	MaxCapsuleLength = 600
	MaxNoteLength    = 500
	MaxPhotoRefs     = 3
	MaxHeightCM      = 10000
	MaxDiameterCM    = 1000
)

// Defaults applied when planting
const (
	DefaultTreeName = "My Tree"
	DefaultSpecies  = "Unknown"
	InitialLogNote  = "Initial planting measurements"
)

// Log messages
const (
	LogMsgTreePlanted      = "Tree planted"
	LogMsgTreeWatered      = "Tree watered"
	LogMsgMeasurementAdded = "Measurement logged"
	LogMsgPublishFailed    = "Failed to publish tree event"
)

// Error message formats
const (
	ErrMsgLookupStudentFailed  = "failed to look up student: %w"
	ErrMsgCreateTreeFailed     = "failed to create tree: %w"
	ErrMsgAddWateringFailed    = "failed to record watering: %w"
	ErrMsgAddMeasurementFailed = "failed to record measurement: %w"
	ErrMsgListTreesFailed      = "failed to list trees: %w"
	ErrMsgGetTreeFailed        = "failed to get tree: %w"
)

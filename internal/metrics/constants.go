package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Tree activity metric names
const (
	MetricNameTreesPlanted       = "trees_planted_total"
	MetricNameTreesWatered       = "trees_watered_total"
	MetricNameMeasurementsLogged = "measurements_logged_total"
)

// Badge metric names
const (
	MetricNameBadgesAwarded           = "badges_awarded_total"
	MetricNameBadgeAwardFailures      = "badge_award_failures_total"
	MetricNameBadgeEvaluations        = "badge_evaluations_total"
	MetricNameBadgeEvaluationDuration = "badge_evaluation_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextTreesPlanted       = "Total number of trees planted"
	HelpTextTreesWatered       = "Total number of waterings recorded"
	HelpTextMeasurementsLogged = "Total number of measurement log entries recorded"

	HelpTextBadgesAwarded           = "Total number of badges newly inserted into the ledger"
	HelpTextBadgeAwardFailures      = "Total number of qualifying badges that could not be persisted"
	HelpTextBadgeEvaluations        = "Total number of badge evaluation runs by outcome"
	HelpTextBadgeEvaluationDuration = "Badge evaluation run latency in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelBadge    = "badge"
	LabelCategory = "category"
	LabelResult   = "result"
	LabelHealth   = "health_status"
)

// Evaluation outcomes
const (
	ResultSuccess = "success"
	ResultPartial = "partial"
	ResultAborted = "aborted"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// EvaluationLatencyBuckets covers in-memory evaluation up to slow store reads
var EvaluationLatencyBuckets = []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)

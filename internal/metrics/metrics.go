package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Tree activity metrics
var (
	TreesPlanted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTreesPlanted,
			Help: HelpTextTreesPlanted,
		},
	)

	TreesWatered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTreesWatered,
			Help: HelpTextTreesWatered,
		},
	)

	MeasurementsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMeasurementsLogged,
			Help: HelpTextMeasurementsLogged,
		},
		[]string{LabelHealth},
	)
)

// Badge metrics
var (
	BadgesAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBadgesAwarded,
			Help: HelpTextBadgesAwarded,
		},
		[]string{LabelBadge, LabelCategory},
	)

	BadgeAwardFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBadgeAwardFailures,
			Help: HelpTextBadgeAwardFailures,
		},
		[]string{LabelBadge},
	)

	BadgeEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBadgeEvaluations,
			Help: HelpTextBadgeEvaluations,
		},
		[]string{LabelResult},
	)

	BadgeEvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameBadgeEvaluationDuration,
			Help:    HelpTextBadgeEvaluationDuration,
			Buckets: EvaluationLatencyBuckets,
		},
	)
)

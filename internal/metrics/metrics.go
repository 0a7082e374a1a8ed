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

// Ledger Metrics
var (
	FarmsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFarmsCreated,
			Help: HelpTextFarmsCreated,
		},
		[]string{LabelSeed},
	)

	FarmsEnded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFarmsEnded,
			Help: HelpTextFarmsEnded,
		},
		[]string{LabelSeed},
	)

	RewardDeposits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardDeposits,
			Help: HelpTextRewardDeposits,
		},
		[]string{LabelSeed},
	)

	RewardClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardClaims,
			Help: HelpTextRewardClaims,
		},
		[]string{LabelFarm},
	)

	ItemsStaked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsStaked,
			Help: HelpTextItemsStaked,
		},
		[]string{LabelFarm},
	)

	ItemsWithdrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsWithdrawn,
			Help: HelpTextItemsWithdrawn,
		},
		[]string{LabelFarm},
	)
)

// Transfer Metrics
var (
	TransferDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTransferDispatches,
			Help: HelpTextTransferDispatches,
		},
		[]string{LabelKind, LabelOutcome},
	)

	TransfersDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTransfersDropped,
			Help: HelpTextTransfersDropped,
		},
		[]string{LabelKind},
	)
)

// RecordTransferDispatch records one dispatch attempt outcome.
func RecordTransferDispatch(kind string, success bool) {
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}
	TransferDispatches.WithLabelValues(kind, outcome).Inc()
}

// RecordTransferDropped records an intent dropped before dispatch.
func RecordTransferDropped(kind string) {
	TransfersDropped.WithLabelValues(kind).Inc()
}

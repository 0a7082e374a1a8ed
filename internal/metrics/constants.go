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

// Ledger metric names
const (
	MetricNameFarmsCreated   = "farms_created_total"
	MetricNameFarmsEnded     = "farms_ended_total"
	MetricNameRewardDeposits = "reward_deposits_total"
	MetricNameRewardClaims   = "reward_claims_total"
	MetricNameItemsStaked    = "items_staked_total"
	MetricNameItemsWithdrawn = "items_withdrawn_total"
)

// Transfer metric names
const (
	MetricNameTransferDispatches = "transfer_dispatches_total"
	MetricNameTransfersDropped   = "transfers_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Ledger metric help text
const (
	HelpTextFarmsCreated   = "Total number of farms created"
	HelpTextFarmsEnded     = "Total number of farms that ended"
	HelpTextRewardDeposits = "Total number of reward pool deposits"
	HelpTextRewardClaims   = "Total number of reward settlements"
	HelpTextItemsStaked    = "Total number of collateral items staked"
	HelpTextItemsWithdrawn = "Total number of collateral items withdrawn"
)

// Transfer metric help text
const (
	HelpTextTransferDispatches = "Total number of transfer dispatch attempts by outcome"
	HelpTextTransfersDropped   = "Total number of transfer intents dropped before dispatch"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelSeed    = "seed"
	LabelFarm    = "farm"
	LabelKind    = "kind"
	LabelOutcome = "outcome"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
